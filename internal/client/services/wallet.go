package services

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/badges"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/catalog"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/transactions"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/wallets"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/dmitrijs2005/learnquest/internal/logging"
)

// Names of the backend functions behind the storefront.
const (
	FnCreateCheckoutSession = "create-checkout-session"
	FnCompletePurchase      = "complete-purchase"
	FnSpendCoins            = "spend-coins"
)

// FunctionInvoker calls a named backend function.
type FunctionInvoker interface {
	Invoke(ctx context.Context, name string, body any, out any) error
}

// WalletService is the coin wallet and storefront. No method returns an
// error: failures are logged and reported as an empty or false result.
// Balances are only ever changed by the backend functions.
type WalletService interface {
	ListCoinPackages(ctx context.Context) []models.CoinPackage
	// GetWallet returns (nil, true) when the user has no wallet yet and
	// (nil, false) when the lookup failed.
	GetWallet(ctx context.Context, userID string) (*models.Wallet, bool)
	ListTransactions(ctx context.Context, userID string, limit int) []models.CoinTransaction
	ListBadges(ctx context.Context, userID string) []models.Badge
	CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL string) string
	CompletePurchase(ctx context.Context, sessionID, productID string) bool
	SpendCoins(ctx context.Context, amount int64, description, referenceID string) bool
}

type walletService struct {
	catalog      catalog.Repository
	wallets      wallets.Repository
	transactions transactions.Repository
	badges       badges.Repository
	functions    FunctionInvoker
	logger       logging.Logger
	defaultLimit int
}

// WalletDeps groups the collaborators of the wallet service.
type WalletDeps struct {
	Catalog      catalog.Repository
	Wallets      wallets.Repository
	Transactions transactions.Repository
	Badges       badges.Repository
	Functions    FunctionInvoker
	// DefaultLimit applies when ListTransactions gets a non-positive limit.
	DefaultLimit int
}

func NewWalletService(d WalletDeps, logger logging.Logger) WalletService {
	limit := d.DefaultLimit
	if limit <= 0 {
		limit = common.DefaultTransactionLimit
	}
	return &walletService{
		catalog:      d.Catalog,
		wallets:      d.Wallets,
		transactions: d.Transactions,
		badges:       d.Badges,
		functions:    d.Functions,
		logger:       logger.With("service", "wallet"),
		defaultLimit: limit,
	}
}

func (s *walletService) ListCoinPackages(ctx context.Context) []models.CoinPackage {
	pkgs, err := s.catalog.ListCoinPackages(ctx)
	if err != nil {
		s.logger.Error(ctx, "list coin packages", "error", err)
		return []models.CoinPackage{}
	}
	sort.SliceStable(pkgs, func(i, j int) bool { return pkgs[i].PriceCents < pkgs[j].PriceCents })
	return pkgs
}

func (s *walletService) GetWallet(ctx context.Context, userID string) (*models.Wallet, bool) {
	w, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "get wallet", "user_id", userID, "error", err)
		return nil, false
	}
	return w, true
}

// ListTransactions returns at most limit entries, newest first, whatever
// order the backend answered in.
func (s *walletService) ListTransactions(ctx context.Context, userID string, limit int) []models.CoinTransaction {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	txs, err := s.transactions.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error(ctx, "list transactions", "user_id", userID, "error", err)
		return []models.CoinTransaction{}
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].CreatedAt.After(txs[j].CreatedAt) })
	if len(txs) > limit {
		txs = txs[:limit]
	}
	return txs
}

func (s *walletService) ListBadges(ctx context.Context, userID string) []models.Badge {
	bs, err := s.badges.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "list badges", "user_id", userID, "error", err)
		return []models.Badge{}
	}
	return bs
}

type checkoutRequest struct {
	PriceID    string `json:"priceId"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

type checkoutResponse struct {
	SessionID string `json:"sessionId"`
	Error     string `json:"error,omitempty"`
}

type completeRequest struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
}

type spendRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReferenceID string `json:"referenceId,omitempty"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// CreateCheckoutSession returns the processor's checkout session id, or ""
// on failure.
func (s *walletService) CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL string) string {
	if strings.TrimSpace(priceID) == "" {
		s.logger.Warn(ctx, "checkout without price id")
		return ""
	}

	var resp checkoutResponse
	req := checkoutRequest{PriceID: priceID, SuccessURL: successURL, CancelURL: cancelURL}
	if err := s.functions.Invoke(ctx, FnCreateCheckoutSession, req, &resp); err != nil {
		s.logger.Error(ctx, "create checkout session", "price_id", priceID, "error", err)
		return ""
	}
	if resp.SessionID == "" {
		s.logger.Error(ctx, "create checkout session: no session id", "price_id", priceID, "backend_error", resp.Error)
		return ""
	}
	return resp.SessionID
}

// CompletePurchase asks the backend to credit the purchase. The wallet is
// not touched here; re-read it afterwards.
func (s *walletService) CompletePurchase(ctx context.Context, sessionID, productID string) bool {
	if sessionID == "" || productID == "" {
		s.logger.Warn(ctx, "complete purchase with missing ids", "session_id", sessionID, "product_id", productID)
		return false
	}

	var resp successResponse
	req := completeRequest{SessionID: sessionID, ProductID: productID}
	if err := s.functions.Invoke(ctx, FnCompletePurchase, req, &resp); err != nil {
		s.logger.Error(ctx, "complete purchase", "session_id", sessionID, "error", err)
		return false
	}
	if !resp.Success {
		s.logger.Warn(ctx, "purchase not completed", "session_id", sessionID, "backend_error", resp.Error)
	}
	return resp.Success
}

// SpendCoins debits the caller's wallet through the backend. Concurrent
// spends are not coordinated here.
func (s *walletService) SpendCoins(ctx context.Context, amount int64, description, referenceID string) bool {
	if amount <= 0 {
		s.logger.Warn(ctx, "spend with non-positive amount", "amount", amount)
		return false
	}

	var resp successResponse
	req := spendRequest{Amount: amount, Description: description, ReferenceID: referenceID}
	if err := s.functions.Invoke(ctx, FnSpendCoins, req, &resp); err != nil {
		s.logger.Error(ctx, "spend coins", "amount", amount, "error", err)
		return false
	}
	if !resp.Success {
		s.logger.Warn(ctx, "spend refused", "amount", amount, "backend_error", resp.Error)
	}
	return resp.Success
}
