package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/dmitrijs2005/learnquest/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFunctions plays the backend functions. Handlers receive the request
// body as generic JSON and return the response object.
type fakeFunctions struct {
	handlers map[string]func(body map[string]any) (any, error)
	calls    []fnCall
}

type fnCall struct {
	Name string
	Body map[string]any
}

func (f *fakeFunctions) Invoke(ctx context.Context, name string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	f.calls = append(f.calls, fnCall{Name: name, Body: m})

	h, ok := f.handlers[name]
	if !ok {
		return common.ErrNotFound
	}
	resp, err := h(m)
	if err != nil {
		return err
	}
	rb, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(rb, out)
}

type walletFixture struct {
	catalog *fakeCatalog
	wallets *fakeWallets
	txs     *fakeTransactions
	badges  *fakeBadges
	fns     *fakeFunctions
	svc     WalletService
}

func newWalletFixture() *walletFixture {
	f := &walletFixture{
		catalog: &fakeCatalog{},
		wallets: &fakeWallets{},
		txs:     &fakeTransactions{},
		badges:  &fakeBadges{},
		fns:     &fakeFunctions{handlers: map[string]func(map[string]any) (any, error){}},
	}
	f.svc = NewWalletService(WalletDeps{
		Catalog:      f.catalog,
		Wallets:      f.wallets,
		Transactions: f.txs,
		Badges:       f.badges,
		Functions:    f.fns,
	}, logging.Discard())
	return f
}

func TestListCoinPackages_SortedByPrice(t *testing.T) {
	f := newWalletFixture()
	f.catalog.packages = []models.CoinPackage{
		{StripeProductID: "c", PriceCents: 6999},
		{StripeProductID: "a", PriceCents: 999},
		{StripeProductID: "b", PriceCents: 3999},
	}

	got := f.svc.ListCoinPackages(context.Background())
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].StripeProductID, got[1].StripeProductID, got[2].StripeProductID})
}

func TestListCoinPackages_ErrorIsEmpty(t *testing.T) {
	f := newWalletFixture()
	f.catalog.listErr = common.ErrUnavailable

	got := f.svc.ListCoinPackages(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetWallet(t *testing.T) {
	f := newWalletFixture()

	w, ok := f.svc.GetWallet(context.Background(), "u-1")
	assert.Nil(t, w)
	assert.True(t, ok, "absent wallet is not a failure")

	f.wallets.wallet = &models.Wallet{UserID: "u-1", TotalCoins: 10}
	w, ok = f.svc.GetWallet(context.Background(), "u-1")
	assert.True(t, ok)
	assert.Equal(t, int64(10), w.TotalCoins)

	f.wallets.getErr = common.ErrUnavailable
	w, ok = f.svc.GetWallet(context.Background(), "u-1")
	assert.Nil(t, w)
	assert.False(t, ok)
}

func TestListTransactions_NewestFirstAndBounded(t *testing.T) {
	f := newWalletFixture()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// backend ignores order and limit
	for i, off := range []int{3, 1, 5, 2, 4} {
		f.txs.rows = append(f.txs.rows, models.CoinTransaction{
			ID:        string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(off) * time.Hour),
		})
	}

	got := f.svc.ListTransactions(context.Background(), "u-1", 3)
	require.Len(t, got, 3)
	assert.Equal(t, 3, f.txs.lastLimit)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt))
	}
	assert.Equal(t, base.Add(5*time.Hour), got[0].CreatedAt)
}

func TestListTransactions_DefaultLimit(t *testing.T) {
	f := newWalletFixture()

	f.svc.ListTransactions(context.Background(), "u-1", 0)
	assert.Equal(t, 50, f.txs.lastLimit)

	f.svc.ListTransactions(context.Background(), "u-1", -5)
	assert.Equal(t, 50, f.txs.lastLimit)

	svc := NewWalletService(WalletDeps{Transactions: f.txs, DefaultLimit: 20}, logging.Discard())
	svc.ListTransactions(context.Background(), "u-1", 0)
	assert.Equal(t, 20, f.txs.lastLimit)
}

func TestListTransactions_ErrorIsEmpty(t *testing.T) {
	f := newWalletFixture()
	f.txs.listErr = errors.New("boom")

	got := f.svc.ListTransactions(context.Background(), "u-1", 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListBadges(t *testing.T) {
	f := newWalletFixture()
	f.badges.rows = []models.Badge{{ID: "b-1"}}
	assert.Len(t, f.svc.ListBadges(context.Background(), "u-1"), 1)

	f.badges.listErr = common.ErrUnauthorized
	assert.Empty(t, f.svc.ListBadges(context.Background(), "u-1"))
}

func TestCreateCheckoutSession(t *testing.T) {
	f := newWalletFixture()
	f.fns.handlers[FnCreateCheckoutSession] = func(body map[string]any) (any, error) {
		return map[string]any{"sessionId": "cs_test_1"}, nil
	}

	id := f.svc.CreateCheckoutSession(context.Background(), "price_1", "https://app/success", "https://app/cancel")
	assert.Equal(t, "cs_test_1", id)

	require.Len(t, f.fns.calls, 1)
	assert.Equal(t, map[string]any{
		"priceId":    "price_1",
		"successUrl": "https://app/success",
		"cancelUrl":  "https://app/cancel",
	}, f.fns.calls[0].Body)
}

func TestCreateCheckoutSession_Failures(t *testing.T) {
	f := newWalletFixture()

	assert.Empty(t, f.svc.CreateCheckoutSession(context.Background(), "", "s", "c"))
	assert.Empty(t, f.fns.calls)

	f.fns.handlers[FnCreateCheckoutSession] = func(map[string]any) (any, error) {
		return map[string]any{"error": "No such price"}, nil
	}
	assert.Empty(t, f.svc.CreateCheckoutSession(context.Background(), "price_x", "s", "c"))

	f.fns.handlers[FnCreateCheckoutSession] = func(map[string]any) (any, error) {
		return nil, common.ErrUnavailable
	}
	assert.Empty(t, f.svc.CreateCheckoutSession(context.Background(), "price_x", "s", "c"))
}

// The wallet only changes through the backend double; the service never
// writes balances.
func TestCompletePurchaseAndSpend_OnlyBackendMutatesWallet(t *testing.T) {
	f := newWalletFixture()
	f.wallets.wallet = &models.Wallet{UserID: "u-1", TotalCoins: 0, SpentCoins: 0}

	f.fns.handlers[FnCompletePurchase] = func(body map[string]any) (any, error) {
		assert.Equal(t, "cs_1", body["sessionId"])
		assert.Equal(t, "prod_100", body["productId"])
		f.wallets.wallet.TotalCoins += 100
		return map[string]any{"success": true}, nil
	}
	f.fns.handlers[FnSpendCoins] = func(body map[string]any) (any, error) {
		amount := int64(body["amount"].(float64))
		w := f.wallets.wallet
		if w.AvailableCoins() < amount {
			return map[string]any{"success": false, "error": "insufficient coins"}, nil
		}
		w.SpentCoins += amount
		return map[string]any{"success": true}, nil
	}

	before, _ := f.svc.GetWallet(context.Background(), "u-1")
	snapshot := *before

	require.True(t, f.svc.CompletePurchase(context.Background(), "cs_1", "prod_100"))
	require.True(t, f.svc.SpendCoins(context.Background(), 30, "hint", "lesson-7"))
	assert.False(t, f.svc.SpendCoins(context.Background(), 500, "course", ""))

	after, ok := f.svc.GetWallet(context.Background(), "u-1")
	require.True(t, ok)
	assert.Equal(t, int64(100), after.TotalCoins)
	assert.Equal(t, int64(30), after.SpentCoins)
	assert.Equal(t, int64(70), after.AvailableCoins())
	assert.Zero(t, snapshot.TotalCoins)

	require.Len(t, f.fns.calls, 3)
	assert.Equal(t, map[string]any{"amount": float64(30), "description": "hint", "referenceId": "lesson-7"}, f.fns.calls[1].Body)
	_, hasRef := f.fns.calls[2].Body["referenceId"]
	assert.False(t, hasRef, "empty reference is omitted")
}

func TestSpendCoins_NonPositiveAmount(t *testing.T) {
	f := newWalletFixture()

	assert.False(t, f.svc.SpendCoins(context.Background(), 0, "x", ""))
	assert.False(t, f.svc.SpendCoins(context.Background(), -10, "x", ""))
	assert.Empty(t, f.fns.calls)
}

func TestCompletePurchase_Failures(t *testing.T) {
	f := newWalletFixture()

	assert.False(t, f.svc.CompletePurchase(context.Background(), "", "prod"))
	assert.Empty(t, f.fns.calls)

	assert.False(t, f.svc.CompletePurchase(context.Background(), "cs_1", "prod"), "function missing")

	f.fns.handlers[FnCompletePurchase] = func(map[string]any) (any, error) {
		return map[string]any{"success": false, "error": "payment not settled"}, nil
	}
	assert.False(t, f.svc.CompletePurchase(context.Background(), "cs_1", "prod"))
}
