package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/learnquest/internal/client/backend"
	"github.com/dmitrijs2005/learnquest/internal/client/localdb"
	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/badges"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/catalog"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/transactions"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/users"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/wallets"
	"github.com/dmitrijs2005/learnquest/internal/client/routing"
	"github.com/dmitrijs2005/learnquest/internal/client/services"
	"github.com/dmitrijs2005/learnquest/internal/client/storage"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/dmitrijs2005/learnquest/internal/config"
	"github.com/dmitrijs2005/learnquest/internal/logging"
)

// tokenHolder is the part of the backend client that carries the caller's
// access token.
type tokenHolder interface {
	SetAccessToken(token string)
	AccessToken() string
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	tokens   tokenHolder
	identity services.IdentitySource
	users    users.Repository
	verifier services.VerificationService
	router   services.RoleRouter
	store    services.SessionStore
	wallet   services.WalletService
	// account is nil when no service role key is configured.
	account services.AccountService

	reader *bufio.Reader
	out    io.Writer

	email       string
	user        *models.User
	destination routing.Destination
}

// NewApp opens local storage and wires the backend client, repositories
// and services described by c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := localdb.Open(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	bc := backend.New(c.BackendURL, c.AnonKey,
		backend.WithServiceRoleKey(c.ServiceRoleKey),
		backend.WithLogger(logger),
	)

	userRepo := users.NewRESTRepository(bc)
	store := services.NewLocalSessionStore(db)

	a := &App{
		config:   c,
		logger:   logger,
		db:       db,
		tokens:   bc,
		identity: bc,
		users:    userRepo,
		store:    store,
		verifier: services.NewVerificationService(bc, userRepo, sessions.NewRESTRepository(bc), store, logger),
		router:   services.NewRoleRouter(bc, userRepo, logger),
		wallet: services.NewWalletService(services.WalletDeps{
			Catalog:      catalog.NewRESTRepository(bc),
			Wallets:      wallets.NewRESTRepository(bc),
			Transactions: transactions.NewRESTRepository(bc),
			Badges:       badges.NewRESTRepository(bc),
			Functions:    bc,
			DefaultLimit: c.TransactionLimit,
		}, logger),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	if c.ServiceRoleKey != "" {
		a.account = newAccountService(ctx, c, bc, logger)
	}
	return a, nil
}

func newAccountService(ctx context.Context, c *config.Config, bc *backend.Client, logger logging.Logger) services.AccountService {
	admin, err := bc.Admin()
	if err != nil {
		logger.Warn(ctx, "account deletion disabled", "error", err)
		return nil
	}

	var objects services.ObjectRemover
	if c.StorageEnabled() {
		st, err := storage.Connect(ctx, storage.Settings{
			Endpoint:  c.StorageEndpoint,
			Region:    c.StorageRegion,
			Bucket:    c.StorageBucket,
			AccessKey: c.StorageAccessKey,
			SecretKey: c.StorageSecretKey,
		})
		if err != nil {
			logger.Warn(ctx, "object storage unavailable, storage cleanup will be skipped", "error", err)
		} else {
			objects = st
		}
	}

	return services.NewAccountService(services.AccountDeps{
		Users:        users.NewRESTRepository(admin),
		Badges:       badges.NewRESTRepository(admin),
		Sessions:     sessions.NewRESTRepository(admin),
		Transactions: transactions.NewRESTRepository(admin),
		Wallets:      wallets.NewRESTRepository(admin),
		Auth:         admin,
		Objects:      objects,
	}, logger)
}

// Run reports the locally stored session, then blocks in the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	fmt.Fprintln(a.out, "Welcome to LearnQuest CLI (type 'help' for commands)")
	a.reportLocalSession(ctx)

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) reportLocalSession(ctx context.Context) {
	s, err := a.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNoSession) {
			a.logger.Warn(ctx, "reading local session failed", "error", err)
		}
		return
	}
	if s.Expired(time.Now()) {
		fmt.Fprintln(a.out, "Local session expired. Run 'verify' to sign in again.")
		return
	}
	fmt.Fprintf(a.out, "Local session valid until %s. Run 'verify' or 'callback' to reconnect.\n",
		s.ExpiresAt.Local().Format(time.RFC1123))
}

func (a *App) isVerified() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s) ", a.user.Email, a.user.Role)
}
