package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/common"
)

// ---- auth ----

type fakeAuth struct {
	identity  *models.Identity
	verifyErr error
	resendErr error

	verifyCalls int
	resendCalls int
	lastEmail   string
	lastCode    string
}

func (f *fakeAuth) VerifyOTP(ctx context.Context, email, code string) (*models.Identity, error) {
	f.verifyCalls++
	f.lastEmail, f.lastCode = email, code
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.identity, nil
}

func (f *fakeAuth) ResendOTP(ctx context.Context, email string) error {
	f.resendCalls++
	f.lastEmail = email
	return f.resendErr
}

type fakeIdentity struct {
	identity *models.Identity
	err      error
	calls    int
}

func (f *fakeIdentity) CurrentIdentity(ctx context.Context) (*models.Identity, error) {
	f.calls++
	return f.identity, f.err
}

// ---- repositories ----

type fakeUsers struct {
	byID      map[string]*models.User
	getErr    error
	createErr error
	deleteErr error

	created []*models.User
	deleted []string
}

func newFakeUsers(us ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*models.User{}}
	for _, u := range us {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type fakeSessions struct {
	createErr error
	deleteErr error
	created   []*models.Session
	deleted   []string
}

func (f *fakeSessions) Create(ctx context.Context, s *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSessions) DeleteByUser(ctx context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return f.deleteErr
}

type fakeWallets struct {
	wallet    *models.Wallet
	getErr    error
	deleteErr error
	deleted   []string
}

func (f *fakeWallets) GetByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	return f.wallet, f.getErr
}

func (f *fakeWallets) DeleteByUser(ctx context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return f.deleteErr
}

type fakeTransactions struct {
	rows      []models.CoinTransaction
	listErr   error
	deleteErr error
	lastLimit int
	deleted   []string
}

func (f *fakeTransactions) ListByUser(ctx context.Context, userID string, limit int) ([]models.CoinTransaction, error) {
	f.lastLimit = limit
	return f.rows, f.listErr
}

func (f *fakeTransactions) DeleteByUser(ctx context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return f.deleteErr
}

type fakeBadges struct {
	rows      []models.Badge
	listErr   error
	deleteErr error
	deleted   []string
}

func (f *fakeBadges) ListByUser(ctx context.Context, userID string) ([]models.Badge, error) {
	return f.rows, f.listErr
}

func (f *fakeBadges) DeleteByUser(ctx context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return f.deleteErr
}

type fakeCatalog struct {
	packages []models.CoinPackage
	listErr  error

	plansErr    error
	productsErr error
	plans       [][]models.PremiumPlan
	products    [][]models.CoinPackage
}

func (f *fakeCatalog) ListCoinPackages(ctx context.Context) ([]models.CoinPackage, error) {
	return f.packages, f.listErr
}

func (f *fakeCatalog) UpsertPlans(ctx context.Context, plans []models.PremiumPlan) error {
	if f.plansErr != nil {
		return f.plansErr
	}
	f.plans = append(f.plans, plans)
	return nil
}

func (f *fakeCatalog) UpsertProducts(ctx context.Context, products []models.CoinPackage) error {
	if f.productsErr != nil {
		return f.productsErr
	}
	f.products = append(f.products, products)
	return nil
}

func (f *fakeCatalog) writes() int {
	return len(f.plans) + len(f.products)
}

// ---- local store ----

type memStore struct {
	mu      sync.Mutex
	session *LocalSession
	saveErr error
	saves   int
}

func (m *memStore) Save(ctx context.Context, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.session = &LocalSession{Token: token, ExpiresAt: expiresAt}
	return nil
}

func (m *memStore) Load(ctx context.Context) (*LocalSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, common.ErrNoSession
	}
	s := *m.session
	return &s, nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
