package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/dmitrijs2005/learnquest/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthRemover struct {
	rpcErr   error
	adminErr error
	rpcCalls []string
	rpcArgs  []any
	adminIDs []string
}

func (f *fakeAuthRemover) RPC(ctx context.Context, name string, args any, out any) error {
	f.rpcCalls = append(f.rpcCalls, name)
	f.rpcArgs = append(f.rpcArgs, args)
	return f.rpcErr
}

func (f *fakeAuthRemover) DeleteAuthUser(ctx context.Context, userID string) error {
	f.adminIDs = append(f.adminIDs, userID)
	return f.adminErr
}

type fakeObjects struct {
	n        int
	err      error
	prefixes []string
}

func (f *fakeObjects) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	f.prefixes = append(f.prefixes, prefix)
	return f.n, f.err
}

type accountFixture struct {
	users    *fakeUsers
	badges   *fakeBadges
	sessions *fakeSessions
	txs      *fakeTransactions
	wallets  *fakeWallets
	auth     *fakeAuthRemover
	objects  *fakeObjects
}

func newAccountFixture() *accountFixture {
	return &accountFixture{
		users:    newFakeUsers(),
		badges:   &fakeBadges{},
		sessions: &fakeSessions{},
		txs:      &fakeTransactions{},
		wallets:  &fakeWallets{},
		auth:     &fakeAuthRemover{},
		objects:  &fakeObjects{n: 2},
	}
}

func (f *accountFixture) service(withObjects bool) AccountService {
	d := AccountDeps{
		Users:        f.users,
		Badges:       f.badges,
		Sessions:     f.sessions,
		Transactions: f.txs,
		Wallets:      f.wallets,
		Auth:         f.auth,
	}
	if withObjects {
		d.Objects = f.objects
	}
	return NewAccountService(d, logging.Discard())
}

func stepNames(r DeletionReport) []string {
	var out []string
	for _, s := range r.Steps {
		out = append(out, s.Step)
	}
	return out
}

func TestAccountDelete_AllSteps(t *testing.T) {
	f := newAccountFixture()

	r := f.service(true).Delete(context.Background(), "u-1")

	assert.Equal(t, []string{"profile", "badges", "sessions", "transactions", "wallet", "storage", "auth"}, stepNames(r))
	assert.True(t, r.Completed())
	assert.Empty(t, r.Failed())

	assert.Equal(t, []string{"u-1"}, f.users.deleted)
	assert.Equal(t, []string{"u-1"}, f.badges.deleted)
	assert.Equal(t, []string{"u-1"}, f.sessions.deleted)
	assert.Equal(t, []string{"u-1"}, f.txs.deleted)
	assert.Equal(t, []string{"u-1"}, f.wallets.deleted)
	assert.Equal(t, []string{"u-1/"}, f.objects.prefixes)
	assert.Equal(t, []string{FnDeleteUserAccount}, f.auth.rpcCalls)
	assert.Equal(t, map[string]string{"user_id": "u-1"}, f.auth.rpcArgs[0])
	assert.Empty(t, f.auth.adminIDs)

	st, ok := r.Step(StepStorage)
	require.True(t, ok)
	assert.Equal(t, "2 objects", st.Detail)
}

func TestAccountDelete_ProfileFailureAborts(t *testing.T) {
	f := newAccountFixture()
	f.users.deleteErr = common.ErrUnauthorized

	r := f.service(true).Delete(context.Background(), "u-1")

	p, _ := r.Step(StepProfile)
	assert.Equal(t, StepFailed, p.Outcome)
	require.ErrorIs(t, p.Err, common.ErrUnauthorized)
	for _, s := range r.Steps[1:] {
		assert.Equal(t, StepSkipped, s.Outcome, s.Step)
	}
	assert.False(t, r.Completed())
	assert.Empty(t, f.badges.deleted)
	assert.Empty(t, f.auth.rpcCalls)
}

func TestAccountDelete_BestEffortStepsContinue(t *testing.T) {
	f := newAccountFixture()
	f.badges.deleteErr = errors.New("badges down")
	f.txs.deleteErr = errors.New("tx down")
	f.objects.err = errors.New("bucket gone")

	r := f.service(true).Delete(context.Background(), "u-1")

	failed := r.Failed()
	require.Len(t, failed, 3)
	assert.Equal(t, []string{"badges", "transactions", "storage"}, []string{failed[0].Step, failed[1].Step, failed[2].Step})
	assert.Equal(t, []string{"u-1"}, f.wallets.deleted)
	assert.True(t, r.Completed())
}

func TestAccountDelete_AuthFallback(t *testing.T) {
	f := newAccountFixture()
	f.auth.rpcErr = common.ErrNotFound

	r := f.service(true).Delete(context.Background(), "u-1")

	a, _ := r.Step(StepAuth)
	assert.Equal(t, StepOK, a.Outcome)
	assert.Equal(t, "admin api", a.Detail)
	assert.Equal(t, []string{"u-1"}, f.auth.adminIDs)
}

func TestAccountDelete_AuthBothFail(t *testing.T) {
	f := newAccountFixture()
	f.auth.rpcErr = errors.New("rpc missing")
	f.auth.adminErr = common.ErrUnauthorized

	r := f.service(true).Delete(context.Background(), "u-1")

	a, _ := r.Step(StepAuth)
	assert.Equal(t, StepFailed, a.Outcome)
	require.ErrorIs(t, a.Err, common.ErrUnauthorized)
	assert.Contains(t, a.Err.Error(), "rpc missing")
	assert.False(t, r.Completed())

	p, _ := r.Step(StepProfile)
	assert.Equal(t, StepOK, p.Outcome, "earlier steps are not rolled back")
}

func TestAccountDelete_NoStorage(t *testing.T) {
	f := newAccountFixture()

	r := f.service(false).Delete(context.Background(), "u-1")

	st, _ := r.Step(StepStorage)
	assert.Equal(t, StepSkipped, st.Outcome)
	assert.Empty(t, f.objects.prefixes)
	assert.True(t, r.Completed())
}

func TestAccountDelete_EmptyUserID(t *testing.T) {
	f := newAccountFixture()

	r := f.service(true).Delete(context.Background(), "")
	require.Len(t, r.Steps, 1)
	require.ErrorIs(t, r.Steps[0].Err, common.ErrInvalidInput)
	assert.Empty(t, f.users.deleted)
}
