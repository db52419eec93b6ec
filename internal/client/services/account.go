package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/learnquest/internal/client/repositories/badges"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/transactions"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/users"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/wallets"
	"github.com/dmitrijs2005/learnquest/internal/client/storage"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/dmitrijs2005/learnquest/internal/logging"
)

// FnDeleteUserAccount is the database function removing the auth record.
const FnDeleteUserAccount = "delete_user_account"

// Step names of the deletion cascade, in execution order.
const (
	StepProfile      = "profile"
	StepBadges       = "badges"
	StepSessions     = "sessions"
	StepTransactions = "transactions"
	StepWallet       = "wallet"
	StepStorage      = "storage"
	StepAuth         = "auth"
)

type StepOutcome string

const (
	StepOK      StepOutcome = "ok"
	StepFailed  StepOutcome = "failed"
	StepSkipped StepOutcome = "skipped"
)

type StepResult struct {
	Step    string
	Outcome StepOutcome
	Detail  string
	Err     error
}

// DeletionReport records what each step of one deletion did.
type DeletionReport struct {
	UserID string
	Steps  []StepResult
}

func (r DeletionReport) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Completed is true when both the profile and the auth record are gone.
func (r DeletionReport) Completed() bool {
	p, _ := r.Step(StepProfile)
	a, _ := r.Step(StepAuth)
	return p.Outcome == StepOK && a.Outcome == StepOK
}

func (r DeletionReport) Failed() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if s.Outcome == StepFailed {
			out = append(out, s)
		}
	}
	return out
}

// AuthRemover deletes the auth record, first through the database
// function and then through the admin API.
type AuthRemover interface {
	RPC(ctx context.Context, name string, args any, out any) error
	DeleteAuthUser(ctx context.Context, userID string) error
}

// ObjectRemover deletes stored objects under a key prefix.
type ObjectRemover interface {
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// AccountService deletes a user. Only the profile step is required; the
// others are best effort and nothing is rolled back.
type AccountService interface {
	Delete(ctx context.Context, userID string) DeletionReport
}

type AccountDeps struct {
	Users        users.Repository
	Badges       badges.Repository
	Sessions     sessions.Repository
	Transactions transactions.Repository
	Wallets      wallets.Repository
	Auth         AuthRemover
	// Objects may be nil when object storage is not configured.
	Objects ObjectRemover
}

type accountService struct {
	d      AccountDeps
	logger logging.Logger
}

func NewAccountService(d AccountDeps, logger logging.Logger) AccountService {
	return &accountService{d: d, logger: logger.With("service", "account")}
}

type deletionStep struct {
	name     string
	required bool
	run      func(ctx context.Context, userID string) (string, error)
}

func (s *accountService) steps() []deletionStep {
	return []deletionStep{
		{name: StepProfile, required: true, run: func(ctx context.Context, id string) (string, error) {
			return "", s.d.Users.Delete(ctx, id)
		}},
		{name: StepBadges, run: func(ctx context.Context, id string) (string, error) {
			return "", s.d.Badges.DeleteByUser(ctx, id)
		}},
		{name: StepSessions, run: func(ctx context.Context, id string) (string, error) {
			return "", s.d.Sessions.DeleteByUser(ctx, id)
		}},
		{name: StepTransactions, run: func(ctx context.Context, id string) (string, error) {
			return "", s.d.Transactions.DeleteByUser(ctx, id)
		}},
		{name: StepWallet, run: func(ctx context.Context, id string) (string, error) {
			return "", s.d.Wallets.DeleteByUser(ctx, id)
		}},
		{name: StepStorage, run: s.deleteObjects},
		{name: StepAuth, run: s.deleteAuth},
	}
}

func (s *accountService) deleteObjects(ctx context.Context, userID string) (string, error) {
	if s.d.Objects == nil {
		return "", common.ErrStorageDisabled
	}
	n, err := s.d.Objects.DeletePrefix(ctx, storage.UserPrefix(userID))
	return fmt.Sprintf("%d objects", n), err
}

func (s *accountService) deleteAuth(ctx context.Context, userID string) (string, error) {
	rpcErr := s.d.Auth.RPC(ctx, FnDeleteUserAccount, map[string]string{"user_id": userID}, nil)
	if rpcErr == nil {
		return "rpc", nil
	}
	s.logger.Warn(ctx, "auth delete rpc failed, trying admin api", "user_id", userID, "error", rpcErr)

	if err := s.d.Auth.DeleteAuthUser(ctx, userID); err != nil {
		return "", fmt.Errorf("rpc: %v; admin api: %w", rpcErr, err)
	}
	return "admin api", nil
}

func (s *accountService) Delete(ctx context.Context, userID string) DeletionReport {
	report := DeletionReport{UserID: userID}
	log := s.logger.With("user_id", userID)

	if userID == "" {
		report.Steps = append(report.Steps, StepResult{Step: StepProfile, Outcome: StepFailed, Err: common.ErrInvalidInput})
		return report
	}

	aborted := false
	for _, st := range s.steps() {
		if aborted {
			report.Steps = append(report.Steps, StepResult{Step: st.name, Outcome: StepSkipped, Detail: "aborted"})
			continue
		}

		detail, err := st.run(ctx, userID)
		res := StepResult{Step: st.name, Outcome: StepOK, Detail: detail}
		switch {
		case errors.Is(err, common.ErrStorageDisabled):
			res.Outcome = StepSkipped
			res.Detail = "storage not configured"
		case err != nil:
			res.Outcome = StepFailed
			res.Err = err
			log.Warn(ctx, "deletion step failed", "step", st.name, "required", st.required, "error", err)
			if st.required {
				aborted = true
			}
		}
		report.Steps = append(report.Steps, res)
	}

	log.Info(ctx, "account deletion finished", "completed", report.Completed(), "failed_steps", len(report.Failed()))
	return report
}
