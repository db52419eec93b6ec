package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/client/profile"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/users"
	"github.com/dmitrijs2005/learnquest/internal/client/routing"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/dmitrijs2005/learnquest/internal/cryptox"
	"github.com/dmitrijs2005/learnquest/internal/logging"
	"github.com/dmitrijs2005/learnquest/internal/validate"
	"github.com/google/uuid"
)

// CodeExchanger is the auth side of the backend client used by the
// verification flow.
type CodeExchanger interface {
	VerifyOTP(ctx context.Context, email, code string) (*models.Identity, error)
	ResendOTP(ctx context.Context, email string) error
}

// VerifyResult is what a successful verification produced.
type VerifyResult struct {
	User        *models.User
	Session     *models.Session
	Destination routing.Destination
	// UserCreated is true when this verification created the user record.
	UserCreated bool
}

// VerificationService exchanges e-mail codes and bootstraps the session.
//
// Verify runs validate, exchange, profile lookup or creation, session mint
// and local persist, and returns the role dashboard. No step is retried;
// the caller resubmits on error.
type VerificationService interface {
	Verify(ctx context.Context, email, code string) (*VerifyResult, error)
	ResendCode(ctx context.Context, email string) error
}

type verificationService struct {
	auth     CodeExchanger
	users    users.Repository
	sessions sessions.Repository
	store    SessionStore
	logger   logging.Logger

	now      func() time.Time
	newToken func() string
}

// NewVerificationService wires the flow. Sessions always expire
// common.SessionValidity after creation.
func NewVerificationService(auth CodeExchanger, u users.Repository, s sessions.Repository,
	store SessionStore, logger logging.Logger) VerificationService {
	return &verificationService{
		auth:     auth,
		users:    u,
		sessions: s,
		store:    store,
		logger:   logger.With("service", "verification"),
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

func (s *verificationService) Verify(ctx context.Context, email, code string) (*VerifyResult, error) {
	if err := validate.Code(code); err != nil {
		return nil, err
	}
	if err := validate.Email(email); err != nil {
		return nil, err
	}

	identity, err := s.auth.VerifyOTP(ctx, email, code)
	if err != nil {
		s.logger.Warn(ctx, "code exchange failed", "email", email, "error", err)
		return nil, err
	}
	if identity == nil || identity.ID == "" {
		s.logger.Error(ctx, "code exchange returned no identity", "email", email)
		return nil, common.ErrIdentityMissing
	}
	log := s.logger.With("user_id", identity.ID)

	user, created, err := s.ensureUser(ctx, identity, email)
	if err != nil {
		log.Error(ctx, "user bootstrap failed", "error", err)
		return nil, err
	}

	session, err := s.startSession(ctx, user.ID)
	if err != nil {
		log.Error(ctx, "session bootstrap failed", "error", err)
		return nil, err
	}

	dest := routing.DashboardFor(user.Role)
	log.Info(ctx, "verified",
		"created", created,
		"role", user.Role,
		"token_fp", cryptox.Fingerprint(session.Token),
		"expires_at", session.ExpiresAt,
		"destination", dest)

	return &VerifyResult{User: user, Session: session, Destination: dest, UserCreated: created}, nil
}

// ensureUser returns the existing user record, creating one from the
// identity's signup metadata only when none exists.
func (s *verificationService) ensureUser(ctx context.Context, identity *models.Identity, email string) (*models.User, bool, error) {
	user, err := s.users.GetByID(ctx, identity.ID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}

	addr := identity.Email
	if addr == "" {
		addr = email
	}
	p, err := profile.Normalize(addr, identity.Metadata)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", common.ErrUserCreate, err)
	}

	user, err = s.users.Create(ctx, p.User(identity.ID, true))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", common.ErrUserCreate, err)
	}
	return user, true, nil
}

// startSession mints a token, records it server-side, then stores it
// locally. Creation time is taken to the second.
func (s *verificationService) startSession(ctx context.Context, userID string) (*models.Session, error) {
	created := s.now().UTC().Truncate(time.Second)
	session := &models.Session{
		Token:     s.newToken(),
		UserID:    userID,
		CreatedAt: created,
		ExpiresAt: created.Add(common.SessionValidity),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSessionCreate, err)
	}
	if err := s.store.Save(ctx, session.Token, session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("%w: local store: %v", common.ErrSessionCreate, err)
	}
	return session, nil
}

// ResendCode asks for a fresh code. Nothing local is touched.
func (s *verificationService) ResendCode(ctx context.Context, email string) error {
	if err := validate.Email(email); err != nil {
		return err
	}
	if err := s.auth.ResendOTP(ctx, email); err != nil {
		s.logger.Warn(ctx, "resend failed", "email", email, "error", err)
		return err
	}
	s.logger.Info(ctx, "code resent", "email", email)
	return nil
}
