package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/client/repositories/users"
	"github.com/dmitrijs2005/learnquest/internal/client/routing"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/dmitrijs2005/learnquest/internal/logging"
)

// IdentitySource re-derives the caller's identity from the current token.
type IdentitySource interface {
	CurrentIdentity(ctx context.Context) (*models.Identity, error)
}

// RoleRouter decides where a caller arriving from a verification redirect
// goes next.
//
// A missing session or profile sends the caller to signup, an unverified
// profile to login, everyone else to their role dashboard. The returned
// error is non-nil only for unexpected failures; the destination is then
// still signup.
type RoleRouter interface {
	Resolve(ctx context.Context) (routing.Destination, error)
}

type roleRouter struct {
	identity IdentitySource
	users    users.Repository
	logger   logging.Logger
}

func NewRoleRouter(identity IdentitySource, u users.Repository, logger logging.Logger) RoleRouter {
	return &roleRouter{identity: identity, users: u, logger: logger.With("service", "router")}
}

func (r *roleRouter) Resolve(ctx context.Context) (routing.Destination, error) {
	id, err := r.identity.CurrentIdentity(ctx)
	switch {
	case errors.Is(err, common.ErrNoSession), errors.Is(err, common.ErrIdentityMissing):
		r.logger.Info(ctx, "no session", "reason", err)
		return routing.Signup, nil
	case err != nil:
		r.logger.Error(ctx, "identity lookup failed", "error", err)
		return routing.Signup, err
	case id == nil || id.ID == "":
		r.logger.Info(ctx, "no session", "reason", common.ErrIdentityMissing)
		return routing.Signup, nil
	}

	user, err := r.users.GetByID(ctx, id.ID)
	switch {
	case errors.Is(err, common.ErrNotFound):
		r.logger.Info(ctx, "profile missing", "user_id", id.ID)
		return routing.Signup, nil
	case err != nil:
		r.logger.Error(ctx, "profile lookup failed", "user_id", id.ID, "error", err)
		return routing.Signup, err
	}

	if !user.IsVerified {
		r.logger.Info(ctx, "profile not verified", "user_id", user.ID)
		return routing.Login, nil
	}
	return routing.DashboardFor(user.Role), nil
}
