package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

type authUser struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

func (u *authUser) identity() *models.Identity {
	return &models.Identity{
		ID:             u.ID,
		Email:          u.Email,
		EmailConfirmed: u.EmailConfirmedAt != nil,
		Metadata:       u.UserMetadata,
	}
}

type sessionResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	User         *authUser `json:"user"`
}

// providerClaims is the subset of the provider's access-token claims the
// client relies on when the verify response carries no user object.
type providerClaims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// VerifyOTP exchanges an e-mail one-time code for an identity. On success
// the returned access token becomes the bearer of later calls.
//
// A 4xx answer is reported as common.ErrCodeRejected carrying the provider
// message. A 2xx answer without any identity is common.ErrIdentityMissing.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*models.Identity, error) {
	body := map[string]string{"type": "email", "email": email, "token": code}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/verify", nil, body, nil, &resp); err != nil {
		if apiErr, ok := asAPIError(err); ok && apiErr.ClientSide() {
			return nil, fmt.Errorf("%w: %s", common.ErrCodeRejected, apiErr.Message)
		}
		return nil, err
	}

	var identity *models.Identity
	if resp.User != nil && resp.User.ID != "" {
		identity = resp.User.identity()
	} else if resp.AccessToken != "" {
		identity = identityFromToken(resp.AccessToken)
	}

	if identity == nil || identity.ID == "" {
		return nil, common.ErrIdentityMissing
	}
	if identity.Email == "" {
		identity.Email = email
	}

	if resp.AccessToken != "" {
		c.accessToken = resp.AccessToken
	}
	return identity, nil
}

// ResendOTP asks the auth service to e-mail a fresh code.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	body := map[string]string{"type": "signup", "email": email}
	return c.do(ctx, http.MethodPost, "/auth/v1/resend", nil, body, nil, nil)
}

// CurrentIdentity re-derives the caller's identity from the bearer token.
// Without a token, or with a token whose exp claim has passed, it fails
// with common.ErrNoSession without calling the backend.
func (c *Client) CurrentIdentity(ctx context.Context) (*models.Identity, error) {
	if c.accessToken == "" || tokenExpired(c.accessToken, c.now()) {
		return nil, common.ErrNoSession
	}

	var user authUser
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", nil, nil, nil, &user); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %v", common.ErrNoSession, err)
		}
		return nil, err
	}
	if user.ID == "" {
		return nil, common.ErrIdentityMissing
	}
	return user.identity(), nil
}

// DeleteAuthUser removes the auth record of a user through the admin API.
func (c *Client) DeleteAuthUser(ctx context.Context, userID string) error {
	admin, err := c.Admin()
	if err != nil {
		return err
	}
	return admin.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+url.PathEscape(userID), nil, nil, nil, nil)
}

// identityFromToken reads the identity claims of a provider access token.
// The signature is not checked: the token came straight from the provider
// over TLS and is only used to learn who we are.
func identityFromToken(token string) *models.Identity {
	claims := &providerClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return &models.Identity{ID: claims.Subject, Email: claims.Email, Metadata: claims.UserMetadata}
}

func tokenExpired(token string, now time.Time) bool {
	claims := &providerClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
