package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/learnquest/internal/client/routing"
	"github.com/dmitrijs2005/learnquest/internal/common"
)

// getSimpleText and getCode are test seams for interactive input.
var (
	getSimpleText = GetSimpleText
	getCode       = GetCode
)

func (a *App) promptEmail() (string, error) {
	prompt := "Enter e-mail"
	if a.email != "" {
		prompt = fmt.Sprintf("Enter e-mail [%s]", a.email)
	}
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if email == "" {
		email = a.email
	}
	return email, nil
}

// Verify asks for the e-mail and the code, exchanges them and lands the
// user on their dashboard.
func (a *App) Verify(ctx context.Context) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}
	code, err := getCode(a.reader, a.out)
	if err != nil {
		return err
	}
	a.email = email

	res, err := a.verifier.Verify(ctx, email, code)
	if err != nil {
		fmt.Fprintln(a.out, "Verification failed:", err)
		if errors.Is(err, common.ErrCodeRejected) {
			fmt.Fprintln(a.out, "Run 'resend' to receive a new code.")
		}
		return err
	}

	a.user = res.User
	a.destination = res.Destination
	if res.UserCreated {
		fmt.Fprintln(a.out, "Profile created.")
	}
	fmt.Fprintf(a.out, "Verified as %s (%s). Session valid until %s.\n",
		res.User.Email, res.User.Role, res.Session.ExpiresAt.Local().Format(time.RFC1123))
	fmt.Fprintln(a.out, "Redirecting to", res.Destination)
	return nil
}

// Resend asks the backend to e-mail a fresh code.
func (a *App) Resend(ctx context.Context) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}
	a.email = email

	if err := a.verifier.ResendCode(ctx, email); err != nil {
		fmt.Fprintln(a.out, "Resend failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "A new code was sent to", email)
	return nil
}

// Callback takes the redirect link of a verification e-mail, installs the
// access token it carries and routes by role.
func (a *App) Callback(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: callback <redirect-url>")
		return common.ErrInvalidInput
	}
	token, err := accessTokenFromRedirect(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Invalid link:", err)
		return err
	}
	a.tokens.SetAccessToken(token)

	dest, err := a.router.Resolve(ctx)
	a.destination = dest
	if err != nil {
		fmt.Fprintln(a.out, "Could not resolve the session:", err)
		fmt.Fprintln(a.out, "Redirecting to", dest)
		return err
	}

	switch dest {
	case routing.Signup:
		fmt.Fprintln(a.out, "No profile found for this link. Run 'verify' to sign up.")
	case routing.Login:
		fmt.Fprintln(a.out, "E-mail is not verified yet. Run 'verify' with the code from the e-mail.")
	default:
		if err := a.loadUser(ctx); err != nil {
			fmt.Fprintln(a.out, "Loading profile failed:", err)
			return err
		}
		fmt.Fprintf(a.out, "Signed in as %s (%s).\n", a.user.Email, a.user.Role)
	}
	fmt.Fprintln(a.out, "Redirecting to", dest)
	return nil
}

func (a *App) loadUser(ctx context.Context) error {
	id, err := a.identity.CurrentIdentity(ctx)
	if err != nil {
		return err
	}
	u, err := a.users.GetByID(ctx, id.ID)
	if err != nil {
		return err
	}
	a.user = u
	a.email = u.Email
	return nil
}

// accessTokenFromRedirect extracts access_token from the fragment (or, as a
// fallback, the query) of a verification redirect URL.
func accessTokenFromRedirect(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	params, err := url.ParseQuery(u.Fragment)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	if params.Get("access_token") == "" && params.Get("error") == "" {
		params = u.Query()
	}

	if desc := params.Get("error_description"); desc != "" {
		return "", fmt.Errorf("%w: %s", common.ErrCodeRejected, desc)
	}
	if e := params.Get("error"); e != "" {
		return "", fmt.Errorf("%w: %s", common.ErrCodeRejected, e)
	}

	token := params.Get("access_token")
	if token == "" {
		return "", fmt.Errorf("%w: link carries no access_token", common.ErrInvalidInput)
	}
	return token, nil
}

// WhoAmI prints the signed-in user and the locally stored session.
func (a *App) WhoAmI(ctx context.Context) error {
	if a.user == nil {
		fmt.Fprintln(a.out, "Not signed in.")
	} else {
		u := a.user
		fmt.Fprintf(a.out, "ID:       %s\nE-mail:   %s\nName:     %s\nUsername: %s\nRole:     %s\nVerified: %t\n",
			u.ID, u.Email, u.Name, u.Username, u.Role, u.IsVerified)
		if a.destination != "" {
			fmt.Fprintln(a.out, "Home:    ", a.destination)
		}
	}

	s, err := a.store.Load(ctx)
	switch {
	case errors.Is(err, common.ErrNoSession):
		fmt.Fprintln(a.out, "No local session.")
	case err != nil:
		fmt.Fprintln(a.out, "Reading local session failed:", err)
		return err
	case s.Expired(time.Now()):
		fmt.Fprintln(a.out, "Local session expired at", s.ExpiresAt.Local().Format(time.RFC1123))
	default:
		fmt.Fprintln(a.out, "Local session valid until", s.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// Logout forgets the access token, the signed-in user and the stored session.
func (a *App) Logout(ctx context.Context) error {
	a.tokens.SetAccessToken("")
	a.user = nil
	a.destination = ""

	if err := a.store.Clear(ctx); err != nil {
		fmt.Fprintln(a.out, "Clearing local session failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
