package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/learnquest/internal/common"
)

// DeleteAccount runs the admin deletion cascade for args[0] after the
// operator retypes the id.
func (a *App) DeleteAccount(ctx context.Context, args []string) error {
	if a.account == nil {
		fmt.Fprintln(a.out, "Account deletion needs the service role key.")
		return common.ErrUnauthorized
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete-account <userId>")
		return common.ErrInvalidInput
	}
	userID := args[0]

	confirm, err := getSimpleText(a.reader, fmt.Sprintf("Type %s again to delete the account", userID), a.out)
	if err != nil {
		return err
	}
	if confirm != userID {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	report := a.account.Delete(ctx, userID)
	for _, s := range report.Steps {
		line := fmt.Sprintf("%-13s %s", s.Step, s.Outcome)
		if s.Detail != "" {
			line += " (" + s.Detail + ")"
		}
		if s.Err != nil {
			line += ": " + s.Err.Error()
		}
		fmt.Fprintln(a.out, line)
	}

	failed := len(report.Failed())
	if !report.Completed() {
		fmt.Fprintf(a.out, "Deletion incomplete: %d step(s) failed.\n", failed)
		return fmt.Errorf("delete account %s: %d step(s) failed", userID, failed)
	}
	if a.user != nil && a.user.ID == userID {
		_ = a.Logout(ctx)
	}
	if failed > 0 {
		fmt.Fprintf(a.out, "Account deleted; %d cleanup step(s) failed.\n", failed)
		return nil
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}

var _ execIface = (*App)(nil)
