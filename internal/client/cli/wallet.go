package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/learnquest/internal/common"
)

func (a *App) requireUser() error {
	if a.user == nil {
		fmt.Fprintln(a.out, "Not signed in. Run 'verify' first.")
		return common.ErrNoSession
	}
	return nil
}

func formatPrice(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, strings.ToUpper(currency))
}

// Packages lists the active coin packages, cheapest first.
func (a *App) Packages(ctx context.Context) error {
	pkgs := a.wallet.ListCoinPackages(ctx)
	if len(pkgs) == 0 {
		fmt.Fprintln(a.out, "No coin packages available.")
		return nil
	}
	for _, p := range pkgs {
		fmt.Fprintf(a.out, "%-24s %6d coins  %12s  price=%s\n",
			p.Name, p.Coins, formatPrice(p.PriceCents, p.Currency), p.StripePriceID)
	}
	return nil
}

// Wallet prints the coin balance of the signed-in user.
func (a *App) Wallet(ctx context.Context) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	w, ok := a.wallet.GetWallet(ctx, a.user.ID)
	if !ok {
		fmt.Fprintln(a.out, "Wallet could not be loaded.")
		return common.ErrUnavailable
	}
	if w == nil {
		fmt.Fprintln(a.out, "No wallet yet. Buy a coin package to open one.")
		return nil
	}
	fmt.Fprintf(a.out, "Available: %d coins (earned %d, spent %d)\n", w.AvailableCoins(), w.TotalCoins, w.SpentCoins)
	return nil
}

// Transactions prints the newest ledger entries, at most args[0] of them.
func (a *App) Transactions(ctx context.Context, args []string) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintln(a.out, "Usage: transactions [limit]")
			return common.ErrInvalidInput
		}
		limit = n
	}

	txs := a.wallet.ListTransactions(ctx, a.user.ID, limit)
	if len(txs) == 0 {
		fmt.Fprintln(a.out, "No transactions.")
		return nil
	}
	for _, t := range txs {
		ref := ""
		if t.ReferenceID != nil {
			ref = " ref=" + *t.ReferenceID
		}
		fmt.Fprintf(a.out, "%s  %-8s %+7d  %s%s\n",
			t.CreatedAt.Local().Format(time.DateTime), t.Type, t.Amount, t.Description, ref)
	}
	return nil
}

// Badges lists the badges the signed-in user earned.
func (a *App) Badges(ctx context.Context) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	bs := a.wallet.ListBadges(ctx, a.user.ID)
	if len(bs) == 0 {
		fmt.Fprintln(a.out, "No badges yet.")
		return nil
	}
	for _, b := range bs {
		fmt.Fprintf(a.out, "%s  %s: %s\n", b.EarnedAt.Local().Format(time.DateOnly), b.Name, b.Description)
	}
	return nil
}

// checkoutURLs builds the return pages of a checkout on the site.
func checkoutURLs(siteURL string) (success, cancel string) {
	base := strings.TrimRight(siteURL, "/")
	q := url.Values{"checkout": {"success"}}
	success = base + "/wallet?" + q.Encode() + "&session_id={CHECKOUT_SESSION_ID}"
	cancel = base + "/wallet?" + url.Values{"checkout": {"cancelled"}}.Encode()
	return success, cancel
}

// Checkout starts a payment session for args[0] and prints the session id
// the processor returned.
func (a *App) Checkout(ctx context.Context, args []string) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: checkout <priceId>")
		return common.ErrInvalidInput
	}

	success, cancel := checkoutURLs(a.config.SiteURL)
	sessionID := a.wallet.CreateCheckoutSession(ctx, args[0], success, cancel)
	if sessionID == "" {
		fmt.Fprintln(a.out, "Checkout could not be started.")
		return common.ErrUnavailable
	}
	fmt.Fprintln(a.out, "Checkout session:", sessionID)
	return nil
}

// Complete confirms a finished checkout so the backend credits the coins.
func (a *App) Complete(ctx context.Context, args []string) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: complete <sessionId> <productId>")
		return common.ErrInvalidInput
	}
	if !a.wallet.CompletePurchase(ctx, args[0], args[1]) {
		fmt.Fprintln(a.out, "Purchase could not be completed.")
		return common.ErrUnavailable
	}
	fmt.Fprintln(a.out, "Purchase completed.")
	return a.Wallet(ctx)
}

// Spend debits coins: spend <amount> <description> [reference].
func (a *App) Spend(ctx context.Context, args []string) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(a.out, "Usage: spend <amount> <description> [reference]")
		return common.ErrInvalidInput
	}
	amount, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || amount <= 0 {
		fmt.Fprintln(a.out, "Amount must be a positive whole number.")
		return common.ErrInvalidInput
	}
	ref := ""
	if len(args) == 3 {
		ref = args[2]
	}

	if !a.wallet.SpendCoins(ctx, amount, args[1], ref) {
		fmt.Fprintln(a.out, "Spending failed.")
		return common.ErrUnavailable
	}
	fmt.Fprintf(a.out, "Spent %d coins.\n", amount)
	return a.Wallet(ctx)
}
