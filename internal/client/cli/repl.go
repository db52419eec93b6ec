package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isVerified() bool
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	Callback(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
	Packages(ctx context.Context) error
	Wallet(ctx context.Context) error
	Transactions(ctx context.Context, args []string) error
	Badges(ctx context.Context) error
	Checkout(ctx context.Context, args []string) error
	Complete(ctx context.Context, args []string) error
	Spend(ctx context.Context, args []string) error
	DeleteAccount(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: verify, resend, callback <redirect-url>, whoami, packages, delete-account <userId>, exit"
	helpVerified  = "Available commands: whoami, packages, wallet, transactions [limit], badges, " +
		"checkout <priceId>, complete <sessionId> <productId>, spend <amount> <description> [reference], " +
		"delete-account <userId>, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The first token is the command, the rest are its arguments. The loop ends
// on EOF, "exit" or "quit".
//
// Errors returned by handlers are ignored here; handlers report their own
// failures to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lq %s> ", statusFn()))
		line, ok := readLine(reader)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isVerified() {
				printlnFn(helpVerified)
			} else {
				printlnFn(helpAnonymous)
			}

		case "verify":
			_ = a.Verify(ctx)

		case "resend":
			_ = a.Resend(ctx)

		case "callback":
			_ = a.Callback(ctx, args)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "packages":
			_ = a.Packages(ctx)

		case "wallet":
			_ = a.Wallet(ctx)

		case "transactions", "tx":
			_ = a.Transactions(ctx, args)

		case "badges":
			_ = a.Badges(ctx)

		case "checkout":
			_ = a.Checkout(ctx, args)

		case "complete":
			_ = a.Complete(ctx, args)

		case "spend":
			_ = a.Spend(ctx, args)

		case "delete-account":
			_ = a.DeleteAccount(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
