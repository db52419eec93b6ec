// Package cli provides the interactive learnquest command-line client.
//
// It wires configuration, local storage, the backend client and the client
// services, then runs a REPL. Typical flow: verify the e-mail code (or paste
// the redirect link of the verification e-mail), land on the role dashboard,
// and use the wallet commands.
//
// Commands:
//   - verify / resend: e-mail code verification
//   - callback: resolve a verification redirect link
//   - whoami, logout
//   - packages, wallet, transactions, badges
//   - checkout, complete, spend
//   - delete-account (needs the service role key)
//
// See App.Run and runREPL for details.
package cli
