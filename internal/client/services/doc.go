// Package services holds the client flows: code verification and session
// bootstrap, role routing, the coin wallet and storefront, catalog seeding
// and the account deletion cascade. Every service receives its backend
// client and repositories explicitly.
package services
