// Package backend is the client of the hosted backend-as-a-service: its auth
// endpoints (one-time code exchange, current user, admin deletion), its
// PostgREST table API, its edge functions and its database RPCs.
//
// A *Client is constructed explicitly and handed to every flow that needs
// it; there is no package-level client. The client performs no retries and
// sets no timeouts of its own: a failed call is returned to the caller as
// is, mapped onto the sentinel errors of package common where possible.
package backend
