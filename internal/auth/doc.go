// Package auth groups the identity, session credential, and authorization
// subdomains. Authentication resolves a bearer token to an actor; the
// authorization engine decides what that actor may do.
package auth
