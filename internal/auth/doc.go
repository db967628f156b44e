// Package auth provides authentication and authorization for the admin API.
//
// # Authentication
//
// Callers present an ID token issued by the external identity provider as a
// bearer token. OIDCVerifier checks signature, issuer, audience and expiry with
// go-oidc and reads the role from the configured claim. When authentication is
// disabled every request runs as DevIdentity.
//
// # Authorization
//
// Roles are not stored locally. A role is granted an action on a resource by an
// RBAC row in the permissions table:
//   - the admin role is always allowed
//   - any other role needs a row (role, resource, action) with allowed = true
//
// # Middleware
//
// Fiber middleware functions are provided for route protection:
//   - RestrictIP: enforce the ip whitelist while security.ipWhitelistEnabled is on
//   - Authenticate: verify the bearer token and store the Identity in the locals
//   - RequirePermission: protect a route with a resource and action
//   - Guard: the three checks above as a single route handler
//
// Example usage:
//
//	authService := auth.NewService(db, verifier)
//
//	api := app.Group("/api", authService.RestrictIP(), authService.Authenticate())
//	api.Get("/payments",
//	    authService.RequirePermission(auth.ResourcePayments, auth.ActionRead),
//	    handler,
//	)
package auth
