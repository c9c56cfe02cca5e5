// Package authclient manages an authenticated session against a remote
// identity service: it stores the access/refresh token pair, refreshes the
// access token when it goes stale, and clears everything when the session
// ends.
//
// Token lifecycle:
//   - Tokens are issued as a pair on login and persisted through a
//     CredentialStore (cookies with HttpOnly, SameSite=Lax, Path=/ by
//     default). The access cookie expires on its own max-age; the refresh
//     cookie outlives it and is used solely to mint a new access token.
//   - SessionManager centralizes establish/refresh/end. Concurrent callers
//     hitting an expired access token share a single in-flight refresh; a
//     rejected refresh token ends the session and clears both cookies so a
//     dangling credential never outlives its server-side counterpart.
//
// Route guarding:
//   - middleware/sessionguard decides PASS or REDIRECT per request from the
//     presence of the access cookie and a public-route allow-list. The guard
//     never validates the token itself; validity is enforced at the API
//     boundary, where an authorization failure flows back into the
//     SessionManager refresh path (see Authorized).
//
// Flow commands:
//   - Registration, activation, and password reset are modeled as
//     message/handler pairs wrapping the API client, with local validation so
//     malformed confirmation links never reach the network.
package authclient
