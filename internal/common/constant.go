// Package common contains shared constants and sentinel errors used across
// the wallet client and the auth server.
package common

// AuthTokenHeaderName is the HTTP header carrying the opaque session token on
// authenticated requests. The request body never carries the token.
const AuthTokenHeaderName = "X-Auth-Token"

// SessionTokenKey is the metadata key under which the client keeps the
// current session token. Absence of the key means "not signed in".
const SessionTokenKey = "session_token"
