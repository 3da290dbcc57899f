// Package client is the wallet's auth client.
//
// Every action is a JSON POST to one fixed endpoint, {"action": ..., ...payload},
// with the session token carried in the X-Auth-Token header. The HTTP status
// is the only success signal; non-200 replies carry {"error": "..."}.
//
// Errors can be matched with errors.Is against ErrUnavailable, ErrUnauthorized
// and ErrBadResponse; server-side rejections are *APIError values carrying the
// server's message verbatim.
//
// The package also opens the local SQLite database (InitDatabase) and applies
// the embedded goose migrations (RunMigrations).
package client
