// Package session holds the wallet's session: the durable token slot
// (TokenStore) and the in-memory session state machine (Session).
//
// Session moves between three states:
//
//	unauthenticated --BeginLoading--> loading --Authenticate--> authenticated
//	loading --Reject--> unauthenticated
//	any --SignIn--> authenticated
//	any --SignOut--> unauthenticated
//
// Every transition that starts or ends a session bumps an epoch. Results of
// network calls are applied with the epoch observed when the call started, so
// a reply that arrives after a logout or a newer login is dropped.
package session
