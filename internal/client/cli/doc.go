// Package cli is the interactive terminal wallet.
//
// App wires configuration, the local session database, the auth client and
// the screen state, restores a stored session and then runs a REPL. The REPL
// renders one of four screens (home, wallet, exchange, friends) after every
// command.
//
// Signed out, only help, register, login and exit are accepted. Registration
// keeps the entered name, username and email after a failed attempt and
// offers them as defaults on the next one.
package cli
