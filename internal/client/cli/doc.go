// Package cli is the seekauth command-line client.
//
// It reads a username and a password from stdin (two lines, or interactive
// prompts on a terminal, the password without echo), loads or creates the
// host's machine id, sends one check request and prints the raw response
// body. The exit status is 0 only when the server answered 200.
package cli
