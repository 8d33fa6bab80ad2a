// Package common defines sentinel errors shared by the server, the admin
// CLI and the client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorAlreadyBound  = errors.New("account already bound to a machine")
	ErrorMachineTaken  = errors.New("machine id bound to another account")
	ErrorStale         = errors.New("account changed since it was read")

	// Request-level errors.
	ErrorRequestFormat = errors.New("malformed request")
	ErrorValidation    = errors.New("validation error")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
)
