// Package client talks to the seekauth check endpoint.
//
// # Overview
//
// Client is the transport-agnostic contract; HTTPClient implements it by
// sending a single GET with the custom auth header, whose value is the
// urlencoded (username, password, machine_id) triple.
//
// # Error Handling
//
// Any HTTP response, whatever its status, is returned as a *Response with a
// nil error so the caller can print it verbatim. Transport failures wrap
// ErrUnavailable.
package client
