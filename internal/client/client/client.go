package client

import (
	"context"
	"net/http"
)

type Client interface {
	Check(ctx context.Context, username, password, machineID string) (*Response, error)
}

// Response is the raw answer of the server.
type Response struct {
	StatusCode int
	Body       string
}

// OK reports whether access was granted.
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}
