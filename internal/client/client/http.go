package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/seekauth/internal/authheader"
)

// maxBody bounds how much of a response is read.
const maxBody = 64 << 10

type HTTPClient struct {
	url    string
	header string
	http   *http.Client
}

func NewHTTPClient(url, headerName string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:    url,
		header: headerName,
		http:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Check(ctx context.Context, username, password, machineID string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	req.Header.Set(c.header, authheader.Encode(authheader.Fields{
		UserName:  username,
		Password:  password,
		MachineID: machineID,
	}))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
