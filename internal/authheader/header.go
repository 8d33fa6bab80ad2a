// Package authheader encodes and decodes the custom auth header value: an
// application/x-www-form-urlencoded string carrying username, password and
// machine_id.
package authheader

import (
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/seekauth/internal/common"
)

// Fields are the decoded header values.
type Fields struct {
	UserName  string
	Password  string
	MachineID string
}

// FormatError describes why a header value was rejected. Reason is
// suitable for the client. It matches common.ErrorRequestFormat.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return e.Reason
}

func (e *FormatError) Unwrap() error {
	return common.ErrorRequestFormat
}

func formatErrorf(format string, args ...any) error {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// Encode renders f as the header value.
func Encode(f Fields) string {
	v := url.Values{}
	v.Set(common.KeyUsername, f.UserName)
	v.Set(common.KeyPassword, f.Password)
	v.Set(common.KeyMachineID, f.MachineID)
	return v.Encode()
}

// Decode parses a header value. A missing or empty key, a repeated key or
// invalid urlencoding yields a *FormatError. Unknown keys are ignored.
func Decode(header string) (Fields, error) {
	var f Fields
	v, err := url.ParseQuery(header)
	if err != nil {
		return f, formatErrorf("Malformed authentication header.")
	}

	for _, kv := range []struct {
		key string
		dst *string
	}{
		{common.KeyUsername, &f.UserName},
		{common.KeyPassword, &f.Password},
		{common.KeyMachineID, &f.MachineID},
	} {
		vals := v[kv.key]
		switch {
		case len(vals) == 0 || vals[0] == "":
			return Fields{}, formatErrorf("Missing key '%s' in authentication header.", kv.key)
		case len(vals) > 1:
			return Fields{}, formatErrorf("Repeated key '%s' in authentication header.", kv.key)
		}
		*kv.dst = vals[0]
	}
	return f, nil
}
