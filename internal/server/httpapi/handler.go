// Package httpapi is the HTTP boundary of the server: it decodes the auth
// header, asks the evaluator for a verdict and maps it to a status code.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/seekauth/internal/authheader"
	"github.com/dmitrijs2005/seekauth/internal/logging"
	"github.com/dmitrijs2005/seekauth/internal/server/auth"
	"github.com/dmitrijs2005/seekauth/internal/server/metrics"
	"github.com/gorilla/mux"
)

// Evaluator decides on a credential triple.
type Evaluator interface {
	Evaluate(ctx context.Context, c auth.Credentials) (auth.Verdict, error)
}

type CheckHandler struct {
	eval    Evaluator
	header  string
	log     logging.Logger
	metrics *metrics.Metrics
}

func NewCheckHandler(e Evaluator, headerName string, log logging.Logger, m *metrics.Metrics) *CheckHandler {
	return &CheckHandler{eval: e, header: headerName, log: log, metrics: m}
}

func (h *CheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	values := r.Header.Values(h.header)
	switch {
	case len(values) == 0 || values[0] == "":
		h.badRequest(w, fmt.Sprintf("Authentication header '%s' not found.", h.header))
		return
	case len(values) > 1:
		h.badRequest(w, fmt.Sprintf("Authentication header '%s' repeated.", h.header))
		return
	}

	f, err := authheader.Decode(values[0])
	if err != nil {
		var fe *authheader.FormatError
		if errors.As(err, &fe) {
			h.badRequest(w, fe.Reason)
			return
		}
		h.badRequest(w, "Malformed authentication header.")
		return
	}

	v, err := h.eval.Evaluate(ctx, auth.Credentials{UserName: f.UserName, Password: f.Password, MachineID: f.MachineID})
	if err != nil {
		h.log.Error(ctx, "check failed", "error", err)
		write(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if v == auth.Allowed {
		write(w, http.StatusOK, "OK")
		return
	}
	write(w, http.StatusUnauthorized, "Unauthorized")
}

// badRequest is counted here since such requests never reach the evaluator.
func (h *CheckHandler) badRequest(w http.ResponseWriter, reason string) {
	h.metrics.CountCheck(metrics.OutcomeBadRequest)
	write(w, http.StatusBadRequest, "Bad Request: "+reason)
}

func write(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// NewRouter serves the check handler on path for GET only; every other
// route answers 404 and other methods 405. All requests, matched or not,
// are counted and access-logged.
func NewRouter(path string, check http.Handler, log logging.Logger, m *metrics.Metrics) http.Handler {
	router := mux.NewRouter()
	router.Handle(path, check).Methods(http.MethodGet)
	return accessLog(log)(metrics.HTTPMetricsMiddleware(m)(router))
}
