package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/seekauth/internal/authheader"
	"github.com/dmitrijs2005/seekauth/internal/common"
	"github.com/dmitrijs2005/seekauth/internal/cryptox"
	"github.com/dmitrijs2005/seekauth/internal/logging"
	"github.com/dmitrijs2005/seekauth/internal/server/auth"
	"github.com/dmitrijs2005/seekauth/internal/server/metrics"
	"github.com/dmitrijs2005/seekauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/seekauth/internal/server/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeEvaluator struct {
	verdict auth.Verdict
	err     error
	got     *auth.Credentials
}

func (f *fakeEvaluator) Evaluate(_ context.Context, c auth.Credentials) (auth.Verdict, error) {
	f.got = &c
	return f.verdict, f.err
}

func doCheck(t *testing.T, h http.Handler, method, path string, headers ...string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, v := range headers {
		req.Header.Add(common.AuthHeaderName, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func validHeader(u, p, m string) string {
	return authheader.Encode(authheader.Fields{UserName: u, Password: p, MachineID: m})
}

func TestCheckHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		eval     *fakeEvaluator
		wantCode int
		wantBody string
	}{
		{"allowed", &fakeEvaluator{verdict: auth.Allowed}, http.StatusOK, "OK"},
		{"denied", &fakeEvaluator{verdict: auth.Denied}, http.StatusUnauthorized, "Unauthorized"},
		{"internal", &fakeEvaluator{err: common.ErrorInternal}, http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCheckHandler(tt.eval, common.AuthHeaderName, logging.Nop(), nil)
			code, body := doCheck(t, h, http.MethodGet, "/check", validHeader("alice", "secret", "M1"))
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantBody, body)
			require.NotNil(t, tt.eval.got)
			assert.Equal(t, auth.Credentials{UserName: "alice", Password: "secret", MachineID: "M1"}, *tt.eval.got)
		})
	}
}

func TestCheckHandler_BadRequestNeverReachesEvaluator(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		wantBody string
	}{
		{"no header", nil, "Bad Request: Authentication header 'Seek-Custom-Auth' not found."},
		{"empty header", []string{""}, "Bad Request: Authentication header 'Seek-Custom-Auth' not found."},
		{"repeated header", []string{validHeader("a", "b", "c"), validHeader("a", "b", "c")}, "Bad Request: Authentication header 'Seek-Custom-Auth' repeated."},
		{"missing key", []string{"username=alice&password=secret"}, "Bad Request: Missing key 'machine_id' in authentication header."},
		{"bad encoding", []string{"username=%zz"}, "Bad Request: Malformed authentication header."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := &fakeEvaluator{err: errors.New("must not be called")}
			m := metrics.NewMetrics(prometheus.NewRegistry())
			h := NewCheckHandler(eval, common.AuthHeaderName, logging.Nop(), m)
			code, body := doCheck(t, h, http.MethodGet, "/check", tt.headers...)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.wantBody, body)
			assert.Nil(t, eval.got)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues(metrics.OutcomeBadRequest)))
		})
	}
}

func TestRouter_SinglePathGETOnly(t *testing.T) {
	h := NewRouter("/check", NewCheckHandler(&fakeEvaluator{verdict: auth.Allowed}, common.AuthHeaderName, logging.Nop(), nil), logging.Nop(), nil)

	code, _ := doCheck(t, h, http.MethodGet, "/check", validHeader("a", "b", "c"))
	assert.Equal(t, http.StatusOK, code)

	code, _ = doCheck(t, h, http.MethodPost, "/check", validHeader("a", "b", "c"))
	assert.Equal(t, http.StatusMethodNotAllowed, code)

	code, _ = doCheck(t, h, http.MethodGet, "/", validHeader("a", "b", "c"))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_EndToEnd(t *testing.T) {
	ctx := context.Background()
	db, rm, err := repomanager.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	defer db.Close()

	s := store.New(db, rm, &cryptox.BcryptHasher{Cost: bcrypt.MinCost})
	require.NoError(t, s.Create(ctx, "alice", "secret"))
	require.NoError(t, s.Create(ctx, "bob", "pw"))

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	eval := auth.NewEvaluator(s, logging.Nop(), m)
	srv := httptest.NewServer(NewRouter("/check", NewCheckHandler(eval, common.AuthHeaderName, logging.Nop(), m), logging.Nop(), m))
	defer srv.Close()

	get := func(header string) int {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/check", nil)
		require.NoError(t, err)
		req.Header.Set(common.AuthHeaderName, header)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, get(validHeader("alice", "secret", "M1")))
	assert.Equal(t, http.StatusUnauthorized, get(validHeader("alice", "secret", "M2")))
	assert.Equal(t, http.StatusUnauthorized, get(validHeader("alice", "wrong", "M1")))
	assert.Equal(t, http.StatusUnauthorized, get(validHeader("bob", "pw", "M1")))
	assert.Equal(t, http.StatusUnauthorized, get(validHeader("ghost", "pw", "M9")))
	assert.Equal(t, http.StatusBadRequest, get("username=alice"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues(metrics.OutcomeAllowed)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues(metrics.OutcomeDenied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues(metrics.OutcomeBadRequest)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "401")))
}
