// Package api_test provides behavior tests for the API package.
package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnsq/dnsq/internal/api"
	"github.com/dnsq/dnsq/internal/client"
	"github.com/dnsq/dnsq/internal/stats"
	"github.com/dnsq/dnsq/internal/wire"
)

func fakeLookup(res *client.Result, err error) api.LookupFunc {
	return func(context.Context, string, string, wire.RecordType) (*client.Result, error) {
		return res, err
	}
}

func sampleResult() *client.Result {
	return &client.Result{
		Server: "9.9.9.9:53",
		Msg: wire.Message{
			Header: wire.Header{
				ID:      0x1234,
				Flags:   wire.FlagQR | wire.FlagRD | wire.FlagRA,
				QDCount: 1,
				ANCount: 1,
			},
			Questions: []wire.Question{{Name: "example.com", Type: wire.TypeA, Class: wire.ClassIN}},
			Answers: []wire.Record{{
				Name:  "example.com",
				Type:  wire.TypeA,
				Class: wire.ClassIN,
				TTL:   300,
				Data:  wire.Address{IP: net.IPv4(93, 184, 216, 34)},
			}},
		},
		RTT: 12 * time.Millisecond,
	}
}

func newTestServer(t *testing.T, lookup api.LookupFunc, apiKey string) *api.Server {
	t.Helper()
	h := api.NewHandler(lookup, "9.9.9.9:53", stats.NewLookupStats(), nil, nil)
	return api.New("127.0.0.1:0", apiKey, h, nil)
}

func performRequest(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, fakeLookup(sampleResult(), nil), "")

	w := performRequest(s.Engine(), "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestResolve(t *testing.T) {
	s := newTestServer(t, fakeLookup(sampleResult(), nil), "")

	w := performRequest(s.Engine(), "/api/v1/resolve?name=example.com", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "9.9.9.9:53", resp.Server)
	assert.Equal(t, "example.com", resp.Name)
	assert.Equal(t, "A", resp.Type)
	assert.Equal(t, "NOERROR", resp.RCode)
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, "example.com", resp.Answers[0].Name)
	assert.Equal(t, "93.184.216.34", resp.Answers[0].Data)
	assert.Equal(t, uint32(300), resp.Answers[0].TTL)
}

func TestResolveMissingName(t *testing.T) {
	s := newTestServer(t, fakeLookup(sampleResult(), nil), "")

	w := performRequest(s.Engine(), "/api/v1/resolve", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveUnknownType(t *testing.T) {
	s := newTestServer(t, fakeLookup(sampleResult(), nil), "")

	w := performRequest(s.Engine(), "/api/v1/resolve?name=example.com&type=BOGUS", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveLookupError(t *testing.T) {
	s := newTestServer(t, fakeLookup(nil, errors.New("write udp: connection refused")), "")

	w := performRequest(s.Engine(), "/api/v1/resolve?name=example.com", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "connection refused")
}

func TestResolveLookupTimeout(t *testing.T) {
	s := newTestServer(t, fakeLookup(nil, context.DeadlineExceeded), "")

	w := performRequest(s.Engine(), "/api/v1/resolve?name=example.com", nil)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestAPIKeyRequired(t *testing.T) {
	s := newTestServer(t, fakeLookup(sampleResult(), nil), "secret")

	w := performRequest(s.Engine(), "/api/v1/resolve?name=example.com", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(s.Engine(), "/api/v1/resolve?name=example.com",
		map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(s.Engine(), "/api/v1/resolve?name=example.com",
		map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthStaysPublic(t *testing.T) {
	s := newTestServer(t, fakeLookup(sampleResult(), nil), "secret")

	w := performRequest(s.Engine(), "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStats(t *testing.T) {
	st := stats.NewLookupStats()
	h := api.NewHandler(fakeLookup(sampleResult(), nil), "9.9.9.9:53", st, nil, nil)
	s := api.New("127.0.0.1:0", "", h, nil)

	// Two successful lookups through the API should show up in the counters.
	for range 2 {
		w := performRequest(s.Engine(), "/api/v1/resolve?name=example.com", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := performRequest(s.Engine(), "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Uptime)
	assert.Greater(t, resp.GoRoutines, 0)
	assert.Equal(t, uint64(2), resp.Lookups.Total)
	assert.Zero(t, resp.Lookups.Failures)
}
