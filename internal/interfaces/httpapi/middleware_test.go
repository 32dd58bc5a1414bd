package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedGenerator struct {
	id  string
	err error
}

func (g fixedGenerator) NewID() (string, error) { return g.id, g.err }

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	RequestID(fixedGenerator{id: "req-1"}, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bluealliance/", nil))

	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))
}

func TestRequestID_ReusesInboundHeader(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/bluealliance/", nil)
	req.Header.Set(requestIDHeader, "upstream-proxy-id")
	rec := httptest.NewRecorder()
	RequestID(fixedGenerator{err: errors.New("unused")}, next).ServeHTTP(rec, req)

	assert.Equal(t, "upstream-proxy-id", seen)
}

func TestRequestLogging_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONWriter(logging.LevelInfo, &buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	req := httptest.NewRequest(http.MethodGet, "/bluealliance/2023/zzzz", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()

	RequestLogging(logger, nil, next).ServeHTTP(rec, req)
	require.NoError(t, logger.Sync())

	line := buf.String()
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.Contains(line, `"status":404`), line)
	assert.True(t, strings.Contains(line, `"client_ip":"203.0.113.7"`), line)
	assert.True(t, strings.Contains(line, `"path":"/bluealliance/2023/zzzz"`), line)
}

func TestRequestLogging_CarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONWriter(logging.LevelInfo, &buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	handler := RequestID(fixedGenerator{id: "req-7"}, RequestLogging(logger, nil, next))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bluealliance/2023", nil))
	require.NoError(t, logger.Sync())

	line := buf.String()
	assert.Contains(t, line, `"request_id":"req-7"`)
	assert.Contains(t, line, `"level":"ERROR"`)
}

func TestNormalizeIP(t *testing.T) {
	assert.Equal(t, "192.0.2.1", normalizeIP("192.0.2.1:54321"))
	assert.Equal(t, "203.0.113.7", normalizeIP(" 203.0.113.7 , 10.0.0.1"))
	assert.Equal(t, "", normalizeIP("not-an-ip"))
}
