package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	const scoutingOrigin = "https://scouting.cardinalbotics.org"

	cases := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantMethods string
		wantVary    string
	}{
		{
			name:        "configured origin echoed",
			allowed:     []string{scoutingOrigin},
			method:      http.MethodGet,
			origin:      scoutingOrigin,
			wantStatus:  http.StatusOK,
			wantOrigin:  scoutingOrigin,
			wantMethods: "GET,OPTIONS",
			wantVary:    "Origin",
		},
		{
			name:        "wildcard preflight",
			allowed:     []string{"*"},
			method:      http.MethodOptions,
			origin:      scoutingOrigin,
			wantStatus:  http.StatusNoContent,
			wantOrigin:  "*",
			wantMethods: "GET,OPTIONS",
		},
		{
			name:       "unknown origin gets no headers",
			allowed:    []string{scoutingOrigin},
			method:     http.MethodGet,
			origin:     "https://rival-team.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no origin passes through",
			allowed:    []string{scoutingOrigin},
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/bluealliance/2023", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()

			CORS(tc.allowed, next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.wantMethods, rec.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, tc.wantVary, rec.Header().Get("Vary"))
			if tc.wantOrigin != "" {
				assert.Equal(t, requestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
			}
		})
	}
}
