package bluealliance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cardinalbotics/scouting-backend/internal/platform/cache"
	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
	"github.com/cardinalbotics/scouting-backend/internal/platform/resilience"
	"github.com/cardinalbotics/scouting-backend/internal/usecase"
)

const testAPIKey = "tba-secret-key"

func newTestClient(t *testing.T, baseURL string, mutate func(*ClientConfig)) *Client {
	t.Helper()
	cfg := ClientConfig{
		BaseURL:      baseURL,
		APIKey:       testAPIKey,
		Timeout:      2 * time.Second,
		RetryBackoff: time.Millisecond,
		Cache:        cache.NewStore(cache.DefaultPolicy()),
		Logger:       logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestClient_Status_SendsAuthHeaderAndCaches(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-TBA-Auth-Key"); got != testAPIKey {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"max_season":2024,"current_season":2023,"is_datafeed_down":false}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	for i := 0; i < 2; i++ {
		status, err := client.Status(context.Background())
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if status.MaxSeason != 2024 || status.CurrentSeason != 2023 {
			t.Fatalf("unexpected status: %+v", status)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected second call to be served from cache, got %d upstream hits", hits.Load())
	}
}

func TestClient_Status_MissingFieldIsMalformed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"max_season":2024}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, nil).Status(context.Background())
	if !errors.Is(err, usecase.ErrUpstreamMalformed) {
		t.Fatalf("expected ErrUpstreamMalformed, got %v", err)
	}
}

func TestClient_Get_InvalidJSONIsMalformed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, nil).EventsBySeason(context.Background(), "2023")
	if !errors.Is(err, usecase.ErrUpstreamMalformed) {
		t.Fatalf("expected ErrUpstreamMalformed, got %v", err)
	}
}

func TestClient_Get_NotFoundPassesThrough(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/event/2023zzzz/matches/simple" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"Errors":[{"event_id":"2023zzzz does not exist"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	for i := 0; i < 2; i++ {
		_, err := client.EventMatches(context.Background(), "2023", "zzzz")
		var statusErr *usecase.UpstreamStatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
			t.Fatalf("expected upstream 404, got %v", err)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 404 to be cached for the error ttl, got %d hits", hits.Load())
	}
}

func TestClient_Get_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`["frc254","frc1678"]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(cfg *ClientConfig) { cfg.MaxRetries = 1 })
	keys, err := client.EventTeamKeys(context.Background(), "2023", "casj")
	if err != nil {
		t.Fatalf("event team keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "frc254" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected one retry, got %d hits", hits.Load())
	}
}

func TestClient_Get_UnreachableServer(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := newTestClient(t, baseURL, nil).Status(context.Background())
	if !errors.Is(err, usecase.ErrUpstreamUnreachable) {
		t.Fatalf("expected ErrUpstreamUnreachable, got %v", err)
	}
	if strings.Contains(err.Error(), testAPIKey) {
		t.Fatalf("api key leaked into error: %v", err)
	}
}

func TestClient_Get_TimeoutIsUnreachable(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL, func(cfg *ClientConfig) { cfg.Timeout = 50 * time.Millisecond })
	started := time.Now()
	_, err := client.EventsBySeason(context.Background(), "2023")
	if !errors.Is(err, usecase.ErrUpstreamUnreachable) {
		t.Fatalf("expected ErrUpstreamUnreachable, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > time.Second {
		t.Fatalf("timeout not enforced, call took %s", elapsed)
	}
}

func TestClient_Get_OpenCircuitIsUnreachable(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	_, err := client.Status(context.Background())
	var statusErr *usecase.UpstreamStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected upstream 502 on first call, got %v", err)
	}

	_, err = client.Status(context.Background())
	if !errors.Is(err, usecase.ErrUpstreamUnreachable) {
		t.Fatalf("expected open circuit to report unreachable, got %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected open circuit to skip the upstream, got %d hits", hits.Load())
	}
}

func TestClient_Get_RevalidatesWithETag(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.Header().Set("Cache-Control", "max-age=60")
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(`[{"key":"2023casj_qm1","alliances":{"red":{"team_keys":["frc1"]},"blue":{"team_keys":["frc2"]}}}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	for i := 0; i < 3; i++ {
		matches, err := client.EventMatches(context.Background(), "2023", "casj")
		if err != nil {
			t.Fatalf("event matches call %d: %v", i, err)
		}
		if len(matches) != 1 || matches[0].Key != "2023casj_qm1" {
			t.Fatalf("unexpected matches: %+v", matches)
		}
	}
	if hits.Load() != 2 {
		t.Fatalf("expected one full fetch and one revalidation, got %d hits", hits.Load())
	}
}

func TestClient_Match_EmbeddedError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/match/2023casj_qm99/simple" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"Error":"X-TBA-Auth-Key is invalid"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, nil).Match(context.Background(), "2023", "casj", "qm99")
	var embedded *usecase.EmbeddedError
	if !errors.As(err, &embedded) || embedded.Message != "X-TBA-Auth-Key is invalid" {
		t.Fatalf("expected embedded error, got %v", err)
	}
}

func TestClient_Match_ErrorKeyIsExact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		wantEmbedded bool
		wantMessage  string
		wantErr      error
	}{
		{
			name:         "null error is still embedded",
			body:         `{"Error":null}`,
			wantEmbedded: true,
		},
		{
			name: "lowercase error key is ordinary data",
			body: `{"error":"note","key":"2023casj_qm1","alliances":{"red":{"team_keys":["frc1"]},"blue":{"team_keys":["frc2"]}}}`,
		},
		{
			name:    "lowercase error without alliances is malformed",
			body:    `{"error":"X-TBA-Auth-Key is invalid"}`,
			wantErr: usecase.ErrUpstreamMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			match, err := newTestClient(t, server.URL, nil).Match(context.Background(), "2023", "casj", "qm1")
			var embedded *usecase.EmbeddedError
			switch {
			case tt.wantEmbedded:
				if !errors.As(err, &embedded) || embedded.Message != tt.wantMessage {
					t.Fatalf("expected embedded error %q, got %v", tt.wantMessage, err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			default:
				if err != nil {
					t.Fatalf("match: %v", err)
				}
				if match.Key != "2023casj_qm1" || len(match.Alliances["red"]) != 1 {
					t.Fatalf("unexpected match: %+v", match)
				}
			}
		})
	}
}

func TestClient_Match_ReshapesAlliances(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"key":"2023casj_qm1","alliances":{"red":{"team_keys":["frc1","frc2"]},"blue":{"team_keys":["frc3"]}}}`))
	}))
	defer server.Close()

	match, err := newTestClient(t, server.URL, nil).Match(context.Background(), "2023", "casj", "qm1")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(match.Alliances["red"]) != 2 || match.Alliances["blue"][0] != "frc3" {
		t.Fatalf("unexpected alliances: %+v", match.Alliances)
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		statusPath():                                   "status",
		eventsPath("2023"):                             "events/2023/simple",
		eventMatchesPath("2023", "casj"):               "event/2023casj/matches/simple",
		eventTeamKeysPath("2023", "casj"):              "event/2023casj/teams/keys",
		matchPath("2023", "casj", "qm1"):               "match/2023casj_qm1/simple",
		matchPath("2023", "casj", "qm1?x="):            "match/2023casj_qm1%3Fx=/simple",
		matchPath("2023", "casj", "../../team/frc254"): "match/2023casj_..%2F..%2Fteam%2Ffrc254/simple",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("path=%q want=%q", got, want)
		}
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText("dial tcp: key tba-secret-key refused", testAPIKey)
	if strings.Contains(got, testAPIKey) || !strings.Contains(got, "REDACTED") {
		t.Fatalf("expected key to be redacted, got %q", got)
	}
}
