package bluealliance

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cardinalbotics/scouting-backend/internal/platform/cache"
	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
	"github.com/cardinalbotics/scouting-backend/internal/platform/metrics"
	"github.com/cardinalbotics/scouting-backend/internal/platform/resilience"
	"github.com/cardinalbotics/scouting-backend/internal/usecase"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL      = "https://www.thebluealliance.com/api/v3"
	defaultTimeout      = 10 * time.Second
	defaultRetryBackoff = time.Second
	authHeader          = "X-TBA-Auth-Key"
	maxBodyBytes        = 8 << 20
)

var errTBATransient = crerr.New("blue alliance transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Cache          *cache.Store
	Logger         *logging.Logger
	Metrics        *metrics.Recorder
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads The Blue Alliance API through the shared response cache.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	retryBackoff   time.Duration
	cache          *cache.Store
	logger         *logging.Logger
	metrics        *metrics.Recorder
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	store := cfg.Cache
	if store == nil {
		store = cache.NewStore(cache.DefaultPolicy(), cache.WithMetrics(cfg.Metrics))
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("blue alliance circuit breaker state changed", "from", from, "to", to)
		recordCircuitState(cfg.Metrics, to)
	})
	recordCircuitState(cfg.Metrics, breaker.State())

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     max(cfg.MaxRetries, 0),
		retryBackoff:   backoff,
		cache:          store,
		logger:         logger,
		metrics:        cfg.Metrics,
		breaker:        breaker,
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// Get reads path (relative to the API root) and decodes the JSON body into target.
// Non-2xx responses come back as *usecase.UpstreamStatusError without decoding.
func (c *Client) Get(ctx context.Context, path string, target any) error {
	path = strings.TrimLeft(path, "/")
	signature := http.MethodGet + " " + path

	entry, err := c.cache.GetOrFetch(ctx, signature, func(fetchCtx context.Context, stale *cache.Entry) (cache.Response, error) {
		return c.fetch(fetchCtx, path, stale)
	})
	if err != nil {
		return err
	}
	if !entry.OK() {
		return &usecase.UpstreamStatusError{StatusCode: entry.StatusCode}
	}

	if err := sonic.Unmarshal(entry.Body, target); err != nil {
		return fmt.Errorf("%w: decode %s: %v", usecase.ErrUpstreamMalformed, path, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string, stale *cache.Entry) (cache.Response, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "blue alliance circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return cache.Response{}, fmt.Errorf("%w: %v", usecase.ErrUpstreamUnreachable, err)
		}
	}

	resp, err := c.executeRequest(ctx, path, stale)
	if c.circuitEnabled {
		c.breaker.Done(!isCircuitFailure(resp, err))
	}
	if err != nil {
		if crerr.Is(err, errTBATransient) {
			return cache.Response{}, fmt.Errorf("%w: %w", usecase.ErrUpstreamUnreachable, err)
		}
		return cache.Response{}, err
	}
	return resp, nil
}

func (c *Client) executeRequest(ctx context.Context, path string, stale *cache.Entry) (cache.Response, error) {
	fullURL := c.baseURL + "/" + path

	var lastErr error
	var lastResp cache.Response
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		lastResp = cache.Response{}
		resp, err := c.doOnce(ctx, fullURL, stale)
		switch {
		case err == nil && !isRetryableStatus(resp.StatusCode):
			return resp, nil
		case err == nil:
			lastResp = resp
			lastErr = nil
		case crerr.Is(err, errTBATransient):
			lastErr = err
		default:
			return cache.Response{}, err
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return cache.Response{}, crerr.Wrapf(errTBATransient, "wait for retry: %v", ctx.Err())
		case <-timer.C:
		}
	}

	if lastErr == nil {
		c.logger.WarnContext(ctx, "blue alliance request kept failing", "path", path, "status", lastResp.StatusCode)
		return lastResp, nil
	}
	c.logger.WarnContext(ctx, "blue alliance request failed", "path", path, "error", lastErr)
	return cache.Response{}, lastErr
}

func (c *Client) doOnce(ctx context.Context, fullURL string, stale *cache.Entry) (cache.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return cache.Response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(authHeader, c.apiKey)
	if stale != nil {
		if stale.ETag != "" {
			req.Header.Set("If-None-Match", stale.ETag)
		}
		if stale.LastModified != "" {
			req.Header.Set("If-Modified-Since", stale.LastModified)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.UpstreamRequest(0, time.Since(start))
		return cache.Response{}, crerr.Wrapf(errTBATransient, "send request: %s", sanitizeSensitiveText(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(http.MaxBytesReader(nil, resp.Body, maxBodyBytes)); err != nil {
		c.metrics.UpstreamRequest(resp.StatusCode, time.Since(start))
		var tooLarge *http.MaxBytesError
		if crerr.As(err, &tooLarge) {
			return cache.Response{}, fmt.Errorf("%w: response body exceeds %d bytes", usecase.ErrUpstreamMalformed, maxBodyBytes)
		}
		return cache.Response{}, crerr.Wrapf(errTBATransient, "read response body: %v", err)
	}
	c.metrics.UpstreamRequest(resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusNotModified {
		return cache.Response{
			StatusCode:  resp.StatusCode,
			Header:      resp.Header,
			NotModified: stale != nil,
		}, nil
	}

	return cache.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       append([]byte(nil), buf.B...),
	}, nil
}

func recordCircuitState(recorder *metrics.Recorder, state resilience.CircuitState) {
	recorder.CircuitState(
		string(state),
		string(resilience.CircuitStateClosed),
		string(resilience.CircuitStateOpen),
		string(resilience.CircuitStateHalfOpen),
	)
}

func isCircuitFailure(resp cache.Response, err error) bool {
	if err != nil {
		return crerr.Is(err, errTBATransient)
	}
	return isRetryableStatus(resp.StatusCode)
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func sanitizeSensitiveText(value, secret string) string {
	value = strings.TrimSpace(value)
	if value == "" || secret == "" {
		return value
	}
	return strings.ReplaceAll(value, secret, "REDACTED")
}
