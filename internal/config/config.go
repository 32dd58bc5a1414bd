package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileEnvKey names the optional YAML file layered beneath environment variables.
const FileEnvKey = "APP_CONFIG_FILE"

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	LogLevel                logging.Level
	CORSAllowedOrigins      []string
	DBURL                   string
	DBDisablePreparedBinary bool

	TBABaseURL                 string
	TBAAPIKey                  string
	TBAState                   string
	TBATimeout                 time.Duration
	TBAMaxRetries              int
	TBACircuitEnabled          bool
	TBACircuitFailureCount     int
	TBACircuitOpenTimeout      time.Duration
	TBACircuitHalfOpenMaxReq   int
	CacheDefaultTTL            time.Duration
	CacheErrorTTL              time.Duration
	CacheUncacheableStatus     int
	CacheMaxStale              time.Duration
	CacheMaxEntries            int
	PrefetchEnabled            bool
	PrefetchInterval           time.Duration
	PrefetchWorkers            int
	MetricsEnabled             bool
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads the optional YAML file named by APP_CONFIG_FILE and then the
// process environment. Environment values win. Keys in the file are the
// lowercase form of the environment names (tba_api_key, cache_default_ttl).
func Load() (Config, error) {
	src, err := newSource(os.Getenv(FileEnvKey))
	if err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(src.get("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	tbaAPIKey := strings.TrimSpace(src.get("TBA_API_KEY", ""))
	if tbaAPIKey == "" {
		return Config{}, fmt.Errorf("TBA_API_KEY is required")
	}
	tbaTimeout, err := src.positiveDuration("TBA_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	tbaMaxRetries, err := src.integer("TBA_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, err
	}
	if tbaMaxRetries < 0 {
		return Config{}, fmt.Errorf("TBA_MAX_RETRIES must be >= 0")
	}
	tbaCircuitEnabled, err := src.boolean("TBA_CIRCUIT_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	tbaCircuitFailureCount, err := src.integer("TBA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, err
	}
	if tbaCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("TBA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	tbaCircuitOpenTimeout, err := src.positiveDuration("TBA_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	tbaCircuitHalfOpenMaxReq, err := src.integer("TBA_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, err
	}
	if tbaCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("TBA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cacheDefaultTTL, err := src.positiveDuration("CACHE_DEFAULT_TTL", "60s")
	if err != nil {
		return Config{}, err
	}
	cacheErrorTTL, err := src.duration("CACHE_ERROR_TTL", "5s")
	if err != nil {
		return Config{}, err
	}
	if cacheErrorTTL < 0 {
		return Config{}, fmt.Errorf("CACHE_ERROR_TTL must be >= 0")
	}
	cacheUncacheableStatus, err := src.integer("CACHE_UNCACHEABLE_STATUS", http.StatusInternalServerError)
	if err != nil {
		return Config{}, err
	}
	if cacheUncacheableStatus != 0 && (cacheUncacheableStatus < 300 || cacheUncacheableStatus > 999) {
		return Config{}, fmt.Errorf("CACHE_UNCACHEABLE_STATUS must be 0 or a non-2xx status code")
	}
	cacheMaxStale, err := src.duration("CACHE_MAX_STALE", "1h")
	if err != nil {
		return Config{}, err
	}
	if cacheMaxStale < 0 {
		return Config{}, fmt.Errorf("CACHE_MAX_STALE must be >= 0")
	}
	cacheMaxEntries, err := src.integer("CACHE_MAX_ENTRIES", 2048)
	if err != nil {
		return Config{}, err
	}
	if cacheMaxEntries < 0 {
		return Config{}, fmt.Errorf("CACHE_MAX_ENTRIES must be >= 0")
	}

	prefetchEnabled, err := src.boolean("PREFETCH_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	prefetchInterval, err := src.positiveDuration("PREFETCH_INTERVAL", "10m")
	if err != nil {
		return Config{}, err
	}
	prefetchWorkers, err := src.integer("PREFETCH_WORKERS", 4)
	if err != nil {
		return Config{}, err
	}
	if prefetchWorkers < 1 {
		return Config{}, fmt.Errorf("PREFETCH_WORKERS must be >= 1")
	}

	metricsEnabled, err := src.boolean("METRICS_ENABLED", true)
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := src.boolean("UPTRACE_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	uptraceDSN := strings.TrimSpace(src.get("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(src.get("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := src.boolean("PPROF_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	pprofAddr := strings.TrimSpace(src.get("PPROF_ADDR", ":6060"))

	pyroscopeEnabled, err := src.boolean("PYROSCOPE_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	pyroscopeServerAddress := strings.TrimSpace(src.get("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := src.positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := src.positiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := src.positiveDuration("APP_WRITE_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	dbDisablePreparedBinary, err := src.boolean("DB_DISABLE_PREPARED_BINARY_RESULT", true)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                src.get("APP_SERVICE_NAME", "scouting-backend"),
		ServiceVersion:             src.get("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   src.get("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		LogLevel:                   parseLogLevel(src.get("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:         splitCSV(src.get("CORS_ALLOWED_ORIGINS", "*")),
		DBURL:                      strings.TrimSpace(src.get("DB_URL", "")),
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		TBABaseURL:                 strings.TrimSpace(src.get("TBA_BASE_URL", "https://www.thebluealliance.com/api/v3")),
		TBAAPIKey:                  tbaAPIKey,
		TBAState:                   strings.TrimSpace(src.get("TBA_STATE", "")),
		TBATimeout:                 tbaTimeout,
		TBAMaxRetries:              tbaMaxRetries,
		TBACircuitEnabled:          tbaCircuitEnabled,
		TBACircuitFailureCount:     tbaCircuitFailureCount,
		TBACircuitOpenTimeout:      tbaCircuitOpenTimeout,
		TBACircuitHalfOpenMaxReq:   tbaCircuitHalfOpenMaxReq,
		CacheDefaultTTL:            cacheDefaultTTL,
		CacheErrorTTL:              cacheErrorTTL,
		CacheUncacheableStatus:     cacheUncacheableStatus,
		CacheMaxStale:              cacheMaxStale,
		CacheMaxEntries:            cacheMaxEntries,
		PrefetchEnabled:            prefetchEnabled,
		PrefetchInterval:           prefetchInterval,
		PrefetchWorkers:            prefetchWorkers,
		MetricsEnabled:             metricsEnabled,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(src.get("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(src.get("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(src.get("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(src.get("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// source resolves keys against the merged file and environment layers.
type source struct {
	k *koanf.Koanf
}

func newSource(path string) (source, error) {
	k := koanf.New(".")

	if path = strings.TrimSpace(path); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return source{}, fmt.Errorf("load %s %q: %w", FileEnvKey, path, err)
		}
	}

	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return source{}, fmt.Errorf("load environment: %w", err)
	}

	return source{k: k}, nil
}

// get treats blank values as unset.
func (s source) get(key, fallback string) string {
	value := s.k.String(strings.ToLower(key))
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func (s source) boolean(key string, fallback bool) (bool, error) {
	value := s.get(key, strconv.FormatBool(fallback))
	out, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func (s source) integer(key string, fallback int) (int, error) {
	value := s.get(key, strconv.Itoa(fallback))
	out, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func (s source) duration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(s.get(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func (s source) positiveDuration(key, fallback string) (time.Duration, error) {
	out, err := s.duration(key, fallback)
	if err != nil {
		return 0, err
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
