package httpapi

import (
	"net/http"

	"github.com/cardinalbotics/scouting-backend/internal/platform/id"
	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
	"github.com/cardinalbotics/scouting-backend/internal/platform/metrics"
)

type RouterConfig struct {
	ServiceName        string
	CORSAllowedOrigins []string
	MetricsEnabled     bool
	IDGenerator        id.Generator
}

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	recorder *metrics.Recorder,
	cfg RouterConfig,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, recorder, cfg.MetricsEnabled)
	registerBlueAllianceRoutes(mux, handler)

	return RequestTracing(cfg.ServiceName,
		RequestID(cfg.IDGenerator,
			RequestLogging(logger, recorder,
				CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
