package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/cardinalbotics/scouting-backend/internal/config"
	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
)

const pprofReadHeaderTimeout = 5 * time.Second

var pprofHandlers = map[string]http.HandlerFunc{
	"/debug/pprof/":        pprof.Index,
	"/debug/pprof/cmdline": pprof.Cmdline,
	"/debug/pprof/profile": pprof.Profile,
	"/debug/pprof/symbol":  pprof.Symbol,
	"/debug/pprof/trace":   pprof.Trace,
}

func newPprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	for pattern, handler := range pprofHandlers {
		mux.Handle("GET "+pattern, handler)
	}
	return mux
}

// StartPprofServer serves net/http/pprof on PPROF_ADDR, separate from the API listener.
// It returns a nil server when pprof is disabled.
func StartPprofServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled")
		return nil, nil
	}

	srv := &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           newPprofMux(),
		ReadHeaderTimeout: pprofReadHeaderTimeout,
	}
	go func() {
		logger.Info("pprof server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "addr", srv.Addr, "error", err)
		}
	}()
	return srv, nil
}

func StopPprofServer(srv *http.Server, logger *logging.Logger, timeout time.Duration) error {
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if logger != nil {
		logger.Info("pprof server stopped")
	}
	return nil
}
