package httpapi

import (
	"net/http"

	"github.com/cardinalbotics/scouting-backend/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, recorder *metrics.Recorder, metricsEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !metricsEnabled || recorder == nil {
		return
	}

	mux.Handle("GET /metrics", recorder.Handler())
}

func registerBlueAllianceRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /bluealliance", handler.BlueAllianceIndex)
	mux.HandleFunc("GET /bluealliance/{$}", handler.BlueAllianceIndex)
	mux.HandleFunc("GET /bluealliance/{season}", handler.BlueAllianceSeason)
	mux.HandleFunc("GET /bluealliance/{season}/{event}", handler.BlueAllianceEvent)
	mux.HandleFunc("GET /bluealliance/{season}/{event}/{match}", handler.BlueAllianceMatch)
}
