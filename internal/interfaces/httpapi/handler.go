package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
	"github.com/cardinalbotics/scouting-backend/internal/usecase"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	blueAllianceService *usecase.BlueAllianceService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(blueAllianceService *usecase.BlueAllianceService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		blueAllianceService: blueAllianceService,
		logger:              logger,
		validator:           validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, map[string]string{"status": "ok"})
}

// validateParams reports invalid route parameters as not found, the way an
// unmatched route would.
func (h *Handler) validateParams(params any) error {
	if err := h.validator.Struct(params); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrNotFound, err)
	}
	return nil
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	mapped := mapError(ctx, err)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, op+" failed", "status", mapped.HTTPStatus, "reason", mapped.Reason, "error", err)
	} else {
		h.logger.WarnContext(ctx, op+" failed", "status", mapped.HTTPStatus, "reason", mapped.Reason, "error", err)
	}
	writeError(ctx, w, err)
}
