package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/cardinalbotics/scouting-backend/internal/usecase"
)

type errorMessageBody struct {
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	// Message is written as {"message": ...}; empty means an empty body.
	Message string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, data)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	markSpanFailed(ctx, mapped.HTTPStatus, err)
	if mapped.Message != "" {
		writeJSON(ctx, w, mapped.HTTPStatus, errorMessageBody{Message: mapped.Message})
		return
	}
	w.WriteHeader(mapped.HTTPStatus)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	_, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	w.WriteHeader(http.StatusInternalServerError)
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	var statusErr *usecase.UpstreamStatusError
	var embedded *usecase.EmbeddedError
	switch {
	case errors.As(err, &embedded):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "upstreamEmbeddedError",
			Message:    embedded.Message,
		}
	case errors.As(err, &statusErr):
		return mappedError{
			HTTPStatus: passthroughStatus(statusErr.StatusCode),
			Reason:     "upstreamStatus",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
		}
	case errors.Is(err, usecase.ErrUpstreamUnreachable):
		return mappedError{
			HTTPStatus: http.StatusBadGateway,
			Reason:     "upstreamUnreachable",
		}
	case errors.Is(err, usecase.ErrUpstreamMalformed):
		return mappedError{
			HTTPStatus: http.StatusBadGateway,
			Reason:     "upstreamMalformed",
		}
	case errors.Is(err, usecase.ErrContractViolation):
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "contractViolation",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
		}
	}
}

func passthroughStatus(code int) int {
	if code < 100 || code > 999 {
		return http.StatusBadGateway
	}
	return code
}
