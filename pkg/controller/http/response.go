package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/utils/errutil"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
)

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// statusOf maps a domain error to its HTTP status
func statusOf(err error) int {
	if verrs, ok := model.AsValidationErrors(err); ok {
		if verrs.Has(model.ErrInsufficientStock) {
			return http.StatusConflict
		}
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrMissingField),
		errors.Is(err, model.ErrInvalidDateRange):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrRemoteUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with the status of err. Server errors are logged and
// reported; the client only sees the status text.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		errutil.HandleHTTP(ctx, w, err, status)
		return
	}

	logging.From(ctx).Debug("request rejected", "status", status, "error", err.Error())

	resp := errorResponse{Error: http.StatusText(status)}
	if verrs, ok := model.AsValidationErrors(err); ok {
		resp.Error = "validation failed"
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Error()})
		}
	}
	writeJSON(ctx, w, status, resp)
}

type createdResponse[T any] struct {
	Record   T        `json:"record"`
	Warnings []string `json:"warnings,omitempty"`
}
