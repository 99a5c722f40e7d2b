package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/kdduha/skillscribe/internal/errs"
	"github.com/kdduha/skillscribe/pkg/logger"
)

type ResponseHandler interface {
	WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any)
	WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string)
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type responseHandler struct{}

func New() *responseHandler {
	return &responseHandler{}
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := sonic.ConfigDefault.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode success response", "error", err)
	}
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := sonic.ConfigDefault.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		validation *errs.ValidationError
		generation *errs.GenerationError
	)
	switch {
	case errors.As(err, &validation):
		log.Warn("validation failed", "error", validation.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", validation.Message)

	case errors.As(err, &generation):
		log.Error("model call failed", "error", generation.Cause)
		h.WriteError(w, r, http.StatusBadGateway, "generation_failed", generation.Message)

	default:
		log.Error("unexpected error", "error", err, "type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
