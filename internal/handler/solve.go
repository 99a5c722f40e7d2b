package handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/kdduha/skillscribe/internal/errs"
	"github.com/kdduha/skillscribe/internal/models"
	"github.com/kdduha/skillscribe/internal/response"
)

type encoder interface {
	Encode(ctx context.Context, file models.ImageFile) (*models.Payload, error)
}

type solveService interface {
	Solve(ctx context.Context, prompt string, image *models.Payload) (*models.Solution, error)
}

type SolveHandler struct {
	encoder  encoder
	service  solveService
	response response.ResponseHandler
}

func NewSolveHandler(encoder encoder, service solveService, response response.ResponseHandler) *SolveHandler {
	return &SolveHandler{
		encoder:  encoder,
		service:  service,
		response: response,
	}
}

// Solve godoc
// @Summary Solve a technical problem from an image
// @Description Explain the problem, return a code solution and a 3-step micro-lesson. The image (or a PDF, whose first page is used) is sent as base64 string in JSON.
// @Tags solve
// @Accept json
// @Produce json
// @Param request body models.SolveRequest true "Solve request"
// @Success 200 {object} models.Solution
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/solve [post]
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var req models.SolveRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		h.response.WriteError(w, r, http.StatusBadRequest, "invalid_json", fmt.Sprintf("invalid JSON: %s", err))
		return
	}

	if err := req.Validate(); err != nil {
		h.response.HandleError(w, r, err)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		h.response.HandleError(w, r, errs.NewValidationError("image_base64 is not valid base64"))
		return
	}

	payload, err := h.encoder.Encode(r.Context(), models.NewMemoryFile("upload", data))
	if err != nil {
		h.response.HandleError(w, r, err)
		return
	}

	solution, err := h.service.Solve(r.Context(), req.Prompt, payload)
	if err != nil {
		h.response.HandleError(w, r, err)
		return
	}

	h.response.WriteSuccess(w, r, http.StatusOK, solution)
}
