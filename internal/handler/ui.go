package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/kdduha/skillscribe/internal/controller"
	"github.com/kdduha/skillscribe/internal/models"
	"github.com/kdduha/skillscribe/internal/response"
	"github.com/kdduha/skillscribe/pkg/logger"
)

const multipartMemory = 32 << 20

type sessionStore interface {
	Controller(w http.ResponseWriter, r *http.Request) (*controller.Controller, error)
}

type renderer interface {
	Render(w io.Writer, state controller.State) error
}

// UIHandler serves the HTML page. Every action redirects back to the index,
// which renders whatever state the session controller is in.
type UIHandler struct {
	sessions     sessionStore
	renderer     renderer
	response     response.ResponseHandler
	solveTimeout time.Duration
}

func NewUIHandler(sessions sessionStore, renderer renderer, response response.ResponseHandler, solveTimeout time.Duration) *UIHandler {
	return &UIHandler{
		sessions:     sessions,
		renderer:     renderer,
		response:     response,
		solveTimeout: solveTimeout,
	}
}

func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, ctrl.State()); err != nil {
		logger.FromContext(r.Context()).Error("failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// Solve stores the submitted form and starts a solve that outlives the
// request. A form without a file keeps the previously uploaded image. While a
// solve is in flight the submission is dropped so the shown inputs keep
// matching the pending result.
func (h *UIHandler) Solve(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if ctrl.State().Loading {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		data, readErr := io.ReadAll(file)
		_ = file.Close()
		if readErr != nil {
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}
		ctrl.SetImage(models.NewMemoryFile(header.Filename, data))
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		http.Error(w, "invalid upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	ctrl.SetPrompt(r.FormValue("prompt"))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.solveTimeout)
	if done, started := ctrl.Start(ctx); started {
		go func() {
			<-done
			cancel()
		}()
	} else {
		cancel()
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *UIHandler) Example(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if !ctrl.State().Loading {
		ctrl.UseExample()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Healthz godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *UIHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.response.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *UIHandler) controller(w http.ResponseWriter, r *http.Request) (*controller.Controller, bool) {
	ctrl, err := h.sessions.Controller(w, r)
	if err != nil {
		h.response.HandleError(w, r, err)
		return nil, false
	}
	return ctrl, true
}
