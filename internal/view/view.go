// Package view renders the single SkillScribe page from a controller snapshot.
package view

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/kdduha/skillscribe/internal/controller"
	"github.com/kdduha/skillscribe/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// CopyAckDuration is how long the copy control shows "Copied!".
const CopyAckDuration = 2 * time.Second

const refreshInterval = 2 * time.Second

type Panel string

const (
	PanelLoading  Panel = "loading"
	PanelError    Panel = "error"
	PanelSolution Panel = "solution"
	PanelWelcome  Panel = "welcome"
)

// SelectPanel picks the one output panel to show for state.
func SelectPanel(state controller.State) Panel {
	switch {
	case state.Loading:
		return PanelLoading
	case state.Error != "":
		return PanelError
	case state.Solution != nil:
		return PanelSolution
	default:
		return PanelWelcome
	}
}

// Page is the template data of the index page.
type Page struct {
	Panel          Panel
	Prompt         string
	Loading        bool
	Error          string
	Solution       *models.Solution
	ImageName      string
	Preview        template.URL
	CopyAckMillis  int64
	RefreshSeconds int
}

func NewPage(state controller.State) Page {
	page := Page{
		Panel:          SelectPanel(state),
		Prompt:         state.Prompt,
		Loading:        state.Loading,
		Error:          state.Error,
		Solution:       state.Solution,
		CopyAckMillis:  CopyAckDuration.Milliseconds(),
		RefreshSeconds: int(refreshInterval.Seconds()),
	}
	if state.Image != nil {
		page.ImageName = state.Image.Name()
		page.Preview = previewURL(state.Image)
	}
	return page
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("skillscribe").
		Funcs(template.FuncMap{"upper": strings.ToUpper}).
		ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, state controller.State) error {
	return r.tmpl.ExecuteTemplate(w, "index", NewPage(state))
}

// previewURL inlines the selected file as a data URL. Files the browser
// cannot show as an <img>, such as PDFs, get no preview.
func previewURL(file models.ImageFile) template.URL {
	rc, err := file.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return ""
	}

	mimeType := mimetype.Detect(data).String()
	if !strings.HasPrefix(mimeType, "image/") {
		return ""
	}
	return template.URL("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data))
}
