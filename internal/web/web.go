// Package web implements the HTMX web application for the video studio.
//
// Each view is a server-rendered template; HTMX drives partial updates
// and the generation progress view consumes a Server-Sent Events
// stream relaying engine progress updates.
package web

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mvx/internal/media"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/tasks"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageSize is the number of rows per page on list views.
const PageSize = 20

// WebHandler serves the HTML application at the site root.
type WebHandler struct {
	mux      *http.ServeMux
	videos   *repositories.VideoRepository
	audio    *repositories.AudioRepository
	projects *repositories.ProjectRepository
	logs     *repositories.GenerationLogRepository
	activity *repositories.ActivityRepository
	engine   *tasks.Engine
	store    *media.Store
	streams  *streamRegistry
	tpl      *template.Template
	logger   *log.Logger
}

// NewWebHandler creates the web handler over the given database and
// generation engine.
func NewWebHandler(db *sql.DB, store *media.Store, engine *tasks.Engine, logger *log.Logger) (*WebHandler, error) {
	tpl, err := template.New("web").Funcs(template.FuncMap{
		"duration": func(p *int) string {
			if p == nil {
				return "-"
			}
			return shared.FormatDuration(*p)
		},
		"bytes": func(p *int64) string {
			if p == nil {
				return "-"
			}
			return shared.FormatBytes(*p)
		},
		"progress": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
		"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		"add1":     func(i int) int { return i + 1 },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	h := &WebHandler{
		mux:      http.NewServeMux(),
		videos:   repositories.NewVideoRepository(db),
		audio:    repositories.NewAudioRepository(db),
		projects: repositories.NewProjectRepository(db),
		logs:     repositories.NewGenerationLogRepository(db),
		activity: repositories.NewActivityRepository(db),
		engine:   engine,
		store:    store,
		streams:  newStreamRegistry(),
		tpl:      tpl,
		logger:   logger,
	}
	h.routes()
	return h, nil
}

// Routes returns the path patterns this handler serves.
func (h *WebHandler) Routes() []string {
	return []string{"/"}
}

// ServeHTTP implements [http.Handler].
func (h *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *WebHandler) routes() {
	h.mux.HandleFunc("GET /{$}", h.dashboard)

	h.mux.HandleFunc("GET /videos", h.listVideos)
	h.mux.HandleFunc("GET /videos/new", h.newVideoForm)
	h.mux.HandleFunc("POST /videos", h.createVideo)
	h.mux.HandleFunc("GET /videos/{id}", h.videoDetail)
	h.mux.HandleFunc("GET /videos/{id}/edit", h.editVideoForm)
	h.mux.HandleFunc("POST /videos/{id}", h.updateVideo)
	h.mux.HandleFunc("POST /videos/{id}/delete", h.deleteVideo)
	h.mux.HandleFunc("POST /videos/{id}/generate", h.generateVideo)
	h.mux.HandleFunc("GET /videos/{id}/progress", h.streamProgress)

	h.mux.HandleFunc("GET /audio", h.listAudio)
	h.mux.HandleFunc("GET /audio/new", h.newAudioForm)
	h.mux.HandleFunc("POST /audio", h.createAudio)
	h.mux.HandleFunc("GET /audio/{id}", h.audioDetail)
	h.mux.HandleFunc("GET /audio/{id}/edit", h.editAudioForm)
	h.mux.HandleFunc("POST /audio/{id}", h.updateAudio)
	h.mux.HandleFunc("POST /audio/{id}/delete", h.deleteAudio)
	h.mux.HandleFunc("POST /audio/{id}/generate", h.generateFromAudio)

	h.mux.HandleFunc("GET /projects", h.listProjects)
	h.mux.HandleFunc("GET /projects/new", h.newProjectForm)
	h.mux.HandleFunc("POST /projects", h.createProject)
	h.mux.HandleFunc("GET /projects/{id}", h.projectDetail)
	h.mux.HandleFunc("GET /projects/{id}/edit", h.editProjectForm)
	h.mux.HandleFunc("POST /projects/{id}", h.updateProject)
	h.mux.HandleFunc("POST /projects/{id}/delete", h.deleteProject)
}

// page is the envelope passed to every template.
type page struct {
	Title  string
	Notice string
	Error  string
	Data   any
}

func (h *WebHandler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	p := page{
		Title:  title,
		Notice: r.URL.Query().Get("notice"),
		Error:  r.URL.Query().Get("error"),
		Data:   data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tpl.ExecuteTemplate(w, name, p); err != nil && h.logger != nil {
		h.logger.Error("failed to render template", "template", name, "error", err)
	}
}

// redirect sends the browser to path with an optional flash notice.
func (h *WebHandler) redirect(w http.ResponseWriter, r *http.Request, path, notice string) {
	if notice != "" {
		path += "?notice=" + url.QueryEscape(notice)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (h *WebHandler) redirectError(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}

func (h *WebHandler) notFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	h.render(w, r, "error.html", "Not found", "The requested record does not exist.")
}

func (h *WebHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	if h.logger != nil {
		h.logger.Error("web handler error", "path", r.URL.Path, "error", err)
	}
	w.WriteHeader(http.StatusInternalServerError)
	h.render(w, r, "error.html", "Error", err.Error())
}

func (h *WebHandler) recordActivity(action, objectType, objectID, description string) {
	entry := models.NewActivityLog(0, "web", action, objectType, objectID, description)
	if err := h.activity.Create(entry); err != nil && h.logger != nil {
		h.logger.Warn("failed to record activity", "action", action, "error", err)
	}
}

// paginate slices rows for the requested page and reports the page
// number and whether further pages exist.
func paginate[T any](rows []T, pageParam string) ([]T, int, bool) {
	pageNum := 1
	if pageParam != "" {
		fmt.Sscanf(pageParam, "%d", &pageNum)
		if pageNum < 1 {
			pageNum = 1
		}
	}

	start := (pageNum - 1) * PageSize
	if start >= len(rows) {
		return nil, pageNum, false
	}

	end := min(start+PageSize, len(rows))
	return rows[start:end], pageNum, end < len(rows)
}
