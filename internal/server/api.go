package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/shared"
)

// Version reported by the health endpoint.
const Version = "0.1.0"

// APIHandler serves the JSON REST API under /api/.
type APIHandler struct {
	mux      *http.ServeMux
	db       *sql.DB
	videos   *repositories.VideoRepository
	audio    *repositories.AudioRepository
	projects *repositories.ProjectRepository
	logs     *repositories.GenerationLogRepository
	activity *repositories.ActivityRepository
	logger   *log.Logger
}

// NewAPIHandler creates the API handler over the given database.
func NewAPIHandler(db *sql.DB, logger *log.Logger) *APIHandler {
	h := &APIHandler{
		mux:      http.NewServeMux(),
		db:       db,
		videos:   repositories.NewVideoRepository(db),
		audio:    repositories.NewAudioRepository(db),
		projects: repositories.NewProjectRepository(db),
		logs:     repositories.NewGenerationLogRepository(db),
		activity: repositories.NewActivityRepository(db),
		logger:   logger,
	}
	h.routes()
	return h
}

// Routes returns the path patterns this handler serves.
func (h *APIHandler) Routes() []string {
	return []string{"/api/"}
}

// ServeHTTP implements [http.Handler].
func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *APIHandler) routes() {
	h.mux.HandleFunc("GET /api/health", h.health)

	h.mux.HandleFunc("GET /api/videos", h.listVideos)
	h.mux.HandleFunc("POST /api/videos", h.createVideo)
	h.mux.HandleFunc("GET /api/videos/pending", h.listPendingVideos)
	h.mux.HandleFunc("GET /api/videos/{id}", h.getVideo)
	h.mux.HandleFunc("PUT /api/videos/{id}", h.updateVideo)
	h.mux.HandleFunc("DELETE /api/videos/{id}", h.deleteVideo)
	h.mux.HandleFunc("PATCH /api/videos/{id}/status", h.patchVideoStatus)
	h.mux.HandleFunc("GET /api/videos/{id}/logs", h.listVideoLogs)

	h.mux.HandleFunc("GET /api/audio", h.listAudio)
	h.mux.HandleFunc("POST /api/audio", h.createAudio)
	h.mux.HandleFunc("GET /api/audio/{id}", h.getAudio)
	h.mux.HandleFunc("PUT /api/audio/{id}", h.updateAudio)
	h.mux.HandleFunc("DELETE /api/audio/{id}", h.deleteAudio)

	h.mux.HandleFunc("GET /api/projects", h.listProjects)
	h.mux.HandleFunc("POST /api/projects", h.createProject)
	h.mux.HandleFunc("GET /api/projects/{id}", h.getProject)
	h.mux.HandleFunc("PUT /api/projects/{id}", h.updateProject)
	h.mux.HandleFunc("DELETE /api/projects/{id}", h.deleteProject)
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := shared.MarshalJSON(data, false)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (h *APIHandler) writeError(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, map[string]string{"detail": detail})
}

// writeRepoError maps repository errors to API status codes.
func (h *APIHandler) writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrVideoNotFound),
		errors.Is(err, shared.ErrAudioNotFound),
		errors.Is(err, shared.ErrProjectNotFound),
		errors.Is(err, shared.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case strings.Contains(err.Error(), "validation failed"):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		if h.logger != nil {
			h.logger.Error("api error", "error", err)
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *APIHandler) recordActivity(action, objectType, objectID, description string) {
	entry := models.NewActivityLog(0, "api", action, objectType, objectID, description)
	if err := h.activity.Create(entry); err != nil && h.logger != nil {
		h.logger.Warn("failed to record activity", "action", action, "error", err)
	}
}

func (h *APIHandler) health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if err := h.db.Ping(); err != nil {
		status = "degraded"
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": status, "version": Version})
}

func (h *APIHandler) listVideos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	criteria := map[string]any{
		"status":         query.Get("status"),
		"mood":           query.Get("mood"),
		"audio_track_id": query.Get("audio_track"),
		"search":         query.Get("search"),
	}

	videos, err := h.videos.List(criteria)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	payloads := make([]models.VideoPayload, 0, len(videos))
	for _, video := range videos {
		payloads = append(payloads, video.Payload())
	}
	h.writeJSON(w, http.StatusOK, payloads)
}

func (h *APIHandler) listPendingVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videos.ListPending()
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	payloads := make([]models.VideoPayload, 0, len(videos))
	for _, video := range videos {
		payloads = append(payloads, video.Payload())
	}
	h.writeJSON(w, http.StatusOK, payloads)
}

func (h *APIHandler) createVideo(w http.ResponseWriter, r *http.Request) {
	var data models.VideoData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	video := models.NewVideo(0, data)
	if err := h.videos.Create(video); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.recordActivity("create", "video", video.ID(), fmt.Sprintf("Created video %q", video.Title()))
	h.writeJSON(w, http.StatusCreated, video.Payload())
}

func (h *APIHandler) getVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.videos.Get(r.PathValue("id"))
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, video.Payload())
}

func (h *APIHandler) updateVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.videos.Get(r.PathValue("id"))
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	data := video.Data()
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated := models.RestoreVideo(video.Sequence(), data)
	updated.SetID(video.ID())
	updated.SetCreatedAt(video.CreatedAt())

	if err := h.videos.Update(updated); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.recordActivity("update", "video", updated.ID(), fmt.Sprintf("Updated video %q", updated.Title()))
	h.writeJSON(w, http.StatusOK, updated.Payload())
}

func (h *APIHandler) deleteVideo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.videos.Delete(id); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.recordActivity("delete", "video", id, "Deleted video")
	w.WriteHeader(http.StatusNoContent)
}

// statusPatch is the body accepted by PATCH /api/videos/{id}/status,
// reported by external generator processes.
type statusPatch struct {
	Status             string  `json:"status"`
	ErrorMessage       string  `json:"error_message"`
	ErrorCode          string  `json:"error_code"`
	GenerationLog      *string `json:"generation_log"`
	GenerationProgress any     `json:"generation_progress"`
	VideoFile          *string `json:"video_file"`
}

// parseProgress interprets the progress field, which may arrive as a
// JSON number or a numeric string. Returns nil when absent or blank.
func parseProgress(value any) (*int, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, shared.ErrInvalidProgress
		}
		p := int(v)
		return &p, nil
	case string:
		if v == "" {
			return nil, nil
		}
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, shared.ErrInvalidProgress
		}
		return &p, nil
	default:
		return nil, shared.ErrInvalidProgress
	}
}

func (h *APIHandler) patchVideoStatus(w http.ResponseWriter, r *http.Request) {
	video, err := h.videos.Get(r.PathValue("id"))
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	var patch statusPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	progress, err := parseProgress(patch.GenerationProgress)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if patch.Status != "" {
		status := models.Status(patch.Status)
		if !status.Valid() {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status: %s", patch.Status))
			return
		}
		video.SetStatus(status)

		if progress == nil {
			if defaultProgress, ok := status.DefaultProgress(); ok {
				video.SetGenerationProgress(defaultProgress)
			}
		}
	}

	video.SetErrorMessage(patch.ErrorMessage)
	video.SetErrorCode(patch.ErrorCode)

	if progress != nil {
		video.SetGenerationProgress(models.ClampProgress(*progress))
	}

	if patch.GenerationLog != nil {
		video.AppendGenerationLog(*patch.GenerationLog)
	}

	if patch.VideoFile != nil {
		video.SetVideoFile(*patch.VideoFile)
	}

	if err := h.videos.Update(video); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.recordActivity("update_status", "video", video.ID(),
		fmt.Sprintf("Status reported as %q", video.Status()))
	h.writeJSON(w, http.StatusOK, video.Payload())
}

func (h *APIHandler) listVideoLogs(w http.ResponseWriter, r *http.Request) {
	video, err := h.videos.Get(r.PathValue("id"))
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	entries, err := h.logs.ForVideo(video.ID(), 100)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	payloads := make([]models.GenerationLogPayload, 0, len(entries))
	for _, entry := range entries {
		payloads = append(payloads, entry.Payload())
	}
	h.writeJSON(w, http.StatusOK, payloads)
}

func (h *APIHandler) listAudio(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	criteria := map[string]any{
		"language": query.Get("language"),
		"search":   query.Get("search"),
	}

	tracks, err := h.audio.List(criteria)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	payloads := make([]models.AudioPayload, 0, len(tracks))
	for _, track := range tracks {
		payloads = append(payloads, track.Payload())
	}
	h.writeJSON(w, http.StatusOK, payloads)
}

func (h *APIHandler) createAudio(w http.ResponseWriter, r *http.Request) {
	var data models.AudioData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	track := models.NewAudioTrack(0, data)
	if err := h.audio.Create(track); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.recordActivity("create", "audio_track", track.ID(), fmt.Sprintf("Created audio track %q", track.Title()))
	h.writeJSON(w, http.StatusCreated, track.Payload())
}

func (h *APIHandler) getAudio(w http.ResponseWriter, r *http.Request) {
	track, err := h.audio.Get(r.PathValue("id"))
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, track.Payload())
}

func (h *APIHandler) updateAudio(w http.ResponseWriter, r *http.Request) {
	track, err := h.audio.Get(r.PathValue("id"))
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	data := track.Data()
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	track.SetTitle(data.Title)
	track.SetArtist(data.Artist)
	track.SetAudioFile(data.AudioFile)
	track.SetLyrics(data.Lyrics)
	track.SetLanguage(data.Language)
	if data.BPM != nil {
		track.SetBPM(*data.BPM)
	}

	if err := h.audio.Update(track); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.recordActivity("update", "audio_track", track.ID(), fmt.Sprintf("Updated audio track %q", track.Title()))
	h.writeJSON(w, http.StatusOK, track.Payload())
}

func (h *APIHandler) deleteAudio(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.audio.Delete(id); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.recordActivity("delete", "audio_track", id, "Deleted audio track")
	w.WriteHeader(http.StatusNoContent)
}

// projectBody is the body accepted by the project create and update endpoints.
type projectBody struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	IsActive    *bool    `json:"is_active"`
	VideoIDs    []string `json:"video_ids"`
}

func (h *APIHandler) listProjects(w http.ResponseWriter, r *http.Request) {
	criteria := map[string]any{"search": r.URL.Query().Get("search")}

	projects, err := h.projects.List(criteria)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	payloads := make([]models.ProjectPayload, 0, len(projects))
	for _, project := range projects {
		payloads = append(payloads, project.Payload())
	}
	h.writeJSON(w, http.StatusOK, payloads)
}

func (h *APIHandler) createProject(w http.ResponseWriter, r *http.Request) {
	var body projectBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	project := models.NewProject(0, models.ProjectData{Name: body.Name, Description: body.Description})
	if body.IsActive != nil {
		project.SetIsActive(*body.IsActive)
	}
	project.SetVideoIDs(body.VideoIDs)

	if err := h.projects.Create(project); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.recordActivity("create", "project", project.ID(), fmt.Sprintf("Created project %q", project.Name()))
	h.writeJSON(w, http.StatusCreated, project.Payload())
}

func (h *APIHandler) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.PathValue("id"))
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, project.Payload())
}

func (h *APIHandler) updateProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.PathValue("id"))
	if err != nil {
		h.writeRepoError(w, err)
		return
	}

	body := projectBody{
		Name:        project.Name(),
		Description: project.Description(),
		VideoIDs:    project.VideoIDs(),
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	project.SetName(body.Name)
	project.SetDescription(body.Description)
	if body.IsActive != nil {
		project.SetIsActive(*body.IsActive)
	}
	project.SetVideoIDs(body.VideoIDs)

	if err := h.projects.Update(project); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.recordActivity("update", "project", project.ID(), fmt.Sprintf("Updated project %q", project.Name()))
	h.writeJSON(w, http.StatusOK, project.Payload())
}

func (h *APIHandler) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.projects.Delete(id); err != nil {
		h.writeRepoError(w, err)
		return
	}

	h.recordActivity("delete", "project", id, "Deleted project")
	w.WriteHeader(http.StatusNoContent)
}
