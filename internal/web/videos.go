package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// VideoListData feeds the video list template.
type VideoListData struct {
	Videos   []*models.Video
	Statuses []models.Status
	Moods    []models.Mood
	Status   string
	Mood     string
	Search   string
	Page     int
	PrevPage int
	NextPage int
	HasNext  bool
}

// VideoFormData feeds the video create and edit forms.
type VideoFormData struct {
	Video    *models.Video
	Tracks   []*models.AudioTrack
	Statuses []models.Status
	Moods    []models.Mood
}

// VideoDetailData feeds the video detail template.
type VideoDetailData struct {
	Video      *models.Video
	Track      *models.AudioTrack
	Tags       []string
	Logs       []*models.GenerationLog
	Activity   []*models.ActivityLog
	Projects   []string
	Generating bool
}

func (h *WebHandler) listVideos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	criteria := map[string]any{
		"status": query.Get("status"),
		"mood":   query.Get("mood"),
		"search": query.Get("search"),
	}

	videos, err := h.videos.List(criteria)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	pageVideos, pageNum, hasNext := paginate(videos, query.Get("page"))

	h.render(w, r, "videos_list.html", "Videos", VideoListData{
		Videos:   pageVideos,
		Statuses: models.Statuses,
		Moods:    models.Moods,
		Status:   query.Get("status"),
		Mood:     query.Get("mood"),
		Search:   query.Get("search"),
		Page:     pageNum,
		PrevPage: pageNum - 1,
		NextPage: pageNum + 1,
		HasNext:  hasNext,
	})
}

func (h *WebHandler) newVideoForm(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.audio.List(nil)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "video_form.html", "New video", VideoFormData{
		Tracks:   tracks,
		Statuses: models.Statuses,
		Moods:    models.Moods,
	})
}

func (h *WebHandler) createVideo(w http.ResponseWriter, r *http.Request) {
	video := models.NewVideo(0, models.VideoData{
		AudioTrackID: r.FormValue("audio_track_id"),
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Tags:         r.FormValue("tags"),
		Mood:         models.Mood(r.FormValue("mood")),
	})

	if err := h.videos.Create(video); err != nil {
		h.redirectError(w, r, "/videos/new", err.Error())
		return
	}

	h.recordActivity("create", "video", video.ID(), fmt.Sprintf("Created video %q", video.Title()))
	h.redirect(w, r, "/videos/"+video.ID(), "Video created.")
}

func (h *WebHandler) videoDetail(w http.ResponseWriter, r *http.Request) {
	video, err := h.videos.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrVideoNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	track, err := h.audio.Get(video.AudioTrackID())
	if err != nil && !errors.Is(err, shared.ErrAudioNotFound) {
		h.serverError(w, r, err)
		return
	}

	logs, err := h.logs.ForVideo(video.ID(), 100)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	projects, err := h.projects.ProjectsForVideo(video.ID())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	activity, err := h.activity.ForObject("video", video.ID())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "video_detail.html", video.Title(), VideoDetailData{
		Video:      video,
		Track:      track,
		Tags:       video.TagList(),
		Logs:       logs,
		Activity:   activity,
		Projects:   projects,
		Generating: h.streams.active(video.ID()),
	})
}

func (h *WebHandler) editVideoForm(w http.ResponseWriter, r *http.Request) {
	video, err := h.videos.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrVideoNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	tracks, err := h.audio.List(nil)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "video_form.html", "Edit video", VideoFormData{
		Video:    video,
		Tracks:   tracks,
		Statuses: models.Statuses,
		Moods:    models.Moods,
	})
}

func (h *WebHandler) updateVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.videos.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrVideoNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	video.SetTitle(r.FormValue("title"))
	video.SetDescription(r.FormValue("description"))
	video.SetTags(r.FormValue("tags"))
	video.SetMood(models.Mood(r.FormValue("mood")))
	if status := models.Status(r.FormValue("status")); status.Valid() {
		video.SetStatus(status)
	}
	if raw := r.FormValue("generation_progress"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			video.SetGenerationProgress(p)
		}
	}

	if err := h.videos.Update(video); err != nil {
		h.redirectError(w, r, "/videos/"+video.ID()+"/edit", err.Error())
		return
	}

	h.recordActivity("update", "video", video.ID(), fmt.Sprintf("Updated video %q", video.Title()))
	h.redirect(w, r, "/videos/"+video.ID(), "Video updated.")
}

func (h *WebHandler) deleteVideo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.videos.Delete(id); err != nil {
		if errors.Is(err, shared.ErrVideoNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.recordActivity("delete", "video", id, "Deleted video")
	h.redirect(w, r, "/videos", "Video deleted.")
}

func (h *WebHandler) generateVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.videos.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrVideoNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	detail := "/videos/" + video.ID()
	if video.Status() == models.StatusProcessing || h.streams.active(video.ID()) {
		h.redirectError(w, r, detail, "A generation is already running for this video.")
		return
	}

	background := r.FormValue("background")
	progress, err := h.streams.start(video.ID())
	if err != nil {
		h.redirectError(w, r, detail, "A generation is already running for this video.")
		return
	}

	go func() {
		defer h.streams.finish(video.ID())
		if _, err := h.engine.Generate(context.Background(), progress, video.ID(), background); err != nil && h.logger != nil {
			h.logger.Error("generation failed", "video", video.ID(), "error", err)
		}
	}()

	h.recordActivity("generate", "video", video.ID(), fmt.Sprintf("Started generation for %q", video.Title()))
	h.redirect(w, r, detail, "Generation started.")
}
