package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// AudioListData feeds the audio track list template.
type AudioListData struct {
	Tracks  []*models.AudioTrack
	Search   string
	Page     int
	PrevPage int
	NextPage int
	HasNext  bool
}

// AudioDetailData feeds the audio detail template.
type AudioDetailData struct {
	Track  *models.AudioTrack
	Videos []*models.Video
}

func (h *WebHandler) listAudio(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	tracks, err := h.audio.List(map[string]any{"search": search})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	pageTracks, pageNum, hasNext := paginate(tracks, r.URL.Query().Get("page"))

	h.render(w, r, "audio_list.html", "Audio tracks", AudioListData{
		Tracks:   pageTracks,
		Search:   search,
		Page:     pageNum,
		PrevPage: pageNum - 1,
		NextPage: pageNum + 1,
		HasNext:  hasNext,
	})
}

func (h *WebHandler) newAudioForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "audio_form.html", "New audio track", (*models.AudioTrack)(nil))
}

func (h *WebHandler) createAudio(w http.ResponseWriter, r *http.Request) {
	track := models.NewAudioTrack(0, models.AudioData{
		Title:     r.FormValue("title"),
		Artist:    r.FormValue("artist"),
		AudioFile: r.FormValue("audio_file"),
		Lyrics:    r.FormValue("lyrics"),
		Language:  r.FormValue("language"),
	})
	if raw := r.FormValue("bpm"); raw != "" {
		if bpm, err := strconv.Atoi(raw); err == nil {
			track.SetBPM(bpm)
		}
	}

	if err := h.audio.Create(track); err != nil {
		h.redirectError(w, r, "/audio/new", err.Error())
		return
	}

	h.recordActivity("create", "audio_track", track.ID(), fmt.Sprintf("Created audio track %q", track.Title()))
	h.redirect(w, r, "/audio/"+track.ID(), "Audio track created.")
}

func (h *WebHandler) audioDetail(w http.ResponseWriter, r *http.Request) {
	track, err := h.audio.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrAudioNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	videos, err := h.videos.List(map[string]any{"audio_track_id": track.ID()})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "audio_detail.html", track.Title(), AudioDetailData{Track: track, Videos: videos})
}

func (h *WebHandler) editAudioForm(w http.ResponseWriter, r *http.Request) {
	track, err := h.audio.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrAudioNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "audio_form.html", "Edit audio track", track)
}

func (h *WebHandler) updateAudio(w http.ResponseWriter, r *http.Request) {
	track, err := h.audio.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrAudioNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	track.SetTitle(r.FormValue("title"))
	track.SetArtist(r.FormValue("artist"))
	track.SetAudioFile(r.FormValue("audio_file"))
	track.SetLyrics(r.FormValue("lyrics"))
	track.SetLanguage(r.FormValue("language"))
	if raw := r.FormValue("bpm"); raw != "" {
		if bpm, err := strconv.Atoi(raw); err == nil {
			track.SetBPM(bpm)
		}
	}

	if err := h.audio.Update(track); err != nil {
		h.redirectError(w, r, "/audio/"+track.ID()+"/edit", err.Error())
		return
	}

	h.recordActivity("update", "audio_track", track.ID(), fmt.Sprintf("Updated audio track %q", track.Title()))
	h.redirect(w, r, "/audio/"+track.ID(), "Audio track updated.")
}

func (h *WebHandler) deleteAudio(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.audio.Delete(id); err != nil {
		if errors.Is(err, shared.ErrAudioNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.recordActivity("delete", "audio_track", id, "Deleted audio track")
	h.redirect(w, r, "/audio", "Audio track deleted.")
}

// generateFromAudio creates a draft video for the track and lands on
// its detail page ready to start generation.
func (h *WebHandler) generateFromAudio(w http.ResponseWriter, r *http.Request) {
	track, err := h.audio.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrAudioNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = fmt.Sprintf("%s Video", track.Title())
	}

	video := models.NewVideo(0, models.VideoData{
		AudioTrackID: track.ID(),
		Title:        title,
		Mood:         models.Mood(r.FormValue("mood")),
	})
	if err := h.videos.Create(video); err != nil {
		h.redirectError(w, r, "/audio/"+track.ID(), err.Error())
		return
	}

	h.recordActivity("create", "video", video.ID(), fmt.Sprintf("Created video %q from audio track", video.Title()))
	h.redirect(w, r, "/videos/"+video.ID(), "Video created from audio track.")
}
