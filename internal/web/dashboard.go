package web

import (
	"net/http"

	"github.com/desertthunder/mvx/internal/models"
)

// StatusCount is one row of the dashboard status summary.
type StatusCount struct {
	Status models.Status
	Label  string
	Badge  string
	Count  int
}

// MoodCount is one row of the dashboard mood summary.
type MoodCount struct {
	Mood  models.Mood
	Count int
}

// DashboardData feeds the dashboard template.
type DashboardData struct {
	VideoCount     int
	AudioCount     int
	ProjectCount   int
	Statuses       []StatusCount
	Moods          []MoodCount
	Recent         []*models.Video
	RecentFailures []*models.GenerationLog
}

func (h *WebHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	videoCount, err := h.videos.Count()
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	audioCount, err := h.audio.Count()
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	projectCount, err := h.projects.Count()
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	byStatus, err := h.videos.CountByStatus()
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	statuses := make([]StatusCount, 0, len(models.Statuses))
	for _, status := range models.Statuses {
		statuses = append(statuses, StatusCount{
			Status: status,
			Label:  status.Label(),
			Badge:  status.BadgeClass(),
			Count:  byStatus[status],
		})
	}

	byMood, err := h.videos.CountByMood()
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	moods := make([]MoodCount, 0, len(models.Moods))
	for _, mood := range models.Moods {
		if byMood[mood] > 0 {
			moods = append(moods, MoodCount{Mood: mood, Count: byMood[mood]})
		}
	}

	recent, err := h.videos.Recent(5)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	failures, err := h.logs.RecentFailures(5)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "dashboard.html", "Dashboard", DashboardData{
		VideoCount:     videoCount,
		AudioCount:     audioCount,
		ProjectCount:   projectCount,
		Statuses:       statuses,
		Moods:          moods,
		Recent:         recent,
		RecentFailures: failures,
	})
}
