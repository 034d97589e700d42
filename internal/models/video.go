package models

import (
	"fmt"
	"strings"
	"time"
)

// Status enumerates the lifecycle states of a generated video.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
	StatusArchived   Status = "archived"
)

// Statuses lists every valid video status in dashboard display order.
var Statuses = []Status{StatusReady, StatusProcessing, StatusPending, StatusFailed, StatusDraft, StatusArchived}

// statusBadgeClasses maps each status to the CSS badge class rendered in the web UI.
var statusBadgeClasses = map[Status]string{
	StatusDraft:      "secondary",
	StatusPending:    "info",
	StatusProcessing: "warning",
	StatusReady:      "success",
	StatusFailed:     "danger",
	StatusArchived:   "secondary",
}

// defaultProgressByStatus maps a status to the progress value applied
// when an external process reports a status change without an explicit
// progress figure. Failed has no default so the last known value (or
// an explicit reset) wins.
var defaultProgressByStatus = map[Status]int{
	StatusDraft:      0,
	StatusPending:    25,
	StatusProcessing: 75,
	StatusReady:      100,
	StatusArchived:   100,
}

// Valid reports whether s is a known video status.
func (s Status) Valid() bool {
	_, ok := statusBadgeClasses[s]
	return ok
}

// BadgeClass returns the CSS badge class for this status, defaulting to "secondary".
func (s Status) BadgeClass() string {
	if class, ok := statusBadgeClasses[s]; ok {
		return class
	}
	return "secondary"
}

// Label returns the title-cased display label for this status.
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[0])) + string(s[1:])
}

// DefaultProgress returns the default generation progress for this status
// and whether one is defined.
func (s Status) DefaultProgress() (int, bool) {
	v, ok := defaultProgressByStatus[s]
	return v, ok
}

// Mood enumerates the selectable moods for a generated video.
type Mood string

const (
	MoodSad      Mood = "sad"
	MoodHappy    Mood = "happy"
	MoodEpic     Mood = "epic"
	MoodRomantic Mood = "romantic"
	MoodDark     Mood = "dark"
	MoodChill    Mood = "chill"
)

// Moods lists every selectable mood.
var Moods = []Mood{MoodSad, MoodHappy, MoodEpic, MoodRomantic, MoodDark, MoodChill}

// Valid reports whether m is empty or a known mood.
func (m Mood) Valid() bool {
	if m == "" {
		return true
	}
	for _, mood := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}

// ClampProgress restricts a progress value to the inclusive [0, 100] range.
func ClampProgress(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// VideoData carries the serializable fields of a generated video.
type VideoData struct {
	AudioTrackID       string     `json:"audio_track_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	VideoFile          string     `json:"video_file"`
	Thumbnail          string     `json:"thumbnail"`
	FileSizeBytes      *int64     `json:"file_size_bytes"`
	DurationSeconds    *int       `json:"duration_seconds"`
	Resolution         string     `json:"resolution"`
	AspectRatio        string     `json:"aspect_ratio"`
	Status             Status     `json:"status"`
	ErrorMessage       string     `json:"error_message"`
	ErrorCode          string     `json:"error_code"`
	CurrentStage       string     `json:"current_stage"`
	LastErrorMessage   string     `json:"last_error_message"`
	LastErrorAt        *time.Time `json:"last_error_at"`
	IsActive           bool       `json:"is_active"`
	Tags               string     `json:"tags"`
	Mood               Mood       `json:"mood"`
	PromptUsed         string     `json:"prompt_used"`
	ModelName          string     `json:"model_name"`
	GenerationTimeMS   *int       `json:"generation_time_ms"`
	GenerationProgress *int       `json:"generation_progress"`
	GenerationLog      string     `json:"generation_log"`
	Seed               *int64     `json:"seed"`
}

// Video is a persistent generated music video tied to an audio track.
type Video struct {
	base
	data VideoData
}

// NewVideo creates a Video with the given sequence number and data,
// defaulting status to draft. The active flag defaults to true; use
// SetIsActive after construction to archive-on-create.
func NewVideo(sequence int, data VideoData) *Video {
	if data.Status == "" {
		data.Status = StatusDraft
	}
	data.IsActive = true
	return &Video{base: newBase(sequence), data: data}
}

// RestoreVideo rebuilds a Video from persisted data without applying
// construction defaults. Used by repositories when scanning rows.
func RestoreVideo(sequence int, data VideoData) *Video {
	return &Video{base: newBase(sequence), data: data}
}

// Validate checks required fields and enumeration membership.
func (v *Video) Validate() error {
	if v.data.Title == "" {
		return fmt.Errorf("video title is required")
	}
	if v.data.AudioTrackID == "" {
		return fmt.Errorf("video requires an audio track")
	}
	if !v.data.Status.Valid() {
		return fmt.Errorf("invalid video status: %s", v.data.Status)
	}
	if !v.data.Mood.Valid() {
		return fmt.Errorf("invalid video mood: %s", v.data.Mood)
	}
	if p := v.data.GenerationProgress; p != nil && (*p < 0 || *p > 100) {
		return fmt.Errorf("generation progress out of range: %d", *p)
	}
	return nil
}

// Data returns a copy of the video's serializable fields.
func (v *Video) Data() VideoData { return v.data }

func (v *Video) AudioTrackID() string { return v.data.AudioTrackID }
func (v *Video) Title() string { return v.data.Title }
func (v *Video) Description() string { return v.data.Description }
func (v *Video) VideoFile() string { return v.data.VideoFile }
func (v *Video) Thumbnail() string { return v.data.Thumbnail }
func (v *Video) FileSizeBytes() *int64 { return v.data.FileSizeBytes }
func (v *Video) DurationSeconds() *int { return v.data.DurationSeconds }
func (v *Video) Resolution() string { return v.data.Resolution }
func (v *Video) AspectRatio() string { return v.data.AspectRatio }
func (v *Video) Status() Status { return v.data.Status }
func (v *Video) ErrorMessage() string { return v.data.ErrorMessage }
func (v *Video) ErrorCode() string { return v.data.ErrorCode }
func (v *Video) CurrentStage() string { return v.data.CurrentStage }
func (v *Video) LastErrorMessage() string { return v.data.LastErrorMessage }
func (v *Video) LastErrorAt() *time.Time { return v.data.LastErrorAt }
func (v *Video) IsActive() bool { return v.data.IsActive }
func (v *Video) Tags() string { return v.data.Tags }
func (v *Video) Mood() Mood { return v.data.Mood }
func (v *Video) PromptUsed() string { return v.data.PromptUsed }
func (v *Video) ModelName() string { return v.data.ModelName }
func (v *Video) GenerationTimeMS() *int { return v.data.GenerationTimeMS }
func (v *Video) GenerationProgress() *int { return v.data.GenerationProgress }
func (v *Video) GenerationLog() string { return v.data.GenerationLog }
func (v *Video) Seed() *int64 { return v.data.Seed }

func (v *Video) SetTitle(title string) { v.data.Title = title }
func (v *Video) SetDescription(d string) { v.data.Description = d }
func (v *Video) SetVideoFile(path string) { v.data.VideoFile = path }
func (v *Video) SetThumbnail(path string) { v.data.Thumbnail = path }
func (v *Video) SetFileSizeBytes(n int64) { v.data.FileSizeBytes = &n }
func (v *Video) SetDurationSeconds(n int) { v.data.DurationSeconds = &n }
func (v *Video) SetResolution(r string) { v.data.Resolution = r }
func (v *Video) SetAspectRatio(r string) { v.data.AspectRatio = r }
func (v *Video) SetStatus(s Status) { v.data.Status = s }
func (v *Video) SetErrorMessage(msg string) { v.data.ErrorMessage = msg }
func (v *Video) SetErrorCode(code string) { v.data.ErrorCode = code }
func (v *Video) SetCurrentStage(stage string) { v.data.CurrentStage = stage }
func (v *Video) SetIsActive(active bool) { v.data.IsActive = active }
func (v *Video) SetTags(tags string) { v.data.Tags = tags }
func (v *Video) SetMood(m Mood) { v.data.Mood = m }
func (v *Video) SetPromptUsed(p string) { v.data.PromptUsed = p }
func (v *Video) SetModelName(n string) { v.data.ModelName = n }
func (v *Video) SetGenerationTimeMS(ms int) { v.data.GenerationTimeMS = &ms }
func (v *Video) SetSeed(seed int64) { v.data.Seed = &seed }

// SetLastError records the most recent failure message and timestamp.
func (v *Video) SetLastError(msg string, at *time.Time) {
	v.data.LastErrorMessage = msg
	v.data.LastErrorAt = at
}

// SetGenerationProgress clamps and records generation progress.
func (v *Video) SetGenerationProgress(p int) {
	clamped := ClampProgress(p)
	v.data.GenerationProgress = &clamped
}

// ClearGenerationProgress removes the recorded progress value.
func (v *Video) ClearGenerationProgress() {
	v.data.GenerationProgress = nil
}

// AppendGenerationLog appends an entry to the accumulated generation
// log, joining with a newline when prior content exists.
func (v *Video) AppendGenerationLog(entry string) {
	if entry == "" {
		return
	}
	if v.data.GenerationLog == "" {
		v.data.GenerationLog = entry
		return
	}
	v.data.GenerationLog = v.data.GenerationLog + "\n" + entry
}

// TagList splits the comma-separated tags field into trimmed, non-empty tags.
func (v *Video) TagList() []string {
	if v.data.Tags == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(v.data.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// VideoPayload is the JSON representation of a video exposed by the REST API.
type VideoPayload struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	VideoData
}

// Payload returns the API representation of the video.
func (v *Video) Payload() VideoPayload {
	return VideoPayload{
		ID:        v.id,
		CreatedAt: v.createdAt,
		UpdatedAt: v.updatedAt,
		VideoData: v.data,
	}
}
