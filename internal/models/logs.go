package models

import (
	"fmt"
	"time"
)

// LogStatus enumerates the outcome recorded for a generation stage.
type LogStatus string

const (
	LogStarted LogStatus = "started"
	LogSuccess LogStatus = "success"
	LogFailed  LogStatus = "failed"
	LogInfo    LogStatus = "info"
)

// Valid reports whether s is a known log status.
func (s LogStatus) Valid() bool {
	switch s {
	case LogStarted, LogSuccess, LogFailed, LogInfo:
		return true
	}
	return false
}

// GenerationLog is a persistent per-stage log row attached to a video.
type GenerationLog struct {
	base
	videoID string
	stage   string
	status  LogStatus
	message string
	detail  string
}

// NewGenerationLog creates a GenerationLog for the given video and stage.
func NewGenerationLog(sequence int, videoID, stage string, status LogStatus, message, detail string) *GenerationLog {
	return &GenerationLog{
		base:    newBase(sequence),
		videoID: videoID,
		stage:   stage,
		status:  status,
		message: message,
		detail:  detail,
	}
}

// Validate checks the log's required fields and status membership.
func (l *GenerationLog) Validate() error {
	if l.videoID == "" {
		return fmt.Errorf("generation log requires a video")
	}
	if l.stage == "" {
		return fmt.Errorf("generation log stage is required")
	}
	if !l.status.Valid() {
		return fmt.Errorf("invalid generation log status: %s", l.status)
	}
	return nil
}

func (l *GenerationLog) VideoID() string   { return l.videoID }
func (l *GenerationLog) Stage() string     { return l.stage }
func (l *GenerationLog) Status() LogStatus { return l.status }
func (l *GenerationLog) Message() string   { return l.message }
func (l *GenerationLog) Detail() string    { return l.detail }

// GenerationLogPayload is the JSON representation of a generation log row.
type GenerationLogPayload struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	Stage     string    `json:"stage"`
	Status    LogStatus `json:"status"`
	Message   string    `json:"message"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// Payload returns the API representation of the log row.
func (l *GenerationLog) Payload() GenerationLogPayload {
	return GenerationLogPayload{
		ID:        l.id,
		VideoID:   l.videoID,
		Stage:     l.stage,
		Status:    l.status,
		Message:   l.message,
		Detail:    l.detail,
		CreatedAt: l.createdAt,
	}
}

// ActivityLog is a persistent audit record of a mutation performed
// through the web UI, API or CLI.
type ActivityLog struct {
	base
	actor       string
	action      string
	objectType  string
	objectID    string
	description string
}

// NewActivityLog creates an ActivityLog entry.
func NewActivityLog(sequence int, actor, action, objectType, objectID, description string) *ActivityLog {
	return &ActivityLog{
		base:        newBase(sequence),
		actor:       actor,
		action:      action,
		objectType:  objectType,
		objectID:    objectID,
		description: description,
	}
}

// Validate checks the activity's required fields.
func (a *ActivityLog) Validate() error {
	if a.action == "" {
		return fmt.Errorf("activity action is required")
	}
	if a.objectType == "" {
		return fmt.Errorf("activity object type is required")
	}
	return nil
}

func (a *ActivityLog) Actor() string       { return a.actor }
func (a *ActivityLog) Action() string      { return a.action }
func (a *ActivityLog) ObjectType() string  { return a.objectType }
func (a *ActivityLog) ObjectID() string    { return a.objectID }
func (a *ActivityLog) Description() string { return a.description }
