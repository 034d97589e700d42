package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ProviderData carries the serializable fields of an AI provider configuration.
type ProviderData struct {
	Name         string `json:"name"`
	BaseURL      string `json:"base_url"`
	EndpointPath string `json:"endpoint_path"`
	APIKey       string `json:"-"`
	TokenURL     string `json:"token_url"`
	ExtraHeaders string `json:"extra_headers"`
	ExtraPayload string `json:"extra_payload"`
	IsActive     bool   `json:"is_active"`
}

// Provider is a persistent configuration for an external AI video
// generation service.
type Provider struct {
	base
	data ProviderData
}

// NewProvider creates a Provider with the given sequence number and data.
// The active flag defaults to true.
func NewProvider(sequence int, data ProviderData) *Provider {
	data.IsActive = true
	return &Provider{base: newBase(sequence), data: data}
}

// RestoreProvider rebuilds a Provider from persisted data without
// applying construction defaults.
func RestoreProvider(sequence int, data ProviderData) *Provider {
	return &Provider{base: newBase(sequence), data: data}
}

// Validate checks the provider's required fields and URL shape.
func (p *Provider) Validate() error {
	if p.data.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if p.data.BaseURL == "" {
		return fmt.Errorf("provider base URL is required")
	}
	if _, err := url.Parse(p.data.BaseURL); err != nil {
		return fmt.Errorf("invalid provider base URL: %w", err)
	}
	if p.data.EndpointPath == "" {
		return fmt.Errorf("provider endpoint path is required")
	}
	return nil
}

// Data returns a copy of the provider's serializable fields.
func (p *Provider) Data() ProviderData { return p.data }

func (p *Provider) Name() string         { return p.data.Name }
func (p *Provider) BaseURL() string      { return p.data.BaseURL }
func (p *Provider) EndpointPath() string { return p.data.EndpointPath }
func (p *Provider) APIKey() string       { return p.data.APIKey }
func (p *Provider) TokenURL() string     { return p.data.TokenURL }
func (p *Provider) ExtraHeaders() string { return p.data.ExtraHeaders }
func (p *Provider) ExtraPayload() string { return p.data.ExtraPayload }
func (p *Provider) IsActive() bool       { return p.data.IsActive }

func (p *Provider) SetIsActive(active bool) { p.data.IsActive = active }

// Endpoint joins the base URL and endpoint path with single slashes.
func (p *Provider) Endpoint() string {
	return strings.TrimRight(p.data.BaseURL, "/") + "/" + strings.TrimLeft(p.data.EndpointPath, "/")
}

// ProviderPayload is the JSON representation of a provider exposed by the CLI and API.
type ProviderPayload struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ProviderData
}

// Payload returns the API representation of the provider. The API key
// never serializes.
func (p *Provider) Payload() ProviderPayload {
	return ProviderPayload{
		ID:           p.id,
		CreatedAt:    p.createdAt,
		UpdatedAt:    p.updatedAt,
		ProviderData: p.data,
	}
}

// JobStatus enumerates the lifecycle states of a provider generation job.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobSuccess JobStatus = "success"
	JobFailed  JobStatus = "failed"
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobRunning, JobSuccess, JobFailed:
		return true
	}
	return false
}

// Finished reports whether the status is terminal.
func (s JobStatus) Finished() bool {
	return s == JobSuccess || s == JobFailed
}

// JobData carries the serializable fields of a generation job.
type JobData struct {
	ProviderID        string    `json:"provider_id"`
	AudioTrackID      string    `json:"audio_track_id"`
	BackgroundVideoID string    `json:"background_video_id"`
	VideoID           string    `json:"video_id"`
	Prompt            string    `json:"prompt"`
	Status            JobStatus `json:"status"`
	RequestPayload    string    `json:"request_payload"`
	ResponseRaw       string    `json:"response_raw"`
	ErrorMessage      string    `json:"error_message"`
}

// GenerationJob is a persistent provider-backed video generation job.
type GenerationJob struct {
	base
	data JobData
}

// NewGenerationJob creates a GenerationJob with the given sequence
// number and data, defaulting status to pending.
func NewGenerationJob(sequence int, data JobData) *GenerationJob {
	if data.Status == "" {
		data.Status = JobPending
	}
	return &GenerationJob{base: newBase(sequence), data: data}
}

// Validate checks the job's required references and status membership.
func (j *GenerationJob) Validate() error {
	if j.data.ProviderID == "" {
		return fmt.Errorf("generation job requires a provider")
	}
	if j.data.AudioTrackID == "" {
		return fmt.Errorf("generation job requires an audio track")
	}
	if j.data.Prompt == "" {
		return fmt.Errorf("generation job prompt is required")
	}
	if !j.data.Status.Valid() {
		return fmt.Errorf("invalid job status: %s", j.data.Status)
	}
	return nil
}

// Data returns a copy of the job's serializable fields.
func (j *GenerationJob) Data() JobData { return j.data }

func (j *GenerationJob) ProviderID() string        { return j.data.ProviderID }
func (j *GenerationJob) AudioTrackID() string      { return j.data.AudioTrackID }
func (j *GenerationJob) BackgroundVideoID() string { return j.data.BackgroundVideoID }
func (j *GenerationJob) VideoID() string           { return j.data.VideoID }
func (j *GenerationJob) Prompt() string            { return j.data.Prompt }
func (j *GenerationJob) Status() JobStatus         { return j.data.Status }
func (j *GenerationJob) RequestPayload() string    { return j.data.RequestPayload }
func (j *GenerationJob) ResponseRaw() string       { return j.data.ResponseRaw }
func (j *GenerationJob) ErrorMessage() string      { return j.data.ErrorMessage }

func (j *GenerationJob) SetStatus(s JobStatus) { j.data.Status = s }
func (j *GenerationJob) SetVideoID(id string) { j.data.VideoID = id }
func (j *GenerationJob) SetRequestPayload(body string) { j.data.RequestPayload = body }
func (j *GenerationJob) SetResponseRaw(body string) { j.data.ResponseRaw = body }
func (j *GenerationJob) SetErrorMessage(msg string) { j.data.ErrorMessage = msg }

// Finished reports whether the job reached a terminal status.
func (j *GenerationJob) Finished() bool { return j.data.Status.Finished() }

// JobPayload is the JSON representation of a generation job exposed by the REST API.
type JobPayload struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	JobData
}

// Payload returns the API representation of the job.
func (j *GenerationJob) Payload() JobPayload {
	return JobPayload{
		ID:        j.id,
		CreatedAt: j.createdAt,
		UpdatedAt: j.updatedAt,
		JobData:   j.data,
	}
}
