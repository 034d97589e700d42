package models

import (
	"fmt"
	"time"
)

// ProjectData carries the serializable fields of a project.
type ProjectData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// Project is a persistent named grouping of generated videos.
//
// Membership lives in a junction table managed by the project
// repository; VideoIDs holds the ordered member IDs when loaded.
type Project struct {
	base
	data     ProjectData
	videoIDs []string
}

// NewProject creates a Project with the given sequence number and data.
// The active flag defaults to true.
func NewProject(sequence int, data ProjectData) *Project {
	data.IsActive = true
	return &Project{base: newBase(sequence), data: data}
}

// RestoreProject rebuilds a Project from persisted data without
// applying construction defaults.
func RestoreProject(sequence int, data ProjectData) *Project {
	return &Project{base: newBase(sequence), data: data}
}

// Validate checks that the project has a name.
func (p *Project) Validate() error {
	if p.data.Name == "" {
		return fmt.Errorf("project name is required")
	}
	return nil
}

// Data returns a copy of the project's serializable fields.
func (p *Project) Data() ProjectData { return p.data }

func (p *Project) Name() string        { return p.data.Name }
func (p *Project) Description() string { return p.data.Description }
func (p *Project) IsActive() bool      { return p.data.IsActive }
func (p *Project) VideoIDs() []string  { return p.videoIDs }

func (p *Project) SetName(name string)     { p.data.Name = name }
func (p *Project) SetDescription(d string) { p.data.Description = d }
func (p *Project) SetIsActive(active bool) { p.data.IsActive = active }
func (p *Project) SetVideoIDs(ids []string) {
	p.videoIDs = ids
}

// ProjectPayload is the JSON representation of a project exposed by the REST API.
type ProjectPayload struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ProjectData
	VideoIDs []string `json:"video_ids"`
}

// Payload returns the API representation of the project.
func (p *Project) Payload() ProjectPayload {
	return ProjectPayload{
		ID:          p.id,
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
		ProjectData: p.data,
		VideoIDs:    p.videoIDs,
	}
}
