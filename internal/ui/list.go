package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mvx/internal/models"
)

var _ list.Item = videoItem{}

// videoItem wraps [models.Video] to implement [list.Item].
type videoItem struct {
	video *models.Video
}

func (i videoItem) FilterValue() string { return i.video.Title() }
func (i videoItem) Title() string       { return i.video.Title() }
func (i videoItem) Description() string {
	desc := string(i.video.Status())
	if i.video.Mood() != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.video.Mood())
	}
	if p := i.video.GenerationProgress(); p != nil {
		desc = fmt.Sprintf("%s • %d%%", desc, *p)
	}
	return desc
}
