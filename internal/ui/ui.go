package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	VideoListView ViewState = iota
	VideoDetailView
	ConfirmView
	GenerateView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	videos       *repositories.VideoRepository
	audio        *repositories.AudioRepository
	engine       *tasks.Engine
	background   string
	width        int
	height       int
	videoList    list.Model
	selected     *models.Video
	track        *models.AudioTrack
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *models.Video
	err          error
	help         help.Model
	keys         keyMap
}

type videosLoadedMsg struct {
	videos []*models.Video
	err    error
}

type videoSelectedMsg struct {
	video *models.Video
	track *models.AudioTrack
	err   error
}

type progressUpdateMsg tasks.ProgressUpdate

type generateCompleteMsg struct {
	video *models.Video
	err   error
}

// NewModel creates a new TUI model with the provided dependencies.
// background is the media-relative path of the clip to compose behind
// the audio track when a generation is started.
func NewModel(ctx context.Context, videos *repositories.VideoRepository, audio *repositories.AudioRepository, engine *tasks.Engine, background string) *Model {
	return &Model{
		ctx:        ctx,
		view:       VideoListView,
		videos:     videos,
		audio:      audio,
		engine:     engine,
		background: background,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by loading the video library.
func (m *Model) Init() tea.Cmd {
	return m.loadVideos()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.videoList.Width() == 0 {
			m.videoList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case VideoListView:
			return m.handleListKeys(msg)
		case VideoDetailView:
			return m.handleDetailKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case videosLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.videos))
		for i, video := range msg.videos {
			items[i] = videoItem{video: video}
		}
		m.videoList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.videoList.Title = "Video Library"
		m.videoList.SetSize(m.width-4, m.height-8)
		return m, nil

	case videoSelectedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = VideoListView
			return m, nil
		}
		m.selected = msg.video
		m.track = msg.track
		m.view = VideoDetailView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case generateCompleteMsg:
		m.result = msg.video
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	if m.view == VideoListView {
		var cmd tea.Cmd
		m.videoList, cmd = m.videoList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case VideoListView:
		return m.renderList()
	case VideoDetailView:
		return m.renderDetail()
	case ConfirmView:
		return m.renderConfirm()
	case GenerateView:
		return m.renderGenerate()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.videoList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(videoItem); ok {
				return m, m.selectVideo(item.video.ID())
			}
		}
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = VideoListView
		return m, nil
	case "g":
		if m.selected.Status() == models.StatusProcessing {
			m.err = fmt.Errorf("a generation is already running for this video")
			return m, nil
		}
		m.view = ConfirmView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n":
		m.view = VideoDetailView
		return m, nil
	case "y":
		m.view = GenerateView
		return m, m.startGenerate()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = VideoListView
		m.selected = nil
		m.track = nil
		m.result = nil
		m.err = nil
		return m, m.loadVideos()
	}
	return m, nil
}

func (m *Model) loadVideos() tea.Cmd {
	return func() tea.Msg {
		videos, err := m.videos.List(nil)
		return videosLoadedMsg{videos: videos, err: err}
	}
}

func (m *Model) selectVideo(id string) tea.Cmd {
	return func() tea.Msg {
		video, err := m.videos.Get(id)
		if err != nil {
			return videoSelectedMsg{err: err}
		}
		track, err := m.audio.Get(video.AudioTrackID())
		if err != nil {
			track = nil
		}
		return videoSelectedMsg{video: video, track: track}
	}
}

func (m *Model) startGenerate() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	videoID := m.selected.ID()
	progressChan := m.progressChan
	go func() {
		video, err := m.engine.Generate(m.ctx, progressChan, videoID, m.background)
		m.result = video
		m.err = err
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return generateCompleteMsg{video: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return generateCompleteMsg{video: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.videoList.View(), helpView)
}

func (m *Model) renderDetail() string {
	video := m.selected
	title := styles.title.Render(video.Title())

	trackLine := "missing"
	if m.track != nil {
		trackLine = fmt.Sprintf("%s (%s)", m.track.Title(), m.track.Artist())
	}

	progress := 0
	if p := video.GenerationProgress(); p != nil {
		progress = *p
	}

	info := fmt.Sprintf(
		"\nStatus: %s\nAudio: %s\nMood: %s\nProgress: %d%%\n",
		video.Status(), trackLine, video.Mood(), progress,
	)
	if video.ErrorMessage() != "" {
		info += styles.err.Render(fmt.Sprintf("Last error: %s", video.ErrorMessage())) + "\n"
	}

	helpKeys := []key.Binding{m.keys.generate, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Generate video for '%s'?", m.selected.Title()))
	info := fmt.Sprintf("\nBackground clip: %s\n", m.background)
	if m.background == "" {
		info = "\n" + styles.warn.Render("No background clip configured; the run will fail validation.") + "\n"
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}

func (m *Model) renderGenerate() string {
	title := styles.title.Render("Generating Video")

	var phase string
	switch m.progress.Phase {
	case tasks.ValidateInputs:
		phase = "Validating inputs..."
	case tasks.ProbeMedia:
		phase = "Probing media durations..."
	case tasks.Compose:
		phase = "Composing with ffmpeg..."
	case tasks.Finalize:
		phase = "Finalizing metadata..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Generation failed: %v\n\nPress r to go back, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to go back, q to quit")
	}

	var title, info string
	if m.result.Status() == models.StatusReady {
		title = styles.ok.Render("✓ Generation Complete!")
		info = fmt.Sprintf("\nVideo: %s\nFile: %s\nResolution: %s\n",
			m.result.Title(), m.result.VideoFile(), m.result.Resolution())
	} else {
		title = styles.err.Render("Generation Failed")
		info = fmt.Sprintf("\n%s (%s)\n", m.result.ErrorMessage(), m.result.ErrorCode())
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n\n%s", title, info, helpView)
}
