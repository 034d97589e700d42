package models

import (
	"slices"
	"strings"
	"testing"
)

func TestStatus(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		for _, s := range Statuses {
			if !s.Valid() {
				t.Errorf("expected %s to be valid", s)
			}
		}
		if Status("exploded").Valid() {
			t.Error("expected unknown status to be invalid")
		}
		if Status("").Valid() {
			t.Error("expected empty status to be invalid")
		}
	})

	t.Run("BadgeClass", func(t *testing.T) {
		tc := []struct {
			status Status
			want   string
		}{
			{StatusReady, "success"},
			{StatusProcessing, "warning"},
			{StatusPending, "info"},
			{StatusFailed, "danger"},
			{StatusDraft, "secondary"},
			{StatusArchived, "secondary"},
			{Status("unknown"), "secondary"},
		}
		for _, tt := range tc {
			if got := tt.status.BadgeClass(); got != tt.want {
				t.Errorf("BadgeClass(%s) = %v, want %v", tt.status, got, tt.want)
			}
		}
	})

	t.Run("Label", func(t *testing.T) {
		if got := StatusProcessing.Label(); got != "Processing" {
			t.Errorf("expected Processing, got %s", got)
		}
		if got := Status("").Label(); got != "" {
			t.Errorf("expected empty label, got %s", got)
		}
	})

	t.Run("DefaultProgress", func(t *testing.T) {
		tc := []struct {
			status Status
			want   int
			ok     bool
		}{
			{StatusDraft, 0, true},
			{StatusPending, 25, true},
			{StatusProcessing, 75, true},
			{StatusReady, 100, true},
			{StatusArchived, 100, true},
			{StatusFailed, 0, false},
		}
		for _, tt := range tc {
			got, ok := tt.status.DefaultProgress()
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("DefaultProgress(%s) = %d, %v, want %d, %v", tt.status, got, ok, tt.want, tt.ok)
			}
		}
	})
}

func TestMood(t *testing.T) {
	t.Run("empty mood is valid", func(t *testing.T) {
		if !Mood("").Valid() {
			t.Error("expected empty mood to be valid")
		}
	})

	t.Run("known moods are valid", func(t *testing.T) {
		for _, m := range Moods {
			if !m.Valid() {
				t.Errorf("expected %s to be valid", m)
			}
		}
	})

	t.Run("unknown mood is invalid", func(t *testing.T) {
		if Mood("furious").Valid() {
			t.Error("expected unknown mood to be invalid")
		}
	})
}

func TestClampProgress(t *testing.T) {
	tc := []struct {
		name string
		in   int
		want int
	}{
		{name: "below range", in: -5, want: 0},
		{name: "lower bound", in: 0, want: 0},
		{name: "in range", in: 42, want: 42},
		{name: "upper bound", in: 100, want: 100},
		{name: "above range", in: 150, want: 100},
	}
	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampProgress(tt.in); got != tt.want {
				t.Errorf("ClampProgress(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestVideo(t *testing.T) {
	t.Run("NewVideo defaults", func(t *testing.T) {
		video := NewVideo(1, VideoData{Title: "Test", AudioTrackID: "track-1"})

		if video.Status() != StatusDraft {
			t.Errorf("expected draft status, got %s", video.Status())
		}
		if !video.IsActive() {
			t.Error("expected new video to be active")
		}
		if video.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", video.Sequence())
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			data    VideoData
			wantErr string
		}{
			{
				name: "valid",
				data: VideoData{Title: "T", AudioTrackID: "a"},
			},
			{
				name:    "missing title",
				data:    VideoData{AudioTrackID: "a"},
				wantErr: "title is required",
			},
			{
				name:    "missing audio track",
				data:    VideoData{Title: "T"},
				wantErr: "requires an audio track",
			},
			{
				name:    "invalid mood",
				data:    VideoData{Title: "T", AudioTrackID: "a", Mood: "furious"},
				wantErr: "invalid video mood",
			},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				err := NewVideo(0, tt.data).Validate()
				if tt.wantErr == "" {
					if err != nil {
						t.Errorf("unexpected error: %v", err)
					}
					return
				}
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
				}
			})
		}

		t.Run("progress out of range", func(t *testing.T) {
			p := 120
			video := RestoreVideo(0, VideoData{
				Title:              "T",
				AudioTrackID:       "a",
				Status:             StatusDraft,
				GenerationProgress: &p,
			})

			if err := video.Validate(); err == nil {
				t.Error("expected error for out-of-range progress")
			}
		})
	})

	t.Run("SetGenerationProgress clamps", func(t *testing.T) {
		video := NewVideo(0, VideoData{Title: "T", AudioTrackID: "a"})

		video.SetGenerationProgress(150)
		if p := video.GenerationProgress(); p == nil || *p != 100 {
			t.Errorf("expected clamped progress 100, got %v", p)
		}

		video.SetGenerationProgress(-10)
		if p := video.GenerationProgress(); p == nil || *p != 0 {
			t.Errorf("expected clamped progress 0, got %v", p)
		}

		video.ClearGenerationProgress()
		if video.GenerationProgress() != nil {
			t.Error("expected progress to be cleared")
		}
	})

	t.Run("AppendGenerationLog", func(t *testing.T) {
		video := NewVideo(0, VideoData{Title: "T", AudioTrackID: "a"})

		video.AppendGenerationLog("")
		if video.GenerationLog() != "" {
			t.Error("expected empty entry to be ignored")
		}

		video.AppendGenerationLog("step one")
		if video.GenerationLog() != "step one" {
			t.Errorf("expected first entry without separator, got %q", video.GenerationLog())
		}

		video.AppendGenerationLog("step two")
		if video.GenerationLog() != "step one\nstep two" {
			t.Errorf("expected newline-joined log, got %q", video.GenerationLog())
		}
	})

	t.Run("TagList", func(t *testing.T) {
		tc := []struct {
			name string
			tags string
			want []string
		}{
			{name: "empty", tags: "", want: nil},
			{name: "single", tags: "synthwave", want: []string{"synthwave"}},
			{name: "trimmed", tags: " neon , retro ,  night drive ", want: []string{"neon", "retro", "night drive"}},
			{name: "skips empty segments", tags: "a,,b,", want: []string{"a", "b"}},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				video := NewVideo(0, VideoData{Title: "T", AudioTrackID: "a", Tags: tt.tags})
				if got := video.TagList(); !slices.Equal(got, tt.want) {
					t.Errorf("TagList() = %v, want %v", got, tt.want)
				}
			})
		}
	})

	t.Run("Payload includes base fields", func(t *testing.T) {
		video := NewVideo(3, VideoData{Title: "T", AudioTrackID: "a"})
		video.SetID("abc-123")

		payload := video.Payload()
		if payload.ID != "abc-123" {
			t.Errorf("expected payload ID, got %s", payload.ID)
		}
		if payload.Title != "T" {
			t.Errorf("expected payload title, got %s", payload.Title)
		}
		if payload.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}
	})
}

func TestAudioTrack(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		track := NewAudioTrack(0, AudioData{Title: "Song"})
		if err := track.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		track = NewAudioTrack(0, AudioData{})
		if err := track.Validate(); err == nil {
			t.Error("expected error for missing title")
		}

		bpm := -1
		track = NewAudioTrack(0, AudioData{Title: "Song", BPM: &bpm})
		if err := track.Validate(); err == nil {
			t.Error("expected error for negative bpm")
		}
	})

	t.Run("SetBPM", func(t *testing.T) {
		track := NewAudioTrack(0, AudioData{Title: "Song"})
		track.SetBPM(128)
		if bpm := track.BPM(); bpm == nil || *bpm != 128 {
			t.Errorf("expected bpm 128, got %v", bpm)
		}
	})
}

func TestProject(t *testing.T) {
	t.Run("defaults to active", func(t *testing.T) {
		project := NewProject(0, ProjectData{Name: "Reel"})
		if !project.IsActive() {
			t.Error("expected new project to be active")
		}
	})

	t.Run("Validate requires name", func(t *testing.T) {
		if err := NewProject(0, ProjectData{}).Validate(); err == nil {
			t.Error("expected error for missing name")
		}
	})

	t.Run("Payload carries ordered members", func(t *testing.T) {
		project := NewProject(0, ProjectData{Name: "Reel"})
		project.SetVideoIDs([]string{"v2", "v1", "v3"})

		payload := project.Payload()
		if !slices.Equal(payload.VideoIDs, []string{"v2", "v1", "v3"}) {
			t.Errorf("expected ordered member IDs, got %v", payload.VideoIDs)
		}
	})
}

func TestProvider(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		provider := NewProvider(0, ProviderData{
			Name:         "Studio API",
			BaseURL:      "https://api.example.com",
			EndpointPath: "/v1/generate",
		})
		if err := provider.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		provider = NewProvider(0, ProviderData{BaseURL: "https://api.example.com", EndpointPath: "/v1"})
		if err := provider.Validate(); err == nil {
			t.Error("expected error for missing name")
		}

		provider = NewProvider(0, ProviderData{Name: "X", BaseURL: "https://api.example.com"})
		if err := provider.Validate(); err == nil {
			t.Error("expected error for missing endpoint path")
		}
	})

	t.Run("Endpoint joins with single slash", func(t *testing.T) {
		tc := []struct {
			name string
			base string
			path string
			want string
		}{
			{name: "both with slashes", base: "https://api.example.com/", path: "/v1/generate", want: "https://api.example.com/v1/generate"},
			{name: "neither with slashes", base: "https://api.example.com", path: "v1/generate", want: "https://api.example.com/v1/generate"},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				provider := NewProvider(0, ProviderData{Name: "X", BaseURL: tt.base, EndpointPath: tt.path})
				if got := provider.Endpoint(); got != tt.want {
					t.Errorf("Endpoint() = %v, want %v", got, tt.want)
				}
			})
		}
	})
}

func TestGenerationJob(t *testing.T) {
	t.Run("defaults to pending", func(t *testing.T) {
		job := NewGenerationJob(0, JobData{ProviderID: "p", AudioTrackID: "a", Prompt: "x"})
		if job.Status() != JobPending {
			t.Errorf("expected pending, got %s", job.Status())
		}
		if job.Finished() {
			t.Error("expected pending job to be unfinished")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		job := NewGenerationJob(0, JobData{AudioTrackID: "a", Prompt: "x"})
		if err := job.Validate(); err == nil {
			t.Error("expected error for missing provider")
		}

		job = NewGenerationJob(0, JobData{ProviderID: "p", AudioTrackID: "a"})
		if err := job.Validate(); err == nil {
			t.Error("expected error for missing prompt")
		}
	})

	t.Run("Finished statuses", func(t *testing.T) {
		tc := []struct {
			status JobStatus
			want   bool
		}{
			{JobPending, false},
			{JobRunning, false},
			{JobSuccess, true},
			{JobFailed, true},
		}
		for _, tt := range tc {
			if got := tt.status.Finished(); got != tt.want {
				t.Errorf("Finished(%s) = %v, want %v", tt.status, got, tt.want)
			}
		}
	})
}
