package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// createTestTrack inserts an audio track to satisfy video foreign keys
func createTestTrack(t *testing.T, db *sql.DB) *models.AudioTrack {
	t.Helper()

	repo := NewAudioRepository(db)
	track := models.NewAudioTrack(0, models.AudioData{
		Title:  "Midnight Drive",
		Artist: "Test Artist",
	})

	if err := repo.Create(track); err != nil {
		t.Fatalf("failed to create audio track: %v", err)
	}

	return track
}

// createTestVideo inserts a video linked to the given audio track
func createTestVideo(t *testing.T, db *sql.DB, audioTrackID, title string, status models.Status) *models.Video {
	t.Helper()

	repo := NewVideoRepository(db)
	video := models.NewVideo(0, models.VideoData{
		AudioTrackID: audioTrackID,
		Title:        title,
		Status:       status,
	})

	if err := repo.Create(video); err != nil {
		t.Fatalf("failed to create video: %v", err)
	}

	return video
}

func TestAudioRepository(t *testing.T) {
	t.Run("Create & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAudioRepository(db)
		track := models.NewAudioTrack(0, models.AudioData{
			Title:    "Midnight Drive",
			Artist:   "Neon Choir",
			Language: "en",
		})
		track.SetBPM(120)

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create audio track: %v", err)
		}

		if track.ID() == "" {
			t.Error("track ID should be set after creation")
		}

		retrieved, err := repo.Get(track.ID())
		if err != nil {
			t.Fatalf("failed to get audio track: %v", err)
		}

		if retrieved.Title() != "Midnight Drive" {
			t.Errorf("expected title 'Midnight Drive', got %s", retrieved.Title())
		}

		if retrieved.BPM() == nil || *retrieved.BPM() != 120 {
			t.Errorf("expected BPM 120, got %v", retrieved.BPM())
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAudioRepository(db)
		track := models.NewAudioTrack(0, models.AudioData{Title: "Midnight Drive"})

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create audio track: %v", err)
		}

		track.SetArtist("Neon Choir")
		track.SetLyrics("City lights below")

		if err := repo.Update(track); err != nil {
			t.Fatalf("failed to update audio track: %v", err)
		}

		retrieved, err := repo.Get(track.ID())
		if err != nil {
			t.Fatalf("failed to get audio track: %v", err)
		}

		if retrieved.Artist() != "Neon Choir" {
			t.Errorf("expected artist 'Neon Choir', got %s", retrieved.Artist())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAudioRepository(db)
		track := models.NewAudioTrack(0, models.AudioData{Title: "Midnight Drive"})

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create audio track: %v", err)
		}

		if err := repo.Delete(track.ID()); err != nil {
			t.Fatalf("failed to delete audio track: %v", err)
		}

		if _, err := repo.Get(track.ID()); err == nil {
			t.Error("expected error when getting deleted audio track")
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAudioRepository(db)

		tracks := []*models.AudioTrack{
			models.NewAudioTrack(0, models.AudioData{Title: "First Light", Language: "en"}),
			models.NewAudioTrack(0, models.AudioData{Title: "Segunda Vida", Language: "es"}),
			models.NewAudioTrack(0, models.AudioData{Title: "Third Rail", Language: "en"}),
		}

		for _, track := range tracks {
			if err := repo.Create(track); err != nil {
				t.Fatalf("failed to create audio track: %v", err)
			}
		}

		all, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list audio tracks: %v", err)
		}

		if len(all) != 3 {
			t.Errorf("expected 3 tracks, got %d", len(all))
		}

		if len(all) > 0 && all[0].Title() != "Third Rail" {
			t.Errorf("expected newest track first, got %s", all[0].Title())
		}

		english, err := repo.List(map[string]any{"language": "en"})
		if err != nil {
			t.Fatalf("failed to list filtered tracks: %v", err)
		}

		if len(english) != 2 {
			t.Errorf("expected 2 english tracks, got %d", len(english))
		}

		matched, err := repo.List(map[string]any{"search": "Segunda"})
		if err != nil {
			t.Fatalf("failed to search tracks: %v", err)
		}

		if len(matched) != 1 {
			t.Errorf("expected 1 matched track, got %d", len(matched))
		}
	})
}

func TestVideoRepository(t *testing.T) {
	t.Run("Create & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		repo := NewVideoRepository(db)

		video := models.NewVideo(0, models.VideoData{
			AudioTrackID: track.ID(),
			Title:        "Skyline Sessions",
			Mood:         models.MoodChill,
			Tags:         "city, night",
		})

		if err := repo.Create(video); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		retrieved, err := repo.Get(video.ID())
		if err != nil {
			t.Fatalf("failed to get video: %v", err)
		}

		if retrieved.Status() != models.StatusDraft {
			t.Errorf("expected default status draft, got %s", retrieved.Status())
		}

		if retrieved.Mood() != models.MoodChill {
			t.Errorf("expected mood chill, got %s", retrieved.Mood())
		}

		if retrieved.GenerationProgress() != nil {
			t.Errorf("expected nil generation progress, got %v", *retrieved.GenerationProgress())
		}

		if !retrieved.IsActive() {
			t.Error("expected new video to be active")
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		repo := NewVideoRepository(db)
		video := createTestVideo(t, db, track.ID(), "Skyline Sessions", models.StatusDraft)

		video.SetStatus(models.StatusProcessing)
		video.SetGenerationProgress(42)
		video.AppendGenerationLog("render started")

		if err := repo.Update(video); err != nil {
			t.Fatalf("failed to update video: %v", err)
		}

		retrieved, err := repo.Get(video.ID())
		if err != nil {
			t.Fatalf("failed to get video: %v", err)
		}

		if retrieved.Status() != models.StatusProcessing {
			t.Errorf("expected status processing, got %s", retrieved.Status())
		}

		if retrieved.GenerationProgress() == nil || *retrieved.GenerationProgress() != 42 {
			t.Errorf("expected progress 42, got %v", retrieved.GenerationProgress())
		}

		if retrieved.GenerationLog() != "render started" {
			t.Errorf("expected generation log to persist, got %q", retrieved.GenerationLog())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		repo := NewVideoRepository(db)
		video := createTestVideo(t, db, track.ID(), "Skyline Sessions", models.StatusDraft)

		if err := repo.Delete(video.ID()); err != nil {
			t.Fatalf("failed to delete video: %v", err)
		}

		if _, err := repo.Get(video.ID()); err == nil {
			t.Error("expected error when getting deleted video")
		}
	})

	t.Run("List filters", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		repo := NewVideoRepository(db)

		createTestVideo(t, db, track.ID(), "Draft One", models.StatusDraft)
		ready := models.NewVideo(0, models.VideoData{
			AudioTrackID: track.ID(),
			Title:        "Ready One",
			Status:       models.StatusReady,
			Mood:         models.MoodEpic,
			Tags:         "orchestral",
		})
		if err := repo.Create(ready); err != nil {
			t.Fatalf("failed to create video: %v", err)
		}

		byStatus, err := repo.List(map[string]any{"status": "ready"})
		if err != nil {
			t.Fatalf("failed to list by status: %v", err)
		}
		if len(byStatus) != 1 || byStatus[0].Title() != "Ready One" {
			t.Errorf("expected only 'Ready One', got %d videos", len(byStatus))
		}

		byMood, err := repo.List(map[string]any{"mood": "epic"})
		if err != nil {
			t.Fatalf("failed to list by mood: %v", err)
		}
		if len(byMood) != 1 {
			t.Errorf("expected 1 epic video, got %d", len(byMood))
		}

		bySearch, err := repo.List(map[string]any{"search": "orchestral"})
		if err != nil {
			t.Fatalf("failed to list by search: %v", err)
		}
		if len(bySearch) != 1 {
			t.Errorf("expected tag search to match 1 video, got %d", len(bySearch))
		}
	})

	t.Run("ListPending", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		repo := NewVideoRepository(db)

		createTestVideo(t, db, track.ID(), "Pending First", models.StatusPending)
		createTestVideo(t, db, track.ID(), "Pending Second", models.StatusPending)
		createTestVideo(t, db, track.ID(), "Not Pending", models.StatusDraft)

		pending, err := repo.ListPending()
		if err != nil {
			t.Fatalf("failed to list pending videos: %v", err)
		}

		if len(pending) != 2 {
			t.Fatalf("expected 2 pending videos, got %d", len(pending))
		}

		if pending[0].Title() != "Pending First" {
			t.Errorf("expected oldest pending video first, got %s", pending[0].Title())
		}
	})

	t.Run("Counts", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		repo := NewVideoRepository(db)

		createTestVideo(t, db, track.ID(), "One", models.StatusDraft)
		createTestVideo(t, db, track.ID(), "Two", models.StatusReady)
		createTestVideo(t, db, track.ID(), "Three", models.StatusReady)

		byStatus, err := repo.CountByStatus()
		if err != nil {
			t.Fatalf("failed to count by status: %v", err)
		}

		if byStatus[models.StatusReady] != 2 {
			t.Errorf("expected 2 ready videos, got %d", byStatus[models.StatusReady])
		}

		total, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count videos: %v", err)
		}

		if total != 3 {
			t.Errorf("expected 3 videos, got %d", total)
		}
	})
}

func TestProjectRepository(t *testing.T) {
	t.Run("Create & Get with membership", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		first := createTestVideo(t, db, track.ID(), "First", models.StatusDraft)
		second := createTestVideo(t, db, track.ID(), "Second", models.StatusDraft)

		repo := NewProjectRepository(db)
		project := models.NewProject(0, models.ProjectData{Name: "Album Teasers"})
		project.SetVideoIDs([]string{first.ID(), second.ID()})

		if err := repo.Create(project); err != nil {
			t.Fatalf("failed to create project: %v", err)
		}

		retrieved, err := repo.Get(project.ID())
		if err != nil {
			t.Fatalf("failed to get project: %v", err)
		}

		if retrieved.Name() != "Album Teasers" {
			t.Errorf("expected name 'Album Teasers', got %s", retrieved.Name())
		}

		ids := retrieved.VideoIDs()
		if len(ids) != 2 || ids[0] != first.ID() || ids[1] != second.ID() {
			t.Errorf("expected ordered membership [%s %s], got %v", first.ID(), second.ID(), ids)
		}
	})

	t.Run("SetVideos replaces membership", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		first := createTestVideo(t, db, track.ID(), "First", models.StatusDraft)
		second := createTestVideo(t, db, track.ID(), "Second", models.StatusDraft)

		repo := NewProjectRepository(db)
		project := models.NewProject(0, models.ProjectData{Name: "Album Teasers"})
		project.SetVideoIDs([]string{first.ID()})

		if err := repo.Create(project); err != nil {
			t.Fatalf("failed to create project: %v", err)
		}

		if err := repo.SetVideos(project.ID(), []string{second.ID()}); err != nil {
			t.Fatalf("failed to replace project videos: %v", err)
		}

		ids, err := repo.Videos(project.ID())
		if err != nil {
			t.Fatalf("failed to load project videos: %v", err)
		}

		if len(ids) != 1 || ids[0] != second.ID() {
			t.Errorf("expected membership [%s], got %v", second.ID(), ids)
		}
	})

	t.Run("Delete clears membership", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		video := createTestVideo(t, db, track.ID(), "First", models.StatusDraft)

		repo := NewProjectRepository(db)
		project := models.NewProject(0, models.ProjectData{Name: "Album Teasers"})
		project.SetVideoIDs([]string{video.ID()})

		if err := repo.Create(project); err != nil {
			t.Fatalf("failed to create project: %v", err)
		}

		if err := repo.Delete(project.ID()); err != nil {
			t.Fatalf("failed to delete project: %v", err)
		}

		projects, err := repo.ProjectsForVideo(video.ID())
		if err != nil {
			t.Fatalf("failed to load video projects: %v", err)
		}

		if len(projects) != 0 {
			t.Errorf("expected no projects for video after delete, got %v", projects)
		}
	})
}

func TestGenerationLogRepository(t *testing.T) {
	t.Run("ForVideo newest first", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		video := createTestVideo(t, db, track.ID(), "Skyline Sessions", models.StatusDraft)

		repo := NewGenerationLogRepository(db)

		stages := []string{"validate_inputs", "compose", "finalize"}
		for _, stage := range stages {
			entry := models.NewGenerationLog(0, video.ID(), stage, models.LogSuccess, stage+" done", "")
			if err := repo.Create(entry); err != nil {
				t.Fatalf("failed to create generation log: %v", err)
			}
		}

		entries, err := repo.ForVideo(video.ID(), 0)
		if err != nil {
			t.Fatalf("failed to list generation logs: %v", err)
		}

		if len(entries) != 3 {
			t.Fatalf("expected 3 log entries, got %d", len(entries))
		}

		if entries[0].Stage() != "finalize" {
			t.Errorf("expected newest entry first, got %s", entries[0].Stage())
		}

		limited, err := repo.ForVideo(video.ID(), 2)
		if err != nil {
			t.Fatalf("failed to list limited logs: %v", err)
		}

		if len(limited) != 2 {
			t.Errorf("expected 2 log entries with limit, got %d", len(limited))
		}
	})

	t.Run("RecentFailures", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		track := createTestTrack(t, db)
		video := createTestVideo(t, db, track.ID(), "Skyline Sessions", models.StatusDraft)

		repo := NewGenerationLogRepository(db)

		ok := models.NewGenerationLog(0, video.ID(), "compose", models.LogSuccess, "done", "")
		if err := repo.Create(ok); err != nil {
			t.Fatalf("failed to create log: %v", err)
		}

		failed := models.NewGenerationLog(0, video.ID(), "compose", models.LogFailed, "ffmpeg exited 1", "stderr output")
		if err := repo.Create(failed); err != nil {
			t.Fatalf("failed to create log: %v", err)
		}

		failures, err := repo.RecentFailures(10)
		if err != nil {
			t.Fatalf("failed to list failures: %v", err)
		}

		if len(failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(failures))
		}

		if failures[0].Detail() != "stderr output" {
			t.Errorf("expected failure detail to persist, got %q", failures[0].Detail())
		}
	})
}

func TestActivityRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewActivityRepository(db)

	entries := []*models.ActivityLog{
		models.NewActivityLog(0, "cli", "create", "video", "v1", "created video"),
		models.NewActivityLog(0, "api", "update", "video", "v1", "updated status"),
		models.NewActivityLog(0, "web", "create", "project", "p1", "created project"),
	}

	for _, entry := range entries {
		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create activity log: %v", err)
		}
	}

	recent, err := repo.Recent(2)
	if err != nil {
		t.Fatalf("failed to list recent activity: %v", err)
	}

	if len(recent) != 2 {
		t.Fatalf("expected 2 recent entries, got %d", len(recent))
	}

	if recent[0].ObjectType() != "project" {
		t.Errorf("expected newest entry first, got %s", recent[0].ObjectType())
	}

	forVideo, err := repo.ForObject("video", "v1")
	if err != nil {
		t.Fatalf("failed to list object activity: %v", err)
	}

	if len(forVideo) != 2 {
		t.Errorf("expected 2 entries for video v1, got %d", len(forVideo))
	}
}

func TestProviderRepository(t *testing.T) {
	t.Run("Create & GetByName", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewProviderRepository(db)
		provider := models.NewProvider(0, models.ProviderData{
			Name:         "runway",
			BaseURL:      "https://api.example.com",
			EndpointPath: "/v1/generate",
			APIKey:       "secret",
		})

		if err := repo.Create(provider); err != nil {
			t.Fatalf("failed to create provider: %v", err)
		}

		retrieved, err := repo.GetByName("runway")
		if err != nil {
			t.Fatalf("failed to get provider by name: %v", err)
		}

		if retrieved.Endpoint() != "https://api.example.com/v1/generate" {
			t.Errorf("unexpected endpoint: %s", retrieved.Endpoint())
		}

		if retrieved.APIKey() != "secret" {
			t.Errorf("expected API key to persist, got %q", retrieved.APIKey())
		}
	})

	t.Run("Duplicate name rejected", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewProviderRepository(db)
		data := models.ProviderData{
			Name:         "runway",
			BaseURL:      "https://api.example.com",
			EndpointPath: "/v1/generate",
		}

		if err := repo.Create(models.NewProvider(0, data)); err != nil {
			t.Fatalf("failed to create provider: %v", err)
		}

		if err := repo.Create(models.NewProvider(0, data)); err == nil {
			t.Error("expected duplicate provider name to fail")
		}
	})

	t.Run("ListActive", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewProviderRepository(db)

		active := models.NewProvider(0, models.ProviderData{
			Name:         "active",
			BaseURL:      "https://api.example.com",
			EndpointPath: "/v1/generate",
		})
		if err := repo.Create(active); err != nil {
			t.Fatalf("failed to create provider: %v", err)
		}

		inactive := models.NewProvider(0, models.ProviderData{
			Name:         "inactive",
			BaseURL:      "https://api.example.com",
			EndpointPath: "/v1/generate",
		})
		if err := repo.Create(inactive); err != nil {
			t.Fatalf("failed to create provider: %v", err)
		}

		inactive.SetIsActive(false)
		if err := repo.Update(inactive); err != nil {
			t.Fatalf("failed to deactivate provider: %v", err)
		}

		providers, err := repo.ListActive()
		if err != nil {
			t.Fatalf("failed to list active providers: %v", err)
		}

		if len(providers) != 1 || providers[0].Name() != "active" {
			t.Errorf("expected only the active provider, got %d", len(providers))
		}
	})
}

func TestJobRepository(t *testing.T) {
	setup := func(t *testing.T, db *sql.DB) (*models.Provider, *models.AudioTrack) {
		t.Helper()

		providerRepo := NewProviderRepository(db)
		provider := models.NewProvider(0, models.ProviderData{
			Name:         "runway",
			BaseURL:      "https://api.example.com",
			EndpointPath: "/v1/generate",
		})
		if err := providerRepo.Create(provider); err != nil {
			t.Fatalf("failed to create provider: %v", err)
		}

		return provider, createTestTrack(t, db)
	}

	t.Run("Create defaults to pending", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		provider, track := setup(t, db)
		repo := NewJobRepository(db)

		job := models.NewGenerationJob(0, models.JobData{
			ProviderID:   provider.ID(),
			AudioTrackID: track.ID(),
			Prompt:       "neon city at night",
		})

		if err := repo.Create(job); err != nil {
			t.Fatalf("failed to create job: %v", err)
		}

		retrieved, err := repo.Get(job.ID())
		if err != nil {
			t.Fatalf("failed to get job: %v", err)
		}

		if retrieved.Status() != models.JobPending {
			t.Errorf("expected status pending, got %s", retrieved.Status())
		}

		if retrieved.VideoID() != "" {
			t.Errorf("expected no linked video, got %s", retrieved.VideoID())
		}
	})

	t.Run("Update links video and finishes", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		provider, track := setup(t, db)
		video := createTestVideo(t, db, track.ID(), "Generated", models.StatusReady)

		repo := NewJobRepository(db)
		job := models.NewGenerationJob(0, models.JobData{
			ProviderID:   provider.ID(),
			AudioTrackID: track.ID(),
			Prompt:       "neon city at night",
		})

		if err := repo.Create(job); err != nil {
			t.Fatalf("failed to create job: %v", err)
		}

		job.SetStatus(models.JobSuccess)
		job.SetVideoID(video.ID())
		job.SetResponseRaw(`{"video_url": "https://cdn.example.com/out.mp4"}`)

		if err := repo.Update(job); err != nil {
			t.Fatalf("failed to update job: %v", err)
		}

		retrieved, err := repo.Get(job.ID())
		if err != nil {
			t.Fatalf("failed to get job: %v", err)
		}

		if !retrieved.Finished() {
			t.Error("expected job to be finished")
		}

		if retrieved.VideoID() != video.ID() {
			t.Errorf("expected linked video %s, got %s", video.ID(), retrieved.VideoID())
		}
	})

	t.Run("ListByStatus", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		provider, track := setup(t, db)
		repo := NewJobRepository(db)

		for range 2 {
			job := models.NewGenerationJob(0, models.JobData{
				ProviderID:   provider.ID(),
				AudioTrackID: track.ID(),
				Prompt:       "neon city at night",
			})
			if err := repo.Create(job); err != nil {
				t.Fatalf("failed to create job: %v", err)
			}
		}

		pending, err := repo.ListByStatus(models.JobPending)
		if err != nil {
			t.Fatalf("failed to list pending jobs: %v", err)
		}

		if len(pending) != 2 {
			t.Errorf("expected 2 pending jobs, got %d", len(pending))
		}

		failed, err := repo.ListByStatus(models.JobFailed)
		if err != nil {
			t.Fatalf("failed to list failed jobs: %v", err)
		}

		if len(failed) != 0 {
			t.Errorf("expected no failed jobs, got %d", len(failed))
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	seq1, err := NextSequence(db, "videos")
	if err != nil {
		t.Fatalf("failed to get first sequence: %v", err)
	}

	if seq1 != 1 {
		t.Errorf("expected first sequence to be 1, got %d", seq1)
	}

	seq2, err := NextSequence(db, "videos")
	if err != nil {
		t.Fatalf("failed to get second sequence: %v", err)
	}

	if seq2 != 2 {
		t.Errorf("expected second sequence to be 2, got %d", seq2)
	}

	trackSeq, err := NextSequence(db, "audio_tracks")
	if err != nil {
		t.Fatalf("failed to get track sequence: %v", err)
	}

	if trackSeq != 1 {
		t.Errorf("expected first track sequence to be 1, got %d", trackSeq)
	}
}
