package web

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mvx/internal/media"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/services"
	"github.com/desertthunder/mvx/internal/tasks"
	tu "github.com/desertthunder/mvx/internal/testing"
)

func setupWeb(t *testing.T) (*WebHandler, *sql.DB) {
	t.Helper()

	db := tu.MustOpenDB(t)
	store, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create media store: %v", err)
	}

	logger := log.New(os.Stderr)
	engine := tasks.NewEngine(db, store,
		services.NewComposer("", "", logger),
		services.NewAIClient(nil, logger),
		logger)

	handler, err := NewWebHandler(db, store, engine, logger)
	if err != nil {
		t.Fatalf("failed to create web handler: %v", err)
	}

	return handler, db
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(t *testing.T, handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestDashboard(t *testing.T) {
	handler, db := setupWeb(t)
	track := tu.MustCreateTrack(t, db, "Dashboard Track")
	tu.MustCreateVideo(t, db, track.ID(), "Ready Video", models.StatusReady)
	tu.MustCreateVideo(t, db, track.ID(), "Draft Video", models.StatusDraft)

	rec := get(t, handler, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"Ready Video", "Draft Video", "Audio tracks", "Ready"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected dashboard to contain %q", want)
		}
	}
}

func TestVideoPages(t *testing.T) {
	handler, db := setupWeb(t)
	track := tu.MustCreateTrack(t, db, "Video Track")

	t.Run("Create", func(t *testing.T) {
		rec := postForm(t, handler, "/videos", url.Values{
			"title":          {"Formed Video"},
			"audio_track_id": {track.ID()},
			"mood":           {"epic"},
			"tags":           {"cinematic, wide"},
		})

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}
		if !strings.HasPrefix(rec.Header().Get("Location"), "/videos/") {
			t.Errorf("unexpected redirect %q", rec.Header().Get("Location"))
		}
	})

	t.Run("Create Without Title Redirects With Error", func(t *testing.T) {
		rec := postForm(t, handler, "/videos", url.Values{"audio_track_id": {track.ID()}})

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}
		if !strings.Contains(rec.Header().Get("Location"), "error=") {
			t.Errorf("expected error flash in %q", rec.Header().Get("Location"))
		}
	})

	t.Run("List And Filter", func(t *testing.T) {
		rec := get(t, handler, "/videos?mood=epic")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Formed Video") {
			t.Error("expected epic video in filtered list")
		}

		rec = get(t, handler, "/videos?mood=sad")
		if strings.Contains(rec.Body.String(), "Formed Video") {
			t.Error("expected epic video filtered out")
		}
	})

	t.Run("Detail", func(t *testing.T) {
		video := tu.MustCreateVideo(t, db, track.ID(), "Detail Video", models.StatusReady)

		rec := get(t, handler, "/videos/"+video.ID())
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		body := rec.Body.String()
		if !strings.Contains(body, "Detail Video") || !strings.Contains(body, "Video Track") {
			t.Error("expected detail page to show video and track")
		}
	})

	t.Run("Detail Missing", func(t *testing.T) {
		rec := get(t, handler, "/videos/nope")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Update", func(t *testing.T) {
		video := tu.MustCreateVideo(t, db, track.ID(), "Old Title", models.StatusDraft)

		rec := postForm(t, handler, "/videos/"+video.ID(), url.Values{
			"title":  {"New Title"},
			"status": {"pending"},
		})
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}

		updated, err := repositories.NewVideoRepository(db).Get(video.ID())
		if err != nil {
			t.Fatalf("failed to reload video: %v", err)
		}
		if updated.Title() != "New Title" {
			t.Errorf("expected title updated, got %q", updated.Title())
		}
		if updated.Status() != models.StatusPending {
			t.Errorf("expected pending status, got %s", updated.Status())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		video := tu.MustCreateVideo(t, db, track.ID(), "Doomed", models.StatusDraft)

		rec := postForm(t, handler, "/videos/"+video.ID()+"/delete", nil)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}

		if rec := get(t, handler, "/videos/"+video.ID()); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", rec.Code)
		}
	})

	t.Run("Generate Refused While Processing", func(t *testing.T) {
		video := tu.MustCreateVideo(t, db, track.ID(), "Busy", models.StatusProcessing)

		rec := postForm(t, handler, "/videos/"+video.ID()+"/generate", nil)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}
		if !strings.Contains(rec.Header().Get("Location"), "error=") {
			t.Errorf("expected error flash in %q", rec.Header().Get("Location"))
		}
	})
}

func TestAudioPages(t *testing.T) {
	handler, db := setupWeb(t)

	t.Run("Create", func(t *testing.T) {
		rec := postForm(t, handler, "/audio", url.Values{
			"title":  {"Form Track"},
			"artist": {"Form Artist"},
			"bpm":    {"96"},
		})

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}
	})

	t.Run("Detail With Related Videos", func(t *testing.T) {
		track := tu.MustCreateTrack(t, db, "Related Track")
		tu.MustCreateVideo(t, db, track.ID(), "Related Video", models.StatusReady)

		rec := get(t, handler, "/audio/"+track.ID())
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Related Video") {
			t.Error("expected related video listed")
		}
	})

	t.Run("Generate Creates Draft Video", func(t *testing.T) {
		track := tu.MustCreateTrack(t, db, "Seed Track")

		rec := postForm(t, handler, "/audio/"+track.ID()+"/generate", url.Values{})
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}

		videos, err := repositories.NewVideoRepository(db).List(map[string]any{"audio_track_id": track.ID()})
		if err != nil {
			t.Fatalf("failed to list videos: %v", err)
		}
		if len(videos) != 1 {
			t.Fatalf("expected 1 video created, got %d", len(videos))
		}
		if videos[0].Title() != "Seed Track Video" {
			t.Errorf("unexpected title %q", videos[0].Title())
		}
		if videos[0].Status() != models.StatusDraft {
			t.Errorf("expected draft status, got %s", videos[0].Status())
		}
	})
}

func TestProjectPages(t *testing.T) {
	handler, db := setupWeb(t)
	track := tu.MustCreateTrack(t, db, "Project Track")
	first := tu.MustCreateVideo(t, db, track.ID(), "First Cut", models.StatusReady)
	second := tu.MustCreateVideo(t, db, track.ID(), "Second Cut", models.StatusDraft)

	rec := postForm(t, handler, "/projects", url.Values{
		"name":      {"Release Plan"},
		"video_ids": {second.ID(), first.ID()},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	location := rec.Header().Get("Location")
	projectPath, _, _ := strings.Cut(location, "?")

	detail := get(t, handler, projectPath)
	if detail.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", detail.Code)
	}
	body := detail.Body.String()
	if !strings.Contains(body, "First Cut") || !strings.Contains(body, "Second Cut") {
		t.Error("expected member videos on detail page")
	}
	if strings.Index(body, "Second Cut") > strings.Index(body, "First Cut") {
		t.Error("expected membership order preserved")
	}
}

func TestProgressStream(t *testing.T) {
	handler, db := setupWeb(t)
	track := tu.MustCreateTrack(t, db, "Stream Track")
	video := tu.MustCreateVideo(t, db, track.ID(), "Stream Video", models.StatusReady)

	rec := get(t, handler, "/videos/"+video.ID()+"/progress")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("unexpected content type %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"phase":"snapshot"`) {
		t.Errorf("expected snapshot event, got %q", body)
	}
	if !strings.Contains(body, `"phase":"done"`) {
		t.Errorf("expected done event, got %q", body)
	}
}
