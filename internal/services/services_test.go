package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/mvx/internal/media"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
	internaltesting "github.com/desertthunder/mvx/internal/testing"
)

func testProvider() *models.Provider {
	return models.NewProvider(0, models.ProviderData{
		Name:         "runway",
		BaseURL:      "https://api.example.com",
		EndpointPath: "/v1/generate",
		APIKey:       "secret-key",
		ExtraHeaders: `{"X-Org": "studio"}`,
		ExtraPayload: `{"quality": "high"}`,
	})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestAIClient_Generate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var captured *http.Request
		var capturedBody []byte

		transport := internaltesting.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			captured = r
			capturedBody, _ = io.ReadAll(r.Body)
			return jsonResponse(200, `{"video_url": "https://cdn.example.com/out.mp4"}`), nil
		})

		client := NewAIClient(&http.Client{Transport: transport}, nil)
		result, err := client.Generate(context.Background(), testProvider(), GenerateRequest{
			Prompt:         "neon city at night",
			AudioPath:      "/media/audio/track.mp3",
			BackgroundPath: "/media/videos/bg.mp4",
		})
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		if result.VideoURL != "https://cdn.example.com/out.mp4" {
			t.Errorf("unexpected video URL: %s", result.VideoURL)
		}

		if captured.URL.String() != "https://api.example.com/v1/generate" {
			t.Errorf("unexpected request URL: %s", captured.URL)
		}

		if got := captured.Header.Get("Authorization"); got != "Bearer secret-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}

		if got := captured.Header.Get("X-Org"); got != "studio" {
			t.Errorf("expected extra header, got %q", got)
		}

		var payload map[string]any
		if err := json.Unmarshal(capturedBody, &payload); err != nil {
			t.Fatalf("failed to parse request payload: %v", err)
		}

		if payload["prompt"] != "neon city at night" {
			t.Errorf("unexpected prompt: %v", payload["prompt"])
		}

		if payload["background_video_path"] != "/media/videos/bg.mp4" {
			t.Errorf("expected background path in payload, got %v", payload["background_video_path"])
		}

		if payload["quality"] != "high" {
			t.Errorf("expected extra payload merged, got %v", payload["quality"])
		}
	})

	t.Run("inactive provider", func(t *testing.T) {
		provider := testProvider()
		provider.SetIsActive(false)

		client := NewAIClient(nil, nil)
		_, err := client.Generate(context.Background(), provider, GenerateRequest{Prompt: "x"})
		if !errors.Is(err, shared.ErrProviderInactive) {
			t.Errorf("expected inactive provider error, got %v", err)
		}
	})

	t.Run("missing video_url", func(t *testing.T) {
		transport := internaltesting.NewMockRoundTripper(jsonResponse(200, `{"status": "queued"}`), nil)
		client := NewAIClient(&http.Client{Transport: transport}, nil)

		result, err := client.Generate(context.Background(), testProvider(), GenerateRequest{Prompt: "x"})
		if !errors.Is(err, shared.ErrProviderRequest) {
			t.Errorf("expected provider request error, got %v", err)
		}

		if result == nil || result.ResponseRaw == "" {
			t.Error("expected raw response to be captured for persistence")
		}
	})

	t.Run("error status", func(t *testing.T) {
		transport := internaltesting.NewMockRoundTripper(jsonResponse(500, `{"error": "boom"}`), nil)
		client := NewAIClient(&http.Client{Transport: transport}, nil)

		result, err := client.Generate(context.Background(), testProvider(), GenerateRequest{Prompt: "x"})
		if !errors.Is(err, shared.ErrProviderRequest) {
			t.Errorf("expected provider request error, got %v", err)
		}

		if result.ResponseRaw != `{"error": "boom"}` {
			t.Errorf("expected error body captured, got %q", result.ResponseRaw)
		}
	})
}

func TestAIClient_Download(t *testing.T) {
	store, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create media store: %v", err)
	}

	transport := internaltesting.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader("video bytes")),
		}, nil
	})

	client := NewAIClient(&http.Client{Transport: transport}, nil)
	rel, size, err := client.Download(context.Background(), "https://cdn.example.com/out.mp4", store, "ai_video_job_1.mp4")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}

	if rel != "ai_videos/ai_video_job_1.mp4" {
		t.Errorf("unexpected stored path: %s", rel)
	}

	if size != int64(len("video bytes")) {
		t.Errorf("expected size %d, got %d", len("video bytes"), size)
	}
}

func TestGenerationError(t *testing.T) {
	err := NewGenerationError(CodeAudioMissing, "Audio file is missing for this video.", nil)

	if err.Error() != "Audio file is missing for this video." {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	if err.Code != CodeAudioMissing {
		t.Errorf("unexpected error code: %s", err.Code)
	}

	var genErr *GenerationError
	if !errors.As(error(err), &genErr) {
		t.Error("expected errors.As to match GenerationError")
	}
}

func TestComposer_MuxLyrics(t *testing.T) {
	t.Run("invalid duration", func(t *testing.T) {
		composer := NewComposer("", "", nil)

		err := composer.MuxLyrics(context.Background(), "/tmp/bg.mp4", "/tmp/track.mp3", "la la la", "/tmp/out.mp4", 0)

		var genErr *GenerationError
		if !errors.As(err, &genErr) {
			t.Fatalf("expected generation error, got %v", err)
		}
		if genErr.Code != CodeDurationInvalid {
			t.Errorf("expected duration_invalid code, got %s", genErr.Code)
		}
	})
}

func TestLyricFilter(t *testing.T) {
	t.Run("scales and centers", func(t *testing.T) {
		filter := lyricFilter("city lights")

		for _, want := range []string{
			"scale=1280:720",
			"text='city lights'",
			"fontsize=50",
			"fontcolor=white",
			"borderw=3",
			"x=(w-text_w)/2",
			"y=(h-text_h)/2",
		} {
			if !strings.Contains(filter, want) {
				t.Errorf("expected filter to contain %q, got %s", want, filter)
			}
		}
	})

	t.Run("escapes reserved characters", func(t *testing.T) {
		filter := lyricFilter(`it's 100%, baby: [chorus]`)

		if !strings.Contains(filter, `it\'s 100\%\, baby\: \[chorus\]`) {
			t.Errorf("expected lyric text escaped, got %s", filter)
		}
	})
}

func TestProbeResult(t *testing.T) {
	result := ProbeResult{Duration: 12.5, Width: 1920, Height: 1080}

	if result.Resolution() != "1920x1080" {
		t.Errorf("unexpected resolution: %s", result.Resolution())
	}

	if result.AspectRatio() != "1920:1080" {
		t.Errorf("unexpected aspect ratio: %s", result.AspectRatio())
	}

	empty := ProbeResult{}
	if empty.Resolution() != "" || empty.AspectRatio() != "" {
		t.Error("expected empty formatting for unknown dimensions")
	}
}
