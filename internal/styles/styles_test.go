package styles

import (
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	t.Run("All returns complete catalog", func(t *testing.T) {
		all := All()
		if len(all) == 0 {
			t.Fatal("expected at least one style")
		}

		seen := make(map[string]bool)
		for _, style := range all {
			if style.Key == "" {
				t.Error("style with empty key")
			}
			if style.Label == "" {
				t.Errorf("style %s missing label", style.Key)
			}
			if style.DefaultPrompt == "" {
				t.Errorf("style %s missing default prompt", style.Key)
			}
			if seen[style.Key] {
				t.Errorf("duplicate style key %s", style.Key)
			}
			seen[style.Key] = true
		}
	})

	t.Run("ByKey", func(t *testing.T) {
		style, ok := ByKey("karaoke")
		if !ok {
			t.Fatal("expected karaoke style to exist")
		}
		if style.Label != "Karaoke Style" {
			t.Errorf("unexpected label: %s", style.Label)
		}

		if _, ok := ByKey("nonexistent"); ok {
			t.Error("expected unknown key to be missing")
		}
	})

	t.Run("Label falls back to key", func(t *testing.T) {
		if got := Label("cyberpunk"); got != "Cyberpunk / Neon City" {
			t.Errorf("unexpected label: %s", got)
		}
		if got := Label("custom_style"); got != "custom_style" {
			t.Errorf("expected fallback to key, got %s", got)
		}
	})

	t.Run("DefaultPrompt for unknown key is empty", func(t *testing.T) {
		if got := DefaultPrompt("nonexistent"); got != "" {
			t.Errorf("expected empty prompt, got %s", got)
		}
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Run("composes all sections", func(t *testing.T) {
		prompt := BuildPrompt("cinematic", "", "These are the lyrics", "Keep it under a minute")

		if !strings.Contains(prompt, "Music video style: Epic Cinematic") {
			t.Error("expected style label in prompt")
		}
		if !strings.Contains(prompt, "dramatic lighting") {
			t.Error("expected default style prompt")
		}
		if !strings.Contains(prompt, "These are the lyrics") {
			t.Error("expected lyrics in prompt")
		}
		if !strings.Contains(prompt, "Keep it under a minute") {
			t.Error("expected extra instructions in prompt")
		}
	})

	t.Run("custom style prompt overrides default", func(t *testing.T) {
		prompt := BuildPrompt("cinematic", "My custom direction", "", "")

		if !strings.Contains(prompt, "My custom direction") {
			t.Error("expected custom style prompt")
		}
		if strings.Contains(prompt, "dramatic lighting") {
			t.Error("did not expect default style prompt")
		}
	})

	t.Run("placeholders for missing sections", func(t *testing.T) {
		prompt := BuildPrompt("karaoke", "", "", "")

		if !strings.Contains(prompt, "No lyrics provided.") {
			t.Error("expected lyrics placeholder")
		}
		if !strings.Contains(prompt, "No additional instructions.") {
			t.Error("expected instructions placeholder")
		}
	})
}
