package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "under a minute", seconds: 45, want: "0:45"},
		{name: "exactly one minute", seconds: 60, want: "1:00"},
		{name: "minutes and seconds", seconds: 245, want: "4:05"},
		{name: "over an hour", seconds: 3725, want: "62:05"},
		{name: "negative clamps to zero", seconds: -10, want: "0:00"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatDuration(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tc := []struct {
		name string
		n    int64
		want string
	}{
		{name: "bytes", n: 512, want: "512 B"},
		{name: "kibibytes", n: 2048, want: "2.0 KiB"},
		{name: "mebibytes", n: 5 * 1024 * 1024, want: "5.0 MiB"},
		{name: "gibibytes", n: 3 * 1024 * 1024 * 1024, want: "3.0 GiB"},
		{name: "tebibytes", n: 1 << 40, want: "1.0 TiB"},
		{name: "pebibytes", n: 2 << 50, want: "2.0 PiB"},
		{name: "exbibytes", n: 4 << 60, want: "4.0 EiB"},
		{name: "fractional", n: 1536, want: "1.5 KiB"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.n)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	t.Run("returns uuid format", func(t *testing.T) {
		id := GenerateID()
		if len(id) != 36 {
			t.Errorf("expected 36 character UUID, got %d: %s", len(id), id)
		}
		if strings.Count(id, "-") != 4 {
			t.Errorf("expected 4 hyphens in UUID, got %s", id)
		}
	})

	t.Run("returns unique values", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			id := GenerateID()
			if seen[id] {
				t.Fatalf("duplicate ID generated: %s", id)
			}
			seen[id] = true
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"key": "value"}

	t.Run("compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != `{"key":"value"}` {
			t.Errorf("unexpected output: %s", out)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(out), "\n") {
			t.Errorf("expected indented output, got %s", out)
		}
	})

	t.Run("non-serializable data", func(t *testing.T) {
		if _, err := MarshalJSON(make(chan int), false); err == nil {
			t.Error("expected error for channel value")
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("with nil writer", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger")
		}
	})

	t.Run("with custom writer", func(t *testing.T) {
		var sb strings.Builder
		logger := NewLogger(&sb)
		logger.Info("test message")
		if !strings.Contains(sb.String(), "test message") {
			t.Errorf("expected log output, got %q", sb.String())
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		logger.Info("hello from file")

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "hello from file") {
			t.Errorf("expected log content, got %q", string(data))
		}
	})

	t.Run("appends to existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		if err := os.WriteFile(path, []byte("existing line\n"), 0o644); err != nil {
			t.Fatalf("failed to seed log file: %v", err)
		}

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		logger.Info("appended line")

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "existing line") {
			t.Error("expected existing content to be preserved")
		}
		if !strings.Contains(string(data), "appended line") {
			t.Error("expected new content to be appended")
		}
	})
}
