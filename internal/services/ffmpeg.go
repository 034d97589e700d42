package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Composer shells out to ffmpeg/ffprobe to probe media files and mux
// an audio track over a background clip.
type Composer struct {
	ffmpegPath  string
	ffprobePath string
	logger      *log.Logger
}

// NewComposer creates a Composer using the given binary paths, falling
// back to "ffmpeg"/"ffprobe" on PATH when empty.
func NewComposer(ffmpegPath, ffprobePath string, logger *log.Logger) *Composer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Composer{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath, logger: logger}
}

// ProbeResult holds the media properties read by ffprobe.
type ProbeResult struct {
	Duration float64
	Width    int
	Height   int
}

// Resolution formats the probed dimensions as "WxH", or empty when unknown.
func (p ProbeResult) Resolution() string {
	if p.Width == 0 || p.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

// AspectRatio formats the probed dimensions as "W:H", or empty when unknown.
func (p ProbeResult) AspectRatio() string {
	if p.Width == 0 || p.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", p.Width, p.Height)
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// Probe reads duration and dimensions from a media file.
func (c *Composer) Probe(ctx context.Context, path string) (ProbeResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ProbeResult{}, fmt.Errorf("media file does not exist at path: '%s'", path)
	}

	cmd := exec.CommandContext(ctx, c.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		if _, lookupErr := exec.LookPath(c.ffprobePath); lookupErr != nil {
			return ProbeResult{}, NewGenerationError(CodeFFmpegMissing,
				"ffprobe is not available. Install ffmpeg to enable video generation.", err)
		}
		return ProbeResult{}, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var parsed probeOutput
	if err := json.Unmarshal(output, &parsed); err != nil {
		return ProbeResult{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	result := ProbeResult{}
	if parsed.Format.Duration != "" {
		result.Duration, _ = strconv.ParseFloat(parsed.Format.Duration, 64)
	}
	for _, stream := range parsed.Streams {
		if stream.CodecType == "video" && stream.Width > 0 {
			result.Width = stream.Width
			result.Height = stream.Height
			break
		}
	}

	return result, nil
}

// Mux composes the background clip and audio track into outputPath,
// trimmed to duration seconds, re-encoding to H.264/AAC.
func (c *Composer) Mux(ctx context.Context, backgroundPath, audioPath, outputPath string, duration float64) error {
	if duration <= 0 {
		return NewGenerationError(CodeDurationInvalid,
			"Unable to determine duration for composition.", nil)
	}

	if c.logger != nil {
		c.logger.Info("composing video", "background", backgroundPath, "audio", audioPath, "output", outputPath)
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-y",
		"-i", backgroundPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-t", strconv.FormatFloat(duration, 'f', 3, 64),
		"-c:v", "libx264",
		"-c:a", "aac",
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if _, lookupErr := exec.LookPath(c.ffmpegPath); lookupErr != nil {
			return NewGenerationError(CodeFFmpegMissing,
				"ffmpeg is not available. Install ffmpeg to enable video generation.", err)
		}
		return NewGenerationError(CodeFFmpegFailed,
			fmt.Sprintf("ffmpeg failed: %v\nOutput: %s", err, string(output)), err)
	}

	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		return NewGenerationError(CodeOutputMissing,
			"Generated video file was not created.", err)
	}

	return nil
}

// MuxLyrics composes the background clip and audio track into
// outputPath with the lyric text drawn centered over the frame. The
// background is scaled to 1280x720 and the output is trimmed to
// duration seconds at 24fps, re-encoding to H.264/AAC.
func (c *Composer) MuxLyrics(ctx context.Context, backgroundPath, audioPath, lyrics, outputPath string, duration float64) error {
	if duration <= 0 {
		return NewGenerationError(CodeDurationInvalid,
			"Unable to determine duration for composition.", nil)
	}

	if c.logger != nil {
		c.logger.Info("composing lyric video", "background", backgroundPath, "audio", audioPath, "output", outputPath)
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-y",
		"-i", backgroundPath,
		"-i", audioPath,
		"-filter_complex", lyricFilter(lyrics),
		"-map", "[v]",
		"-map", "1:a:0",
		"-t", strconv.FormatFloat(duration, 'f', 3, 64),
		"-r", "24",
		"-c:v", "libx264",
		"-c:a", "aac",
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if _, lookupErr := exec.LookPath(c.ffmpegPath); lookupErr != nil {
			return NewGenerationError(CodeFFmpegMissing,
				"ffmpeg is not available. Install ffmpeg to enable video generation.", err)
		}
		return NewGenerationError(CodeFFmpegFailed,
			fmt.Sprintf("ffmpeg failed: %v\nOutput: %s", err, string(output)), err)
	}

	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		return NewGenerationError(CodeOutputMissing,
			"Lyric video file was not created.", err)
	}

	return nil
}

// lyricFilter builds the filtergraph scaling the background to
// 1280x720 and drawing the lyric text centered in white with a black
// border.
func lyricFilter(lyrics string) string {
	return fmt.Sprintf(
		"[0:v]scale=1280:720,drawtext=text='%s':fontsize=50:fontcolor=white:borderw=3:bordercolor=black:x=(w-text_w)/2:y=(h-text_h)/2[v]",
		escapeDrawText(lyrics))
}

// escapeDrawText escapes characters that carry meaning inside a
// drawtext argument or the surrounding filtergraph.
func escapeDrawText(s string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
		`,`, `\,`,
		`;`, `\;`,
		`[`, `\[`,
		`]`, `\]`,
	).Replace(s)
}
