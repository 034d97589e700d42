// package formatter provides functions to export the video library to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// VideoReport bundles a video with its audio track and recent
// generation logs for export.
type VideoReport struct {
	Video *models.Video
	Audio *models.AudioTrack
	Logs  []*models.GenerationLog
}

// ExportToCSV converts a list of videos to CSV format with columns: ID, Title, Status, Mood, Audio Track, Duration, Size, Progress, Created
func ExportToCSV(videos []*models.Video, audioTitles map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Status", "Mood", "Audio Track", "Duration", "Size", "Progress", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range videos {
		duration := ""
		if d := video.DurationSeconds(); d != nil {
			duration = shared.FormatDuration(*d)
		}

		size := ""
		if s := video.FileSizeBytes(); s != nil {
			size = shared.FormatBytes(*s)
		}

		progress := ""
		if p := video.GenerationProgress(); p != nil {
			progress = strconv.Itoa(*p)
		}

		record := []string{
			video.ID(),
			video.Title(),
			string(video.Status()),
			string(video.Mood()),
			audioTitles[video.AudioTrackID()],
			duration,
			size,
			progress,
			video.CreatedAt().Format("2006-01-02 15:04"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a VideoReport to Markdown format
func ExportToMarkdown(report *VideoReport) ([]byte, error) {
	var buf bytes.Buffer
	video := report.Video

	buf.WriteString(fmt.Sprintf("# %s\n\n", video.Title()))

	if video.Description() != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", video.Description()))
	}

	buf.WriteString(fmt.Sprintf("**Status**: %s\n", video.Status().Label()))
	if video.Mood() != "" {
		buf.WriteString(fmt.Sprintf("**Mood**: %s\n", video.Mood()))
	}
	if report.Audio != nil {
		buf.WriteString(fmt.Sprintf("**Audio track**: %s\n", report.Audio.Title()))
	}
	if d := video.DurationSeconds(); d != nil {
		buf.WriteString(fmt.Sprintf("**Duration**: %s\n", shared.FormatDuration(*d)))
	}
	if s := video.FileSizeBytes(); s != nil {
		buf.WriteString(fmt.Sprintf("**Size**: %s\n", shared.FormatBytes(*s)))
	}
	if video.Resolution() != "" {
		buf.WriteString(fmt.Sprintf("**Resolution**: %s\n", video.Resolution()))
	}
	if tags := video.TagList(); len(tags) > 0 {
		buf.WriteString("**Tags**: ")
		for i, tag := range tags {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(tag)
		}
		buf.WriteString("\n")
	}
	buf.WriteString("\n")

	if video.ErrorMessage() != "" {
		buf.WriteString(fmt.Sprintf("**Last error**: %s (%s)\n\n", video.ErrorMessage(), video.ErrorCode()))
	}

	if len(report.Logs) > 0 {
		buf.WriteString("## Generation log\n\n")
		for _, entry := range report.Logs {
			buf.WriteString(fmt.Sprintf("- [%s] %s: %s\n", entry.Status(), entry.Stage(), entry.Message()))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a VideoReport to plain text format
func ExportToText(report *VideoReport) ([]byte, error) {
	var buf bytes.Buffer
	video := report.Video

	buf.WriteString(fmt.Sprintf("Video: %s\n", video.Title()))
	buf.WriteString(fmt.Sprintf("Status: %s\n", video.Status()))
	if report.Audio != nil {
		buf.WriteString(fmt.Sprintf("Audio: %s\n", report.Audio.Title()))
	}
	if video.Description() != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", video.Description()))
	}
	buf.WriteString("\n")

	for i, entry := range report.Logs {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s: %s\n", i+1, entry.Status(), entry.Stage(), entry.Message()))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of a video's payload
func ToMetadataJSON(video *models.Video) ([]byte, error) {
	return shared.MarshalJSON(video.Payload(), true)
}

// ReportExportResult contains the paths of files created by WriteReportExport
type ReportExportResult struct {
	ReportFile   string
	MetadataFile string
}

// WriteReportExport writes a video report in the given format with an
// accompanying metadata JSON file.
//
// Defaults to the video ID as the base filename & creates
// {base}_report.{ext} and {base}_metadata.json
func WriteReportExport(report *VideoReport, format, baseFilepath string) (*ReportExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = report.Video.ID()
	}

	var data []byte
	var ext string
	var err error

	switch format {
	case "markdown", "md":
		data, err = ExportToMarkdown(report)
		ext = ".md"
	case "txt", "text":
		data, err = ExportToText(report)
		ext = ".txt"
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	reportFile := baseFilepath + "_report" + ext
	if err := os.WriteFile(reportFile, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write report file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(report.Video)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &ReportExportResult{
		ReportFile:   reportFile,
		MetadataFile: metadataFile,
	}, nil
}
