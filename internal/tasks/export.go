package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/mvx/internal/formatter"
	"github.com/desertthunder/mvx/internal/shared"
)

// BulkExportOpts contains configuration for bulk video report exports.
type BulkExportOpts struct {
	Format     string  // Export format: markdown, txt
	OutputDir  string  // Base output directory (default: video_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Reports per second (default: 5)
}

// ReportExportResult describes the outcome for a single video report.
type ReportExportResult struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Success    bool   `json:"success"`
	ReportFile string `json:"report_file,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk report export run.
type BulkExportResult struct {
	TotalVideos     int                  `json:"total_videos"`
	SuccessCount    int                  `json:"success_count"`
	FailedCount     int                  `json:"failed_count"`
	OutputDirectory string               `json:"output_directory"`
	LibraryCSV      string               `json:"library_csv"`
	Results         []ReportExportResult `json:"results"`
}

type reportJob struct {
	report *formatter.VideoReport
	index  int
}

// BulkExport exports reports for multiple videos concurrently with rate
// limiting and progress tracking.
//
// A worker pool writes one report per video plus a library CSV and a
// manifest file summarizing the run. Partial failures are recorded in
// the result rather than aborting the export.
func (e *Engine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, ids []string, opts BulkExportOpts) (*BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = "markdown"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("video_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalVideos:     len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ReportExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan reportJob, len(ids))
	results := make(chan ReportExportResult, len(ids))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(&wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, videoID := range ids {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			report, err := e.loadReport(videoID)
			if err != nil {
				results <- ReportExportResult{
					VideoID: videoID,
					Title:   fmt.Sprintf("Unknown (%s)", videoID),
					Success: false,
					Error:   err.Error(),
				}
				continue
			}

			jobs <- reportJob{report: report, index: i}
			e.sendProgress(prog, exportingReportUpdate(i+1, len(ids), report.Video.Title()))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		result.Results = append(result.Results, r)
		if r.Success {
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
	}

	if err := e.writeLibraryCSV(result, opts.OutputDir); err != nil && e.logger != nil {
		e.logger.Warn("failed to write library CSV", "error", err)
	}

	if err := writeManifest(result, opts.OutputDir); err != nil {
		return result, fmt.Errorf("failed to write manifest: %w", err)
	}

	return result, nil
}

func (e *Engine) exportWorker(wg *sync.WaitGroup, jobs <-chan reportJob, results chan<- ReportExportResult, opts BulkExportOpts) {
	defer wg.Done()

	for job := range jobs {
		video := job.report.Video
		base := filepath.Join(opts.OutputDir, video.ID())

		written, err := formatter.WriteReportExport(job.report, opts.Format, base)
		if err != nil {
			results <- ReportExportResult{
				VideoID: video.ID(),
				Title:   video.Title(),
				Success: false,
				Error:   err.Error(),
			}
			continue
		}

		results <- ReportExportResult{
			VideoID:    video.ID(),
			Title:      video.Title(),
			Success:    true,
			ReportFile: written.ReportFile,
		}
	}
}

// loadReport assembles the video, its audio track and recent logs.
func (e *Engine) loadReport(videoID string) (*formatter.VideoReport, error) {
	video, err := e.videos.Get(videoID)
	if err != nil {
		return nil, err
	}

	report := &formatter.VideoReport{Video: video}

	if audio, err := e.audio.Get(video.AudioTrackID()); err == nil {
		report.Audio = audio
	}

	logs, err := e.logs.ForVideo(videoID, 100)
	if err != nil {
		return nil, err
	}
	report.Logs = logs

	return report, nil
}

// writeLibraryCSV writes a CSV summary of the exported videos.
func (e *Engine) writeLibraryCSV(result *BulkExportResult, outputDir string) error {
	videos, err := e.videos.List(map[string]any{})
	if err != nil {
		return err
	}

	titles := make(map[string]string)
	tracks, err := e.audio.List(map[string]any{})
	if err != nil {
		return err
	}
	for _, track := range tracks {
		titles[track.ID()] = track.Title()
	}

	data, err := formatter.ExportToCSV(videos, titles)
	if err != nil {
		return err
	}

	csvFile := filepath.Join(outputDir, "library.csv")
	if err := os.WriteFile(csvFile, data, 0644); err != nil {
		return err
	}

	result.LibraryCSV = csvFile
	return nil
}

func writeManifest(result *BulkExportResult, outputDir string) error {
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, "manifest.json"), data, 0644)
}
