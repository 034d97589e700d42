package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mvx/internal/tasks"
)

// Export bulk exports video reports plus a library CSV and manifest.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	store, err := r.openStore()
	if err != nil {
		return fmt.Errorf("failed to open media store: %w", err)
	}
	engine := r.newEngine(db, store)

	r.writePlain("Starting bulk export...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("📄 %s\n", update.Message)
		}
	}()

	result, err := engine.BulkExport(ctx, progressCh, cmd.StringSlice("id"), tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Output directory: %s\n", result.OutputDirectory)
	r.writePlain("Exported: %d/%d videos\n", result.SuccessCount, result.TotalVideos)
	if result.FailedCount > 0 {
		r.writePlain("\nFailed exports:\n")
		for _, item := range result.Results {
			if item.Error != "" {
				r.writePlain("  - %s: %s\n", item.VideoID, item.Error)
			}
		}
	}
	return nil
}
