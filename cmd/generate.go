package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/styles"
	"github.com/desertthunder/mvx/internal/tasks"
)

// Generate composes a video locally from its audio track and a background clip.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
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

	r.writePlain("Starting video generation...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ValidateInputs:
				r.writePlain("🔍 %s\n", update.Message)
			case tasks.ProbeMedia:
				r.writePlain("📏 %s\n", update.Message)
			case tasks.Compose:
				r.writePlain("🎬 %s\n", update.Message)
			case tasks.Finalize:
				r.writePlain("📝 %s\n", update.Message)
			default:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	var video *models.Video
	if cmd.Bool("lyrics") {
		video, err = engine.GenerateLyrics(ctx, progressCh, cmd.String("id"), cmd.String("background"))
	} else {
		video, err = engine.Generate(ctx, progressCh, cmd.String("id"), cmd.String("background"))
	}
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	if video.Status() == models.StatusReady {
		r.writePlainHeader("Generation Complete!")
		r.writePlain("Video: %s\n", video.Title())
		r.writePlain("File: %s\n", video.VideoFile())
		if d := video.DurationSeconds(); d != nil {
			r.writePlain("Duration: %s\n", shared.FormatDuration(*d))
		}
		if s := video.FileSizeBytes(); s != nil {
			r.writePlain("Size: %s\n", shared.FormatBytes(*s))
		}
	} else {
		r.writePlainHeader("Generation Failed")
		r.writePlain("%s (%s)\n", video.ErrorMessage(), video.ErrorCode())
	}
	return nil
}

// JobList lists provider generation jobs.
func (r *Runner) JobList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	repo := repositories.NewJobRepository(db)

	var jobs []*models.GenerationJob
	if status := models.JobStatus(cmd.String("status")); status != "" {
		if !status.Valid() {
			return fmt.Errorf("%w: invalid job status %q", shared.ErrInvalidArgument, status)
		}
		jobs, err = repo.ListByStatus(status)
	} else {
		jobs, err = repo.List(nil)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		payloads := make([]models.JobPayload, 0, len(jobs))
		for _, job := range jobs {
			payloads = append(payloads, job.Payload())
		}
		return r.writeJSON(payloads, true)
	}

	if len(jobs) == 0 {
		return r.writePlain("No generation jobs found.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Generation Jobs (%d)", len(jobs)))
	for _, job := range jobs {
		r.writePlain("%-10s job #%d  (%s)\n", job.Status(), job.Sequence(), job.ID())
		if job.ErrorMessage() != "" {
			r.writePlain("           %s\n", job.ErrorMessage())
		}
	}
	return nil
}

// JobCreate queues a provider generation job.
func (r *Runner) JobCreate(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	// --provider accepts an ID or a unique provider name
	providers := repositories.NewProviderRepository(db)
	provider, err := providers.Get(cmd.String("provider"))
	if err != nil {
		provider, err = providers.GetByName(cmd.String("provider"))
		if err != nil {
			return err
		}
	}

	prompt := cmd.String("prompt")
	if styleKey := cmd.String("style"); styleKey != "" {
		if _, ok := styles.ByKey(styleKey); !ok {
			return fmt.Errorf("%w: unknown style %q", shared.ErrInvalidArgument, styleKey)
		}
		track, err := repositories.NewAudioRepository(db).Get(cmd.String("audio"))
		if err != nil {
			return err
		}
		prompt = styles.BuildPrompt(styleKey, "", track.Lyrics(), cmd.String("prompt"))
	}
	if prompt == "" {
		return fmt.Errorf("%w: either --prompt or --style is required", shared.ErrMissingArgument)
	}

	job := models.NewGenerationJob(0, models.JobData{
		ProviderID:        provider.ID(),
		AudioTrackID:      cmd.String("audio"),
		BackgroundVideoID: cmd.String("background"),
		Prompt:            prompt,
	})

	if err := repositories.NewJobRepository(db).Create(job); err != nil {
		return err
	}

	r.writePlain("✓ Job queued: #%d (%s)\n", job.Sequence(), job.ID())
	return nil
}

// JobProviders lists active AI provider configurations.
func (r *Runner) JobProviders(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	providers, err := repositories.NewProviderRepository(db).ListActive()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		payloads := make([]models.ProviderPayload, 0, len(providers))
		for _, provider := range providers {
			payloads = append(payloads, provider.Payload())
		}
		return r.writeJSON(payloads, true)
	}

	if len(providers) == 0 {
		return r.writePlain("No active providers found.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Providers (%d)", len(providers)))
	for _, provider := range providers {
		r.writePlain("%s  %s  (%s)\n", provider.Name(), provider.Endpoint(), provider.ID())
	}
	return nil
}

// JobRun runs a queued provider generation job.
func (r *Runner) JobRun(ctx context.Context, cmd *cli.Command) error {
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

	r.writePlain("Running generation job...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("📡 %s\n", update.Message)
		}
	}()

	job, err := engine.RunJob(ctx, progressCh, cmd.String("id"))
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	if job.Status() == models.JobSuccess {
		r.writePlainHeader("Job Complete!")
		r.writePlain("Video ID: %s\n", job.VideoID())
	} else {
		r.writePlainHeader("Job Failed")
		r.writePlain("%s\n", job.ErrorMessage())
	}
	return nil
}
