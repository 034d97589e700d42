package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/shared"
)

// VideoList lists videos matching the given filters.
func (r *Runner) VideoList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	videos, err := repositories.NewVideoRepository(db).List(map[string]any{
		"status": cmd.String("status"),
		"mood":   cmd.String("mood"),
		"search": cmd.String("search"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		payloads := make([]models.VideoPayload, 0, len(videos))
		for _, video := range videos {
			payloads = append(payloads, video.Payload())
		}
		return r.writeJSON(payloads, cmd.Bool("pretty"))
	}

	if len(videos) == 0 {
		return r.writePlain("No videos found.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Videos (%d)", len(videos)))
	for _, video := range videos {
		progress := 0
		if p := video.GenerationProgress(); p != nil {
			progress = *p
		}
		r.writePlain("%-10s %3d%%  %s  (%s)\n", video.Status(), progress, video.Title(), video.ID())
	}
	return nil
}

// VideoShow prints one video with its generation log entries.
func (r *Runner) VideoShow(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: video id is required", shared.ErrMissingArgument)
	}

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	video, err := repositories.NewVideoRepository(db).Get(id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(video.Payload(), true)
	}

	r.writePlainHeader(video.Title())
	r.writePlain("ID: %s\n", video.ID())
	r.writePlain("Status: %s\n", video.Status())
	if video.Mood() != "" {
		r.writePlain("Mood: %s\n", video.Mood())
	}
	if video.VideoFile() != "" {
		r.writePlain("File: %s\n", video.VideoFile())
	}
	if d := video.DurationSeconds(); d != nil {
		r.writePlain("Duration: %s\n", shared.FormatDuration(*d))
	}
	if s := video.FileSizeBytes(); s != nil {
		r.writePlain("Size: %s\n", shared.FormatBytes(*s))
	}
	if video.ErrorMessage() != "" {
		r.writePlain("Last error: %s (%s)\n", video.ErrorMessage(), video.ErrorCode())
	}

	logs, err := repositories.NewGenerationLogRepository(db).ForVideo(video.ID(), 20)
	if err != nil {
		return err
	}
	if len(logs) > 0 {
		r.writePlain("\nRecent log entries:\n")
		for _, entry := range logs {
			r.writePlain("  [%s] %s: %s\n", entry.Status(), entry.Stage(), entry.Message())
		}
	}
	return nil
}

// VideoCreate creates a draft video for an audio track.
func (r *Runner) VideoCreate(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	video := models.NewVideo(0, models.VideoData{
		AudioTrackID: cmd.String("audio"),
		Title:        cmd.String("title"),
		Description:  cmd.String("description"),
		Mood:         models.Mood(cmd.String("mood")),
		Tags:         cmd.String("tags"),
	})

	if err := repositories.NewVideoRepository(db).Create(video); err != nil {
		return err
	}

	r.writePlain("✓ Video created: %s (%s)\n", video.Title(), video.ID())
	return nil
}

// VideoDelete soft deletes a video.
func (r *Runner) VideoDelete(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: video id is required", shared.ErrMissingArgument)
	}

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := repositories.NewVideoRepository(db).Delete(id); err != nil {
		return err
	}

	r.writePlain("✓ Video deleted: %s\n", id)
	return nil
}
