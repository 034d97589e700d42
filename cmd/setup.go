package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/shared"
)

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}
	r.reloadConfig(cmd)

	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := r.openStore(); err != nil {
		return fmt.Errorf("failed to create media directories: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return nil
}

// SetupSample seeds the database with a demo track and a draft video.
func (r *Runner) SetupSample(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	tracks := repositories.NewAudioRepository(db)
	videos := repositories.NewVideoRepository(db)

	bpm := 120
	track := models.NewAudioTrack(0, models.AudioData{
		Title:    "Midnight Demo",
		Artist:   "Studio Sampler",
		Language: "en",
		BPM:      &bpm,
	})
	if err := tracks.Create(track); err != nil {
		return fmt.Errorf("failed to create sample track: %w", err)
	}

	video := models.NewVideo(0, models.VideoData{
		AudioTrackID: track.ID(),
		Title:        "Midnight Demo Visuals",
		Description:  "Sample draft video created by setup.",
		Mood:         models.MoodChill,
		Tags:         "demo, sample",
	})
	if err := videos.Create(video); err != nil {
		return fmt.Errorf("failed to create sample video: %w", err)
	}

	r.writePlain("✓ Sample data created\n")
	r.writePlain("Audio track: %s (%s)\n", track.Title(), track.ID())
	r.writePlain("Video: %s (%s)\n", video.Title(), video.ID())
	return nil
}
