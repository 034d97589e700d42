package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/shared"
)

// AudioList lists audio tracks matching the given filters.
func (r *Runner) AudioList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	tracks, err := repositories.NewAudioRepository(db).List(map[string]any{
		"language": cmd.String("language"),
		"search":   cmd.String("search"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		payloads := make([]models.AudioPayload, 0, len(tracks))
		for _, track := range tracks {
			payloads = append(payloads, track.Payload())
		}
		return r.writeJSON(payloads, true)
	}

	if len(tracks) == 0 {
		return r.writePlain("No audio tracks found.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Audio Tracks (%d)", len(tracks)))
	for _, track := range tracks {
		r.writePlain("%s - %s  (%s)\n", track.Artist(), track.Title(), track.ID())
	}
	return nil
}

// AudioShow prints one audio track and the videos generated from it.
func (r *Runner) AudioShow(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: audio track id is required", shared.ErrMissingArgument)
	}

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	track, err := repositories.NewAudioRepository(db).Get(id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(track.Payload(), true)
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s", track.Artist(), track.Title()))
	if track.AudioFile() != "" {
		r.writePlain("File: %s\n", track.AudioFile())
	}
	if track.Language() != "" {
		r.writePlain("Language: %s\n", track.Language())
	}
	if bpm := track.BPM(); bpm != nil {
		r.writePlain("BPM: %d\n", *bpm)
	}

	videos, err := repositories.NewVideoRepository(db).List(map[string]any{"audio_track_id": track.ID()})
	if err != nil {
		return err
	}
	if len(videos) > 0 {
		r.writePlain("\nVideos:\n")
		for _, video := range videos {
			r.writePlain("  %-10s %s (%s)\n", video.Status(), video.Title(), video.ID())
		}
	}
	return nil
}

// AudioCreate registers an audio track.
func (r *Runner) AudioCreate(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	track := models.NewAudioTrack(0, models.AudioData{
		Title:     cmd.String("title"),
		Artist:    cmd.String("artist"),
		AudioFile: cmd.String("file"),
		Language:  cmd.String("language"),
	})
	if bpm := int(cmd.Int("bpm")); bpm > 0 {
		track.SetBPM(bpm)
	}

	if err := repositories.NewAudioRepository(db).Create(track); err != nil {
		return err
	}

	r.writePlain("✓ Audio track created: %s (%s)\n", track.Title(), track.ID())
	return nil
}
