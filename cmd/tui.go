package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/ui"
)

// TUI launches the interactive terminal UI for browsing and generating videos.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/mvx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

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

	model := ui.NewModel(ctx,
		repositories.NewVideoRepository(db),
		repositories.NewAudioRepository(db),
		engine,
		cmd.String("background"))
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
