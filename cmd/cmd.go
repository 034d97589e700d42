// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for database and sample data.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "sample",
				Usage:  "Seed the database with a demo track and draft video",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupSample,
			},
		},
	}
}

// serveCommand starts the HTTP server (web app, REST API, media files).
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web application and REST API server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind to (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// videoCommand handles video library operations.
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "video",
		Aliases: []string{"videos"},
		Usage:   "Video library operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List videos",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "status", Usage: "Filter by status"},
					&cli.StringFlag{Name: "mood", Usage: "Filter by mood"},
					&cli.StringFlag{Name: "search", Usage: "Search title and description"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.VideoList,
			},
			{
				Name:      "show",
				Usage:     "Show one video with its generation logs",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.VideoShow,
			},
			{
				Name:  "create",
				Usage: "Create a draft video for an audio track",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "title", Usage: "Video title", Required: true},
					&cli.StringFlag{Name: "audio", Usage: "Audio track ID", Required: true},
					&cli.StringFlag{Name: "mood", Usage: "Video mood"},
					&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
					&cli.StringFlag{Name: "description", Usage: "Video description"},
				},
				Action: r.VideoCreate,
			},
			{
				Name:      "delete",
				Usage:     "Soft delete a video",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{configFlag()},
				Action:    r.VideoDelete,
			},
		},
	}
}

// audioCommand handles audio track operations.
func audioCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "audio",
		Usage: "Audio track operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List audio tracks",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "language", Usage: "Filter by language"},
					&cli.StringFlag{Name: "search", Usage: "Search title and artist"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.AudioList,
			},
			{
				Name:      "show",
				Usage:     "Show one audio track and its videos",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.AudioShow,
			},
			{
				Name:  "create",
				Usage: "Register an audio track",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "title", Usage: "Track title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Track artist", Required: true},
					&cli.StringFlag{Name: "file", Usage: "Media-relative audio file path"},
					&cli.StringFlag{Name: "language", Usage: "Track language"},
					&cli.IntFlag{Name: "bpm", Usage: "Beats per minute"},
				},
				Action: r.AudioCreate,
			},
		},
	}
}

// projectCommand handles project operations.
func projectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "project",
		Aliases: []string{"projects"},
		Usage:   "Project operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List projects",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ProjectList,
			},
			{
				Name:  "create",
				Usage: "Create a project",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "name", Usage: "Project name", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Project description"},
					&cli.StringSliceFlag{Name: "video", Usage: "Member video ID (repeatable)"},
				},
				Action: r.ProjectCreate,
			},
		},
	}
}

// generateCommand runs a local ffmpeg generation for one video.
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Compose a video from its audio track and a background clip",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{Name: "id", Usage: "Video ID", Required: true},
			&cli.StringFlag{Name: "background", Usage: "Media-relative background clip path"},
			&cli.BoolFlag{Name: "lyrics", Usage: "Overlay the track's lyrics on the background clip"},
		},
		Action: r.Generate,
	}
}

// jobsCommand handles provider-backed generation jobs.
func jobsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "jobs",
		Usage: "Provider generation job operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List generation jobs",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "status", Usage: "Filter by job status"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.JobList,
			},
			{
				Name:  "create",
				Usage: "Queue a provider generation job",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "provider", Usage: "Provider ID or name", Required: true},
					&cli.StringFlag{Name: "audio", Usage: "Audio track ID", Required: true},
					&cli.StringFlag{Name: "prompt", Usage: "Generation prompt, or extra instructions when --style is set"},
					&cli.StringFlag{Name: "style", Usage: "Music video style key (see styles catalog)"},
					&cli.StringFlag{Name: "background", Usage: "Background video ID"},
				},
				Action: r.JobCreate,
			},
			{
				Name:  "run",
				Usage: "Run a queued generation job",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "id", Usage: "Job ID", Required: true},
				},
				Action: r.JobRun,
			},
			{
				Name:  "providers",
				Usage: "List active AI providers",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.JobProviders,
			},
		},
	}
}

// exportCommand bulk exports video reports.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Bulk export video reports and library CSV",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{Name: "format", Usage: "Report format (markdown or text)", Value: "markdown"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory"},
			&cli.IntFlag{Name: "workers", Usage: "Number of export workers", Value: 5},
			&cli.FloatFlag{Name: "rate", Usage: "Exports per second", Value: 5},
			&cli.StringSliceFlag{Name: "id", Usage: "Video ID to export (repeatable, default all)"},
		},
		Action: r.Export,
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive terminal UI",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{Name: "background", Usage: "Media-relative background clip for generations"},
		},
		Action: r.TUI,
	}
}
