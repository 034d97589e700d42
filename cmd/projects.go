package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
)

// ProjectList lists projects.
func (r *Runner) ProjectList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	projects, err := repositories.NewProjectRepository(db).List(nil)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		payloads := make([]models.ProjectPayload, 0, len(projects))
		for _, project := range projects {
			payloads = append(payloads, project.Payload())
		}
		return r.writeJSON(payloads, true)
	}

	if len(projects) == 0 {
		return r.writePlain("No projects found.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Projects (%d)", len(projects)))
	for _, project := range projects {
		r.writePlain("%s  %d videos  (%s)\n", project.Name(), len(project.VideoIDs()), project.ID())
	}
	return nil
}

// ProjectCreate creates a project with optional member videos.
func (r *Runner) ProjectCreate(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	project := models.NewProject(0, models.ProjectData{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
	})
	project.SetVideoIDs(cmd.StringSlice("video"))

	if err := repositories.NewProjectRepository(db).Create(project); err != nil {
		return err
	}

	r.writePlain("✓ Project created: %s (%s)\n", project.Name(), project.ID())
	return nil
}
