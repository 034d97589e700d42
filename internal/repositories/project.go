package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// ProjectRepository implements models.Repository[*models.Project].
//
// Video membership lives in the project_videos junction table and is
// replaced wholesale by SetVideos.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new ProjectRepository with the given database connection
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new [models.Project] into the database with generated ID and sequence
func (r *ProjectRepository) Create(project *models.Project) error {
	sequence, err := NextSequence(r.db, "projects")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	project.SetSequence(sequence)

	id := shared.GenerateID()
	project.SetID(id)

	if err := project.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	data := project.Data()
	query := `
		INSERT INTO projects (id, sequence, name, description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		data.Name,
		data.Description,
		data.IsActive,
		project.CreatedAt(),
		project.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	if len(project.VideoIDs()) > 0 {
		if err := r.SetVideos(id, project.VideoIDs()); err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves a project by ID with its ordered video membership,
// excluding soft-deleted projects
func (r *ProjectRepository) Get(id string) (*models.Project, error) {
	query := `
		SELECT id, sequence, name, description, is_active, created_at, updated_at, deleted_at
		FROM projects
		WHERE id = ? AND deleted_at IS NULL
	`

	project, err := r.scan(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	videoIDs, err := r.Videos(id)
	if err != nil {
		return nil, err
	}
	project.SetVideoIDs(videoIDs)

	return project, nil
}

// Update modifies an existing project and replaces its video membership
func (r *ProjectRepository) Update(project *models.Project) error {
	if err := project.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	project.SetUpdatedAt(now)

	data := project.Data()
	query := `
		UPDATE projects
		SET name = ?, description = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		data.Name,
		data.Description,
		data.IsActive,
		now,
		project.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("project not found or already deleted: %s", project.ID())
	}

	return r.SetVideos(project.ID(), project.VideoIDs())
}

// Delete soft-deletes a project by ID. Junction rows are removed so the
// member videos no longer report the project.
func (r *ProjectRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE projects
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("project not found or already deleted: %s", id)
	}

	if _, err := r.db.Exec(`DELETE FROM project_videos WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear project videos: %w", err)
	}

	return nil
}

// List retrieves all projects matching the given criteria, newest first,
// with video membership loaded.
//
// Supported criteria: "is_active" (bool) and "search" (case-insensitive
// substring over name).
func (r *ProjectRepository) List(criteria map[string]any) ([]*models.Project, error) {
	query := `
		SELECT id, sequence, name, description, is_active, created_at, updated_at, deleted_at
		FROM projects
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if active, ok := criteria["is_active"].(bool); ok {
		query += " AND is_active = ?"
		args = append(args, active)
	}

	if search, ok := criteria["search"].(string); ok && search != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+search+"%")
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, project := range projects {
		videoIDs, err := r.Videos(project.ID())
		if err != nil {
			return nil, err
		}
		project.SetVideoIDs(videoIDs)
	}

	return projects, nil
}

// SetVideos replaces the project's video membership with the given
// ordered IDs inside a single transaction.
func (r *ProjectRepository) SetVideos(projectID string, videoIDs []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM project_videos WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to clear project videos: %w", err)
	}

	for position, videoID := range videoIDs {
		_, err := tx.Exec(
			`INSERT INTO project_videos (project_id, video_id, position) VALUES (?, ?, ?)`,
			projectID, videoID, position,
		)
		if err != nil {
			return fmt.Errorf("failed to add video %s to project: %w", videoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project videos: %w", err)
	}

	return nil
}

// Videos returns the project's member video IDs in position order.
func (r *ProjectRepository) Videos(projectID string) ([]string, error) {
	rows, err := r.db.Query(
		`SELECT video_id FROM project_videos WHERE project_id = ? ORDER BY position ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query project videos: %w", err)
	}
	defer rows.Close()

	var videoIDs []string
	for rows.Next() {
		var videoID string
		if err := rows.Scan(&videoID); err != nil {
			return nil, fmt.Errorf("failed to scan project video: %w", err)
		}
		videoIDs = append(videoIDs, videoID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videoIDs, nil
}

// ProjectsForVideo returns the IDs of live projects containing the video.
func (r *ProjectRepository) ProjectsForVideo(videoID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT pv.project_id
		FROM project_videos pv
		JOIN projects p ON p.id = pv.project_id
		WHERE pv.video_id = ? AND p.deleted_at IS NULL
		ORDER BY p.sequence DESC
	`, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query video projects: %w", err)
	}
	defer rows.Close()

	var projectIDs []string
	for rows.Next() {
		var projectID string
		if err := rows.Scan(&projectID); err != nil {
			return nil, fmt.Errorf("failed to scan video project: %w", err)
		}
		projectIDs = append(projectIDs, projectID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return projectIDs, nil
}

// Count returns the number of live projects.
func (r *ProjectRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM projects WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// scan reads one projects row into a [models.Project] without membership.
func (r *ProjectRepository) scan(row rowScanner) (*models.Project, error) {
	var (
		id        string
		sequence  int
		data      models.ProjectData
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&id,
		&sequence,
		&data.Name,
		&data.Description,
		&data.IsActive,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}

	project := models.RestoreProject(sequence, data)
	project.SetID(id)
	project.SetCreatedAt(createdAt)
	project.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		project.SetDeletedAt(&deletedAt.Time)
	}

	return project, nil
}
