package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// videoColumns is the canonical SELECT column list for the videos table.
const videoColumns = `id, sequence, audio_track_id, title, description, video_file, thumbnail,
		file_size_bytes, duration_seconds, resolution, aspect_ratio, status,
		error_message, error_code, current_stage, last_error_message, last_error_at,
		is_active, tags, mood, prompt_used, model_name, generation_time_ms,
		generation_log, generation_progress, seed, created_at, updated_at, deleted_at`

// VideoRepository implements models.Repository[*models.Video].
//
// Handles video CRUD with soft delete support plus the status, mood and
// search filters backing the dashboard, list views and the pending queue
// polled by external generators.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new [models.Video] into the database with generated ID and sequence
func (r *VideoRepository) Create(video *models.Video) error {
	sequence, err := NextSequence(r.db, "videos")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	video.SetSequence(sequence)

	id := shared.GenerateID()
	video.SetID(id)

	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	data := video.Data()
	query := `
		INSERT INTO videos (id, sequence, audio_track_id, title, description, video_file, thumbnail,
			file_size_bytes, duration_seconds, resolution, aspect_ratio, status,
			error_message, error_code, current_stage, last_error_message, last_error_at,
			is_active, tags, mood, prompt_used, model_name, generation_time_ms,
			generation_log, generation_progress, seed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		data.AudioTrackID,
		data.Title,
		data.Description,
		data.VideoFile,
		data.Thumbnail,
		data.FileSizeBytes,
		data.DurationSeconds,
		data.Resolution,
		data.AspectRatio,
		data.Status,
		data.ErrorMessage,
		data.ErrorCode,
		data.CurrentStage,
		data.LastErrorMessage,
		data.LastErrorAt,
		data.IsActive,
		data.Tags,
		data.Mood,
		data.PromptUsed,
		data.ModelName,
		data.GenerationTimeMS,
		data.GenerationLog,
		data.GenerationProgress,
		data.Seed,
		video.CreatedAt(),
		video.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

// Get retrieves a video by ID, excluding soft-deleted videos
func (r *VideoRepository) Get(id string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = ? AND deleted_at IS NULL`

	video, err := r.scan(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
	}
	return video, err
}

// Update modifies an existing video in the database
func (r *VideoRepository) Update(video *models.Video) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	video.SetUpdatedAt(now)

	data := video.Data()
	query := `
		UPDATE videos
		SET audio_track_id = ?, title = ?, description = ?, video_file = ?, thumbnail = ?,
			file_size_bytes = ?, duration_seconds = ?, resolution = ?, aspect_ratio = ?,
			status = ?, error_message = ?, error_code = ?, current_stage = ?,
			last_error_message = ?, last_error_at = ?, is_active = ?, tags = ?, mood = ?,
			prompt_used = ?, model_name = ?, generation_time_ms = ?, generation_log = ?,
			generation_progress = ?, seed = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		data.AudioTrackID,
		data.Title,
		data.Description,
		data.VideoFile,
		data.Thumbnail,
		data.FileSizeBytes,
		data.DurationSeconds,
		data.Resolution,
		data.AspectRatio,
		data.Status,
		data.ErrorMessage,
		data.ErrorCode,
		data.CurrentStage,
		data.LastErrorMessage,
		data.LastErrorAt,
		data.IsActive,
		data.Tags,
		data.Mood,
		data.PromptUsed,
		data.ModelName,
		data.GenerationTimeMS,
		data.GenerationLog,
		data.GenerationProgress,
		data.Seed,
		now,
		video.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("video not found or already deleted: %s", video.ID())
	}

	return nil
}

// Delete soft-deletes a video by ID
func (r *VideoRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE videos
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("video not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all videos matching the given criteria, excluding soft-deleted videos.
//
// Supported criteria: "status", "mood", "audio_track_id" (exact matches)
// and "search" (case-insensitive substring over title and tags).
// Results are ordered newest first.
func (r *VideoRepository) List(criteria map[string]any) ([]*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE deleted_at IS NULL`

	args := []any{}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if mood, ok := criteria["mood"].(string); ok && mood != "" {
		query += " AND mood = ?"
		args = append(args, mood)
	}

	if audioID, ok := criteria["audio_track_id"].(string); ok && audioID != "" {
		query += " AND audio_track_id = ?"
		args = append(args, audioID)
	}

	if search, ok := criteria["search"].(string); ok && search != "" {
		query += " AND (title LIKE ? OR tags LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY sequence DESC"

	return r.queryVideos(query, args...)
}

// ListPending retrieves videos awaiting external generation, oldest first.
func (r *VideoRepository) ListPending() ([]*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos
		WHERE status = ? AND deleted_at IS NULL
		ORDER BY sequence ASC`
	return r.queryVideos(query, models.StatusPending)
}

// Recent retrieves the n most recently created videos.
func (r *VideoRepository) Recent(n int) ([]*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos
		WHERE deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT ?`
	return r.queryVideos(query, n)
}

// CountByStatus returns the number of live videos per status.
func (r *VideoRepository) CountByStatus() (map[models.Status]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM videos WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count videos by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Status]int)
	for rows.Next() {
		var status models.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}

// CountByMood returns the number of live videos per mood, skipping the empty mood.
func (r *VideoRepository) CountByMood() (map[models.Mood]int, error) {
	rows, err := r.db.Query(`SELECT mood, COUNT(*) FROM videos WHERE deleted_at IS NULL AND mood != '' GROUP BY mood`)
	if err != nil {
		return nil, fmt.Errorf("failed to count videos by mood: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Mood]int)
	for rows.Next() {
		var mood models.Mood
		var count int
		if err := rows.Scan(&mood, &count); err != nil {
			return nil, fmt.Errorf("failed to scan mood count: %w", err)
		}
		counts[mood] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}

// Count returns the number of live videos.
func (r *VideoRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM videos WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return count, nil
}

func (r *VideoRepository) queryVideos(query string, args ...any) ([]*models.Video, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videos, nil
}

// scan reads one videos row into a [models.Video].
func (r *VideoRepository) scan(row rowScanner) (*models.Video, error) {
	var (
		id          string
		sequence    int
		data        models.VideoData
		lastErrorAt sql.NullTime
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(
		&id,
		&sequence,
		&data.AudioTrackID,
		&data.Title,
		&data.Description,
		&data.VideoFile,
		&data.Thumbnail,
		&data.FileSizeBytes,
		&data.DurationSeconds,
		&data.Resolution,
		&data.AspectRatio,
		&data.Status,
		&data.ErrorMessage,
		&data.ErrorCode,
		&data.CurrentStage,
		&data.LastErrorMessage,
		&lastErrorAt,
		&data.IsActive,
		&data.Tags,
		&data.Mood,
		&data.PromptUsed,
		&data.ModelName,
		&data.GenerationTimeMS,
		&data.GenerationLog,
		&data.GenerationProgress,
		&data.Seed,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	if lastErrorAt.Valid {
		t := lastErrorAt.Time
		data.LastErrorAt = &t
	}

	video := models.RestoreVideo(sequence, data)
	video.SetID(id)
	video.SetCreatedAt(createdAt)
	video.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		video.SetDeletedAt(&deletedAt.Time)
	}

	return video, nil
}
