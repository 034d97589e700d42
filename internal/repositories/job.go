package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// JobRepository persists provider-backed generation jobs.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository with the given database connection
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new [models.GenerationJob] with generated ID and sequence
func (r *JobRepository) Create(job *models.GenerationJob) error {
	sequence, err := NextSequence(r.db, "generation_jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	job.SetSequence(sequence)

	id := shared.GenerateID()
	job.SetID(id)

	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	data := job.Data()
	query := `
		INSERT INTO generation_jobs (id, sequence, provider_id, audio_track_id, background_video_id,
			video_id, prompt, status, request_payload, response_raw, error_message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		data.ProviderID,
		data.AudioTrackID,
		nullIfEmpty(data.BackgroundVideoID),
		nullIfEmpty(data.VideoID),
		data.Prompt,
		data.Status,
		data.RequestPayload,
		data.ResponseRaw,
		data.ErrorMessage,
		job.CreatedAt(),
		job.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert generation job: %w", err)
	}

	return nil
}

// Get retrieves a generation job by ID
func (r *JobRepository) Get(id string) (*models.GenerationJob, error) {
	query := `
		SELECT id, sequence, provider_id, audio_track_id, background_video_id,
			video_id, prompt, status, request_payload, response_raw, error_message, created_at, updated_at
		FROM generation_jobs
		WHERE id = ?
	`

	job, err := r.scan(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
	}
	return job, err
}

// Update persists the job's mutable fields: status, linked video and
// request/response bodies.
func (r *JobRepository) Update(job *models.GenerationJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	job.SetUpdatedAt(now)

	data := job.Data()
	query := `
		UPDATE generation_jobs
		SET video_id = ?, status = ?, request_payload = ?, response_raw = ?, error_message = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		nullIfEmpty(data.VideoID),
		data.Status,
		data.RequestPayload,
		data.ResponseRaw,
		data.ErrorMessage,
		now,
		job.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update generation job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("generation job not found: %s", job.ID())
	}

	return nil
}

// List retrieves all generation jobs, newest first.
//
// Supported criteria: "status" and "provider_id" (exact matches).
func (r *JobRepository) List(criteria map[string]any) ([]*models.GenerationJob, error) {
	query := `
		SELECT id, sequence, provider_id, audio_track_id, background_video_id,
			video_id, prompt, status, request_payload, response_raw, error_message, created_at, updated_at
		FROM generation_jobs
		WHERE 1 = 1
	`

	args := []any{}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if providerID, ok := criteria["provider_id"].(string); ok && providerID != "" {
		query += " AND provider_id = ?"
		args = append(args, providerID)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query generation jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.GenerationJob
	for rows.Next() {
		job, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return jobs, nil
}

// ListByStatus retrieves jobs with the given status, newest first.
func (r *JobRepository) ListByStatus(status models.JobStatus) ([]*models.GenerationJob, error) {
	return r.List(map[string]any{"status": string(status)})
}

// nullIfEmpty maps the empty string to NULL for nullable foreign keys.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// scan reads one generation_jobs row into a [models.GenerationJob].
func (r *JobRepository) scan(row rowScanner) (*models.GenerationJob, error) {
	var (
		id              string
		sequence        int
		data            models.JobData
		backgroundVideo sql.NullString
		videoID         sql.NullString
		createdAt       time.Time
		updatedAt       time.Time
	)

	err := row.Scan(
		&id,
		&sequence,
		&data.ProviderID,
		&data.AudioTrackID,
		&backgroundVideo,
		&videoID,
		&data.Prompt,
		&data.Status,
		&data.RequestPayload,
		&data.ResponseRaw,
		&data.ErrorMessage,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan generation job: %w", err)
	}

	data.BackgroundVideoID = backgroundVideo.String
	data.VideoID = videoID.String

	job := models.NewGenerationJob(sequence, data)
	job.SetID(id)
	job.SetCreatedAt(createdAt)
	job.SetUpdatedAt(updatedAt)

	return job, nil
}
