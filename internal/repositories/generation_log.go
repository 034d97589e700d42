package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// GenerationLogRepository persists per-stage generation log rows.
//
// Log rows are append-only; there is no update or delete path.
type GenerationLogRepository struct {
	db *sql.DB
}

// NewGenerationLogRepository creates a new GenerationLogRepository with the given database connection
func NewGenerationLogRepository(db *sql.DB) *GenerationLogRepository {
	return &GenerationLogRepository{db: db}
}

// Create inserts a new [models.GenerationLog] with generated ID and sequence
func (r *GenerationLogRepository) Create(entry *models.GenerationLog) error {
	sequence, err := NextSequence(r.db, "generation_logs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	entry.SetSequence(sequence)

	id := shared.GenerateID()
	entry.SetID(id)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO generation_logs (id, sequence, video_id, stage, status, message, detail, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		entry.VideoID(),
		entry.Stage(),
		entry.Status(),
		entry.Message(),
		entry.Detail(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert generation log: %w", err)
	}

	return nil
}

// ForVideo retrieves the latest log rows for a video, newest first,
// capped at limit. A limit of 0 or less defaults to 100.
func (r *GenerationLogRepository) ForVideo(videoID string, limit int) ([]*models.GenerationLog, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, sequence, video_id, stage, status, message, detail, created_at
		FROM generation_logs
		WHERE video_id = ?
		ORDER BY sequence DESC
		LIMIT ?
	`
	return r.queryLogs(query, videoID, limit)
}

// RecentFailures retrieves the n most recent failed log rows across all videos.
func (r *GenerationLogRepository) RecentFailures(n int) ([]*models.GenerationLog, error) {
	query := `
		SELECT id, sequence, video_id, stage, status, message, detail, created_at
		FROM generation_logs
		WHERE status = ?
		ORDER BY sequence DESC
		LIMIT ?
	`
	return r.queryLogs(query, models.LogFailed, n)
}

func (r *GenerationLogRepository) queryLogs(query string, args ...any) ([]*models.GenerationLog, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query generation logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.GenerationLog
	for rows.Next() {
		var (
			id        string
			sequence  int
			videoID   string
			stage     string
			status    models.LogStatus
			message   string
			detail    string
			createdAt time.Time
		)

		err := rows.Scan(&id, &sequence, &videoID, &stage, &status, &message, &detail, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation log: %w", err)
		}

		entry := models.NewGenerationLog(sequence, videoID, stage, status, message, detail)
		entry.SetID(id)
		entry.SetCreatedAt(createdAt)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}
