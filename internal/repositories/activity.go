package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// ActivityRepository persists audit records for mutations made through
// the web UI, API and CLI. Records are append-only.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new ActivityRepository with the given database connection
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a new [models.ActivityLog] with generated ID and sequence
func (r *ActivityRepository) Create(entry *models.ActivityLog) error {
	sequence, err := NextSequence(r.db, "activity_logs")
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
		INSERT INTO activity_logs (id, sequence, actor, action, object_type, object_id, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		entry.Actor(),
		entry.Action(),
		entry.ObjectType(),
		entry.ObjectID(),
		entry.Description(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}

// Recent retrieves the n most recent activity records, newest first.
func (r *ActivityRepository) Recent(n int) ([]*models.ActivityLog, error) {
	query := `
		SELECT id, sequence, actor, action, object_type, object_id, description, created_at
		FROM activity_logs
		ORDER BY sequence DESC
		LIMIT ?
	`
	return r.queryActivity(query, n)
}

// ForObject retrieves activity records for a specific object, newest first.
func (r *ActivityRepository) ForObject(objectType, objectID string) ([]*models.ActivityLog, error) {
	query := `
		SELECT id, sequence, actor, action, object_type, object_id, description, created_at
		FROM activity_logs
		WHERE object_type = ? AND object_id = ?
		ORDER BY sequence DESC
	`
	return r.queryActivity(query, objectType, objectID)
}

func (r *ActivityRepository) queryActivity(query string, args ...any) ([]*models.ActivityLog, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.ActivityLog
	for rows.Next() {
		var (
			id          string
			sequence    int
			actor       string
			action      string
			objectType  string
			objectID    string
			description string
			createdAt   time.Time
		)

		err := rows.Scan(&id, &sequence, &actor, &action, &objectType, &objectID, &description, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}

		entry := models.NewActivityLog(sequence, actor, action, objectType, objectID, description)
		entry.SetID(id)
		entry.SetCreatedAt(createdAt)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}
