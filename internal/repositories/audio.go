package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// AudioRepository implements models.Repository[*models.AudioTrack].
//
// Handles audio track CRUD with soft delete support.
type AudioRepository struct {
	db *sql.DB
}

// NewAudioRepository creates a new AudioRepository with the given database connection
func NewAudioRepository(db *sql.DB) *AudioRepository {
	return &AudioRepository{db: db}
}

// Create inserts a new [models.AudioTrack] into the database with generated ID and sequence
func (r *AudioRepository) Create(track *models.AudioTrack) error {
	sequence, err := NextSequence(r.db, "audio_tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	track.SetSequence(sequence)

	id := shared.GenerateID()
	track.SetID(id)

	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	data := track.Data()
	query := `
		INSERT INTO audio_tracks (id, sequence, title, artist, audio_file, lyrics, language, bpm, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		data.Title,
		data.Artist,
		data.AudioFile,
		data.Lyrics,
		data.Language,
		data.BPM,
		track.CreatedAt(),
		track.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audio track: %w", err)
	}

	return nil
}

// Get retrieves an audio track by ID, excluding soft-deleted tracks
func (r *AudioRepository) Get(id string) (*models.AudioTrack, error) {
	query := `
		SELECT id, sequence, title, artist, audio_file, lyrics, language, bpm, created_at, updated_at, deleted_at
		FROM audio_tracks
		WHERE id = ? AND deleted_at IS NULL
	`

	track, err := r.scan(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrAudioNotFound, id)
	}
	return track, err
}

// Update modifies an existing audio track in the database
func (r *AudioRepository) Update(track *models.AudioTrack) error {
	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	track.SetUpdatedAt(now)

	data := track.Data()
	query := `
		UPDATE audio_tracks
		SET title = ?, artist = ?, audio_file = ?, lyrics = ?, language = ?, bpm = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		data.Title,
		data.Artist,
		data.AudioFile,
		data.Lyrics,
		data.Language,
		data.BPM,
		now,
		track.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update audio track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("audio track not found or already deleted: %s", track.ID())
	}

	return nil
}

// Delete soft-deletes an audio track by ID
func (r *AudioRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE audio_tracks
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete audio track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("audio track not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all audio tracks matching the given criteria, newest first.
//
// Supported criteria: "language" (exact match) and "search"
// (case-insensitive substring over title and artist).
func (r *AudioRepository) List(criteria map[string]any) ([]*models.AudioTrack, error) {
	query := `
		SELECT id, sequence, title, artist, audio_file, lyrics, language, bpm, created_at, updated_at, deleted_at
		FROM audio_tracks
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if language, ok := criteria["language"].(string); ok && language != "" {
		query += " AND language = ?"
		args = append(args, language)
	}

	if search, ok := criteria["search"].(string); ok && search != "" {
		query += " AND (title LIKE ? OR artist LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audio tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*models.AudioTrack
	for rows.Next() {
		track, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// Count returns the number of live audio tracks.
func (r *AudioRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM audio_tracks WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audio tracks: %w", err)
	}
	return count, nil
}

// scan reads one audio_tracks row into a [models.AudioTrack].
func (r *AudioRepository) scan(row rowScanner) (*models.AudioTrack, error) {
	var (
		id        string
		sequence  int
		data      models.AudioData
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&id,
		&sequence,
		&data.Title,
		&data.Artist,
		&data.AudioFile,
		&data.Lyrics,
		&data.Language,
		&data.BPM,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan audio track: %w", err)
	}

	track := models.NewAudioTrack(sequence, data)
	track.SetID(id)
	track.SetCreatedAt(createdAt)
	track.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		track.SetDeletedAt(&deletedAt.Time)
	}

	return track, nil
}
