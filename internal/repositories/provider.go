package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// ProviderRepository persists AI provider configurations.
type ProviderRepository struct {
	db *sql.DB
}

// NewProviderRepository creates a new ProviderRepository with the given database connection
func NewProviderRepository(db *sql.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// Create inserts a new [models.Provider] with generated ID and sequence.
// Provider names are unique; a duplicate insert fails at the database.
func (r *ProviderRepository) Create(provider *models.Provider) error {
	sequence, err := NextSequence(r.db, "providers")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	provider.SetSequence(sequence)

	id := shared.GenerateID()
	provider.SetID(id)

	if err := provider.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	data := provider.Data()
	query := `
		INSERT INTO providers (id, sequence, name, base_url, endpoint_path, api_key, token_url,
			extra_headers, extra_payload, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		data.Name,
		data.BaseURL,
		data.EndpointPath,
		data.APIKey,
		data.TokenURL,
		data.ExtraHeaders,
		data.ExtraPayload,
		data.IsActive,
		provider.CreatedAt(),
		provider.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert provider: %w", err)
	}

	return nil
}

// Get retrieves a provider by ID, excluding soft-deleted providers
func (r *ProviderRepository) Get(id string) (*models.Provider, error) {
	query := `
		SELECT id, sequence, name, base_url, endpoint_path, api_key, token_url,
			extra_headers, extra_payload, is_active, created_at, updated_at, deleted_at
		FROM providers
		WHERE id = ? AND deleted_at IS NULL
	`

	provider, err := r.scan(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrProviderNotFound, id)
	}
	return provider, err
}

// GetByName retrieves a provider by its unique name.
func (r *ProviderRepository) GetByName(name string) (*models.Provider, error) {
	query := `
		SELECT id, sequence, name, base_url, endpoint_path, api_key, token_url,
			extra_headers, extra_payload, is_active, created_at, updated_at, deleted_at
		FROM providers
		WHERE name = ? AND deleted_at IS NULL
	`

	provider, err := r.scan(r.db.QueryRow(query, name))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrProviderNotFound, name)
	}
	return provider, err
}

// Update modifies an existing provider configuration
func (r *ProviderRepository) Update(provider *models.Provider) error {
	if err := provider.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	provider.SetUpdatedAt(now)

	data := provider.Data()
	query := `
		UPDATE providers
		SET name = ?, base_url = ?, endpoint_path = ?, api_key = ?, token_url = ?,
			extra_headers = ?, extra_payload = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		data.Name,
		data.BaseURL,
		data.EndpointPath,
		data.APIKey,
		data.TokenURL,
		data.ExtraHeaders,
		data.ExtraPayload,
		data.IsActive,
		now,
		provider.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update provider: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("provider not found or already deleted: %s", provider.ID())
	}

	return nil
}

// Delete soft-deletes a provider by ID
func (r *ProviderRepository) Delete(id string) error {
	now := time.Now()

	result, err := r.db.Exec(
		`UPDATE providers SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete provider: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("provider not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all live providers, newest first.
//
// Supported criteria: "is_active" (bool).
func (r *ProviderRepository) List(criteria map[string]any) ([]*models.Provider, error) {
	query := `
		SELECT id, sequence, name, base_url, endpoint_path, api_key, token_url,
			extra_headers, extra_payload, is_active, created_at, updated_at, deleted_at
		FROM providers
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if active, ok := criteria["is_active"].(bool); ok {
		query += " AND is_active = ?"
		args = append(args, active)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()

	var providers []*models.Provider
	for rows.Next() {
		provider, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return providers, nil
}

// ListActive retrieves active providers, newest first.
func (r *ProviderRepository) ListActive() ([]*models.Provider, error) {
	return r.List(map[string]any{"is_active": true})
}

// scan reads one providers row into a [models.Provider].
func (r *ProviderRepository) scan(row rowScanner) (*models.Provider, error) {
	var (
		id        string
		sequence  int
		data      models.ProviderData
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&id,
		&sequence,
		&data.Name,
		&data.BaseURL,
		&data.EndpointPath,
		&data.APIKey,
		&data.TokenURL,
		&data.ExtraHeaders,
		&data.ExtraPayload,
		&data.IsActive,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan provider: %w", err)
	}

	provider := models.RestoreProvider(sequence, data)
	provider.SetID(id)
	provider.SetCreatedAt(createdAt)
	provider.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		provider.SetDeletedAt(&deletedAt.Time)
	}

	return provider, nil
}
