// Package repositories provides persistence layer implementations for all model types.
//
// Each repository implements models.Repository[T] for a specific entity type,
// handling CRUD operations, soft deletes, and sequence generation. Domain
// queries beyond the generic interface (status counts, pending queues,
// junction-table membership) live on the concrete repository types.
package repositories
