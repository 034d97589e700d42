// Package models defines domain entities and persistence interfaces for the mvx music video studio.
//
// The package contains two categories of types:
//
// 1. Data records: Plain structs carrying the JSON-serializable fields of each entity
//   - [AudioData] : Audio track metadata and file reference
//   - [VideoData] : Generated video metadata, status and generation bookkeeping
//   - [ProjectData] : Project name and description
//   - [ProviderData] : External AI provider endpoint configuration
//   - [JobData] : Provider generation job request/response state
//
// 2. Persistent entities: Database-backed models with full lifecycle management
//   - [AudioTrack] : Uploaded or imported audio tracks
//   - [Video] : Generated music videos with status, progress and log fields
//   - [GenerationLog] : Per-stage generation log rows attached to a video
//   - [Project] : Named groupings of videos
//   - [ActivityLog] : Append-only audit trail of mutations
//   - [Provider] : AI video provider configurations
//   - [GenerationJob] : Provider-backed generation jobs
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
