// package tasks implements video generation operations.
//
// The core abstraction is Engine, which orchestrates local ffmpeg composition and
// provider-backed generation jobs. Operations emit progress updates via channels
// for non-blocking status reporting to web/CLI/UI layers.
package tasks
