// package services defines the external integrations used during video
// generation
//
// ffmpeg/ffprobe for local composition, HTTP AI providers for remote
// generation
package services
