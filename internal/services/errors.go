package services

// Machine-readable error codes persisted on failed videos.
const (
	CodeAudioMissing      = "audio_missing"
	CodeBackgroundMissing = "background_missing"
	CodeDurationInvalid   = "duration_invalid"
	CodeOutputMissing     = "output_missing"
	CodeFFmpegMissing     = "ffmpeg_missing"
	CodeFFmpegFailed      = "ffmpeg_failed"
)

// GenerationError is a generation failure with a machine-readable code.
type GenerationError struct {
	Message string
	Code    string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a GenerationError with the given code.
func NewGenerationError(code, message string, err error) *GenerationError {
	return &GenerationError{Message: message, Code: code, Err: err}
}
