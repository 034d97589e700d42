package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrUnauthorized = fmt.Errorf("unauthorized")

	// Record errors
	ErrNotFound         = fmt.Errorf("record not found")
	ErrVideoNotFound    = fmt.Errorf("video not found")
	ErrAudioNotFound    = fmt.Errorf("audio track not found")
	ErrProjectNotFound  = fmt.Errorf("project not found")
	ErrProviderNotFound = fmt.Errorf("provider not found")
	ErrJobNotFound      = fmt.Errorf("generation job not found")

	// Generation errors
	ErrGenerationBusy   = fmt.Errorf("video generation already in progress")
	ErrProviderInactive = fmt.Errorf("provider is inactive")
	ErrProviderRequest  = fmt.Errorf("provider request failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidProgress = fmt.Errorf("generation_progress must be an integer between 0 and 100")

	// Media errors
	ErrMediaNotFound = fmt.Errorf("media file not found")
	ErrMediaEscape   = fmt.Errorf("media path escapes media root")
)
