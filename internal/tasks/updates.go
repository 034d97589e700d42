package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the web/CLI/UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ValidateInputs Phase = iota
	ProbeMedia
	Compose
	Finalize
	ProviderRequest
	ProviderDownload
	ExportReports
)

func (p Phase) String() string {
	switch p {
	case ValidateInputs:
		return "validate_inputs"
	case ProbeMedia:
		return "probe_media"
	case Compose:
		return "compose"
	case Finalize:
		return "finalize"
	case ProviderRequest:
		return "provider_request"
	case ProviderDownload:
		return "provider_download"
	case ExportReports:
		return "export_reports"
	default:
		return ""
	}
}

func validateInputsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateInputs,
		Step:    step,
		Total:   total,
		Message: "Validating audio and background inputs...",
	}
}

func probeMediaUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProbeMedia,
		Step:    step,
		Total:   total,
		Message: "Probing media durations...",
	}
}

func composeUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Compose,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Composing video (%s)...", title),
	}
}

func finalizeUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Finalize,
		Step:    step,
		Total:   total,
		Message: "Finalizing video metadata...",
	}
}

func failureUpdate(phase Phase, step, total int, message string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Generation failed: %s", message),
	}
}

func providerRequestUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProviderRequest,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Sending generation request to %s...", name),
	}
}

func providerDownloadUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProviderDownload,
		Step:    step,
		Total:   total,
		Message: "Downloading generated video...",
	}
}

func exportingReportUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportReports,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exporting report (%s)...", title),
	}
}
