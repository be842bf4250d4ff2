package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
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
	ReadFile Phase = iota
	ValidateSchema
	ConvertRecords
	LoadPallete
	ExportChart
)

func (p Phase) String() string {
	switch p {
	case ReadFile:
		return "read"
	case ValidateSchema:
		return "validate"
	case ConvertRecords:
		return "convert"
	case LoadPallete:
		return "load"
	case ExportChart:
		return "export_chart"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full, skip this update
	}
}

func readFileUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadFile,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reading %s...", path),
	}
}

func validateUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateSchema,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Validated %d album records", count),
	}
}

func convertUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ConvertRecords,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, title),
	}
}

func loadUpdate(result *ImportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadPallete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d albums into %s (%d skipped)", len(result.Albums), result.Pallete, result.Skipped),
		Data:    result,
	}
}

func exportingChartUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportChart,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportChart,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportChart,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
