package resumes

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Each stage maps its failures onto exactly one of
// these so handlers and telemetry can tell the stages apart.
var (
	ErrNotFound         = errors.New("resume not found")
	ErrNoPreview        = errors.New("no preview image for resume")
	ErrUploadFailed     = errors.New("upload failed")
	ErrConversionFailed = errors.New("conversion failed")
	ErrInferenceFailed  = errors.New("inference failed")
)

// MalformedReportError means the inference output parsed as JSON but violated
// the report contract. Field names the offending location, e.g.
// "toneAndStyle.tips[1].explanation".
type MalformedReportError struct {
	Field  string
	Reason string
}

func (e *MalformedReportError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed report: %s", e.Reason)
	}
	return fmt.Sprintf("malformed report: %s: %s", e.Field, e.Reason)
}
