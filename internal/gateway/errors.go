package gateway

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// QuotaError indicates the upstream generation API rejected the call for
// quota or rate-limit reasons. Surfaced verbatim with billing guidance.
type QuotaError struct {
	Operation string
	Cause     error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota exceeded while trying to %s: check your plan and billing details, then try again", e.Operation)
}

func (e *QuotaError) Unwrap() error {
	return e.Cause
}

// UpstreamError indicates any other transport or generation failure.
type UpstreamError struct {
	Operation string
	Cause     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to %s: check your network connection and try again", e.Operation)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// DecodeError indicates the upstream returned text that does not parse into
// the expected response shape. The schema validation details, when present,
// ride along in Cause.
type DecodeError struct {
	Operation string
	Cause     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response while trying to %s: %v", e.Operation, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// classify maps a transport error to the two-bucket taxonomy: quota signals
// (HTTP 429 or a resource-exhaustion marker) become QuotaError, everything
// else UpstreamError.
func classify(operation string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return &QuotaError{Operation: operation, Cause: err}
	}
	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return &QuotaError{Operation: operation, Cause: err}
	}
	return &UpstreamError{Operation: operation, Cause: err}
}
