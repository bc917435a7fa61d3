package gateway

import (
	"encoding/json"

	"github.com/forge-ai/forge/internal/schemas"
)

// decode verifies raw upstream JSON against the named embedded schema and
// unmarshals it into out. Any failure along the way is a DecodeError; the
// caller reports it instead of rendering a half-formed result.
func decode(operation, schemaName string, raw []byte, out any) error {
	if err := schemas.Validate(schemaName, raw); err != nil {
		return &DecodeError{Operation: operation, Cause: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Operation: operation, Cause: err}
	}
	return nil
}
