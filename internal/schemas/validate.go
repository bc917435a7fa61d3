// Package schemas provides JSON Schema validation for the structured
// responses the generation API is asked to produce. The gateway runs every
// upstream payload through Validate before decoding it into a typed result,
// so a malformed response becomes a reportable error rather than a runtime
// surprise.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.json
var schemaFiles embed.FS

// Schema names accepted by Validate.
const (
	Analysis  = "analysis.schema.json"
	Discovery = "discovery.schema.json"
	Plan      = "plan.schema.json"

	// founderProfileSchema is referenced by the three response schemas and
	// registered with the loader but not validated against directly.
	founderProfileSchema = "founder_profile.schema.json"
)

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("response does not match %s:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a JSON document against one of the embedded schemas.
// Returns nil when the document conforms, a *ValidationError when it does
// not, and a plain error when the schema itself cannot be loaded or the
// document is not valid JSON.
func Validate(name string, document []byte) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate against %s: %w", name, err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// load compiles and caches the named schema, registering the shared founder
// profile schema so $ref resolution works.
func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}

	profileData, err := schemaFiles.ReadFile(founderProfileSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", founderProfileSchema, err)
	}

	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("unknown schema %s: %w", name, err)
	}

	loader := gojsonschema.NewSchemaLoader()
	if err := loader.AddSchemas(gojsonschema.NewBytesLoader(profileData)); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", founderProfileSchema, err)
	}

	schema, err := loader.Compile(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", name, err)
	}

	compiled[name] = schema
	return schema, nil
}
