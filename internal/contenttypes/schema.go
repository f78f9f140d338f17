package contenttypes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrRegionsInvalid = errors.New("content types: region payload failed schema validation")

// ValidationIssue captures a single schema validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// RegionValidationError surfaces schema issues with payload locations.
type RegionValidationError struct {
	TypeID string
	Issues []ValidationIssue
	Cause  error
}

func (e *RegionValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", ErrRegionsInvalid.Error(), e.Cause)
		}
		return ErrRegionsInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Location != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", issue.Location, issue.Message))
			continue
		}
		parts = append(parts, issue.Message)
	}
	return fmt.Sprintf("%s: %s", ErrRegionsInvalid.Error(), strings.Join(parts, "; "))
}

func (e *RegionValidationError) Unwrap() error {
	return ErrRegionsInvalid
}

// ValidateRegions checks a region payload against the definition's JSON
// schema. Definitions without a schema accept any payload.
func ValidateRegions(def *ContentType, regions map[string]any) error {
	if def == nil || len(def.Schema) == 0 {
		return nil
	}

	compiled, err := compileSchema(def.Schema)
	if err != nil {
		return &RegionValidationError{TypeID: def.ID, Cause: err}
	}

	if err := compiled.Validate(normalizePayload(regions)); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &RegionValidationError{TypeID: def.ID, Issues: collectIssues(ve)}
		}
		return &RegionValidationError{TypeID: def.ID, Cause: err}
	}
	return nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// normalizePayload round-trips the payload through JSON so the validator sees
// the same value shapes a decoded document would have.
func normalizePayload(regions map[string]any) any {
	if regions == nil {
		return map[string]any{}
	}
	encoded, err := json.Marshal(regions)
	if err != nil {
		return regions
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return regions
	}
	return out
}

func collectIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
