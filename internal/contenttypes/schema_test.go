package contenttypes_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-sites/internal/contenttypes"
)

func TestValidateRegionsWithoutSchema(t *testing.T) {
	def := blogType()
	if err := contenttypes.ValidateRegions(def, map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected schema-less definition to accept payload: %v", err)
	}
}

func TestValidateRegionsSchemaPassAndFail(t *testing.T) {
	def := &contenttypes.ContentType{
		ID: "landing",
		Schema: map[string]any{
			"type":     "object",
			"required": []any{"hero"},
			"properties": map[string]any{
				"hero": map[string]any{
					"type":     "object",
					"required": []any{"title"},
					"properties": map[string]any{
						"title": map[string]any{"type": "string"},
					},
				},
			},
		},
	}

	valid := map[string]any{
		"hero": map[string]any{"title": "Welcome"},
	}
	if err := contenttypes.ValidateRegions(def, valid); err != nil {
		t.Fatalf("expected valid payload: %v", err)
	}

	invalid := map[string]any{
		"hero": map[string]any{"title": 42},
	}
	err := contenttypes.ValidateRegions(def, invalid)
	if !errors.Is(err, contenttypes.ErrRegionsInvalid) {
		t.Fatalf("expected ErrRegionsInvalid got %v", err)
	}

	var regionErr *contenttypes.RegionValidationError
	if !errors.As(err, &regionErr) {
		t.Fatalf("expected RegionValidationError got %T", err)
	}
	if len(regionErr.Issues) == 0 {
		t.Fatalf("expected at least one validation issue")
	}
}
