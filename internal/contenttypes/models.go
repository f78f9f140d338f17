package contenttypes

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind tags the initialization path for a content model. Static models carry
// caller-managed region values that only need defaults filled in; dynamic
// models have their full region payload materialized from the definition.
type Kind string

const (
	KindStatic  Kind = "static"
	KindDynamic Kind = "dynamic"
)

// Field describes a single editable value inside a region.
type Field struct {
	ID      string
	Title   string
	Type    string
	Default any
}

// Region groups fields inside a content type. Collection regions hold a list
// of field sets instead of a single one.
type Region struct {
	ID         string
	Title      string
	Collection bool
	Fields     []Field
}

// ContentType defines the shape of a dynamic content payload. Schema is an
// optional JSON schema applied to region payloads on validation.
type ContentType struct {
	ID      string
	Title   string
	Regions []Region
	Schema  map[string]any
}

// Validate checks the definition before it enters the registry.
func (ct ContentType) Validate() error {
	return validation.ValidateStruct(&ct,
		validation.Field(&ct.ID, validation.Required, validation.Length(1, 64)),
		validation.Field(&ct.Title, validation.Length(0, 128)),
	)
}

func cloneContentType(src *ContentType) *ContentType {
	if src == nil {
		return nil
	}
	copied := *src
	if len(src.Regions) > 0 {
		copied.Regions = make([]Region, len(src.Regions))
		for i, region := range src.Regions {
			local := region
			if len(region.Fields) > 0 {
				local.Fields = make([]Field, len(region.Fields))
				copy(local.Fields, region.Fields)
			}
			copied.Regions[i] = local
		}
	}
	if src.Schema != nil {
		copied.Schema = cloneMap(src.Schema)
	}
	return &copied
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
