package contenttypes

import "errors"

var ErrTypeNotRegistered = errors.New("content types: type is not registered")

// ContentModel is the contract content shells satisfy so the factory can
// initialize them without knowing the concrete type.
type ContentModel interface {
	ContentTypeID() string
	ContentKind() Kind
	ApplyRegions(regions map[string]any)
	RegionValues() map[string]any
}

// Factory materializes initialized content payloads from registered
// definitions.
type Factory struct {
	registry *Registry
}

// NewFactory constructs a factory bound to the supplied registry.
func NewFactory(registry *Registry) *Factory {
	return &Factory{registry: registry}
}

// Create builds the initialized region payload for a registered type. The
// second return value is false when the type is unregistered.
func (f *Factory) Create(typeID string) (map[string]any, bool) {
	def, ok := f.registry.GetByID(typeID)
	if !ok {
		return nil, false
	}
	return buildRegions(def, nil), true
}

// Init initializes a content model, dispatching on its kind tag. Static
// models keep caller-supplied values and only gain missing defaults; dynamic
// models have their full payload rebuilt from the definition.
func (f *Factory) Init(model ContentModel) error {
	if model == nil {
		return nil
	}
	def, ok := f.registry.GetByID(model.ContentTypeID())
	if !ok {
		return ErrTypeNotRegistered
	}
	switch model.ContentKind() {
	case KindDynamic:
		return f.InitDynamic(model, def)
	default:
		return f.InitStatic(model, def)
	}
}

// InitStatic fills in defaults for regions the model does not carry yet.
func (f *Factory) InitStatic(model ContentModel, def *ContentType) error {
	if model == nil || def == nil {
		return nil
	}
	existing := model.RegionValues()
	regions := buildRegions(def, existing)
	for id, value := range existing {
		regions[id] = value
	}
	model.ApplyRegions(regions)
	return nil
}

// InitDynamic rebuilds the complete region payload from the definition,
// preserving known field values from the model.
func (f *Factory) InitDynamic(model ContentModel, def *ContentType) error {
	if model == nil || def == nil {
		return nil
	}
	model.ApplyRegions(buildRegions(def, model.RegionValues()))
	return nil
}

func buildRegions(def *ContentType, existing map[string]any) map[string]any {
	regions := make(map[string]any, len(def.Regions))
	for _, region := range def.Regions {
		if region.Collection {
			if current, ok := existing[region.ID].([]any); ok {
				regions[region.ID] = current
				continue
			}
			regions[region.ID] = []any{}
			continue
		}
		regions[region.ID] = buildFields(region, existing[region.ID])
	}
	return regions
}

func buildFields(region Region, existing any) map[string]any {
	current, _ := existing.(map[string]any)
	fields := make(map[string]any, len(region.Fields))
	for _, field := range region.Fields {
		if current != nil {
			if value, ok := current[field.ID]; ok {
				fields[field.ID] = value
				continue
			}
		}
		fields[field.ID] = field.Default
	}
	return fields
}
