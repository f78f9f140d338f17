package contenttypes_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-sites/internal/contenttypes"
)

type shell struct {
	typeID  string
	kind    contenttypes.Kind
	regions map[string]any
}

func (s *shell) ContentTypeID() string                 { return s.typeID }
func (s *shell) ContentKind() contenttypes.Kind        { return s.kind }
func (s *shell) ApplyRegions(regions map[string]any)   { s.regions = regions }
func (s *shell) RegionValues() map[string]any          { return s.regions }

func TestFactoryCreateBuildsDefaults(t *testing.T) {
	reg := contenttypes.NewRegistry()
	if err := reg.Register(blogType()); err != nil {
		t.Fatalf("register: %v", err)
	}
	factory := contenttypes.NewFactory(reg)

	regions, ok := factory.Create("blog")
	if !ok {
		t.Fatalf("expected registered type")
	}

	heading, ok := regions["heading"].(map[string]any)
	if !ok {
		t.Fatalf("expected heading region map, got %T", regions["heading"])
	}
	if heading["title"] != "Untitled" {
		t.Fatalf("expected default title, got %v", heading["title"])
	}
	if _, ok := regions["teasers"].([]any); !ok {
		t.Fatalf("expected collection region to initialize as list")
	}
}

func TestFactoryCreateUnregistered(t *testing.T) {
	factory := contenttypes.NewFactory(contenttypes.NewRegistry())
	if _, ok := factory.Create("missing"); ok {
		t.Fatalf("expected unregistered type to report false")
	}
}

func TestFactoryInitDynamicPreservesKnownValues(t *testing.T) {
	reg := contenttypes.NewRegistry()
	if err := reg.Register(blogType()); err != nil {
		t.Fatalf("register: %v", err)
	}
	factory := contenttypes.NewFactory(reg)

	model := &shell{
		typeID: "blog",
		kind:   contenttypes.KindDynamic,
		regions: map[string]any{
			"heading": map[string]any{"title": "Hello", "stale": "dropped"},
		},
	}
	if err := factory.Init(model); err != nil {
		t.Fatalf("init: %v", err)
	}

	heading := model.regions["heading"].(map[string]any)
	if heading["title"] != "Hello" {
		t.Fatalf("expected preserved title, got %v", heading["title"])
	}
	if _, ok := heading["stale"]; ok {
		t.Fatalf("expected dynamic init to drop unknown fields")
	}
	if heading["tagline"] != nil {
		t.Fatalf("expected missing field to default to nil, got %v", heading["tagline"])
	}
}

func TestFactoryInitStaticKeepsCallerRegions(t *testing.T) {
	reg := contenttypes.NewRegistry()
	if err := reg.Register(blogType()); err != nil {
		t.Fatalf("register: %v", err)
	}
	factory := contenttypes.NewFactory(reg)

	model := &shell{
		typeID: "blog",
		kind:   contenttypes.KindStatic,
		regions: map[string]any{
			"heading": map[string]any{"title": "Typed"},
		},
	}
	if err := factory.Init(model); err != nil {
		t.Fatalf("init: %v", err)
	}

	heading := model.regions["heading"].(map[string]any)
	if heading["title"] != "Typed" {
		t.Fatalf("expected caller value to survive, got %v", heading["title"])
	}
}

func TestFactoryInitUnregistered(t *testing.T) {
	factory := contenttypes.NewFactory(contenttypes.NewRegistry())
	err := factory.Init(&shell{typeID: "nope", kind: contenttypes.KindDynamic})
	if !errors.Is(err, contenttypes.ErrTypeNotRegistered) {
		t.Fatalf("expected ErrTypeNotRegistered got %v", err)
	}
}
