// Package sites provides multi-site management for content-driven
// applications: site records addressed by id, internal id, hostname or
// default flag, per-site typed content payloads and cached hierarchical
// sitemaps.
package sites

import (
	"github.com/goliatone/go-sites/internal/contenttypes"
	"github.com/goliatone/go-sites/internal/di"
	core "github.com/goliatone/go-sites/internal/sites"
	"github.com/goliatone/go-sites/pkg/interfaces"
)

// Service exports the site service contract for consumers of the package.
type Service = core.Service

// Site exports the canonical site record.
type Site = core.Site

// SiteContent exports the per-site content payload.
type SiteContent = core.SiteContent

// SiteMapping exports the hostname resolution projection.
type SiteMapping = core.SiteMapping

// Sitemap exports the hierarchical sitemap tree.
type Sitemap = core.Sitemap

// SitemapItem exports a single sitemap node.
type SitemapItem = core.SitemapItem

// SiteHooks exports the site lifecycle dispatcher.
type SiteHooks = core.SiteHooks

// ContentHooks exports the content lifecycle dispatcher.
type ContentHooks = core.ContentHooks

// Repository exports the persistence contract for custom bindings.
type Repository = core.Repository

// NotFoundError exports the typed absence error used by repositories.
type NotFoundError = core.NotFoundError

// ValidationError exports the typed validation failure carrying field details.
type ValidationError = core.ValidationError

// ContentType exports the content-type definition.
type ContentType = contenttypes.ContentType

// Region exports a content-type region definition.
type Region = contenttypes.Region

// Field exports a content-type field definition.
type Field = contenttypes.Field

// Kind tags content payloads as static or dynamic.
type Kind = contenttypes.Kind

// CacheProvider exports the service-level cache contract.
type CacheProvider = interfaces.CacheProvider

// Logger exports the structured logging contract.
type Logger = interfaces.Logger

// LoggerProvider exports the named logger factory contract.
type LoggerProvider = interfaces.LoggerProvider

const (
	KindStatic  = contenttypes.KindStatic
	KindDynamic = contenttypes.KindDynamic
)

var (
	ErrSiteRequired          = core.ErrSiteRequired
	ErrSiteInvalid           = core.ErrSiteInvalid
	ErrInternalIDExists      = core.ErrInternalIDExists
	ErrContentRequired       = core.ErrContentRequired
	ErrContentSiteIDRequired = core.ErrContentSiteIDRequired
	ErrContentInvalid        = core.ErrContentInvalid
)

// NewMemoryRepository returns the in-memory repository binding, useful for
// tests and prototypes.
func NewMemoryRepository() *core.MemorySiteRepository {
	return core.NewMemorySiteRepository()
}

// Module is the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a sites module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Module{container: di.NewContainer(cfg, opts...)}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Sites returns the configured site service.
func (m *Module) Sites() Service {
	return m.container.SiteService()
}

// ContentTypes exposes the registry for content-type definitions.
func (m *Module) ContentTypes() *contenttypes.Registry {
	return m.container.ContentTypes()
}

// SiteHooks exposes the site lifecycle dispatcher for registration.
func (m *Module) SiteHooks() *SiteHooks {
	return m.container.SiteHooks()
}

// ContentHooks exposes the content lifecycle dispatcher for registration.
func (m *Module) ContentHooks() *ContentHooks {
	return m.container.ContentHooks()
}
