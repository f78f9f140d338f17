package di

import (
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sites/internal/adapters/memory"
	"github.com/goliatone/go-sites/internal/adapters/noop"
	"github.com/goliatone/go-sites/internal/contenttypes"
	"github.com/goliatone/go-sites/internal/logging"
	"github.com/goliatone/go-sites/internal/logging/gologger"
	"github.com/goliatone/go-sites/internal/runtimeconfig"
	"github.com/goliatone/go-sites/internal/sites"
	"github.com/goliatone/go-sites/pkg/interfaces"
)

// Container wires module dependencies. Without a bun handle it falls back to
// the in-memory repository, which keeps the module usable in tests and
// host applications that have not picked a database yet.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	cacheProvider interfaces.CacheProvider

	loggerProvider interfaces.LoggerProvider

	types        *contenttypes.Registry
	siteHooks    *sites.SiteHooks
	contentHooks *sites.ContentHooks

	siteRepo sites.Repository
	siteSvc  sites.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds the database handle used for persistent repositories.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the storage-layer cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithCacheProvider overrides the service-level cache provider.
func WithCacheProvider(provider interfaces.CacheProvider) Option {
	return func(c *Container) {
		c.cacheProvider = provider
	}
}

// WithRepository overrides the site repository binding.
func WithRepository(repo sites.Repository) Option {
	return func(c *Container) {
		c.siteRepo = repo
	}
}

// WithLoggerProvider overrides the logger provider used across the module.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithSiteHooks binds the site lifecycle dispatcher.
func WithSiteHooks(dispatcher *sites.SiteHooks) Option {
	return func(c *Container) {
		c.siteHooks = dispatcher
	}
}

// WithContentHooks binds the content lifecycle dispatcher.
func WithContentHooks(dispatcher *sites.ContentHooks) Option {
	return func(c *Container) {
		c.contentHooks = dispatcher
	}
}

// WithContentTypes registers content-type definitions during construction.
// Registration failures panic: a bad definition is a programming error in the
// host application.
func WithContentTypes(defs ...*contenttypes.ContentType) Option {
	return func(c *Container) {
		for _, def := range defs {
			if err := c.types.Register(def); err != nil {
				panic(err)
			}
		}
	}
}

// WithSiteService overrides the default site service binding.
func WithSiteService(svc sites.Service) Option {
	return func(c *Container) {
		c.siteSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) *Container {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		types:        contenttypes.NewRegistry(),
		siteHooks:    sites.NewSiteHooks(),
		contentHooks: sites.NewContentHooks(),
		siteRepo:     sites.NewMemorySiteRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()

	if c.siteSvc == nil {
		svcOpts := []sites.ServiceOption{
			sites.WithLogger(logging.ServiceLogger(c.loggerProvider)),
			sites.WithSiteHooks(c.siteHooks),
			sites.WithContentHooks(c.contentHooks),
		}
		if c.cacheProvider != nil {
			svcOpts = append(svcOpts, sites.WithCache(c.cacheProvider, c.cacheTTL))
		}
		c.siteSvc = sites.NewService(c.siteRepo, c.types, svcOpts...)
	}

	return c
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil {
		return
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger", "console":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err == nil {
			c.loggerProvider = provider
		}
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		// Callers always get a provider; the no-op one turns every read
		// into a miss so the service runs straight against the repository.
		c.cacheProvider = noop.NewCache()
		return
	}

	if c.cacheProvider == nil {
		c.cacheProvider = memory.NewCache()
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.siteRepo = sites.NewBunSiteRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

// SiteService exposes the configured site service.
func (c *Container) SiteService() sites.Service {
	return c.siteSvc
}

// SiteRepository exposes the configured repository binding.
func (c *Container) SiteRepository() sites.Repository {
	return c.siteRepo
}

// ContentTypes exposes the registry used for content definitions.
func (c *Container) ContentTypes() *contenttypes.Registry {
	return c.types
}

// SiteHooks exposes the site lifecycle dispatcher for registration.
func (c *Container) SiteHooks() *sites.SiteHooks {
	return c.siteHooks
}

// ContentHooks exposes the content lifecycle dispatcher for registration.
func (c *Container) ContentHooks() *sites.ContentHooks {
	return c.contentHooks
}

// CacheProvider exposes the service-level cache provider. Disabled caching
// binds the no-op provider, so the result is never nil.
func (c *Container) CacheProvider() interfaces.CacheProvider {
	return c.cacheProvider
}

// LoggerProvider exposes the configured logger provider, nil when logging is
// left at the no-op default.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}
