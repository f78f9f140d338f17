package sites

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-sites/internal/contenttypes"
	"github.com/goliatone/go-sites/internal/hooks"
	"github.com/goliatone/go-sites/internal/logging"
	"github.com/goliatone/go-sites/pkg/interfaces"
)

// SiteHooks dispatches lifecycle callbacks for Site models.
type SiteHooks = hooks.Dispatcher[Site]

// ContentHooks dispatches lifecycle callbacks for SiteContent models.
type ContentHooks = hooks.Dispatcher[SiteContent]

// NewSiteHooks constructs an empty site lifecycle dispatcher.
func NewSiteHooks() *SiteHooks { return hooks.New[Site]() }

// NewContentHooks constructs an empty content lifecycle dispatcher.
func NewContentHooks() *ContentHooks { return hooks.New[SiteContent]() }

// Service exposes site management use-cases. Read paths report absence as a
// nil result; repository failures propagate unchanged.
type Service interface {
	GetAll(ctx context.Context) ([]*Site, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Site, error)
	GetByInternalID(ctx context.Context, internalID string) (*Site, error)
	GetDefault(ctx context.Context) (*Site, error)
	GetByHostname(ctx context.Context, hostname string) (*Site, error)
	GetContentByID(ctx context.Context, id uuid.UUID) (*SiteContent, error)
	GetSitemap(ctx context.Context, id uuid.UUID, onlyPublished bool) (Sitemap, error)
	CreateContent(ctx context.Context, typeID string) (*SiteContent, error)
	Save(ctx context.Context, model *Site) error
	SaveContent(ctx context.Context, siteID uuid.UUID, model *SiteContent) error
	InvalidateSitemap(ctx context.Context, id uuid.UUID, updateLastModified bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteModel(ctx context.Context, model *Site) error
}

// IDGenerator produces identifiers for new sites.
type IDGenerator func() uuid.UUID

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the id generator used for new sites.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithCache enables the service-level cache. The capability decision is made
// once here; without this option every call goes straight to the repository.
func WithCache(provider interfaces.CacheProvider, ttl time.Duration) ServiceOption {
	return func(s *service) {
		s.cache = provider
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithLogger injects the logger used for cache diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSiteHooks overrides the site lifecycle dispatcher.
func WithSiteHooks(dispatcher *SiteHooks) ServiceOption {
	return func(s *service) {
		if dispatcher != nil {
			s.siteHooks = dispatcher
		}
	}
}

// WithContentHooks overrides the content lifecycle dispatcher.
func WithContentHooks(dispatcher *ContentHooks) ServiceOption {
	return func(s *service) {
		if dispatcher != nil {
			s.contentHooks = dispatcher
		}
	}
}

// service implements Service.
type service struct {
	repo         Repository
	types        *contenttypes.Registry
	factory      *contenttypes.Factory
	cache        interfaces.CacheProvider
	cacheTTL     time.Duration
	siteHooks    *SiteHooks
	contentHooks *ContentHooks
	logger       interfaces.Logger
	now          func() time.Time
	id           IDGenerator
}

// NewService constructs a site service with the required dependencies.
func NewService(repo Repository, types *contenttypes.Registry, opts ...ServiceOption) Service {
	s := &service{
		repo:         repo,
		types:        types,
		factory:      contenttypes.NewFactory(types),
		siteHooks:    hooks.New[Site](),
		contentHooks: hooks.New[SiteContent](),
		logger:       logging.NoOp(),
		now:          time.Now,
		id:           uuid.New,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// GetAll returns every site. The collection read is never cached.
func (s *service) GetAll(ctx context.Context) ([]*Site, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		s.siteHooks.OnLoad(ctx, record)
	}
	return records, nil
}

// GetByID fetches a site by identifier.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Site, error) {
	if cached := s.cachedSite(ctx, SiteCacheKey(id)); cached != nil {
		return cached, nil
	}

	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	s.siteLoaded(ctx, model)
	return model, nil
}

// GetByInternalID fetches a site by its unique internal id.
func (s *service) GetByInternalID(ctx context.Context, internalID string) (*Site, error) {
	if id, ok := s.cachedString(ctx, InternalIDCacheKey(internalID)); ok {
		if parsed, err := uuid.Parse(id); err == nil {
			return s.GetByID(ctx, parsed)
		}
	}

	model, err := s.repo.GetByInternalID(ctx, internalID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	s.siteLoaded(ctx, model)
	return model, nil
}

// GetDefault fetches the site currently flagged as default.
func (s *service) GetDefault(ctx context.Context) (*Site, error) {
	if cached := s.cachedSite(ctx, DefaultSiteCacheKey()); cached != nil {
		return cached, nil
	}

	model, err := s.repo.GetDefault(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	s.siteLoaded(ctx, model)
	return model, nil
}

// GetByHostname resolves a hostname to a site using the cached mapping
// projection. The input is expected to be normalized by the caller; the
// stored tokens are trimmed and lowercased before comparison. The first
// match wins, in repository enumeration order.
func (s *service) GetByHostname(ctx context.Context, hostname string) (*Site, error) {
	mappings, err := s.siteMappings(ctx)
	if err != nil {
		return nil, err
	}

	for _, mapping := range mappings {
		for _, token := range strings.Split(mapping.Hostnames, ",") {
			if strings.ToLower(strings.TrimSpace(token)) == hostname {
				return s.GetByID(ctx, mapping.ID)
			}
		}
	}
	return nil, nil
}

// GetContentByID fetches the content payload for a site, initializing it
// through the content factory when its type is registered.
func (s *service) GetContentByID(ctx context.Context, id uuid.UUID) (*SiteContent, error) {
	if s.cache != nil {
		if value, err := s.cache.Get(ctx, ContentCacheKey(id)); err == nil {
			if model, ok := value.(*SiteContent); ok && model != nil {
				return model, nil
			}
		}
	}

	model, err := s.repo.GetContentByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	s.contentLoaded(ctx, model)
	return model, nil
}

// GetSitemap resolves the hierarchical sitemap for a site. A nil site id
// resolves the default site first. Only the published-only variant touches
// the cache: unfiltered views may expose unpublished structure and are
// always fetched fresh.
func (s *service) GetSitemap(ctx context.Context, id uuid.UUID, onlyPublished bool) (Sitemap, error) {
	if id == uuid.Nil {
		def, err := s.GetDefault(ctx)
		if err != nil {
			return nil, err
		}
		if def == nil {
			return nil, nil
		}
		id = def.ID
	}

	if onlyPublished && s.cache != nil {
		if value, err := s.cache.Get(ctx, SitemapCacheKey(id)); err == nil {
			if sitemap, ok := value.(Sitemap); ok && sitemap != nil {
				return sitemap, nil
			}
		}
	}

	sitemap, err := s.repo.GetSitemap(ctx, id, onlyPublished)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if onlyPublished {
		s.cacheSet(ctx, SitemapCacheKey(id), sitemap)
	}
	return sitemap, nil
}

// CreateContent builds an initialized content model for a registered type.
// Unregistered types yield a nil result.
func (s *service) CreateContent(ctx context.Context, typeID string) (*SiteContent, error) {
	regions, ok := s.factory.Create(typeID)
	if !ok {
		return nil, nil
	}

	model := NewSiteContent(typeID)
	model.ApplyRegions(regions)
	return model, nil
}

// Save persists a site, maintaining the internal-id uniqueness and
// single-default invariants. Validation and uniqueness failures abort before
// any mutation; mid-sequence repository failures propagate without
// compensation.
func (s *service) Save(ctx context.Context, model *Site) error {
	if model == nil {
		return ErrSiteRequired
	}

	if model.ID == uuid.Nil {
		model.ID = s.id()
	}

	if err := model.Validate(); err != nil {
		return &ValidationError{Kind: ErrSiteInvalid, Fields: err}
	}

	if strings.TrimSpace(model.InternalID) == "" {
		internalID, err := slug.Normalize(model.Title)
		if err != nil {
			return err
		}
		// The struct rules above never see a derived slug, and a long title
		// can produce one past the internal-id limit.
		if len(internalID) > InternalIDMaxLen {
			internalID = strings.TrimRight(internalID[:InternalIDMaxLen], "-")
		}
		model.InternalID = internalID
	}

	existing, err := s.repo.GetByInternalID(ctx, model.InternalID)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.ID != model.ID {
		return ErrInternalIDExists
	}

	// Old state drives part of the invalidation set below.
	previous, err := s.repo.GetByID(ctx, model.ID)
	if err != nil && !isNotFound(err) {
		return err
	}

	if err := s.ensureDefaultInvariant(ctx, model); err != nil {
		return err
	}

	now := s.now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	s.siteHooks.OnBeforeSave(ctx, model)
	if err := s.repo.Save(ctx, model); err != nil {
		return err
	}
	s.siteHooks.OnAfterSave(ctx, model)

	s.invalidateSite(ctx, previous)
	s.invalidateSite(ctx, model)
	return nil
}

// SaveContent binds a content payload to a site and persists it.
func (s *service) SaveContent(ctx context.Context, siteID uuid.UUID, model *SiteContent) error {
	if model == nil {
		return ErrContentRequired
	}
	if siteID == uuid.Nil {
		return ErrContentSiteIDRequired
	}

	model.ID = siteID

	if err := model.Validate(); err != nil {
		return &ValidationError{Kind: ErrContentInvalid, Fields: err}
	}
	if def, ok := s.types.GetByID(model.TypeID); ok {
		if err := contenttypes.ValidateRegions(def, model.Regions); err != nil {
			return &ValidationError{Kind: ErrContentInvalid, Fields: err}
		}
	}

	now := s.now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	s.contentHooks.OnBeforeSave(ctx, model)
	if err := s.repo.SaveContent(ctx, siteID, model); err != nil {
		return err
	}
	s.contentHooks.OnAfterSave(ctx, model)

	s.cacheDelete(ctx, ContentCacheKey(siteID))
	return nil
}

// InvalidateSitemap drops the cached sitemap for a site, optionally stamping
// the content-modified timestamp first. The stamp runs through the full save
// path and therefore carries its own cache invalidation.
func (s *service) InvalidateSitemap(ctx context.Context, id uuid.UUID, updateLastModified bool) error {
	if updateLastModified {
		site, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if site != nil {
			modified := s.now()
			site.ContentLastModified = &modified
			if err := s.Save(ctx, site); err != nil {
				return err
			}
		}
	}

	s.cacheDelete(ctx, SitemapCacheKey(id))
	return nil
}

// Delete removes a site by id. A missing record is a no-op.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	return s.DeleteModel(ctx, model)
}

// DeleteModel removes a site, dispatching delete hooks and invalidating the
// same cache key set as a save.
func (s *service) DeleteModel(ctx context.Context, model *Site) error {
	if model == nil {
		return ErrSiteRequired
	}

	s.siteHooks.OnBeforeDelete(ctx, model)
	if err := s.repo.Delete(ctx, model.ID); err != nil {
		return err
	}
	s.siteHooks.OnAfterDelete(ctx, model)

	s.invalidateSite(ctx, model)
	return nil
}

// ensureDefaultInvariant keeps exactly one default site across saves. The
// check-then-act sequence is not serialized; concurrent saves can both
// observe the absence of a default (see the open question recorded in the
// design notes).
func (s *service) ensureDefaultInvariant(ctx context.Context, model *Site) error {
	current, err := s.repo.GetDefault(ctx)
	if err != nil && !isNotFound(err) {
		return err
	}

	if model.IsDefault {
		if current != nil && current.ID != model.ID {
			current.IsDefault = false
			current.UpdatedAt = s.now()
			if err := s.repo.Save(ctx, current); err != nil {
				return err
			}
			// The demoted record no longer carries the flag, so the sentinel
			// entry has to go explicitly.
			s.invalidateSite(ctx, current)
			s.cacheDelete(ctx, DefaultSiteCacheKey())
		}
		return nil
	}

	if current == nil || current.ID == model.ID {
		model.IsDefault = true
	}
	return nil
}

// siteLoaded dispatches the on-load hook and fans the record out across the
// cache keys that address it: the id key, the internal-id mapping and, for
// the default site, the sentinel entry.
func (s *service) siteLoaded(ctx context.Context, model *Site) {
	if model == nil {
		return
	}
	s.siteHooks.OnLoad(ctx, model)

	if s.cache == nil {
		return
	}
	s.cacheSet(ctx, SiteCacheKey(model.ID), model)
	s.cacheSet(ctx, InternalIDCacheKey(model.InternalID), model.ID.String())
	if model.IsDefault {
		s.cacheSet(ctx, DefaultSiteCacheKey(), model)
	}
}

func (s *service) contentLoaded(ctx context.Context, model *SiteContent) {
	if model == nil {
		return
	}
	s.contentHooks.OnLoad(ctx, model)

	if def, ok := s.types.GetByID(model.TypeID); ok {
		switch model.ContentKind() {
		case contenttypes.KindDynamic:
			_ = s.factory.InitDynamic(model, def)
		default:
			_ = s.factory.InitStatic(model, def)
		}
	}

	s.cacheSet(ctx, ContentCacheKey(model.ID), model)
}

// invalidateSite drops every cache entry tied to one state of a site. The
// hostname projection is always dropped: any save may have changed a
// hostname list.
func (s *service) invalidateSite(ctx context.Context, model *Site) {
	if model == nil || s.cache == nil {
		return
	}
	s.cacheDelete(ctx, SiteCacheKey(model.ID))
	s.cacheDelete(ctx, InternalIDCacheKey(model.InternalID))
	if model.IsDefault {
		s.cacheDelete(ctx, DefaultSiteCacheKey())
	}
	s.cacheDelete(ctx, CacheKeySiteMappings)
}

// siteMappings returns the hostname projection, rebuilding and caching it
// from the full site collection on a miss.
func (s *service) siteMappings(ctx context.Context) ([]SiteMapping, error) {
	if s.cache != nil {
		if value, err := s.cache.Get(ctx, CacheKeySiteMappings); err == nil {
			if mappings, ok := value.([]SiteMapping); ok && mappings != nil {
				return mappings, nil
			}
		}
	}

	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	mappings := make([]SiteMapping, 0, len(records))
	for _, record := range records {
		if record == nil || strings.TrimSpace(record.Hostnames) == "" {
			continue
		}
		mappings = append(mappings, SiteMapping{
			ID:        record.ID,
			Hostnames: record.Hostnames,
		})
	}

	s.cacheSet(ctx, CacheKeySiteMappings, mappings)
	return mappings, nil
}

func (s *service) cachedSite(ctx context.Context, key string) *Site {
	if s.cache == nil {
		return nil
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	model, _ := value.(*Site)
	return model
}

func (s *service) cachedString(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return "", false
	}
	str, ok := value.(string)
	return str, ok && str != ""
}

// Cache writes are fire-and-forget relative to the repository: failures are
// logged and never surface to the caller.
func (s *service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		logging.WithFields(s.logger, map[string]any{"key": key}).Warn("sites.cache.set_failed", "error", err)
	}
}

func (s *service) cacheDelete(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		logging.WithFields(s.logger, map[string]any{"key": key}).Warn("sites.cache.delete_failed", "error", err)
	}
}
