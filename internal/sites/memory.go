package sites

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemorySiteRepository is an in-memory implementation for scaffolding and tests.
type MemorySiteRepository struct {
	mu       sync.RWMutex
	sites    map[uuid.UUID]*Site
	content  map[uuid.UUID]*SiteContent
	sitemaps map[uuid.UUID][]*SitemapItem
	now      func() time.Time
}

// NewMemorySiteRepository creates an empty in-memory site repository.
func NewMemorySiteRepository() *MemorySiteRepository {
	return &MemorySiteRepository{
		sites:    make(map[uuid.UUID]*Site),
		content:  make(map[uuid.UUID]*SiteContent),
		sitemaps: make(map[uuid.UUID][]*SitemapItem),
		now:      time.Now,
	}
}

// SetClock overrides the clock used for sitemap publication checks.
func (m *MemorySiteRepository) SetClock(clock func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if clock != nil {
		m.now = clock
	}
}

// GetAll returns every stored site.
func (m *MemorySiteRepository) GetAll(_ context.Context) ([]*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Site, 0, len(m.sites))
	for _, rec := range m.sites {
		out = append(out, cloneSite(rec))
	}
	return out, nil
}

// GetByID retrieves a site by identifier.
func (m *MemorySiteRepository) GetByID(_ context.Context, id uuid.UUID) (*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.sites[id]
	if !ok {
		return nil, &NotFoundError{Resource: "site", Key: id.String()}
	}
	return cloneSite(rec), nil
}

// GetByInternalID retrieves a site by its unique internal id.
func (m *MemorySiteRepository) GetByInternalID(_ context.Context, internalID string) (*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.sites {
		if rec.InternalID == internalID {
			return cloneSite(rec), nil
		}
	}
	return nil, &NotFoundError{Resource: "site", Key: internalID}
}

// GetDefault retrieves the site currently flagged as default.
func (m *MemorySiteRepository) GetDefault(_ context.Context) (*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.sites {
		if rec.IsDefault {
			return cloneSite(rec), nil
		}
	}
	return nil, &NotFoundError{Resource: "site", Key: "default"}
}

// GetContentByID retrieves the content payload stored for a site.
func (m *MemorySiteRepository) GetContentByID(_ context.Context, id uuid.UUID) (*SiteContent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.content[id]
	if !ok {
		return nil, &NotFoundError{Resource: "site_content", Key: id.String()}
	}
	return cloneSiteContent(rec), nil
}

// GetSitemap assembles the stored sitemap rows for a site.
func (m *MemorySiteRepository) GetSitemap(_ context.Context, id uuid.UUID, onlyPublished bool) (Sitemap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([]*SitemapItem, 0, len(m.sitemaps[id]))
	for _, row := range m.sitemaps[id] {
		copied := *row
		rows = append(rows, &copied)
	}
	return assembleSitemap(rows, onlyPublished, m.now()), nil
}

// Save inserts or replaces a site.
func (m *MemorySiteRepository) Save(_ context.Context, model *Site) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sites[model.ID] = cloneSite(model)
	return nil
}

// SaveContent inserts or replaces the content payload for a site.
func (m *MemorySiteRepository) SaveContent(_ context.Context, siteID uuid.UUID, model *SiteContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	model.ID = siteID
	m.content[siteID] = cloneSiteContent(model)
	return nil
}

// Delete removes a site and its derived records.
func (m *MemorySiteRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sites, id)
	delete(m.content, id)
	delete(m.sitemaps, id)
	return nil
}

// PutSitemap seeds the flat sitemap rows for a site.
func (m *MemorySiteRepository) PutSitemap(siteID uuid.UUID, rows []*SitemapItem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]*SitemapItem, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		local := *row
		local.SiteID = siteID
		copied = append(copied, &local)
	}
	m.sitemaps[siteID] = copied
}

func cloneSite(src *Site) *Site {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Description != nil {
		desc := *src.Description
		copied.Description = &desc
	}
	if src.Culture != nil {
		culture := *src.Culture
		copied.Culture = &culture
	}
	if src.ContentLastModified != nil {
		modified := *src.ContentLastModified
		copied.ContentLastModified = &modified
	}
	return &copied
}

func cloneSiteContent(src *SiteContent) *SiteContent {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Regions != nil {
		copied.Regions = make(map[string]any, len(src.Regions))
		for k, v := range src.Regions {
			copied.Regions[k] = v
		}
	}
	return &copied
}
