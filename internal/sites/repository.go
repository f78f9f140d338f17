package sites

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts persistence for sites, site content and sitemaps.
// Implementations report missing records with *NotFoundError; the service
// translates absence into nil results on read paths.
type Repository interface {
	GetAll(ctx context.Context) ([]*Site, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Site, error)
	GetByInternalID(ctx context.Context, internalID string) (*Site, error)
	GetDefault(ctx context.Context) (*Site, error)
	GetContentByID(ctx context.Context, id uuid.UUID) (*SiteContent, error)
	GetSitemap(ctx context.Context, id uuid.UUID, onlyPublished bool) (Sitemap, error)
	Save(ctx context.Context, model *Site) error
	SaveContent(ctx context.Context, siteID uuid.UUID, model *SiteContent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewSiteRepository(db *bun.DB) repository.Repository[*Site] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Site]{
		NewRecord: func() *Site { return &Site{} },
		GetID: func(s *Site) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Site, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "internal_id"
		},
		GetIdentifierValue: func(s *Site) string {
			return s.InternalID
		},
	})
}

func NewSiteContentRepository(db *bun.DB) repository.Repository[*SiteContent] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*SiteContent]{
		NewRecord: func() *SiteContent { return &SiteContent{} },
		GetID: func(c *SiteContent) uuid.UUID {
			return c.ID
		},
		SetID: func(c *SiteContent, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *SiteContent) string {
			if c == nil {
				return ""
			}
			return c.ID.String()
		},
	})
}

func NewSitemapItemRepository(db *bun.DB) repository.Repository[*SitemapItem] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*SitemapItem]{
		NewRecord: func() *SitemapItem { return &SitemapItem{} },
		GetID: func(i *SitemapItem) uuid.UUID {
			return i.ID
		},
		SetID: func(i *SitemapItem, id uuid.UUID) {
			i.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(i *SitemapItem) string {
			if i == nil {
				return ""
			}
			return i.ID.String()
		},
	})
}
