package sites

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sites/internal/contenttypes"
)

// InternalIDMaxLen caps internal ids, explicit or derived from the title.
const InternalIDMaxLen = 64

// Site is the canonical record for a site. Hostnames carries a comma
// separated list of hosts the site answers for; InternalID is unique across
// all sites and derived from the title when left blank.
type Site struct {
	bun.BaseModel `bun:"table:sites,alias:s"`

	ID                  uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	SiteTypeID          string     `bun:"site_type_id" json:"site_type_id,omitempty"`
	Title               string     `bun:"title,notnull" json:"title"`
	InternalID          string     `bun:"internal_id,notnull,unique" json:"internal_id"`
	Description         *string    `bun:"description" json:"description,omitempty"`
	Hostnames           string     `bun:"hostnames" json:"hostnames,omitempty"`
	Culture             *string    `bun:"culture" json:"culture,omitempty"`
	IsDefault           bool       `bun:"is_default,notnull,default:false" json:"is_default"`
	ContentLastModified *time.Time `bun:"content_last_modified,nullzero" json:"content_last_modified,omitempty"`
	CreatedAt           time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt           time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Validate applies the declared model rules. Failures abort a save before
// any side effect.
func (s Site) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required, validation.Length(1, 128)),
		validation.Field(&s.InternalID, validation.Length(0, InternalIDMaxLen)),
		validation.Field(&s.Description, validation.Length(0, 256)),
		validation.Field(&s.Hostnames, validation.Length(0, 256)),
		validation.Field(&s.Culture, validation.Length(0, 6)),
	)
}

// SiteContent is the per-site content payload. Its id always equals the
// owning site's id; TypeID references a registered content type.
type SiteContent struct {
	bun.BaseModel `bun:"table:site_content,alias:sc"`

	ID        uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	TypeID    string            `bun:"type_id,notnull" json:"type_id"`
	Title     string            `bun:"title" json:"title"`
	Regions   map[string]any    `bun:"regions,type:jsonb" json:"regions,omitempty"`
	Kind      contenttypes.Kind `bun:"-" json:"-"`
	CreatedAt time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Validate applies the declared model rules for content saves.
func (c SiteContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TypeID, validation.Required, validation.Length(1, 64)),
		validation.Field(&c.Title, validation.Length(0, 128)),
	)
}

// NewSiteContent returns a dynamic content shell for the given type.
func NewSiteContent(typeID string) *SiteContent {
	return &SiteContent{
		TypeID: typeID,
		Kind:   contenttypes.KindDynamic,
	}
}

// ContentTypeID satisfies contenttypes.ContentModel.
func (c *SiteContent) ContentTypeID() string {
	return c.TypeID
}

// ContentKind satisfies contenttypes.ContentModel.
func (c *SiteContent) ContentKind() contenttypes.Kind {
	if c.Kind == "" {
		return contenttypes.KindStatic
	}
	return c.Kind
}

// ApplyRegions satisfies contenttypes.ContentModel.
func (c *SiteContent) ApplyRegions(regions map[string]any) {
	c.Regions = regions
}

// RegionValues satisfies contenttypes.ContentModel.
func (c *SiteContent) RegionValues() map[string]any {
	return c.Regions
}

// SiteMapping is the cache-only projection used to resolve hostnames without
// loading full site records.
type SiteMapping struct {
	ID        uuid.UUID `json:"id"`
	Hostnames string    `json:"hostnames"`
}

// SitemapItem is one node in a site's hierarchical sitemap. Persisted rows
// are flat; the repository assembles the tree ordered by sort order.
type SitemapItem struct {
	bun.BaseModel `bun:"table:sitemap_items,alias:si"`

	ID           uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	SiteID       uuid.UUID  `bun:"site_id,notnull,type:uuid" json:"site_id"`
	ParentID     *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	SortOrder    int        `bun:"sort_order,notnull,default:0" json:"sort_order"`
	Title        string     `bun:"title,notnull" json:"title"`
	MenuTitle    *string    `bun:"menu_title" json:"menu_title,omitempty"`
	Permalink    string     `bun:"permalink" json:"permalink,omitempty"`
	Published    *time.Time `bun:"published,nullzero" json:"published,omitempty"`
	LastModified time.Time  `bun:"last_modified,nullzero" json:"last_modified"`

	Level int     `bun:"-" json:"level"`
	Items Sitemap `bun:"-" json:"items,omitempty"`
}

// IsPublished reports whether the node is visible at the given instant.
func (i *SitemapItem) IsPublished(now time.Time) bool {
	return i != nil && i.Published != nil && !i.Published.After(now)
}

// Sitemap is the hierarchical tree of sitemap nodes for a site.
type Sitemap []*SitemapItem

// Count returns the total number of nodes in the tree.
func (sm Sitemap) Count() int {
	total := 0
	for _, item := range sm {
		if item == nil {
			continue
		}
		total += 1 + item.Items.Count()
	}
	return total
}
