package sites

import (
	"context"
	"fmt"
	"sort"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunSiteRepository implements Repository on top of go-repository-bun.
type BunSiteRepository struct {
	sites   repository.Repository[*Site]
	content repository.Repository[*SiteContent]
	sitemap repository.Repository[*SitemapItem]
	now     func() time.Time
}

func NewBunSiteRepository(db *bun.DB) *BunSiteRepository {
	return NewBunSiteRepositoryWithCache(db, nil, nil)
}

// NewBunSiteRepositoryWithCache constructs the repository with optional
// read-through caching at the storage layer. This is independent from the
// service-level cache keys; it only memoizes repository reads.
func NewBunSiteRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunSiteRepository {
	return &BunSiteRepository{
		sites:   wrapWithCache(NewSiteRepository(db), cacheService, keySerializer),
		content: wrapWithCache(NewSiteContentRepository(db), cacheService, keySerializer),
		sitemap: wrapWithCache(NewSitemapItemRepository(db), cacheService, keySerializer),
		now:     time.Now,
	}
}

func (r *BunSiteRepository) GetAll(ctx context.Context) ([]*Site, error) {
	records, _, err := r.sites.List(ctx)
	return records, err
}

func (r *BunSiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*Site, error) {
	result, err := r.sites.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "site", id.String())
	}
	return result, nil
}

func (r *BunSiteRepository) GetByInternalID(ctx context.Context, internalID string) (*Site, error) {
	result, err := r.sites.GetByIdentifier(ctx, internalID)
	if err != nil {
		return nil, mapRepositoryError(err, "site", internalID)
	}
	return result, nil
}

func (r *BunSiteRepository) GetDefault(ctx context.Context) (*Site, error) {
	records, _, err := r.sites.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("s.is_default = ?", true).Limit(1)
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "site", "default")
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "site", Key: "default"}
	}
	return records[0], nil
}

func (r *BunSiteRepository) GetContentByID(ctx context.Context, id uuid.UUID) (*SiteContent, error) {
	result, err := r.content.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "site_content", id.String())
	}
	return result, nil
}

func (r *BunSiteRepository) GetSitemap(ctx context.Context, id uuid.UUID, onlyPublished bool) (Sitemap, error) {
	records, _, err := r.sitemap.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("si.site_id = ?", id).OrderExpr("si.sort_order ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "sitemap", id.String())
	}
	return assembleSitemap(records, onlyPublished, r.now()), nil
}

func (r *BunSiteRepository) Save(ctx context.Context, model *Site) error {
	if _, err := r.sites.GetByID(ctx, model.ID.String()); err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return fmt.Errorf("site repository error: %w", err)
		}
		_, err = r.sites.Create(ctx, model)
		return err
	}
	_, err := r.sites.Update(ctx, model)
	return err
}

func (r *BunSiteRepository) SaveContent(ctx context.Context, siteID uuid.UUID, model *SiteContent) error {
	model.ID = siteID
	if _, err := r.content.GetByID(ctx, siteID.String()); err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return fmt.Errorf("site_content repository error: %w", err)
		}
		_, err = r.content.Create(ctx, model)
		return err
	}
	_, err := r.content.Update(ctx, model)
	return err
}

// Delete removes a site together with its content payload and sitemap rows.
// Rows are deleted through the same repositories that read them so the
// storage-layer cache decorators see every removal.
func (r *BunSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	rows, _, err := r.sitemap.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("si.site_id = ?", id)
	}))
	if err != nil {
		return mapRepositoryError(err, "sitemap", id.String())
	}
	for _, row := range rows {
		if err := r.sitemap.Delete(ctx, row); err != nil {
			return fmt.Errorf("sitemap repository error: %w", err)
		}
	}

	if err := r.content.Delete(ctx, &SiteContent{ID: id}); err != nil && !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return fmt.Errorf("site_content repository error: %w", err)
	}

	return r.sites.Delete(ctx, &Site{ID: id})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

// assembleSitemap builds the tree from flat rows. Rows arrive ordered by
// sort order; the order is preserved within each sibling group.
func assembleSitemap(rows []*SitemapItem, onlyPublished bool, now time.Time) Sitemap {
	children := make(map[uuid.UUID][]*SitemapItem)
	roots := []*SitemapItem{}
	for _, row := range rows {
		if row == nil {
			continue
		}
		if onlyPublished && !row.IsPublished(now) {
			continue
		}
		if row.ParentID == nil {
			roots = append(roots, row)
			continue
		}
		children[*row.ParentID] = append(children[*row.ParentID], row)
	}

	var attach func(nodes []*SitemapItem, level int) Sitemap
	attach = func(nodes []*SitemapItem, level int) Sitemap {
		sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].SortOrder < nodes[j].SortOrder })
		out := make(Sitemap, 0, len(nodes))
		for _, node := range nodes {
			node.Level = level
			node.Items = attach(children[node.ID], level+1)
			out = append(out, node)
		}
		return out
	}
	return attach(roots, 0)
}
