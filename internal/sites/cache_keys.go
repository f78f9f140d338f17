package sites

import "github.com/google/uuid"

// Cache key naming is shared with other components that address the same
// entries; the patterns below must be reproduced exactly.
const (
	// CacheKeySiteMappings holds the {id, hostnames} projection used for
	// hostname resolution.
	CacheKeySiteMappings = "Site_Mappings"

	cacheKeyInternalIDPrefix = "SiteId_"
	cacheKeyDefaultPrefix    = "Site_"
	cacheKeySitemapPrefix    = "Sitemap_"
	cacheKeyContentPrefix    = "SiteContent_"
)

// SiteCacheKey addresses a full site record by id.
func SiteCacheKey(id uuid.UUID) string {
	return id.String()
}

// InternalIDCacheKey addresses the internal-id to site-id mapping.
func InternalIDCacheKey(internalID string) string {
	return cacheKeyInternalIDPrefix + internalID
}

// DefaultSiteCacheKey addresses the default site sentinel entry. The nil UUID
// keeps the key stable regardless of which site currently holds the flag.
func DefaultSiteCacheKey() string {
	return cacheKeyDefaultPrefix + uuid.Nil.String()
}

// SitemapCacheKey addresses the published-only sitemap for a site.
func SitemapCacheKey(id uuid.UUID) string {
	return cacheKeySitemapPrefix + id.String()
}

// ContentCacheKey addresses the site content payload for a site.
func ContentCacheKey(id uuid.UUID) string {
	return cacheKeyContentPrefix + id.String()
}
