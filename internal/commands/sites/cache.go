package sitescmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-sites/internal/commands"
	"github.com/goliatone/go-sites/internal/logging"
	"github.com/goliatone/go-sites/internal/sites"
	"github.com/goliatone/go-sites/pkg/interfaces"
)

const invalidateSitemapMessageType = "sites.sitemap.invalidate"

// InvalidateSitemapCommand drops the cached sitemap for a site, optionally
// stamping the site's content-modified timestamp first.
type InvalidateSitemapCommand struct {
	SiteID             uuid.UUID `json:"site_id"`
	UpdateLastModified bool      `json:"update_last_modified"`
}

// Type implements command.Message.
func (InvalidateSitemapCommand) Type() string { return invalidateSitemapMessageType }

// Validate ensures the command carries the target site identifier.
func (m InvalidateSitemapCommand) Validate() error {
	errs := validation.Errors{}
	if m.SiteID == uuid.Nil {
		errs["site_id"] = validation.NewError("sites.sitemap.invalidate.site_id_required", "site_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// InvalidateSitemapHandler orchestrates sitemap cache invalidation.
type InvalidateSitemapHandler struct {
	inner *commands.Handler[InvalidateSitemapCommand]
}

// NewInvalidateSitemapHandler constructs a handler wired to the site service.
func NewInvalidateSitemapHandler(service sites.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[InvalidateSitemapCommand]) *InvalidateSitemapHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg InvalidateSitemapCommand) error {
		if !gates.sitesEnabled() {
			return ErrSitesModuleDisabled
		}
		if err := service.InvalidateSitemap(ctx, msg.SiteID, msg.UpdateLastModified); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"operation": "invalidate",
			"site_id":   msg.SiteID.String(),
		}).Info("sites.command.sitemap.invalidated")
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateSitemapCommand]{
		commands.WithLogger[InvalidateSitemapCommand](baseLogger),
		commands.WithOperation[InvalidateSitemapCommand]("sites.sitemap.invalidate"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InvalidateSitemapHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InvalidateSitemapCommand].
func (h *InvalidateSitemapHandler) Execute(ctx context.Context, msg InvalidateSitemapCommand) error {
	return h.inner.Execute(ctx, msg)
}
