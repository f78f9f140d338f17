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

const deleteSiteMessageType = "sites.site.delete"

// DeleteSiteCommand removes a site by identifier. Deleting a missing site is
// a no-op at the service layer.
type DeleteSiteCommand struct {
	SiteID uuid.UUID `json:"site_id"`
}

// Type implements command.Message.
func (DeleteSiteCommand) Type() string { return deleteSiteMessageType }

// Validate ensures the command carries the target site identifier.
func (m DeleteSiteCommand) Validate() error {
	errs := validation.Errors{}
	if m.SiteID == uuid.Nil {
		errs["site_id"] = validation.NewError("sites.site.delete.site_id_required", "site_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteSiteHandler removes sites via the site service.
type DeleteSiteHandler struct {
	inner *commands.Handler[DeleteSiteCommand]
}

// NewDeleteSiteHandler constructs a handler wired to the site service.
func NewDeleteSiteHandler(service sites.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[DeleteSiteCommand]) *DeleteSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeleteSiteCommand) error {
		if !gates.sitesEnabled() {
			return ErrSitesModuleDisabled
		}
		if err := service.Delete(ctx, msg.SiteID); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"operation": "delete",
			"site_id":   msg.SiteID.String(),
		}).Info("sites.command.site.deleted")
		return nil
	}

	handlerOpts := []commands.HandlerOption[DeleteSiteCommand]{
		commands.WithLogger[DeleteSiteCommand](baseLogger),
		commands.WithOperation[DeleteSiteCommand]("sites.site.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteSiteCommand].
func (h *DeleteSiteHandler) Execute(ctx context.Context, msg DeleteSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
