package sitescmd

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-sites/internal/contenttypes"
	"github.com/goliatone/go-sites/internal/logging"
	"github.com/goliatone/go-sites/internal/sites"
)

type trackingSiteService struct {
	sites.Service
	invalidateCalls int
	deleteCalls     int
}

func (t *trackingSiteService) InvalidateSitemap(ctx context.Context, id uuid.UUID, updateLastModified bool) error {
	t.invalidateCalls++
	if t.Service != nil {
		return t.Service.InvalidateSitemap(ctx, id, updateLastModified)
	}
	return nil
}

func (t *trackingSiteService) Delete(ctx context.Context, id uuid.UUID) error {
	t.deleteCalls++
	if t.Service != nil {
		return t.Service.Delete(ctx, id)
	}
	return nil
}

func newTrackingService() *trackingSiteService {
	base := sites.NewService(sites.NewMemorySiteRepository(), contenttypes.NewRegistry())
	return &trackingSiteService{Service: base}
}

func TestInvalidateSitemapHandler(t *testing.T) {
	tracking := newTrackingService()
	handler := NewInvalidateSitemapHandler(tracking, logging.NoOp(), FeatureGates{
		SitesEnabled: func() bool { return true },
	})

	msg := InvalidateSitemapCommand{SiteID: uuid.New()}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute invalidate: %v", err)
	}
	if tracking.invalidateCalls != 1 {
		t.Fatalf("expected 1 invalidate call, got %d", tracking.invalidateCalls)
	}
}

func TestInvalidateSitemapHandlerRequiresSiteID(t *testing.T) {
	tracking := newTrackingService()
	handler := NewInvalidateSitemapHandler(tracking, logging.NoOp(), FeatureGates{})

	err := handler.Execute(context.Background(), InvalidateSitemapCommand{})
	if err == nil {
		t.Fatal("expected validation error for missing site id")
	}
	if tracking.invalidateCalls != 0 {
		t.Fatalf("expected no invalidate calls, got %d", tracking.invalidateCalls)
	}
}

func TestInvalidateSitemapHandlerFeatureDisabled(t *testing.T) {
	tracking := newTrackingService()
	handler := NewInvalidateSitemapHandler(tracking, logging.NoOp(), FeatureGates{
		SitesEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), InvalidateSitemapCommand{SiteID: uuid.New()})
	if err == nil {
		t.Fatal("expected module disabled error")
	}
	if !errors.Is(err, ErrSitesModuleDisabled) {
		t.Fatalf("expected ErrSitesModuleDisabled, got %v", err)
	}
	if tracking.invalidateCalls != 0 {
		t.Fatalf("expected no invalidate calls, got %d", tracking.invalidateCalls)
	}
}

func TestDeleteSiteHandler(t *testing.T) {
	tracking := newTrackingService()
	handler := NewDeleteSiteHandler(tracking, logging.NoOp(), FeatureGates{})

	if err := handler.Execute(context.Background(), DeleteSiteCommand{SiteID: uuid.New()}); err != nil {
		t.Fatalf("execute delete: %v", err)
	}
	if tracking.deleteCalls != 1 {
		t.Fatalf("expected 1 delete call, got %d", tracking.deleteCalls)
	}
}

func TestDeleteSiteHandlerRequiresSiteID(t *testing.T) {
	tracking := newTrackingService()
	handler := NewDeleteSiteHandler(tracking, logging.NoOp(), FeatureGates{})

	if err := handler.Execute(context.Background(), DeleteSiteCommand{}); err == nil {
		t.Fatal("expected validation error for missing site id")
	}
	if tracking.deleteCalls != 0 {
		t.Fatalf("expected no delete calls, got %d", tracking.deleteCalls)
	}
}
