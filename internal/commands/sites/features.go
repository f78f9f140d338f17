package sitescmd

import "errors"

var ErrSitesModuleDisabled = errors.New("sites command: module disabled")

// FeatureGates exposes the runtime toggles consulted by site command handlers.
type FeatureGates struct {
	SitesEnabled func() bool
}

func (g FeatureGates) sitesEnabled() bool {
	if g.SitesEnabled == nil {
		return true
	}
	return g.SitesEnabled()
}
