package handlers

import "olivencia.com.ar/profile-web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	ClarityProjectID string // Microsoft Clarity project
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
}

// Enabled reports whether any tracker is configured.
func (a Analytics) Enabled() bool {
	return a.ClarityProjectID != "" || a.GA4MeasurementID != ""
}

// AnalyticsFromConfig builds Analytics from configuration. Trackers are only
// rendered in production.
func AnalyticsFromConfig(cfg config.Config) Analytics {
	if !cfg.Production() {
		return Analytics{}
	}
	return Analytics{
		ClarityProjectID: cfg.Analytics.ClarityProjectID,
		GA4MeasurementID: cfg.Analytics.GA4MeasurementID,
	}
}
