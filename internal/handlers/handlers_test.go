package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"olivencia.com.ar/profile-web/internal/config"
	"olivencia.com.ar/profile-web/internal/profile"
	"olivencia.com.ar/profile-web/internal/seo"
)

func TestAnalyticsOnlyInProduction(t *testing.T) {
	t.Parallel()
	cfg := config.Config{
		Env: config.EnvDevelopment,
		Analytics: config.AnalyticsConfig{
			ClarityProjectID: "clarity-1",
			GA4MeasurementID: "G-TEST",
		},
	}
	require.False(t, AnalyticsFromConfig(cfg).Enabled())

	cfg.Env = config.EnvProduction
	a := AnalyticsFromConfig(cfg)
	require.True(t, a.Enabled())
	require.Equal(t, "clarity-1", a.ClarityProjectID)
	require.Equal(t, "G-TEST", a.GA4MeasurementID)
}

func TestSEODefaults(t *testing.T) {
	t.Parallel()
	p := profile.Fallback()
	d := SEODefaults(p)

	require.Equal(t, p.SEO.Title, d.Title)
	require.Equal(t, "Ramiro Olivencia", d.Author)
	require.Equal(t, seo.TypeProfile, d.Type)
	require.Equal(t, seo.CardSummaryLargeImage, d.TwitterCard)
	require.Equal(t, "@ramiroolivencia", d.TwitterSite)
	require.Nil(t, d.StructuredData)
}

func TestProfileSEOStructuredData(t *testing.T) {
	t.Parallel()
	p := profile.Fallback()
	cfg := ProfileSEO(p, "https://olivencia.com.ar")

	require.Equal(t, "https://olivencia.com.ar/assets/img/ramiro.jpg", cfg.Image)

	data, ok := cfg.StructuredData.([]any)
	require.True(t, ok)
	require.Len(t, data, 2)

	person := data[0].(map[string]any)
	require.Equal(t, "Person", person["@type"])
	require.Equal(t, "https://olivencia.com.ar", person["url"])
	require.Equal(t, "https://olivencia.com.ar/assets/img/ramiro.jpg", person["image"])
	require.Equal(t, p.SameAs(), person["sameAs"])
	worksFor := person["worksFor"].(map[string]any)
	require.Equal(t, "FrontendCafé", worksFor["name"])
	require.NotContains(t, worksFor, "@context")

	site := data[1].(map[string]any)
	require.Equal(t, "WebSite", site["@type"])
	require.Equal(t, "en-US", site["inLanguage"])
	require.Equal(t, p.SEO.WebsiteDescription, site["description"])
}

func TestProfileSEOKeepsConfiguredImage(t *testing.T) {
	t.Parallel()
	p := profile.Fallback()
	p.SEO.Image = "https://cdn.example.com/og.jpg"
	require.Empty(t, ProfileSEO(p, "https://olivencia.com.ar").Image)

	p.ImageURL = "https://cdn.example.com/avatar.jpg"
	person := ProfileSEO(p, "https://olivencia.com.ar").StructuredData.([]any)[0].(map[string]any)
	require.Equal(t, "https://cdn.example.com/avatar.jpg", person["image"])
}

func TestBuildProfilePage(t *testing.T) {
	t.Parallel()
	page := BuildProfilePage(ProfilePageInput{
		Profile: profile.Fallback(),
		Tab:     profile.TabProjects,
		Path:    "/ramiro",
		Year:    2026,
	})

	require.Equal(t, "en-US", page.Lang)
	require.Len(t, page.Tabs, 2)
	require.False(t, page.Tabs[0].Active)
	require.True(t, page.Tabs[1].Active)
	require.Equal(t, "/ramiro?tab=projects", page.Tabs[1].Href)
	require.Equal(t, profile.TabProjects, page.Active.Type)
	require.NotEmpty(t, page.Active.Links)
	require.Len(t, page.Links, 6)
}

func TestBuildProfilePageDefaultsToFirstTab(t *testing.T) {
	t.Parallel()
	page := BuildProfilePage(ProfilePageInput{Profile: profile.Fallback(), Tab: "bogus"})

	require.Equal(t, profile.TabProfessional, page.Active.Type)
	require.Equal(t, "/?tab=professional", page.Tabs[0].Href)
}
