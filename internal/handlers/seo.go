package handlers

import (
	"strings"

	"olivencia.com.ar/profile-web/internal/profile"
	"olivencia.com.ar/profile-web/internal/seo"
)

// SEODefaults maps the profile's site-wide metadata onto synchronizer defaults.
func SEODefaults(p profile.Profile) seo.Config {
	s := p.SEO
	return seo.Config{
		Title:            s.Title,
		Description:      s.Description,
		Keywords:         s.Keywords,
		Author:           p.Name,
		Image:            s.Image,
		Type:             seo.PageType(s.Type),
		SiteName:         s.SiteName,
		Locale:           s.Locale,
		AlternateLocales: s.AlternateLocales,
		TwitterCard:      seo.TwitterCard(s.TwitterCard),
		TwitterSite:      s.TwitterSite,
		TwitterCreator:   s.TwitterCreator,
	}
}

// ProfileSEO returns the partial metadata of the profile page, carrying the
// Person and WebSite schemas as structured data.
func ProfileSEO(p profile.Profile, baseURL string) seo.Config {
	image := absoluteURL(baseURL, p.ImageURL)
	locale := p.SEO.Locale
	if locale == "" {
		locale = seo.DefaultLocale
	}

	var worksFor map[string]any
	if p.Organization.Name != "" {
		worksFor = seo.Organization(p.Organization.Name, p.Organization.URL, "")
	}

	person := seo.Person(seo.PersonSchema{
		Name:        p.Name,
		JobTitle:    p.JobTitle,
		Description: p.SEO.Description,
		URL:         baseURL,
		Image:       image,
		WorksFor:    worksFor,
		KnowsAbout:  p.KnowsAbout,
		AlumniOf:    p.AlumniOf,
		SameAs:      p.SameAs(),
	})
	site := seo.WebSite(seo.WebSiteSchema{
		Name:        siteName(p),
		Description: p.SEO.WebsiteDescription,
		URL:         baseURL,
		Author:      p.Name,
		InLanguage:  seo.LanguageTag(locale),
	})

	cfg := seo.Config{
		Type:           seo.TypeProfile,
		StructuredData: []any{person, site},
	}
	if p.SEO.Image == "" {
		cfg.Image = image
	}
	return cfg
}

func siteName(p profile.Profile) string {
	if p.SEO.SiteName != "" {
		return p.SEO.SiteName
	}
	return p.Name
}

// absoluteURL resolves a site-relative path against base. Absolute URLs and
// empty paths are returned unchanged.
func absoluteURL(base, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
