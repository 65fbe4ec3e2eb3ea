package handlers

import (
	"html/template"
	"net/url"

	"olivencia.com.ar/profile-web/internal/profile"
	"olivencia.com.ar/profile-web/internal/seo"
)

// ProfilePage is the view model for the profile page and its tab fragment.
type ProfilePage struct {
	Title     string
	Lang      string
	Path      string
	Year      int
	Profile   profile.Profile
	Summary   template.HTML
	Links     []profile.Link
	Tabs      []RenderedTab
	Active    RenderedTab
	Analytics Analytics
	// Stylesheet is preloaded and linked from the base layout.
	Stylesheet string
}

// RenderedTab is a tab toggle with its link target resolved.
type RenderedTab struct {
	Name   string
	Type   profile.TabType
	Href   string
	Active bool
	Links  []profile.Link
}

// ProfilePageInput collects what BuildProfilePage needs from the request.
type ProfilePageInput struct {
	Profile    profile.Profile
	Summary    template.HTML
	Tab        profile.TabType
	Path       string
	Year       int
	Analytics  Analytics
	Stylesheet string
}

// BuildProfilePage constructs the profile page view model.
func BuildProfilePage(in ProfilePageInput) ProfilePage {
	p := in.Profile
	active, _ := p.ActiveTab(in.Tab)

	tabs := make([]RenderedTab, 0, len(p.Tabs))
	var current RenderedTab
	for _, t := range p.Tabs {
		rt := RenderedTab{
			Name:   t.Name,
			Type:   t.Type,
			Href:   tabHref(in.Path, t.Type),
			Active: t.Type == active.Type,
			Links:  t.Links,
		}
		if rt.Active {
			current = rt
		}
		tabs = append(tabs, rt)
	}

	locale := p.SEO.Locale
	if locale == "" {
		locale = seo.DefaultLocale
	}
	return ProfilePage{
		Title:      p.SEO.Title,
		Lang:       seo.LanguageTag(locale),
		Path:       in.Path,
		Year:       in.Year,
		Profile:    p,
		Summary:    in.Summary,
		Links:      p.Links,
		Tabs:       tabs,
		Active:     current,
		Analytics:  in.Analytics,
		Stylesheet: in.Stylesheet,
	}
}

func tabHref(path string, t profile.TabType) string {
	if path == "" {
		path = "/"
	}
	return path + "?" + url.Values{"tab": {string(t)}}.Encode()
}
