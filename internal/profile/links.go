package profile

import "strings"

// Link is an entry in the social link row or a tab.
type Link struct {
	Name        string
	Description string
	Icon        string
	Href        string
	// Download marks files served by the site itself (e.g. the résumé).
	Download bool
	// Identity links are listed in the Person schema sameAs array.
	Identity bool
}

// External reports whether the link leaves the site.
func (l Link) External() bool {
	h := strings.ToLower(l.Href)
	return strings.HasPrefix(h, "http://") || strings.HasPrefix(h, "https://") || strings.HasPrefix(h, "mailto:")
}

// TabType identifies a résumé tab.
type TabType string

const (
	TabProfessional TabType = "professional"
	TabProjects     TabType = "projects"
)

// Tab groups links under a toggle.
type Tab struct {
	Name  string
	Type  TabType
	Links []Link
}

// ActiveTab returns the tab of type t, or the first tab when t is empty or
// unknown. ok is false only when the profile has no tabs.
func (p Profile) ActiveTab(t TabType) (Tab, bool) {
	if len(p.Tabs) == 0 {
		return Tab{}, false
	}
	for _, tab := range p.Tabs {
		if tab.Type == t {
			return tab, true
		}
	}
	return p.Tabs[0], true
}
