package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	dateLayout       = "2006-01-02"
	yearsPlaceholder = "{years}"
	daysPerYear      = 365.25
)

// Profile is the identity presented on the site.
type Profile struct {
	Name         string
	Initials     string
	JobTitle     string
	Summary      string // markdown; "{years}" expands to YearsOfExperience
	CareerStart  time.Time
	ImageURL     string
	Organization Organization
	KnowsAbout   []string
	AlumniOf     string
	Links        []Link
	Tabs         []Tab
	SEO          SiteSEO
}

// Organization is the current employer or community.
type Organization struct {
	Name string
	URL  string
}

// SiteSEO holds the site-wide metadata defaults.
type SiteSEO struct {
	Title              string
	Description        string
	WebsiteDescription string
	Keywords           string
	SiteName           string
	Type               string
	Locale             string
	AlternateLocales   []string
	Image              string
	TwitterCard        string
	TwitterSite        string
	TwitterCreator     string
}

type fileProfile struct {
	Name         string      `yaml:"name"`
	Initials     string      `yaml:"initials"`
	JobTitle     string      `yaml:"job_title"`
	Summary      string      `yaml:"summary"`
	CareerStart  string      `yaml:"career_start"`
	ImageURL     string      `yaml:"image_url"`
	Organization fileOrg     `yaml:"organization"`
	KnowsAbout   []string    `yaml:"knows_about"`
	AlumniOf     string      `yaml:"alumni_of"`
	Links        []fileLink  `yaml:"links"`
	Tabs         []fileTab   `yaml:"tabs"`
	SEO          fileSiteSEO `yaml:"seo"`
}

type fileOrg struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type fileLink struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Href        string `yaml:"href"`
	Download    bool   `yaml:"download"`
	Identity    bool   `yaml:"identity"`
}

type fileTab struct {
	Name  string     `yaml:"name"`
	Type  string     `yaml:"type"`
	Links []fileLink `yaml:"links"`
}

type fileSiteSEO struct {
	Title              string   `yaml:"title"`
	Description        string   `yaml:"description"`
	WebsiteDescription string   `yaml:"website_description"`
	Keywords           string   `yaml:"keywords"`
	SiteName           string   `yaml:"site_name"`
	Type               string   `yaml:"type"`
	Locale             string   `yaml:"locale"`
	AlternateLocales   []string `yaml:"alternate_locales"`
	Image              string   `yaml:"image"`
	TwitterCard        string   `yaml:"twitter_card"`
	TwitterSite        string   `yaml:"twitter_site"`
	TwitterCreator     string   `yaml:"twitter_creator"`
}

// Load reads a profile from a YAML file. A missing file yields Fallback().
func Load(path string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Fallback(), nil
		}
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML profile document.
func Parse(raw []byte) (Profile, error) {
	var fp fileProfile
	if err := yaml.Unmarshal(raw, &fp); err != nil {
		return Profile{}, fmt.Errorf("unmarshal profile: %w", err)
	}
	if strings.TrimSpace(fp.Name) == "" {
		return Profile{}, errors.New("profile: name is required")
	}
	p := Profile{
		Name:         strings.TrimSpace(fp.Name),
		Initials:     strings.TrimSpace(fp.Initials),
		JobTitle:     fp.JobTitle,
		Summary:      strings.TrimSpace(fp.Summary),
		ImageURL:     fp.ImageURL,
		Organization: Organization{Name: fp.Organization.Name, URL: fp.Organization.URL},
		KnowsAbout:   fp.KnowsAbout,
		AlumniOf:     fp.AlumniOf,
		Links:        convertLinks(fp.Links),
		SEO: SiteSEO{
			Title:              fp.SEO.Title,
			Description:        fp.SEO.Description,
			WebsiteDescription: fp.SEO.WebsiteDescription,
			Keywords:           fp.SEO.Keywords,
			SiteName:           fp.SEO.SiteName,
			Type:               fp.SEO.Type,
			Locale:             fp.SEO.Locale,
			AlternateLocales:   fp.SEO.AlternateLocales,
			Image:              fp.SEO.Image,
			TwitterCard:        fp.SEO.TwitterCard,
			TwitterSite:        fp.SEO.TwitterSite,
			TwitterCreator:     fp.SEO.TwitterCreator,
		},
	}
	if p.Initials == "" {
		p.Initials = initials(p.Name)
	}
	if fp.CareerStart != "" {
		t, err := time.Parse(dateLayout, fp.CareerStart)
		if err != nil {
			return Profile{}, fmt.Errorf("profile: career_start: %w", err)
		}
		p.CareerStart = t
	}
	for _, ft := range fp.Tabs {
		p.Tabs = append(p.Tabs, Tab{
			Name:  ft.Name,
			Type:  TabType(strings.ToLower(strings.TrimSpace(ft.Type))),
			Links: convertLinks(ft.Links),
		})
	}
	return p, nil
}

func convertLinks(in []fileLink) []Link {
	out := make([]Link, 0, len(in))
	for _, l := range in {
		out = append(out, Link{
			Name:        l.Name,
			Description: l.Description,
			Icon:        l.Icon,
			Href:        l.Href,
			Download:    l.Download,
			Identity:    l.Identity,
		})
	}
	return out
}

// YearsOfExperience returns whole years elapsed since CareerStart, using
// 365.25-day years. It is zero when CareerStart is unset or in the future.
func (p Profile) YearsOfExperience(now time.Time) int {
	if p.CareerStart.IsZero() || now.Before(p.CareerStart) {
		return 0
	}
	years := now.Sub(p.CareerStart).Hours() / 24 / daysPerYear
	return int(math.Floor(years))
}

// ExpandSummary substitutes the years placeholder in the summary.
func (p Profile) ExpandSummary(now time.Time) string {
	return strings.ReplaceAll(p.Summary, yearsPlaceholder, fmt.Sprint(p.YearsOfExperience(now)))
}

// SameAs lists the hrefs of identity links, in order.
func (p Profile) SameAs() []string {
	var out []string
	for _, l := range p.Links {
		if l.Identity {
			out = append(out, l.Href)
		}
	}
	return out
}

func initials(name string) string {
	var letters []rune
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		letters = append(letters, unicode.ToUpper(r))
		if len(letters) == 2 {
			break
		}
	}
	return string(letters)
}
