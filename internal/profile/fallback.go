package profile

import "time"

// Fallback is the compiled-in profile used when no content file is present.
func Fallback() Profile {
	return Profile{
		Name:        "Ramiro Olivencia",
		Initials:    "RO",
		JobTitle:    "Senior Software Engineer & Angular Technical Lead",
		Summary:     "R&D Software Engineer. Angular Tech Lead. {years}+ years as a professional in software engineering. Staff @ [FrontendCafé](https://frontend.cafe)",
		CareerStart: time.Date(2014, time.May, 1, 0, 0, 0, 0, time.UTC),
		ImageURL:    "assets/img/ramiro.jpg",
		Organization: Organization{
			Name: "FrontendCafé",
			URL:  "https://frontend.cafe",
		},
		KnowsAbout: []string{
			"Angular",
			"TypeScript",
			"JavaScript",
			"Web Development",
			"Frontend Development",
			"Software Engineering",
			"Technical Leadership",
		},
		AlumniOf: "Software Engineering",
		Links: []Link{
			{Name: "Email", Description: "Send me an email", Icon: "mail", Href: "mailto:ramiro@olivencia.com.ar"},
			{Name: "LinkedIn", Description: "Browse my LinkedIn profile", Icon: "linkedin", Href: "https://www.linkedin.com/in/rolivencia", Identity: true},
			{Name: "GitHub", Description: "Check my Github profile", Icon: "github", Href: "https://github.com/rolivencia", Identity: true},
			{Name: "Twitter", Description: "Let's connect on Twitter", Icon: "twitter", Href: "https://twitter.com/rolivencia", Identity: true},
			{Name: "Calendly", Description: "Book me using Calendly", Icon: "calendar-clock", Href: "https://calendly.com/rolivencia"},
			{Name: "Spotify", Description: "Music? You have some Spotify playlists here", Icon: "music", Href: "https://open.spotify.com/user/rolivencia"},
		},
		Tabs: []Tab{
			{
				Name: "Professional",
				Type: TabProfessional,
				Links: []Link{
					{Name: "Download resume", Icon: "file-text", Href: "/resume.pdf", Download: true},
				},
			},
			{
				Name: "Projects",
				Type: TabProjects,
				Links: []Link{
					{Name: "GitHub Portfolio", Icon: "github", Href: "https://github.com/rolivencia"},
					{Name: "La Cuentoneta", Icon: "book-text", Href: "https://cuentoneta.ar"},
				},
			},
		},
		SEO: SiteSEO{
			Title:              "Ramiro Olivencia - R&D Software Engineer",
			Description:        "Senior Software Engineer & Angular Technical Lead with 11+ years of proven expertise in architecting scalable web solutions and mentoring development teams.",
			WebsiteDescription: "Personal website of Ramiro Olivencia, Senior Software Engineer & Angular Technical Lead",
			Keywords:           "Angular, TypeScript, Frontend Developer, Tech Lead, Software Engineer, Web Development, JavaScript, HTML, CSS, FrontendCafé",
			SiteName:           "Ramiro Olivencia",
			Type:               "profile",
			Locale:             "en_US",
			TwitterCard:        "summary_large_image",
			TwitterSite:        "@ramiroolivencia",
			TwitterCreator:     "@ramiroolivencia",
		},
	}
}
