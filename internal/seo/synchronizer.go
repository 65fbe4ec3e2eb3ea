package seo

import (
	"errors"
	"slices"
	"time"

	"go.uber.org/zap"
)

const (
	robotsDirective = "index, follow, max-snippet:-1, max-video-preview:-1, max-image-preview:large"
	themeColor      = "#ffffff"
	referrerPolicy  = "strict-origin-when-cross-origin"
	xDefault        = "x-default"
)

// dnsPrefetchOrigins are resolved early on every page.
var dnsPrefetchOrigins = []string{
	"https://fonts.googleapis.com",
	"https://fonts.gstatic.com",
	"https://www.google-analytics.com",
	"https://www.googletagmanager.com",
}

// preconnectOrigins get a full connection warm-up on every page.
var preconnectOrigins = []string{
	"https://fonts.googleapis.com",
	"https://fonts.gstatic.com",
}

// securityPolicies are the http-equiv values written by AddSecurityHeaders, in order.
var securityPolicies = []Attr{
	{Key: "Content-Security-Policy", Val: "default-src 'self'; script-src 'self' 'unsafe-inline' https:; style-src 'self' 'unsafe-inline' https:; img-src 'self' data: https:; font-src 'self' https:; connect-src 'self' https:;"},
	{Key: "X-Content-Type-Options", Val: "nosniff"},
	{Key: "X-Frame-Options", Val: "DENY"},
	{Key: "X-XSS-Protection", Val: "1; mode=block"},
}

// Recorder receives synchronization measurements.
type Recorder interface {
	ObserveHeadSync(d time.Duration)
	StructuredDataFailed()
}

type nopRecorder struct{}

func (nopRecorder) ObserveHeadSync(time.Duration) {}
func (nopRecorder) StructuredDataFailed()         {}

// Synchronizer keeps a document head in line with a page Config. It is not
// safe for concurrent use; create one per document.
type Synchronizer struct {
	head       HeadWriter
	loc        Location
	defaults   Config
	dnsOrigins []string
	preconnect []string
	logger     *zap.Logger
	recorder   Recorder
	now        func() time.Time
}

// Option customises a Synchronizer.
type Option func(*Synchronizer)

// WithDefaults sets the site-wide configuration partial configs are merged over.
func WithDefaults(c Config) Option {
	return func(s *Synchronizer) { s.defaults = Merge(Defaults, c) }
}

// WithLogger sets the logger used for best-effort failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(s *Synchronizer) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithResourceHints replaces the dns-prefetch and preconnect origin lists.
func WithResourceHints(dnsPrefetch, preconnect []string) Option {
	return func(s *Synchronizer) {
		s.dnsOrigins = slices.Clone(dnsPrefetch)
		s.preconnect = slices.Clone(preconnect)
	}
}

// NewSynchronizer binds a synchronizer to head for the page at loc.
func NewSynchronizer(head HeadWriter, loc Location, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		head:       head,
		loc:        loc,
		defaults:   Defaults,
		dnsOrigins: slices.Clone(dnsPrefetchOrigins),
		preconnect: slices.Clone(preconnectOrigins),
		logger:     zap.NewNop(),
		recorder:   nopRecorder{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns scheme://host of the current page.
func (s *Synchronizer) BaseURL() string { return s.loc.BaseURL() }

// Effective returns the configuration Apply would write for partial.
func (s *Synchronizer) Effective(partial Config) Config {
	return Merge(s.defaults, partial)
}

// Apply merges partial over the defaults and rewrites every managed head
// element to match. Failures are logged and skipped so that one bad field
// never aborts the pass.
func (s *Synchronizer) Apply(partial Config) {
	start := s.now()
	cfg := s.Effective(partial)
	pageURL := cfg.URL
	if pageURL == "" {
		pageURL = s.loc.URL()
	}

	s.head.Upsert(TitleKey, Element{Tag: "title", Text: cfg.Title})
	s.basicMeta(cfg)
	s.openGraph(cfg, pageURL)
	s.twitter(cfg)
	s.canonical(pageURL)
	s.languageLinks(cfg)
	s.resourceHints()

	if present(cfg.StructuredData) {
		if err := s.AddStructuredData(cfg.StructuredData); err != nil {
			s.recorder.StructuredDataFailed()
			s.logger.Warn("structured data skipped",
				zap.String("path", s.loc.Path),
				zap.Error(err),
			)
		}
	}
	s.recorder.ObserveHeadSync(s.now().Sub(start))
}

func (s *Synchronizer) upsertName(name, content string) {
	s.head.Upsert(NameKey(name), Meta("name", name, content))
}

func (s *Synchronizer) upsertProperty(prop, content string) {
	s.head.Upsert(PropertyKey(prop), Meta("property", prop, content))
}

// imageProperties and the twitter names below are only written when their
// field is set; an unset field removes whatever an earlier call wrote.
var imageProperties = []string{"og:image", "og:image:alt", "og:image:width", "og:image:height", "og:image:type"}

var twitterImageNames = []string{"twitter:image", "twitter:image:alt"}

func (s *Synchronizer) removeProperties(props ...string) {
	for _, prop := range props {
		s.head.RemoveAll(PropertyKey(prop).Selector())
	}
}

func (s *Synchronizer) removeNames(names ...string) {
	for _, name := range names {
		s.head.RemoveAll(NameKey(name).Selector())
	}
}

func (s *Synchronizer) upsertHTTPEquiv(header, content string) {
	s.head.Upsert(HTTPEquivKey(header), Meta("http-equiv", header, content))
}

func (s *Synchronizer) basicMeta(cfg Config) {
	s.upsertName("description", cfg.Description)
	s.upsertName("keywords", cfg.Keywords)
	s.upsertName("author", cfg.Author)
	s.upsertName("robots", robotsDirective)
	s.upsertName("theme-color", themeColor)
	s.upsertName("msapplication-TileColor", themeColor)
	s.upsertHTTPEquiv("X-UA-Compatible", "IE=edge")
	s.upsertName("referrer", referrerPolicy)
}

func (s *Synchronizer) openGraph(cfg Config, pageURL string) {
	pageType := cfg.Type
	if pageType == "" {
		pageType = TypeWebsite
	}
	siteName := cfg.SiteName
	if siteName == "" {
		siteName = cfg.Author
	}
	locale := cfg.Locale
	if locale == "" {
		locale = DefaultLocale
	}

	s.upsertProperty("og:title", cfg.Title)
	s.upsertProperty("og:description", cfg.Description)
	s.upsertProperty("og:type", string(pageType))
	s.upsertProperty("og:url", pageURL)
	s.upsertProperty("og:site_name", siteName)
	s.upsertProperty("og:locale", locale)

	if cfg.Image != "" {
		s.upsertProperty("og:image", cfg.Image)
		s.upsertProperty("og:image:alt", cfg.Title)
		s.upsertProperty("og:image:width", defaultImageWidth)
		s.upsertProperty("og:image:height", defaultImageHeight)
		s.upsertProperty("og:image:type", defaultImageType)
	} else {
		s.removeProperties(imageProperties...)
	}

	// Alternate locales are additive: one tag per distinct value, never upserted.
	for _, alt := range cfg.AlternateLocales {
		if alt == "" {
			continue
		}
		AppendUnique(s.head,
			Meta("property", "og:locale:alternate", alt),
			MetaContent("property", "og:locale:alternate", alt),
		)
	}
}

func (s *Synchronizer) twitter(cfg Config) {
	card := cfg.TwitterCard
	if card == "" {
		card = CardSummaryLargeImage
	}
	s.upsertName("twitter:card", string(card))
	s.upsertName("twitter:title", cfg.Title)
	s.upsertName("twitter:description", cfg.Description)
	if cfg.TwitterSite != "" {
		s.upsertName("twitter:site", cfg.TwitterSite)
	} else {
		s.removeNames("twitter:site")
	}
	if cfg.TwitterCreator != "" {
		s.upsertName("twitter:creator", cfg.TwitterCreator)
	} else {
		s.removeNames("twitter:creator")
	}
	if cfg.Image != "" {
		s.upsertName("twitter:image", cfg.Image)
		s.upsertName("twitter:image:alt", cfg.Title)
	} else {
		s.removeNames(twitterImageNames...)
	}
}

func (s *Synchronizer) canonical(pageURL string) {
	s.head.RemoveAll(LinkRel("canonical"))
	s.head.Append(Link("canonical", "href", pageURL))
}

func (s *Synchronizer) languageLinks(cfg Config) {
	base := s.BaseURL()
	s.head.RemoveAll(HasAttr("link", "hreflang"))
	s.head.Append(Link("alternate", "hreflang", xDefault, "href", base))
	if cfg.Locale != "" {
		s.head.Append(Link("alternate", "hreflang", Hreflang(cfg.Locale), "href", base))
	}
}

func (s *Synchronizer) resourceHints() {
	for _, origin := range s.dnsOrigins {
		AppendUnique(s.head, Link("dns-prefetch", "href", origin), LinkRelHref("dns-prefetch", origin))
	}
	for _, origin := range s.preconnect {
		AppendUnique(s.head, Link("preconnect", "href", origin, "crossorigin", ""), LinkRelHref("preconnect", origin))
	}
}

// AddStructuredData replaces any JSON-LD script with one holding data. The
// payload is encoded before the head is touched, so a *SerializationError
// leaves the previous script in place.
func (s *Synchronizer) AddStructuredData(data any) error {
	text, err := MarshalStructuredData(data)
	if err != nil {
		return err
	}
	s.head.RemoveAll(ScriptType(jsonLDType))
	s.head.Append(Element{
		Tag:   "script",
		Attrs: []Attr{{Key: "type", Val: jsonLDType}},
		Text:  text,
	})
	return nil
}

// AddSecurityHeaders upserts the http-equiv equivalents of the site's
// security headers.
func (s *Synchronizer) AddSecurityHeaders() {
	for _, p := range securityPolicies {
		s.upsertHTTPEquiv(p.Key, p.Val)
	}
}

// PreloadResource appends a preload hint. Calls are not deduplicated: every
// call adds one more link.
func (s *Synchronizer) PreloadResource(href, as, typ string) {
	el := Link("preload", "href", href, "as", as)
	if typ != "" {
		el.Attrs = append(el.Attrs, Attr{Key: "type", Val: typ})
	}
	s.head.Append(el)
}

// AddCriticalCSS inlines css in a style element marked data-critical.
func (s *Synchronizer) AddCriticalCSS(css string) {
	if css == "" {
		return
	}
	s.head.Append(Element{
		Tag:   "style",
		Attrs: []Attr{{Key: "data-critical", Val: "true"}},
		Text:  css,
	})
}

// IsSerializationError reports whether err came from encoding structured data.
func IsSerializationError(err error) bool {
	var se *SerializationError
	return errors.As(err, &se)
}
