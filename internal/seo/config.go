package seo

// PageType is the Open Graph object type.
type PageType string

const (
	TypeWebsite PageType = "website"
	TypeProfile PageType = "profile"
	TypeArticle PageType = "article"
)

// TwitterCard is the Twitter card layout.
type TwitterCard string

const (
	CardSummary           TwitterCard = "summary"
	CardSummaryLargeImage TwitterCard = "summary_large_image"
	CardApp               TwitterCard = "app"
	CardPlayer            TwitterCard = "player"
)

const (
	DefaultLocale = "en_US"

	defaultImageWidth  = "1200"
	defaultImageHeight = "630"
	defaultImageType   = "image/jpeg"
)

// Config describes the metadata of one page. Used as a partial, zero-valued
// fields mean "not set" and are filled from the defaults by Merge.
type Config struct {
	Title            string
	Description      string
	Keywords         string
	Author           string
	Image            string
	URL              string
	Type             PageType
	SiteName         string
	Locale           string
	AlternateLocales []string
	TwitterCard      TwitterCard
	TwitterSite      string
	TwitterCreator   string
	// StructuredData is serialized verbatim into the JSON-LD script. A slice
	// of schema objects becomes a JSON array in the same order.
	StructuredData any
}

// Defaults is the baseline used when a synchronizer has no site defaults.
var Defaults = Config{
	Type:        TypeWebsite,
	Locale:      DefaultLocale,
	TwitterCard: CardSummaryLargeImage,
}

// Merge returns defaults overridden field-wise by the non-zero fields of partial.
func Merge(defaults, partial Config) Config {
	out := defaults
	override(&out.Title, partial.Title)
	override(&out.Description, partial.Description)
	override(&out.Keywords, partial.Keywords)
	override(&out.Author, partial.Author)
	override(&out.Image, partial.Image)
	override(&out.URL, partial.URL)
	override(&out.Type, partial.Type)
	override(&out.SiteName, partial.SiteName)
	override(&out.Locale, partial.Locale)
	override(&out.TwitterCard, partial.TwitterCard)
	override(&out.TwitterSite, partial.TwitterSite)
	override(&out.TwitterCreator, partial.TwitterCreator)
	if partial.AlternateLocales != nil {
		out.AlternateLocales = partial.AlternateLocales
	}
	if present(partial.StructuredData) {
		out.StructuredData = partial.StructuredData
	}
	if out.AlternateLocales != nil {
		out.AlternateLocales = append([]string(nil), out.AlternateLocales...)
	}
	return out
}

func override[T ~string](dst *T, v T) {
	if v != "" {
		*dst = v
	}
}
