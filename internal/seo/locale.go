package seo

import (
	"strings"

	"golang.org/x/text/language"
)

// Hreflang converts an Open Graph locale (en_US) into the hreflang form (en-us).
func Hreflang(locale string) string {
	return strings.ToLower(strings.Replace(locale, "_", "-", 1))
}

// LanguageTag returns the canonical BCP 47 tag for an Open Graph locale, for
// use in <html lang> and schema.org inLanguage. Unparseable locales yield "en".
func LanguageTag(locale string) string {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return language.English.String()
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English.String()
	}
	return tag.String()
}
