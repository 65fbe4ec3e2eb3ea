package seo

import (
	"encoding/json"
	"reflect"
)

const (
	schemaContext = "https://schema.org"
	jsonLDType    = "application/ld+json"
)

// SerializationError reports structured data that could not be encoded as JSON.
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return "seo: serialize structured data: " + e.Err.Error()
}

// Unwrap exposes the underlying encoding error.
func (e *SerializationError) Unwrap() error { return e.Err }

// MarshalStructuredData encodes v as compact JSON suitable for a JSON-LD script.
func MarshalStructuredData(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", &SerializationError{Err: err}
	}
	return string(b), nil
}

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	s, err := MarshalStructuredData(v)
	if err != nil {
		return ""
	}
	return s
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSiteSchema holds the inputs of a WebSite schema.
type WebSiteSchema struct {
	Name        string
	Description string
	URL         string
	Author      string
	InLanguage  string
}

// WebSite returns a WebSite schema. The author doubles as copyright holder.
func WebSite(s WebSiteSchema) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     s.Name,
	}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if s.URL != "" {
		m["url"] = s.URL
	}
	if s.Author != "" {
		m["author"] = map[string]any{"@type": "Person", "name": s.Author}
		m["copyrightHolder"] = map[string]any{"@type": "Person", "name": s.Author}
	}
	if s.InLanguage != "" {
		m["inLanguage"] = s.InLanguage
	}
	return m
}

// PersonSchema holds the inputs of a Person schema.
type PersonSchema struct {
	Name        string
	JobTitle    string
	Description string
	URL         string
	Image       string
	WorksFor    map[string]any
	KnowsAbout  []string
	AlumniOf    string
	SameAs      []string
}

// Person returns a Person schema. Empty optional fields are omitted.
func Person(p PersonSchema) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Person",
		"name":     p.Name,
	}
	if p.JobTitle != "" {
		m["jobTitle"] = p.JobTitle
	}
	if p.Description != "" {
		m["description"] = p.Description
	}
	if p.URL != "" {
		m["url"] = p.URL
	}
	if p.Image != "" {
		m["image"] = p.Image
	}
	if p.WorksFor != nil {
		org := make(map[string]any, len(p.WorksFor))
		for k, v := range p.WorksFor {
			if k == "@context" {
				continue
			}
			org[k] = v
		}
		m["worksFor"] = org
	}
	if len(p.KnowsAbout) > 0 {
		m["knowsAbout"] = p.KnowsAbout
	}
	if p.AlumniOf != "" {
		m["alumniOf"] = map[string]any{"@type": "Organization", "name": p.AlumniOf}
	}
	if len(p.SameAs) > 0 {
		m["sameAs"] = p.SameAs
	}
	return m
}

// present reports whether v carries structured data: non-nil, and not a nil
// map, slice or pointer hiding inside the interface.
func present(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
