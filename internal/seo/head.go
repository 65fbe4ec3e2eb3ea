package seo

import "strings"

// Attr is a single element attribute. Order is preserved when rendering.
type Attr struct {
	Key string
	Val string
}

// Element is one child of the document head.
type Element struct {
	Tag   string
	Attrs []Attr
	Text  string
}

// Attr returns the value of the named attribute and whether it is present.
func (e Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or def when it is absent.
func (e Element) AttrOr(key, def string) string {
	if v, ok := e.Attr(key); ok {
		return v
	}
	return def
}

func (e Element) clone() Element {
	out := Element{Tag: e.Tag, Text: e.Text}
	if len(e.Attrs) > 0 {
		out.Attrs = make([]Attr, len(e.Attrs))
		copy(out.Attrs, e.Attrs)
	}
	return out
}

// Meta builds a meta element keyed by attr (name, property or http-equiv).
func Meta(attr, key, content string) Element {
	return Element{Tag: "meta", Attrs: []Attr{{Key: attr, Val: key}, {Key: "content", Val: content}}}
}

// Link builds a link element from alternating key/value pairs after rel.
func Link(rel string, kv ...string) Element {
	el := Element{Tag: "link", Attrs: []Attr{{Key: "rel", Val: rel}}}
	for i := 0; i+1 < len(kv); i += 2 {
		el.Attrs = append(el.Attrs, Attr{Key: kv[i], Val: kv[i+1]})
	}
	return el
}

// Key identifies a singleton head element.
type Key struct {
	Tag   string
	Attr  string
	Value string
}

// TitleKey addresses the document title.
var TitleKey = Key{Tag: "title"}

// NameKey addresses <meta name="...">.
func NameKey(name string) Key { return Key{Tag: "meta", Attr: "name", Value: name} }

// PropertyKey addresses <meta property="...">.
func PropertyKey(prop string) Key { return Key{Tag: "meta", Attr: "property", Value: prop} }

// HTTPEquivKey addresses <meta http-equiv="...">.
func HTTPEquivKey(header string) Key { return Key{Tag: "meta", Attr: "http-equiv", Value: header} }

// Matches reports whether el is the element addressed by k.
func (k Key) Matches(el Element) bool {
	if !strings.EqualFold(el.Tag, k.Tag) {
		return false
	}
	if k.Attr == "" {
		return true
	}
	v, ok := el.Attr(k.Attr)
	return ok && v == k.Value
}

// Selector is a predicate over head elements.
type Selector func(Element) bool

// Key converts k into a Selector.
func (k Key) Selector() Selector { return k.Matches }

// LinkRel selects <link rel="..."> elements.
func LinkRel(rel string) Selector {
	return func(el Element) bool {
		return strings.EqualFold(el.Tag, "link") && el.AttrOr("rel", "") == rel
	}
}

// LinkRelHref selects <link rel="..." href="..."> elements.
func LinkRelHref(rel, href string) Selector {
	return func(el Element) bool {
		return LinkRel(rel)(el) && el.AttrOr("href", "") == href
	}
}

// HasAttr selects elements of tag carrying attr, whatever its value.
func HasAttr(tag, attr string) Selector {
	return func(el Element) bool {
		if !strings.EqualFold(el.Tag, tag) {
			return false
		}
		_, ok := el.Attr(attr)
		return ok
	}
}

// ScriptType selects <script type="..."> elements.
func ScriptType(typ string) Selector {
	return func(el Element) bool {
		return strings.EqualFold(el.Tag, "script") && el.AttrOr("type", "") == typ
	}
}

// MetaContent selects <meta attr="key" content="content">.
func MetaContent(attr, key, content string) Selector {
	return func(el Element) bool {
		return Key{Tag: "meta", Attr: attr, Value: key}.Matches(el) && el.AttrOr("content", "") == content
	}
}

// HeadWriter is the mutable region of a document head owned by the synchronizer.
type HeadWriter interface {
	// Upsert rewrites the first element matching key with el, dropping any
	// further matches, or appends el when nothing matches.
	Upsert(key Key, el Element)
	// RemoveAll drops every matching element and returns how many were removed.
	RemoveAll(match Selector) int
	// Append adds el after the existing head children.
	Append(el Element)
	// Find returns copies of the matching elements in document order.
	Find(match Selector) []Element
}

// AppendUnique appends el unless an element matching sel already exists.
func AppendUnique(h HeadWriter, el Element, sel Selector) bool {
	if len(h.Find(sel)) > 0 {
		return false
	}
	h.Append(el)
	return true
}
