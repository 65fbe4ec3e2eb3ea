package seo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var errNoHead = errors.New("seo: document has no head element")

// Document is a HeadWriter backed by a parsed HTML document. Rendered pages are
// parsed once, synchronized, then written back out with Render.
type Document struct {
	doc  *goquery.Document
	head *goquery.Selection
}

var _ HeadWriter = (*Document)(nil)

// ParseDocument parses a full HTML document.
func ParseDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	head := doc.Find("head").First()
	if head.Length() == 0 {
		return nil, errNoHead
	}
	return &Document{doc: doc, head: head}, nil
}

func (d *Document) Upsert(key Key, el Element) {
	sel := d.matching(key.Matches)
	if sel.Length() == 0 {
		d.Append(el)
		return
	}
	fillNode(sel.Get(0), el)
	sel.Slice(1, goquery.ToEnd).Remove()
}

func (d *Document) RemoveAll(match Selector) int {
	sel := d.matching(match)
	n := sel.Length()
	sel.Remove()
	return n
}

func (d *Document) Append(el Element) {
	d.head.AppendNodes(nodeFromElement(el))
}

func (d *Document) Find(match Selector) []Element {
	sel := d.matching(match)
	out := make([]Element, 0, sel.Length())
	for _, n := range sel.Nodes {
		out = append(out, elementFromNode(n))
	}
	return out
}

// Render writes the whole document, doctype included.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render document: %w", err)
		}
	}
	return nil
}

// HTML returns the rendered document as a string.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *Document) matching(match Selector) *goquery.Selection {
	return d.head.Children().FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(elementFromNode(s.Get(0)))
	})
}

func elementFromNode(n *html.Node) Element {
	el := Element{Tag: n.Data}
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		el.Attrs = append(el.Attrs, Attr{Key: a.Key, Val: a.Val})
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	el.Text = text.String()
	return el
}

func nodeFromElement(el Element) *html.Node {
	tag := strings.ToLower(el.Tag)
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	fillNode(n, el)
	return n
}

// fillNode replaces the attributes and children of n with those of el.
func fillNode(n *html.Node, el Element) {
	n.Attr = n.Attr[:0]
	for _, a := range el.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: strings.ToLower(a.Key), Val: a.Val})
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	if el.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: el.Text})
	}
}
