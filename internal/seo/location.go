package seo

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Location is the address of the page being synchronized.
type Location struct {
	Scheme string
	Host   string
	Path   string
}

// BaseURL returns scheme://host.
func (l Location) BaseURL() string {
	scheme := l.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + l.Host
}

// URL returns the base URL joined with the route path. Query and fragment are
// never part of it.
func (l Location) URL() string {
	return l.BaseURL() + l.Path
}

// WithPath returns a copy of l pointing at path.
func (l Location) WithPath(path string) Location {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	l.Path = path
	return l
}

// ParseLocation parses an absolute URL such as a configured public base URL.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Location{}, fmt.Errorf("parse location %q: absolute URL required", raw)
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return Location{}, fmt.Errorf("parse location %q: http or https scheme required", raw)
	}
	return Location{
		Scheme: strings.ToLower(u.Scheme),
		Host:   u.Host,
		Path:   strings.TrimRight(u.Path, "/"),
	}, nil
}

// LocationFromRequest derives the page location from an incoming request,
// honouring X-Forwarded-Proto and X-Forwarded-Host set by the load balancer.
// Forwarded values that are not an http(s) scheme or a bare host[:port] are
// ignored; deployments reachable without a trusted proxy should configure a
// public base URL instead.
func LocationFromRequest(r *http.Request) Location {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := strings.ToLower(firstHeaderValue(r.Header.Get("X-Forwarded-Proto"))); p == "http" || p == "https" {
		scheme = p
	}
	host := r.Host
	if h := firstHeaderValue(r.Header.Get("X-Forwarded-Host")); validHost(h) {
		host = h
	}
	return Location{Scheme: scheme, Host: host, Path: r.URL.Path}
}

// validHost accepts host or host:port with no userinfo, path, query or fragment.
func validHost(h string) bool {
	if h == "" || strings.ContainsAny(h, "/\\@?# \t") {
		return false
	}
	u, err := url.Parse("//" + h)
	return err == nil && u.Host == h
}

func firstHeaderValue(v string) string {
	if i := strings.IndexByte(v, ','); i != -1 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
