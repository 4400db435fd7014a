package importer

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Identity extraction is best-effort: any piece may come back empty, which
// only narrows the dedup key for that file, never aborts it.

var (
	downloadIDRe = regexp.MustCompile(`downloadables/(\d+)`)
	itemIDRe     = regexp.MustCompile(`items/(\d+)`)
)

// extractDownloadID pulls the numeric id following "downloadables/" out of
// a file URL.
func extractDownloadID(rawURL string) string {
	if m := downloadIDRe.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// extractItemID pulls the numeric id following "items/" out of an item
// page URL.
func extractItemID(rawURL string) string {
	if m := itemIDRe.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// extractShopDomain returns the host of the first URL that yields one,
// lower-cased. For marketplace storefronts this is the per-shop subdomain
// (e.g. "someshop.booth.pm").
func extractShopDomain(rawURLs ...string) string {
	for _, raw := range rawURLs {
		if raw == "" {
			continue
		}
		if host := hostOf(raw); host != "" {
			return strings.ToLower(host)
		}
	}
	return ""
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err == nil && u.Host != "" {
		return u.Hostname()
	}
	// Tolerate scheme-less input like "shop.example.com/items/1".
	u, err = url.Parse("https://" + raw)
	if err == nil && strings.Contains(u.Hostname(), ".") {
		return u.Hostname()
	}
	return ""
}

// fileNameOf prefers the declared filename and falls back to the last URL
// path segment, query stripped.
func fileNameOf(f File) string {
	if f.FileName != "" {
		return f.FileName
	}
	raw := f.URL
	if idx := strings.Index(raw, "?"); idx >= 0 {
		raw = raw[:idx]
	}
	base := path.Base(raw)
	if base == "" || base == "." || base == "/" {
		return ""
	}
	return base
}

// extOf returns the lower-cased extension of name without the dot.
func extOf(name string) string {
	ext := path.Ext(name)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
