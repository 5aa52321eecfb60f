// Package doctext holds the text transformations shared by every rendered
// entity: description cleanup, {@link} cross-reference resolution, type-name
// linking and line-ending handling.
package doctext

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// LinkLookup resolves an entity or page name to its output location.
type LinkLookup interface {
	Lookup(name string) (string, bool)
}

// Links is a plain map LinkLookup, handy for tests and ad-hoc tables.
type Links map[string]string

// Lookup implements LinkLookup.
func (l Links) Lookup(name string) (string, bool) {
	url, ok := l[name]
	return url, ok
}

var (
	linkMarker = regexp.MustCompile(`\{@link ([^{}]+)\}`)
	lineChars  = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")
)

const (
	arrayPrefix = "Array.&lt;"
	arraySuffix = "&gt;"
)

// CleanText flattens a description onto one line and escapes it for HTML.
func CleanText(text string) string {
	return html.EscapeString(lineChars.Replace(text))
}

// RenderLink renders an anchor; absolute http(s) URLs open in a new window.
func RenderLink(name, url string) string {
	target := "_self"
	if IsExternalURL(url) {
		target = "_blank"
	}
	return fmt.Sprintf(`<a href="%s" target="%s">%s</a>`, url, target, name)
}

// IsExternalURL reports whether url is an absolute http or https URL.
func IsExternalURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// ResolveLinks replaces every {@link Name} marker with an anchor to Name's
// location, or with the bare name when Name is unknown.
func ResolveLinks(text string, links LinkLookup) string {
	return linkMarker.ReplaceAllStringFunc(text, func(marker string) string {
		name := linkMarker.FindStringSubmatch(marker)[1]
		if url, ok := links.Lookup(name); ok {
			return RenderLink(name, url)
		}
		return name
	})
}

// FinalizeDescription cleans a free-text description and resolves its markers.
func FinalizeDescription(text string, links LinkLookup) string {
	return ResolveLinks(CleanText(text), links)
}

// ResolveType renders a type name, linking it when it names a known entity.
// Array.<T> renders as T[]; nested arrays unwrap to T[][].
func ResolveType(typeText string, links LinkLookup) string {
	return resolveCleanType(CleanText(typeText), links)
}

func resolveCleanType(text string, links LinkLookup) string {
	if strings.HasPrefix(text, arrayPrefix) && strings.HasSuffix(text, arraySuffix) {
		inner := strings.TrimSuffix(strings.TrimPrefix(text, arrayPrefix), arraySuffix)
		if inner != "" {
			return resolveCleanType(inner, links) + "[]"
		}
	}
	if url, ok := links.Lookup(text); ok {
		return RenderLink(text, url)
	}
	return text
}
