// Package markdown converts Markdown page sources into the HTML fragment that
// the page renderer wraps and cross-links.
package markdown

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Options controls Markdown rendering.
type Options struct {
	// EOL replaces the line endings goldmark emits, so the fragment matches the template.
	EOL string
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// Hand-written pages may embed raw HTML alongside Markdown.
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// IsMarkdown reports whether path names a Markdown source.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// ToHTMLPath maps a Markdown source path to the name of its rendered HTML file.
func ToHTMLPath(path string) string {
	if !IsMarkdown(path) {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
}

// Render converts a Markdown body to HTML. {@link Name} markers pass through untouched.
func Render(source []byte, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	out := strings.TrimRight(buf.String(), "\n")
	if opts.EOL != "" && opts.EOL != "\n" {
		out = strings.ReplaceAll(out, "\n", opts.EOL)
	}
	return out, nil
}
