package generator

import (
	"os"
	"sort"
	"strings"

	"git.home.luguber.info/inful/refdoc/internal/doctext"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
)

// Placeholder tokens substituted into the page template.
const (
	TokenTitle      = "$$$TITLE$$$"
	TokenNavigation = "$$$NAVIGATION$$$"
	TokenMain       = "$$$MAIN$$$"
)

var tokens = []string{TokenTitle, TokenNavigation, TokenMain}

// Template is a parsed page template. Each token occurs exactly once, so the
// text is kept as the literal segments between the tokens.
type Template struct {
	path     string
	eol      string
	segments []string // len(order)+1 literal runs
	order    []string // tokens in document order
}

// LoadTemplate reads and parses the template file at path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read template").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return ParseTemplate(path, string(data))
}

// ParseTemplate validates content and splits it around the three tokens.
// path only labels diagnostics.
func ParseTemplate(path, content string) (*Template, error) {
	type hit struct {
		token string
		at    int
	}
	hits := make([]hit, 0, len(tokens))
	for _, tok := range tokens {
		if n := strings.Count(content, tok); n != 1 {
			return nil, errors.TemplatePlaceholder(path, tok, n)
		}
		hits = append(hits, hit{token: tok, at: strings.Index(content, tok)})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].at < hits[j].at })

	t := &Template{path: path, eol: doctext.DetectEOL(content)}
	prev := 0
	for _, h := range hits {
		t.segments = append(t.segments, content[prev:h.at])
		t.order = append(t.order, h.token)
		prev = h.at + len(h.token)
	}
	t.segments = append(t.segments, content[prev:])
	return t, nil
}

// EOL is the line ending detected in the template.
func (t *Template) EOL() string { return t.eol }

// Path is the file the template was loaded from.
func (t *Template) Path() string { return t.path }

// Execute substitutes the values literally and normalizes every line
// break to the template's line ending.
func (t *Template) Execute(title, navigation, main string) string {
	values := map[string]string{
		TokenTitle:      title,
		TokenNavigation: navigation,
		TokenMain:       main,
	}

	var sb strings.Builder
	for i, tok := range t.order {
		sb.WriteString(t.segments[i])
		sb.WriteString(values[tok])
	}
	sb.WriteString(t.segments[len(t.segments)-1])
	return doctext.NormalizeEOL(sb.String(), t.eol)
}
