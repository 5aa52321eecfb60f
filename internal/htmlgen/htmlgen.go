// Package htmlgen accumulates line-oriented HTML fragments that are spliced
// verbatim into the page template, so every line ends with the template's
// own line-ending style.
package htmlgen

import (
	"fmt"
	"strings"
)

// Attribute is a single name="value" pair. Order is preserved on output.
type Attribute struct {
	Name  string
	Value string
}

// Generator builds an HTML fragment. Content passed to the tag helpers is
// written as-is; callers escape text before handing it over.
type Generator struct {
	eol string
	sb  strings.Builder
}

// New returns a Generator that terminates every line with eol.
func New(eol string) *Generator {
	return &Generator{eol: eol}
}

// EOL returns the configured line ending.
func (g *Generator) EOL() string { return g.eol }

func (g *Generator) AddText(content string) {
	g.sb.WriteString(content)
}

func (g *Generator) AddLine(content string) {
	g.sb.WriteString(content)
	g.sb.WriteString(g.eol)
}

func (g *Generator) AddTag(tag, content string) {
	g.AddLine(fmt.Sprintf("<%s>%s</%s>", tag, content, tag))
}

func (g *Generator) AddTagWithClass(tag, class, content string) {
	g.AddLine(fmt.Sprintf(`<%s class="%s">%s</%s>`, tag, class, content, tag))
}

func (g *Generator) AddTagWithAttributes(tag string, attrs []Attribute, content string) {
	var line strings.Builder
	line.WriteString("<" + tag)
	for _, a := range attrs {
		fmt.Fprintf(&line, ` %s="%s"`, a.Name, a.Value)
	}
	fmt.Fprintf(&line, ">%s</%s>", content, tag)
	g.AddLine(line.String())
}

func (g *Generator) BeginTag(tag string) {
	g.AddLine("<" + tag + ">")
}

func (g *Generator) BeginTagWithClass(tag, class string) {
	g.AddLine(fmt.Sprintf(`<%s class="%s">`, tag, class))
}

func (g *Generator) EndTag(tag string) {
	g.AddLine("</" + tag + ">")
}

// HTML returns everything accumulated so far.
func (g *Generator) HTML() string {
	return g.sb.String()
}
