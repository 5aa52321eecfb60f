package entity

import (
	"git.home.luguber.info/inful/refdoc/internal/doctext"
	"git.home.luguber.info/inful/refdoc/internal/htmlgen"
)

type EnumMember struct {
	Name        string
	Description string
}

// Enum is a constant tagged as an enumeration plus its members.
type Enum struct {
	name        string
	description string
	members     []*EnumMember
}

func NewEnum(name, description string) *Enum {
	return &Enum{name: name, description: description}
}

func (e *Enum) Name() string { return e.name }
func (e *Enum) Description() string { return e.description }
func (e *Enum) Members() []*EnumMember { return e.members }
func (e *Enum) Location() string { return "Enum_" + e.name + ".html" }

func (e *Enum) AddMember(m *EnumMember) {
	e.members = append(e.members, m)
}

func (e *Enum) Render(links doctext.LinkLookup, eol string) (string, error) {
	g := htmlgen.New(eol)
	g.AddTag("h1", e.name)
	g.AddTagWithClass("div", "description", doctext.FinalizeDescription(e.description, links))

	if len(e.members) > 0 {
		g.AddTag("h2", "Values")
		for _, m := range e.members {
			g.BeginTagWithClass("div", "parameter_header")
			g.AddTagWithClass("span", "parameter_name", m.Name)
			g.EndTag("div")
			g.BeginTagWithClass("div", "parameter_main")
			g.AddTagWithClass("div", "parameter_description", doctext.FinalizeDescription(m.Description, links))
			g.EndTag("div")
		}
	}
	return g.HTML(), nil
}
