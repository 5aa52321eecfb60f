package generator

import (
	"cmp"
	"slices"

	"git.home.luguber.info/inful/refdoc/internal/doctext"
	"git.home.luguber.info/inful/refdoc/internal/htmlgen"
	"git.home.luguber.info/inful/refdoc/internal/registry"
)

// Navigation section titles for generated entities.
const (
	SectionClasses   = "Classes"
	SectionFunctions = "Functions"
	SectionEnums     = "Enums"
)

type navItem struct {
	name string
	url  string
}

type navSection struct {
	title  string
	sorted bool
	items  []navItem
}

// BuildNavigation renders the fragment shared by every page: configured page
// groups in order, then classes, functions and enums sorted by name.
// Sections without items are left out.
func BuildNavigation(reg *registry.Registry, eol string) string {
	var sections []navSection
	for _, group := range reg.PageGroups() {
		s := navSection{title: group.Name}
		for _, p := range group.Pages {
			s.items = append(s.items, navItem{name: p.Name(), url: p.Location()})
		}
		sections = append(sections, s)
	}

	classes := navSection{title: SectionClasses, sorted: true}
	for _, c := range reg.Classes() {
		classes.items = append(classes.items, navItem{name: c.Name(), url: c.Location()})
	}
	functions := navSection{title: SectionFunctions, sorted: true}
	for _, fn := range reg.Functions() {
		functions.items = append(functions.items, navItem{name: fn.Name(), url: fn.Location()})
	}
	enums := navSection{title: SectionEnums, sorted: true}
	for _, e := range reg.Enums() {
		enums.items = append(enums.items, navItem{name: e.Name(), url: e.Location()})
	}
	sections = append(sections, classes, functions, enums)

	g := htmlgen.New(eol)
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		items := s.items
		if s.sorted {
			items = slices.Clone(items)
			slices.SortStableFunc(items, func(a, b navItem) int { return cmp.Compare(a.name, b.name) })
		}

		g.BeginTagWithClass("div", "navigation_section")
		g.AddTagWithClass("div", "navigation_title", s.title)
		for _, item := range items {
			g.AddTagWithAttributes("div", []htmlgen.Attribute{
				{Name: "id", Value: "nav-" + item.name},
				{Name: "class", Value: "navigation_item"},
			}, doctext.RenderLink(item.name, item.url))
		}
		g.EndTag("div")
	}
	return g.HTML()
}
