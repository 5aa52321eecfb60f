// Package entity models the documentable units of a reference site: pages,
// classes, functions and enums, together with the parameter and return
// descriptors they carry. Each entity knows its output location and how to
// render its own HTML body.
package entity

import "git.home.luguber.info/inful/refdoc/internal/doctext"

// Entity is anything that owns a unique name and an output file.
type Entity interface {
	Name() string
	Location() string
	Render(links doctext.LinkLookup, eol string) (string, error)
}

// Kind labels an entity for logs, metrics and navigation.
type Kind string

const (
	KindPage     Kind = "page"
	KindClass    Kind = "class"
	KindFunction Kind = "function"
	KindEnum     Kind = "enum"
)

// KindOf returns the kind of a known entity implementation.
func KindOf(e Entity) (Kind, bool) {
	switch e.(type) {
	case *Page:
		return KindPage, true
	case *Class:
		return KindClass, true
	case *Function:
		return KindFunction, true
	case *Enum:
		return KindEnum, true
	default:
		return "", false
	}
}
