// Package registry collects every entity of a documentation run and owns the
// link table that maps names to output locations.
package registry

import (
	"git.home.luguber.info/inful/refdoc/internal/entity"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
)

// LinkTable maps a page, entity or external reference name to its location.
type LinkTable map[string]string

// Lookup implements doctext.LinkLookup.
func (t LinkTable) Lookup(name string) (string, bool) {
	url, ok := t[name]
	return url, ok
}

// Registry is populated once and then read during rendering. It is not safe
// for concurrent mutation.
type Registry struct {
	pageGroups []*entity.PageGroup
	classes    []*entity.Class
	functions  []*entity.Function
	enums      []*entity.Enum
	links      LinkTable

	// owners maps each generated output location to the name written there.
	owners map[string]string
}

func New() *Registry {
	return &Registry{links: make(LinkTable), owners: make(map[string]string)}
}

// AddPageGroup links every page of the group, then stores the group.
// Pages are linked in order; a duplicate aborts with earlier pages linked.
// External pages are link-only and may share a URL.
func (r *Registry) AddPageGroup(group *entity.PageGroup) error {
	for _, p := range group.Pages {
		var err error
		if p.Kind() == entity.PageExternal {
			err = r.AddEntityLink(p.Name(), p.Location())
		} else {
			err = r.addGenerated(p.Name(), p.Location())
		}
		if err != nil {
			return err
		}
	}
	r.pageGroups = append(r.pageGroups, group)
	return nil
}

func (r *Registry) AddClass(c *entity.Class) error {
	if err := r.addGenerated(c.Name(), c.Location()); err != nil {
		return err
	}
	r.classes = append(r.classes, c)
	return nil
}

func (r *Registry) AddFunction(fn *entity.Function) error {
	if err := r.addGenerated(fn.Name(), fn.Location()); err != nil {
		return err
	}
	r.functions = append(r.functions, fn)
	return nil
}

func (r *Registry) AddEnum(e *entity.Enum) error {
	if err := r.addGenerated(e.Name(), e.Location()); err != nil {
		return err
	}
	r.enums = append(r.enums, e)
	return nil
}

// addGenerated links name to a file this run writes. Both the name and the
// location must be unused.
func (r *Registry) addGenerated(name, location string) error {
	if existing, ok := r.links[name]; ok {
		return errors.DuplicateName(name, existing, location)
	}
	if owner, ok := r.owners[location]; ok {
		return errors.DuplicateLocation(location, owner, name)
	}
	r.owners[location] = name
	r.links[name] = location
	return nil
}

// AddEntityLink records name -> location. A name may be linked only once.
// The location is not checked, so external refs may share a URL.
func (r *Registry) AddEntityLink(name, location string) error {
	if existing, ok := r.links[name]; ok {
		return errors.DuplicateName(name, existing, location)
	}
	r.links[name] = location
	return nil
}

func (r *Registry) PageGroups() []*entity.PageGroup { return r.pageGroups }
func (r *Registry) Classes() []*entity.Class { return r.classes }
func (r *Registry) Functions() []*entity.Function { return r.functions }
func (r *Registry) Enums() []*entity.Enum { return r.enums }
func (r *Registry) Links() LinkTable { return r.links }

// Entities returns classes, standalone functions and enums, each in
// insertion order. Pages are reached through PageGroups.
func (r *Registry) Entities() []entity.Entity {
	out := make([]entity.Entity, 0, len(r.classes)+len(r.functions)+len(r.enums))
	for _, c := range r.classes {
		out = append(out, c)
	}
	for _, fn := range r.functions {
		out = append(out, fn)
	}
	for _, e := range r.enums {
		out = append(out, e)
	}
	return out
}
