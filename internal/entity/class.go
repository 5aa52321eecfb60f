package entity

import (
	"git.home.luguber.info/inful/refdoc/internal/doctext"
	"git.home.luguber.info/inful/refdoc/internal/htmlgen"
)

// Class groups a constructor with its methods on one page.
type Class struct {
	name        string
	description string
	constructor *Function
	functions   []*Function
}

func NewClass(name, description string) *Class {
	return &Class{name: name, description: description}
}

func (c *Class) Name() string { return c.name }
func (c *Class) Description() string { return c.description }
func (c *Class) Constructor() *Function { return c.constructor }
func (c *Class) Functions() []*Function { return c.functions }
func (c *Class) Location() string { return "Class_" + c.name + ".html" }

func (c *Class) SetConstructor(fn *Function) {
	c.constructor = fn
}

// AddFunction appends a method; declaration order is render order.
func (c *Class) AddFunction(fn *Function) {
	c.functions = append(c.functions, fn)
}

func (c *Class) Render(links doctext.LinkLookup, eol string) (string, error) {
	g := htmlgen.New(eol)
	g.AddTag("h1", c.name)
	g.AddTagWithClass("div", "description", doctext.FinalizeDescription(c.description, links))

	if c.constructor != nil {
		g.AddTag("h2", "Constructor")
		renderFunction(g, c.constructor, Constructor, links)
	}

	if len(c.functions) > 0 {
		g.AddTag("h2", "Methods")
		for _, fn := range c.functions {
			renderFunction(g, fn, ClassMethod, links)
		}
	}
	return g.HTML(), nil
}
