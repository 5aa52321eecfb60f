package entity

import (
	"strings"

	"git.home.luguber.info/inful/refdoc/internal/doctext"
	"git.home.luguber.info/inful/refdoc/internal/htmlgen"
)

// FunctionKind decides how a function signature is presented.
type FunctionKind int

const (
	Standalone FunctionKind = iota
	ClassMethod
	Constructor
)

func (k FunctionKind) String() string {
	switch k {
	case ClassMethod:
		return "method"
	case Constructor:
		return "constructor"
	default:
		return "function"
	}
}

// Parameter describes one argument. Dotted doclet names are nested through
// SubParameters, each child carrying only its last name segment.
type Parameter struct {
	Name          string
	Types         []string
	Optional      bool
	Description   string
	SubParameters []*Parameter
}

func (p *Parameter) AddSubParameter(sub *Parameter) {
	p.SubParameters = append(p.SubParameters, sub)
}

// Returns describes a function result.
type Returns struct {
	Types       []string
	Description string
}

// Function is a callable: a standalone function, a class method or a class
// constructor. Only standalone functions are entities with their own page.
type Function struct {
	name        string
	description string
	parameters  []*Parameter
	returns     *Returns
}

func NewFunction(name, description string, parameters []*Parameter, returns *Returns) *Function {
	return &Function{
		name:        name,
		description: description,
		parameters:  parameters,
		returns:     returns,
	}
}

func (f *Function) Name() string { return f.name }
func (f *Function) Description() string { return f.description }
func (f *Function) Parameters() []*Parameter { return f.parameters }
func (f *Function) Returns() *Returns { return f.returns }
func (f *Function) Location() string { return "Function_" + f.name + ".html" }

func (f *Function) Render(links doctext.LinkLookup, eol string) (string, error) {
	g := htmlgen.New(eol)
	g.AddTag("h1", f.name)
	renderFunction(g, f, Standalone, links)
	return g.HTML(), nil
}

// Signature is "name (p1, p2)" using top-level parameter names, prefixed
// with "new " for constructors.
func (f *Function) Signature(kind FunctionKind) string {
	names := make([]string, 0, len(f.parameters))
	for _, p := range f.parameters {
		names = append(names, p.Name)
	}
	sig := f.name + " (" + strings.Join(names, ", ") + ")"
	if kind == Constructor {
		sig = "new " + sig
	}
	return sig
}

func renderFunction(g *htmlgen.Generator, f *Function, kind FunctionKind, links doctext.LinkLookup) {
	g.BeginTagWithClass("div", "function_container")
	g.AddTagWithAttributes("div", []htmlgen.Attribute{
		{Name: "id", Value: f.name},
		{Name: "class", Value: "function_signature"},
	}, f.Signature(kind))

	if f.description != "" {
		g.AddTagWithClass("div", "function_title", "Description")
		g.AddTagWithClass("div", "function_description", doctext.FinalizeDescription(f.description, links))
	}

	if len(f.parameters) > 0 {
		g.AddTagWithClass("div", "function_title", "Parameters")
		renderParameters(g, f.parameters, links)
	}

	if f.returns != nil {
		g.AddTagWithClass("div", "function_title", "Returns")
		g.BeginTagWithClass("div", "function_returns")
		renderTypes(g, f.returns.Types, links)
		if f.returns.Description != "" {
			g.AddTagWithClass("span", "return_description", doctext.FinalizeDescription(f.returns.Description, links))
		}
		g.EndTag("div")
	}

	g.EndTag("div")
}

func renderParameters(g *htmlgen.Generator, params []*Parameter, links doctext.LinkLookup) {
	for _, p := range params {
		g.BeginTagWithClass("div", "parameter_header")
		g.AddTagWithClass("span", "parameter_name", p.Name)
		renderTypes(g, p.Types, links)
		if p.Optional {
			g.AddTagWithClass("span", "parameter_attributes", "(optional)")
		}
		g.EndTag("div")

		g.BeginTagWithClass("div", "parameter_main")
		g.AddTagWithClass("div", "parameter_description", doctext.FinalizeDescription(p.Description, links))
		renderParameters(g, p.SubParameters, links)
		g.EndTag("div")
	}
}

func renderTypes(g *htmlgen.Generator, types []string, links doctext.LinkLookup) {
	for i, t := range types {
		if i > 0 {
			g.AddTagWithClass("span", "parameter_type_separator", "|")
		}
		g.AddTagWithClass("span", "type parameter_type", doctext.ResolveType(t, links))
	}
}
