package entity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/refdoc/internal/doctext"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
)

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func TestLocations(t *testing.T) {
	require.Equal(t, "Class_Shape.html", NewClass("Shape", "").Location())
	require.Equal(t, "Function_clamp.html", NewFunction("clamp", "", nil, nil).Location())
	require.Equal(t, "Enum_Color.html", NewEnum("Color", "").Location())

	require.Equal(t, "index.html", NewPage("Home", "index.html", "src").Location())
	require.Equal(t, "Page_guide.html", NewPage("Guide", "guide.html", "src").Location())
	require.Equal(t, "Page_usage.html", NewPage("Usage", "usage.md", "src").Location())
	require.Equal(t, "https://example.com", NewPage("Site", "https://example.com", "src").Location())
}

func TestKindOf(t *testing.T) {
	for _, tc := range []struct {
		e    Entity
		want Kind
	}{
		{NewPage("Home", "index.html", ""), KindPage},
		{NewClass("Shape", ""), KindClass},
		{NewFunction("clamp", "", nil, nil), KindFunction},
		{NewEnum("Color", ""), KindEnum},
	} {
		got, ok := KindOf(tc.e)
		require.True(t, ok)
		require.Equal(t, tc.want, got)
	}
}

func TestFunctionRender(t *testing.T) {
	fn := NewFunction("getArea", "Computes the area.", nil, &Returns{Types: []string{"number"}, Description: "the area"})

	out, err := fn.Render(doctext.Links{}, "\n")
	require.NoError(t, err)
	require.Equal(t, lines(
		`<h1>getArea</h1>`,
		`<div class="function_container">`,
		`<div id="getArea" class="function_signature">getArea ()</div>`,
		`<div class="function_title">Description</div>`,
		`<div class="function_description">Computes the area.</div>`,
		`<div class="function_title">Returns</div>`,
		`<div class="function_returns">`,
		`<span class="type parameter_type">number</span>`,
		`<span class="return_description">the area</span>`,
		`</div>`,
		`</div>`,
	), out)
}

func TestFunctionRenderParameters(t *testing.T) {
	opts := &Parameter{Name: "opts", Types: []string{"Object"}, Description: "options"}
	opts.AddSubParameter(&Parameter{Name: "color", Types: []string{"Color", "string"}, Optional: true, Description: "fill"})
	fn := NewFunction("draw", "", []*Parameter{opts}, nil)

	out, err := fn.Render(doctext.Links{"Color": "Enum_Color.html"}, "\n")
	require.NoError(t, err)
	require.Equal(t, lines(
		`<h1>draw</h1>`,
		`<div class="function_container">`,
		`<div id="draw" class="function_signature">draw (opts)</div>`,
		`<div class="function_title">Parameters</div>`,
		`<div class="parameter_header">`,
		`<span class="parameter_name">opts</span>`,
		`<span class="type parameter_type">Object</span>`,
		`</div>`,
		`<div class="parameter_main">`,
		`<div class="parameter_description">options</div>`,
		`<div class="parameter_header">`,
		`<span class="parameter_name">color</span>`,
		`<span class="type parameter_type"><a href="Enum_Color.html" target="_self">Color</a></span>`,
		`<span class="parameter_type_separator">|</span>`,
		`<span class="type parameter_type">string</span>`,
		`<span class="parameter_attributes">(optional)</span>`,
		`</div>`,
		`<div class="parameter_main">`,
		`<div class="parameter_description">fill</div>`,
		`</div>`,
		`</div>`,
		`</div>`,
	), out)
}

func TestSignature(t *testing.T) {
	fn := NewFunction("Shape", "", []*Parameter{{Name: "w"}, {Name: "h"}}, nil)
	require.Equal(t, "Shape (w, h)", fn.Signature(ClassMethod))
	require.Equal(t, "new Shape (w, h)", fn.Signature(Constructor))
}

func TestClassRender(t *testing.T) {
	c := NewClass("Shape", "A {@link Color} shape")
	c.SetConstructor(NewFunction("Shape", "Creates a shape", nil, nil))
	c.AddFunction(NewFunction("getArea", "", nil, nil))
	c.AddFunction(NewFunction("scale", "", nil, nil))

	out, err := c.Render(doctext.Links{"Color": "Enum_Color.html"}, "\r\n")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "<h1>Shape</h1>\r\n"+
		`<div class="description">A <a href="Enum_Color.html" target="_self">Color</a> shape</div>`+"\r\n"+
		"<h2>Constructor</h2>\r\n"))
	require.Contains(t, out, `<div id="Shape" class="function_signature">new Shape ()</div>`)
	require.Contains(t, out, `<div class="function_description">Creates a shape</div>`)
	require.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n")

	methods := strings.Index(out, "<h2>Methods</h2>")
	getArea := strings.Index(out, `id="getArea"`)
	scale := strings.Index(out, `id="scale"`)
	require.Positive(t, methods)
	require.Less(t, methods, getArea)
	require.Less(t, getArea, scale)
}

func TestClassRenderWithoutMethods(t *testing.T) {
	out, err := NewClass("Empty", "").Render(doctext.Links{}, "\n")
	require.NoError(t, err)
	require.Equal(t, lines(`<h1>Empty</h1>`, `<div class="description"></div>`), out)
}

func TestEnumRender(t *testing.T) {
	e := NewEnum("Color", "Palette")
	e.AddMember(&EnumMember{Name: "RED", Description: "warm"})

	out, err := e.Render(doctext.Links{}, "\n")
	require.NoError(t, err)
	require.Equal(t, lines(
		`<h1>Color</h1>`,
		`<div class="description">Palette</div>`,
		`<h2>Values</h2>`,
		`<div class="parameter_header">`,
		`<span class="parameter_name">RED</span>`,
		`</div>`,
		`<div class="parameter_main">`,
		`<div class="parameter_description">warm</div>`,
		`</div>`,
	), out)
	require.NotContains(t, out, "parameter_type")
}

func TestPageRender(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.html"), []byte(`<p>See {@link Shape} & more</p>`), 0o600))

	p := NewPage("Guide", "guide.html", dir)
	require.Equal(t, PageInternal, p.Kind())

	out, err := p.Render(doctext.Links{"Shape": "Class_Shape.html"}, "\n")
	require.NoError(t, err)
	require.Equal(t, "<div class=\"page\">\n<p>See <a href=\"Class_Shape.html\" target=\"_self\">Shape</a> & more</p>\n</div>", out)
}

func TestPageRenderMarkdown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "usage.md"), []byte("# Usage\n"), 0o600))

	out, err := NewPage("Usage", "usage.md", dir).Render(doctext.Links{}, "\r\n")
	require.NoError(t, err)
	require.Equal(t, "<div class=\"page\">\r\n<h1>Usage</h1>\r\n</div>", out)
}

func TestPageRenderMissingSource(t *testing.T) {
	_, err := NewPage("Gone", "gone.html", t.TempDir()).Render(doctext.Links{}, "\n")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestExternalPageRender(t *testing.T) {
	p := NewPage("Site", "https://example.com", "")
	require.Equal(t, PageExternal, p.Kind())
	require.Empty(t, p.SourcePath())

	_, err := p.Render(doctext.Links{}, "\n")
	require.ErrorIs(t, err, errors.ErrExternalPageRender)
}

func TestPageGroup(t *testing.T) {
	g := NewPageGroup("Guides")
	g.AddPage(NewPage("A", "a.html", ""))
	g.AddPage(NewPage("B", "b.html", ""))
	require.Len(t, g.Pages, 2)
	require.Equal(t, "A", g.Pages[0].Name())
}
