package doctext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"line breaks and tabs", "first\r\nsecond\tthird", "first  second third"},
		{"markup is escaped", "a < b && c > d", "a &lt; b &amp;&amp; c &gt; d"},
		{"quotes are escaped", `say "hi"`, "say &#34;hi&#34;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestRenderLink(t *testing.T) {
	require.Equal(t, `<a href="Class_Shape.html" target="_self">Shape</a>`, RenderLink("Shape", "Class_Shape.html"))
	require.Equal(t, `<a href="https://threejs.org/docs" target="_blank">Mesh</a>`, RenderLink("Mesh", "https://threejs.org/docs"))
	require.Equal(t, `<a href="http://example.com" target="_blank">Ex</a>`, RenderLink("Ex", "http://example.com"))
	require.Equal(t, `<a href="httpd.html" target="_self">Daemon</a>`, RenderLink("Daemon", "httpd.html"))
}

func TestResolveLinks(t *testing.T) {
	links := Links{"Shape": "Class_Shape.html"}

	t.Run("known name becomes anchor", func(t *testing.T) {
		got := ResolveLinks("See {@link Shape}", links)
		require.Equal(t, `See <a href="Class_Shape.html" target="_self">Shape</a>`, got)
	})

	t.Run("unknown name degrades to plain text", func(t *testing.T) {
		got := ResolveLinks("See {@link Circle}", links)
		require.Equal(t, "See Circle", got)
	})

	t.Run("multiple markers", func(t *testing.T) {
		got := ResolveLinks("{@link Shape} and {@link Shape} or {@link Color}", links)
		require.Equal(t, RenderLink("Shape", "Class_Shape.html")+" and "+RenderLink("Shape", "Class_Shape.html")+" or Color", got)
	})

	t.Run("text without markers is untouched", func(t *testing.T) {
		require.Equal(t, "plain {text}", ResolveLinks("plain {text}", links))
	})

	t.Run("nested braces are not a marker", func(t *testing.T) {
		require.Equal(t, "{@link {Shape}}", ResolveLinks("{@link {Shape}}", links))
	})
}

func TestFinalizeDescription(t *testing.T) {
	links := Links{"Shape": "Class_Shape.html"}
	got := FinalizeDescription("Returns the\n<b>area</b> of {@link Shape}.", links)
	require.Equal(t, `Returns the &lt;b&gt;area&lt;/b&gt; of <a href="Class_Shape.html" target="_self">Shape</a>.`, got)
}

func TestResolveType(t *testing.T) {
	links := Links{"Coord3D": "Class_Coord3D.html"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"primitive", "number", "number"},
		{"known type", "Coord3D", RenderLink("Coord3D", "Class_Coord3D.html")},
		{"array of known type", "Array.<Coord3D>", RenderLink("Coord3D", "Class_Coord3D.html") + "[]"},
		{"array of primitive", "Array.<number>", "number[]"},
		{"nested array", "Array.<Array.<Coord3D>>", RenderLink("Coord3D", "Class_Coord3D.html") + "[][]"},
		{"generic object stays escaped", "Object.<string, number>", "Object.&lt;string, number&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveType(tt.in, links))
		})
	}
}

func TestDetectEOL(t *testing.T) {
	require.Equal(t, LF, DetectEOL(""))
	require.Equal(t, LF, DetectEOL("single line"))
	require.Equal(t, LF, DetectEOL("a\nb\n"))
	require.Equal(t, CRLF, DetectEOL("a\r\nb\r\n"))
	require.Equal(t, LF, DetectEOL("a\r\nb\nc"))
}

func TestNormalizeEOL(t *testing.T) {
	require.Equal(t, "a\nb\nc", NormalizeEOL("a\r\nb\nc", LF))
	require.Equal(t, "a\r\nb\r\nc", NormalizeEOL("a\r\nb\nc", CRLF))
}
