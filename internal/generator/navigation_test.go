package generator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/refdoc/internal/entity"
	"git.home.luguber.info/inful/refdoc/internal/registry"
)

var navID = regexp.MustCompile(`id="nav-([^"]+)"`)

func navNames(html string) []string {
	var names []string
	for _, m := range navID.FindAllStringSubmatch(html, -1) {
		names = append(names, m[1])
	}
	return names
}

func TestBuildNavigation(t *testing.T) {
	reg := registry.New()
	group := entity.NewPageGroup("Manual")
	group.AddPage(entity.NewPage("Zeta", "zeta.html", ""))
	group.AddPage(entity.NewPage("Alpha", "index.html", ""))
	require.NoError(t, reg.AddPageGroup(group))
	require.NoError(t, reg.AddEnum(entity.NewEnum("Size", "")))
	require.NoError(t, reg.AddEnum(entity.NewEnum("Color", "")))
	require.NoError(t, reg.AddFunction(entity.NewFunction("clamp", "", nil, nil)))

	nav := BuildNavigation(reg, "\n")
	require.Equal(t, []string{"Zeta", "Alpha", "clamp", "Color", "Size"}, navNames(nav))
	require.Contains(t, nav, `<div id="nav-Zeta" class="navigation_item"><a href="Page_zeta.html" target="_self">Zeta</a></div>`)
	require.NotContains(t, nav, SectionClasses)
	require.Equal(t, 3, strings.Count(nav, `<div class="navigation_section">`))
}

func TestBuildNavigationEmpty(t *testing.T) {
	require.Empty(t, BuildNavigation(registry.New(), "\n"))
}

func TestNavigationOrderingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(8642)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("entity sections are sorted whatever the insertion order", prop.ForAll(
		func(names []string) bool {
			reg := registry.New()
			seen := map[string]bool{}
			var unique []string
			for _, n := range names {
				if seen[n] {
					continue
				}
				seen[n] = true
				unique = append(unique, n)
				if err := reg.AddClass(entity.NewClass(n, "")); err != nil {
					return false
				}
			}
			got := navNames(BuildNavigation(reg, "\n"))
			want := slices.Clone(unique)
			slices.Sort(want)
			return slices.Equal(got, want)
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("page groups keep configured order", prop.ForAll(
		func(n int) bool {
			reg := registry.New()
			group := entity.NewPageGroup("Pages")
			var want []string
			for i := n; i > 0; i-- {
				name := fmt.Sprintf("p%03d", i)
				want = append(want, name)
				group.AddPage(entity.NewPage(name, name+".html", ""))
			}
			if err := reg.AddPageGroup(group); err != nil {
				return false
			}
			return slices.Equal(navNames(BuildNavigation(reg, "\n")), want)
		},
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}
