package registry

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"git.home.luguber.info/inful/refdoc/internal/entity"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
)

func TestLinkTableProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("each registered name resolves to its own location", prop.ForAll(
		func(names []string) bool {
			r := New()
			seen := make(map[string]bool)
			for _, name := range names {
				err := r.AddClass(entity.NewClass(name, ""))
				if seen[name] != (err != nil) {
					return false
				}
				seen[name] = true
			}
			for name := range seen {
				url, ok := r.Links().Lookup(name)
				if !ok || url != "Class_"+name+".html" {
					return false
				}
			}
			return len(r.Links()) == len(seen) && len(r.Classes()) == len(seen)
		},
		gen.SliceOf(gen.OneConstOf("Shape", "Color", "clamp", "Viewer", "Point"), reflect.TypeOf("")),
	))

	properties.Property("a second registration is always a duplicate", prop.ForAll(
		func(name, first, second string) bool {
			r := New()
			if err := r.AddEntityLink(name, first); err != nil {
				return false
			}
			err := r.AddEntityLink(name, second)
			return errors.HasSeverity(err, errors.SeverityFatal) && r.Links()[name] == first
		},
		gen.Identifier(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
