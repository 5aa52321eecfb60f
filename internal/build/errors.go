package build

import (
	stderrors "errors"

	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
)

// ErrBrokenLinks marks a strict build that found links to missing files.
var ErrBrokenLinks = stderrors.New("refdoc: broken links")

func brokenLinksError(count int, first string) error {
	return errors.ValidationError("generated site has broken links").
		WithCause(ErrBrokenLinks).
		WithContext("count", count).
		WithContext("first", first).
		Build()
}
