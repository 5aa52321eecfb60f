// Package linkverify checks that every relative link in a generated site
// resolves to a file in the output directory.
package linkverify

import (
	"context"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/refdoc/internal/logfields"
)

// BrokenLink is a relative link whose target is missing.
type BrokenLink struct {
	Page string // page path relative to the output directory
	URL  string
	Tag  string
	Line int
}

// Report summarizes one verification pass.
type Report struct {
	Pages   int
	Checked int
	Broken  []BrokenLink
}

// OK reports whether no broken links were found.
func (r *Report) OK() bool { return len(r.Broken) == 0 }

// Verifier scans HTML files below a root directory.
type Verifier struct {
	root   string
	logger *slog.Logger
}

func NewVerifier(root string, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{root: root, logger: logger}
}

// VerifyAll checks every .html file below the root.
func (v *Verifier) VerifyAll(ctx context.Context) (*Report, error) {
	var pages []string
	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".html") {
			rel, relErr := filepath.Rel(v.root, path)
			if relErr != nil {
				return relErr
			}
			pages = append(pages, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan output directory").
			WithContext("path", v.root).
			Build()
	}
	return v.Verify(ctx, pages)
}

// Verify checks the given pages, paths relative to the root.
func (v *Verifier) Verify(ctx context.Context, pages []string) (*Report, error) {
	report := &Report{}
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		links, err := ExtractLinks(filepath.Join(v.root, filepath.FromSlash(page)))
		if err != nil {
			return report, err
		}
		report.Pages++

		for _, link := range links {
			if !ShouldVerifyLink(link) {
				continue
			}
			report.Checked++
			if v.exists(page, link.URL) {
				continue
			}
			report.Broken = append(report.Broken, BrokenLink{Page: page, URL: link.URL, Tag: link.Tag, Line: link.Line})
			v.logger.Warn("Broken link",
				logfields.File(page),
				logfields.URL(link.URL),
				slog.String("tag", link.Tag))
		}
	}
	return report, nil
}

// exists resolves target relative to page and stats the result.
func (v *Verifier) exists(page, target string) bool {
	u, err := url.Parse(target)
	if err != nil || u.Path == "" {
		return err == nil
	}
	rel := u.Path
	if !strings.HasPrefix(rel, "/") {
		rel = filepath.ToSlash(filepath.Join(filepath.Dir(page), rel))
	}
	path := filepath.Join(v.root, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	_, err = os.Stat(path)
	return err == nil
}
