package entity

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/refdoc/internal/doctext"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/refdoc/internal/markdown"
)

// PageKind distinguishes generated pages from link-only navigation entries.
type PageKind int

const (
	PageInternal PageKind = iota
	PageExternal
)

func (k PageKind) String() string {
	if k == PageExternal {
		return "external"
	}
	return "internal"
}

// indexPage keeps its own name in the output directory.
const indexPage = "index.html"

// Page is a hand-written page loaded from the source folder, or an external
// link that only appears in the navigation.
type Page struct {
	name   string
	link   string
	folder string
	kind   PageKind
}

// NewPage classifies url: absolute http(s) URLs become external pages,
// anything else is a file relative to folder.
func NewPage(name, url, folder string) *Page {
	kind := PageInternal
	if doctext.IsExternalURL(url) {
		kind = PageExternal
	}
	return &Page{name: name, link: url, folder: folder, kind: kind}
}

func (p *Page) Name() string { return p.name }
func (p *Page) Link() string { return p.link }
func (p *Page) Kind() PageKind { return p.kind }

// SourcePath is the file the page body is read from. Empty for external pages.
func (p *Page) SourcePath() string {
	if p.kind == PageExternal {
		return ""
	}
	return filepath.Join(p.folder, p.link)
}

// Location is Page_<link> for internal pages (index.html and Markdown
// sources aside) and the URL itself for external ones.
func (p *Page) Location() string {
	if p.kind == PageExternal {
		return p.link
	}
	link := markdown.ToHTMLPath(p.link)
	if link == indexPage {
		return link
	}
	return "Page_" + link
}

// Render loads the page source and resolves its {@link} markers. The raw
// HTML is not escaped; pages are trusted markup.
func (p *Page) Render(links doctext.LinkLookup, eol string) (string, error) {
	if p.kind == PageExternal {
		return "", errors.ExternalPageRender(p.name, p.link)
	}

	path := p.SourcePath()
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to read page source").
			Fatal().
			WithContext("page", p.name).
			WithContext("path", path).
			Build()
	}

	content := string(raw)
	if markdown.IsMarkdown(p.link) {
		content, err = markdown.Render(raw, markdown.Options{EOL: eol})
		if err != nil {
			return "", errors.WrapError(err, errors.CategoryDocs, "failed to render markdown page").
				Fatal().
				WithContext("page", p.name).
				WithContext("path", path).
				Build()
		}
	}

	return `<div class="page">` + eol + doctext.ResolveLinks(content, links) + eol + "</div>", nil
}

// PageGroup is a titled navigation section of pages. It is not an entity.
type PageGroup struct {
	Name  string
	Pages []*Page
}

func NewPageGroup(name string) *PageGroup {
	return &PageGroup{Name: name}
}

func (g *PageGroup) AddPage(p *Page) {
	g.Pages = append(g.Pages, p)
}
