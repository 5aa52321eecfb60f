// Package doclet decodes the extractor's JSON records and assembles them
// into the class / function / enum hierarchy the site is rendered from.
package doclet

import (
	"encoding/json"
	"io"
	"os"

	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
)

// Kind is the closed set of record kinds the builder understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindClass
	KindFunction
	KindConstant
	KindMember
)

// ParseKind maps the extractor's kind string onto Kind.
func ParseKind(s string) Kind {
	switch s {
	case "class":
		return KindClass
	case "function":
		return KindFunction
	case "constant":
		return KindConstant
	case "member":
		return KindMember
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindConstant:
		return "constant"
	case KindMember:
		return "member"
	default:
		return "unknown"
	}
}

// TypeNames is the extractor's {"names": [...]} type wrapper.
type TypeNames struct {
	Names []string `json:"names"`
}

type Param struct {
	Name        string     `json:"name"`
	Type        *TypeNames `json:"type,omitempty"`
	Optional    bool       `json:"optional,omitempty"`
	Description string     `json:"description,omitempty"`
}

type Return struct {
	Type        *TypeNames `json:"type,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Doclet is one extractor record. Unused extractor fields are ignored.
type Doclet struct {
	RawKind      string   `json:"kind"`
	Name         string   `json:"name"`
	MemberOf     string   `json:"memberof,omitempty"`
	Description  string   `json:"description,omitempty"`
	ClassDesc    string   `json:"classdesc,omitempty"`
	Params       []Param  `json:"params,omitempty"`
	Returns      []Return `json:"returns,omitempty"`
	IsEnum       bool     `json:"isEnum,omitempty"`
	Undocumented bool     `json:"undocumented,omitempty"`
}

func (d Doclet) Kind() Kind { return ParseKind(d.RawKind) }

// Decode reads a JSON array of doclets.
func Decode(r io.Reader) ([]Doclet, error) {
	var doclets []Doclet
	if err := json.NewDecoder(r).Decode(&doclets); err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "failed to decode doclets").
			Fatal().
			Build()
	}
	return doclets, nil
}

// Load decodes doclets from path; "-" reads standard input.
func Load(path string) ([]Doclet, error) {
	if path == "-" {
		return Decode(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open doclets").
			Fatal().
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()

	doclets, err := Decode(f)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return doclets, nil
}

// Documented drops records of unknown kind and records flagged undocumented.
func Documented(doclets []Doclet) []Doclet {
	out := make([]Doclet, 0, len(doclets))
	for _, d := range doclets {
		if d.Kind() == KindUnknown || d.Undocumented {
			continue
		}
		out = append(out, d)
	}
	return out
}
