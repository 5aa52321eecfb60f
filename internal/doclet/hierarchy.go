package doclet

import (
	"strings"

	"git.home.luguber.info/inful/refdoc/internal/entity"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
)

// Orphan is a record whose memberof parent was never declared.
type Orphan struct {
	Kind     Kind
	Name     string
	MemberOf string
}

// Hierarchy is the builder's output, in record order.
type Hierarchy struct {
	Classes   []*entity.Class
	Functions []*entity.Function
	Enums     []*entity.Enum
	Dropped   []Orphan
}

// Parameters rebuilds the nested parameter tree from dotted names. A child
// must follow the parameter that declares its namespace.
func Parameters(d Doclet) ([]*entity.Parameter, error) {
	if len(d.Params) == 0 {
		return nil, nil
	}

	var top []*entity.Parameter
	byNamespace := make(map[string]*entity.Parameter, len(d.Params))
	for _, raw := range d.Params {
		param := &entity.Parameter{
			Name:        raw.Name,
			Optional:    raw.Optional,
			Description: raw.Description,
		}
		if raw.Type != nil {
			param.Types = raw.Type.Names
		}

		idx := strings.LastIndex(raw.Name, ".")
		if idx < 0 {
			top = append(top, param)
		} else {
			namespace := raw.Name[:idx]
			parent, ok := byNamespace[namespace]
			if !ok {
				return nil, errors.ParameterOrder(d.Name, raw.Name, namespace)
			}
			param.Name = raw.Name[idx+1:]
			parent.AddSubParameter(param)
		}
		byNamespace[raw.Name] = param
	}
	return top, nil
}

// ReturnsOf extracts the single return descriptor, if any.
func ReturnsOf(d Doclet) (*entity.Returns, error) {
	switch len(d.Returns) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, errors.MultipleReturns(d.Name, len(d.Returns))
	}

	ret := d.Returns[0]
	out := &entity.Returns{Description: ret.Description}
	if ret.Type != nil {
		out.Types = ret.Type.Names
	}
	return out, nil
}

// Build assembles documented records into entities. A parent must precede
// its members; records naming an undeclared parent land in Dropped.
func Build(doclets []Doclet) (*Hierarchy, error) {
	h := &Hierarchy{}
	classes := make(map[string]*entity.Class)
	enums := make(map[string]*entity.Enum)

	for _, d := range Documented(doclets) {
		switch d.Kind() {
		case KindClass:
			ctor, err := function(d)
			if err != nil {
				return nil, err
			}
			class := entity.NewClass(d.Name, d.ClassDesc)
			class.SetConstructor(ctor)
			h.Classes = append(h.Classes, class)
			classes[d.Name] = class

		case KindFunction:
			fn, err := function(d)
			if err != nil {
				return nil, err
			}
			if d.MemberOf == "" {
				h.Functions = append(h.Functions, fn)
				continue
			}
			class, ok := classes[d.MemberOf]
			if !ok {
				if _, isEnum := enums[d.MemberOf]; !isEnum {
					h.Dropped = append(h.Dropped, orphan(d))
				}
				continue
			}
			class.AddFunction(fn)

		case KindConstant:
			if !d.IsEnum {
				continue
			}
			enum := entity.NewEnum(d.Name, d.Description)
			h.Enums = append(h.Enums, enum)
			enums[d.Name] = enum

		case KindMember:
			enum, ok := enums[d.MemberOf]
			if !ok {
				// Class properties are not rendered.
				if _, isClass := classes[d.MemberOf]; !isClass {
					h.Dropped = append(h.Dropped, orphan(d))
				}
				continue
			}
			enum.AddMember(&entity.EnumMember{Name: d.Name, Description: d.Description})

		case KindUnknown:
		}
	}
	return h, nil
}

func function(d Doclet) (*entity.Function, error) {
	params, err := Parameters(d)
	if err != nil {
		return nil, err
	}
	returns, err := ReturnsOf(d)
	if err != nil {
		return nil, err
	}
	return entity.NewFunction(d.Name, d.Description, params, returns), nil
}

func orphan(d Doclet) Orphan {
	return Orphan{Kind: d.Kind(), Name: d.Name, MemberOf: d.MemberOf}
}
