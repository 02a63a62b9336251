package command

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Registry is the static dispatch table from ID to Descriptor. It is built
// once and only read afterwards.
type Registry struct {
	descs map[ID]Descriptor
	order []ID
}

// NewRegistry validates every descriptor and rejects the table if any ID is
// duplicated or any path placeholder is not backed by a required path param.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		descs: make(map[ID]Descriptor, len(descs)),
		order: make([]ID, 0, len(descs)),
	}
	for _, d := range descs {
		if _, ok := r.descs[d.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDescriptor, d.ID)
		}
		if err := validateDescriptor(d); err != nil {
			return nil, err
		}
		r.descs[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r, nil
}

// NewDefaultRegistry returns the registry over the full BTC Markets catalog.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(Catalog()...)
}

func (r *Registry) Resolve(id ID) (Descriptor, error) {
	d, ok := r.descs[id]
	if !ok {
		return Descriptor{}, &UnknownCommandError{ID: id}
	}
	return d, nil
}

// IDs returns the registered IDs in registration order.
func (r *Registry) IDs() []ID {
	return append([]ID(nil), r.order...)
}

func (r *Registry) Descriptors() []Descriptor {
	return lo.Map(r.order, func(id ID, _ int) Descriptor {
		return r.descs[id]
	})
}

func (r *Registry) Len() int {
	return len(r.order)
}

func validateDescriptor(d Descriptor) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDescriptor, d.ID, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(d.ID.ToString()) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDescriptor)
	}
	if !d.Method.IsValid() {
		return invalid("unsupported method %q", d.Method)
	}
	if !strings.HasPrefix(d.Path, "/") {
		return invalid("path %q must start with /", d.Path)
	}

	names := lo.Map(d.Params, func(p ParamSpec, _ int) string { return p.Name })
	if dup := lo.FindDuplicates(names); len(dup) > 0 {
		return invalid("duplicate params %v", dup)
	}

	placeholders := Placeholders(d.Path)
	if hasPlaceholderToken(placeholderPattern.ReplaceAllString(d.Path, "")) {
		return invalid("malformed placeholder in path %q", d.Path)
	}
	for _, name := range placeholders {
		p, ok := d.Param(name)
		if !ok || p.In != InPath || !p.Required {
			return invalid("placeholder {%s} is not a required path param", name)
		}
	}

	for _, p := range d.Params {
		if strings.TrimSpace(p.Name) == "" {
			return invalid("param with empty name")
		}
		switch p.In {
		case InPath:
			if !lo.Contains(placeholders, p.Name) {
				return invalid("path param %q has no placeholder", p.Name)
			}
		case InQuery:
		case InBody:
			if !d.Method.CarriesBody() {
				return invalid("body param %q on %s", p.Name, d.Method)
			}
		default:
			return invalid("param %q has unknown location %q", p.Name, p.In)
		}
		switch p.Kind {
		case KindString, KindDecimal, KindInt:
		case KindEnum:
			if len(p.Options) == 0 {
				return invalid("enum param %q has no options", p.Name)
			}
		default:
			return invalid("param %q has unknown kind %q", p.Name, p.Kind)
		}
	}

	if d.Body != nil && !d.Method.CarriesBody() {
		return invalid("body builder on %s", d.Method)
	}
	return nil
}
