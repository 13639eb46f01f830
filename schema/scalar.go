package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// RelationshipsNS is the namespace of relationship id attributes (r:id).
const RelationshipsNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// Number lists the scalar types with an order.
type Number interface {
	int | float64
}

type scalarDesc[T Scalar] struct {
	base
	acc      func(any) *Value[T]
	codec    codec[T]
	rule     *rule[T]
	explicit bool
	ns       string
	prefix   string
}

func newScalar[C any, T Scalar](name string, kind Kind, get func(*C) *Value[T], domain string, check func(T) bool, opts []Option) *scalarDesc[T] {
	o := buildOptions(opts)
	c := codecFor[T]()
	if domain == "" {
		domain = c.typ
	}
	if o.nullable {
		domain += " or None"
	}
	r := &rule[T]{name: name, nullable: o.nullable, domain: domain, check: check}
	switch {
	case o.hasDef:
		v, ok := c.coerce(o.def)
		if !ok {
			panic(fmt.Sprintf("schema: default %#v of %s is not a %s", o.def, name, c.typ))
		}
		if err := r.validate(v); err != nil {
			panic(err)
		}
		r.def, r.hasDef = v, true
	case !o.nullable:
		var zero T
		if err := r.validate(zero); err != nil {
			panic(fmt.Sprintf("schema: %s needs a default, its zero value is not %s", name, domain))
		}
		r.def, r.hasDef = zero, true
	}
	return &scalarDesc[T]{
		base:     base{name: name, kind: kind},
		acc:      func(o any) *Value[T] { return get(o.(*C)) },
		codec:    c,
		rule:     r,
		explicit: o.hasDef,
	}
}

func enumerated[C any](name string, kind Kind, get func(*C) *Value[string], values []string, none bool, opts []Option) *scalarDesc[string] {
	values = slices.Clone(values)
	if none {
		opts = append(opts, Nullable())
	}
	d := newScalar(name, kind, get, fmt.Sprintf("one of %q", values), func(v string) bool {
		return slices.Contains(values, v)
	}, opts)
	if none {
		d.rule.isNone = func(v string) bool { return v == "none" }
	}
	return d
}

func bounded[C any, T Number](name string, kind Kind, get func(*C) *Value[T], lo, hi T, opts []Option) *scalarDesc[T] {
	c := codecFor[T]()
	return newScalar(name, kind, get, fmt.Sprintf("%s in [%v, %v]", c.typ, lo, hi), func(v T) bool {
		return v >= lo && v <= hi
	}, opts)
}

// Integer declares an integer attribute.
func Integer[C any](name string, get func(*C) *Value[int], opts ...Option) Descriptor {
	return newScalar(name, KindAttribute, get, "", nil, opts)
}

// Float declares a floating point attribute.
func Float[C any](name string, get func(*C) *Value[float64], opts ...Option) Descriptor {
	return newScalar(name, KindAttribute, get, "", nil, opts)
}

// Bool declares a boolean attribute.
func Bool[C any](name string, get func(*C) *Value[bool], opts ...Option) Descriptor {
	return newScalar(name, KindAttribute, get, "", nil, opts)
}

// String declares a string attribute.
func String[C any](name string, get func(*C) *Value[string], opts ...Option) Descriptor {
	return newScalar(name, KindAttribute, get, "", nil, opts)
}

// Set declares an attribute restricted to values.
func Set[C any](name string, get func(*C) *Value[string], values []string, opts ...Option) Descriptor {
	return enumerated(name, KindAttribute, get, values, false, opts)
}

// NoneSet is Set that also accepts None; assigning "none" clears the field.
func NoneSet[C any](name string, get func(*C) *Value[string], values []string, opts ...Option) Descriptor {
	return enumerated(name, KindAttribute, get, values, true, opts)
}

// MinMax declares a numeric attribute within [min, max].
func MinMax[C any, T Number](name string, get func(*C) *Value[T], lo, hi T, opts ...Option) Descriptor {
	return bounded(name, KindAttribute, get, lo, hi, opts)
}

// Relation declares an r:id attribute referencing a package relationship.
func Relation[C any](name string, get func(*C) *Value[string]) Descriptor {
	d := newScalar(name, KindAttribute, get, "relationship id", nil, []Option{Nullable()})
	d.ns, d.prefix = RelationshipsNS, "r"
	return d
}

// NestedInteger declares an integer carried by <name val="..."/>.
func NestedInteger[C any](name string, get func(*C) *Value[int], opts ...Option) Descriptor {
	return newScalar(name, KindNested, get, "", nil, opts)
}

// NestedFloat declares a number carried by <name val="..."/>.
func NestedFloat[C any](name string, get func(*C) *Value[float64], opts ...Option) Descriptor {
	return newScalar(name, KindNested, get, "", nil, opts)
}

// NestedBool declares a flag carried by <name val="..."/>. An element
// without val means true.
func NestedBool[C any](name string, get func(*C) *Value[bool], opts ...Option) Descriptor {
	return newScalar(name, KindNested, get, "", nil, opts)
}

// NestedString declares a string carried by <name val="..."/>.
func NestedString[C any](name string, get func(*C) *Value[string], opts ...Option) Descriptor {
	return newScalar(name, KindNested, get, "", nil, opts)
}

func NestedSet[C any](name string, get func(*C) *Value[string], values []string, opts ...Option) Descriptor {
	return enumerated(name, KindNested, get, values, false, opts)
}

func NestedNoneSet[C any](name string, get func(*C) *Value[string], values []string, opts ...Option) Descriptor {
	return enumerated(name, KindNested, get, values, true, opts)
}

func NestedMinMax[C any, T Number](name string, get func(*C) *Value[T], lo, hi T, opts ...Option) Descriptor {
	return bounded(name, KindNested, get, lo, hi, opts)
}

// NestedText declares a value carried as the text of <name>.
func NestedText[C any, T Scalar](name string, get func(*C) *Value[T], opts ...Option) Descriptor {
	return newScalar(name, KindNestedText, get, "", nil, opts)
}

// Text declares a value carried as the text of the owning element.
func Text[C any, T Scalar](name string, get func(*C) *Value[T], opts ...Option) Descriptor {
	return newScalar(name, KindText, get, "", nil, opts)
}

// matches reports whether the attribute a carries this field. Plain fields
// take unprefixed attributes only, namespaced ones need a prefix bound to
// their namespace.
func (d *scalarDesc[T]) matches(a *etree.Attr) bool {
	if d.ns == "" {
		return a.Space == ""
	}
	if a.Space == "" {
		return false
	}
	uri := a.NamespaceURI()
	return uri == d.ns || (uri == "" && a.Space == d.prefix)
}

func (d *scalarDesc[T]) Nullable() bool { return d.rule.nullable }
func (d *scalarDesc[T]) Domain() string { return d.rule.domain }

func (d *scalarDesc[T]) required() bool { return !d.rule.nullable && !d.explicit }

func (d *scalarDesc[T]) bind(o any, reset bool) { d.acc(o).bind(d.rule, reset) }

func (d *scalarDesc[T]) rebase(up func(any) any) Descriptor {
	c := *d
	acc := d.acc
	c.acc = func(o any) *Value[T] { return acc(up(o)) }
	return &c
}

func (d *scalarDesc[T]) get(o any) any {
	f := d.acc(o)
	if !f.ok {
		return nil
	}
	return f.v
}

func (d *scalarDesc[T]) set(o any, x any) error {
	f := d.acc(o)
	if x == nil {
		return f.Clear()
	}
	v, ok := d.codec.coerce(x)
	if !ok {
		return invalid(d.name, x, d.rule.domain)
	}
	return f.Set(v)
}

func (d *scalarDesc[T]) equal(a, b any) bool { return d.acc(a).equal(d.acc(b)) }

func (d *scalarDesc[T]) encode(o any, el *etree.Element, enc *encoder) {
	f := d.acc(o)
	if !f.ok {
		return
	}
	s := d.codec.format(f.v)
	switch d.kind {
	case KindAttribute:
		key := d.name
		if d.ns != "" {
			key = enc.declare(el, d.prefix, d.ns) + ":" + d.name
		}
		el.CreateAttr(key, s)
	case KindNested:
		el.CreateElement(d.name).CreateAttr("val", s)
	case KindNestedText:
		el.CreateElement(d.name).SetText(s)
	case KindText:
		el.SetText(s)
	}
}

func (d *scalarDesc[T]) decodeAttr(o any, s string) error {
	v, err := d.codec.parse(s)
	if err != nil {
		return err
	}
	return d.acc(o).Set(v)
}

func (d *scalarDesc[T]) decodeText(o any, s string) error {
	blank := s == ""
	if d.codec.typ != stringCodec.typ {
		blank = strings.TrimSpace(s) == ""
	}
	if blank && d.rule.nullable {
		return d.acc(o).Clear()
	}
	return d.decodeAttr(o, s)
}

func (d *scalarDesc[T]) decodeElement(o any, el *etree.Element, _ *decoder) error {
	switch d.kind {
	case KindNested:
		s, ok := attrValue(el, "val")
		switch {
		case ok:
		case d.codec.typ == boolCodec.typ:
			s = "1"
		case d.rule.nullable:
			return d.acc(o).Clear()
		default:
			return malformed(el.Tag, d.name, "", errors.New("missing val attribute"))
		}
		if err := d.decodeAttr(o, s); err != nil {
			return malformed(el.Tag, d.name, s, err)
		}
		return nil
	case KindNestedText, KindText:
		s := el.Text()
		if err := d.decodeText(o, s); err != nil {
			return malformed(el.Tag, d.name, s, err)
		}
		return nil
	}
	return d.base.decodeElement(o, el, nil)
}

func attrValue(el *etree.Element, key string) (string, bool) {
	var (
		v     string
		found bool
	)
	for _, a := range el.Attr {
		if isNamespaceDecl(a) || a.Key != key {
			continue
		}
		if a.Space == "" {
			return a.Value, true
		}
		if !found {
			v, found = a.Value, true
		}
	}
	return v, found
}
