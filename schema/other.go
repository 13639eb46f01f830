package schema

import (
	"fmt"
	"slices"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

type valueSequenceDesc[T Scalar] struct {
	base
	acc   func(any) *Values[T]
	codec codec[T]
	rule  *rule[T]
	def   []T
}

// ValueSequence declares repeated <name val="..."/> elements. Default, when
// given, must be a []T.
func ValueSequence[C any, T Scalar](name string, get func(*C) *Values[T], opts ...Option) Descriptor {
	o := buildOptions(opts)
	c := codecFor[T]()
	d := &valueSequenceDesc[T]{
		base:  base{name: name, kind: KindValueSequence},
		acc:   func(o any) *Values[T] { return get(o.(*C)) },
		codec: c,
		rule:  &rule[T]{name: name, nullable: true, domain: "sequence of " + c.typ},
	}
	if o.hasDef {
		def, ok := o.def.([]T)
		if !ok {
			panic(fmt.Sprintf("schema: default %#v of %s is not a []%s", o.def, name, c.typ))
		}
		d.def = slices.Clone(def)
	}
	return d
}

func (d *valueSequenceDesc[T]) Nullable() bool { return true }
func (d *valueSequenceDesc[T]) Domain() string { return d.rule.domain }

func (d *valueSequenceDesc[T]) bind(o any, reset bool) { d.acc(o).bind(d.rule, d.def, reset) }

func (d *valueSequenceDesc[T]) empty(o any) { d.acc(o).items = nil }

func (d *valueSequenceDesc[T]) rebase(up func(any) any) Descriptor {
	c := *d
	acc := d.acc
	c.acc = func(o any) *Values[T] { return acc(up(o)) }
	return &c
}

func (d *valueSequenceDesc[T]) get(o any) any { return d.acc(o).Items() }

func (d *valueSequenceDesc[T]) set(o any, x any) error {
	f := d.acc(o)
	if x == nil {
		f.Reset()
		return nil
	}
	items, ok := x.([]T)
	if !ok {
		return invalid(d.name, x, d.rule.domain)
	}
	return f.Set(items)
}

func (d *valueSequenceDesc[T]) equal(a, b any) bool {
	return slices.Equal(d.acc(a).items, d.acc(b).items)
}

func (d *valueSequenceDesc[T]) encode(o any, el *etree.Element, _ *encoder) {
	for _, v := range d.acc(o).items {
		el.CreateElement(d.name).CreateAttr("val", d.codec.format(v))
	}
}

func (d *valueSequenceDesc[T]) decodeElement(o any, el *etree.Element, _ *decoder) error {
	s, ok := attrValue(el, "val")
	if !ok {
		return malformed(el.Tag, d.name, "", errors.New("missing val attribute"))
	}
	v, err := d.codec.parse(s)
	if err != nil {
		return malformed(el.Tag, d.name, s, err)
	}
	f := d.acc(o)
	f.items = append(f.items, v)
	return nil
}

type extensionDesc struct {
	base
	acc func(any) *ExtensionList
}

// Extensions declares an <name> extension list block, conventionally extLst.
func Extensions[C any](name string, get func(*C) *ExtensionList) Descriptor {
	return &extensionDesc{
		base: base{name: name, kind: KindExtensionList},
		acc:  func(o any) *ExtensionList { return get(o.(*C)) },
	}
}

func (d *extensionDesc) Nullable() bool { return true }
func (d *extensionDesc) Domain() string { return "extension list" }

func (d *extensionDesc) bind(o any, reset bool) {
	if reset {
		d.acc(o).Reset()
	}
}

func (d *extensionDesc) empty(o any) { d.acc(o).Reset() }

func (d *extensionDesc) rebase(up func(any) any) Descriptor {
	acc := d.acc
	return &extensionDesc{base: d.base, acc: func(o any) *ExtensionList { return acc(up(o)) }}
}

func (d *extensionDesc) get(o any) any { return d.acc(o) }

func (d *extensionDesc) set(o any, x any) error {
	f := d.acc(o)
	switch v := x.(type) {
	case nil:
		f.Reset()
	case *ExtensionList:
		f.Reset()
		for _, el := range v.els {
			f.Add(el)
		}
	default:
		return invalid(d.name, x, d.Domain())
	}
	return nil
}

func (d *extensionDesc) equal(a, b any) bool {
	return d.acc(a).equal(&d.acc(b).fragments)
}

func (d *extensionDesc) encode(o any, el *etree.Element, _ *encoder) {
	f := d.acc(o)
	if f.Len() == 0 {
		return
	}
	f.emit(el.CreateElement(d.name))
}

func (d *extensionDesc) decodeElement(o any, el *etree.Element, _ *decoder) error {
	f := d.acc(o)
	for _, ch := range el.ChildElements() {
		f.Add(ch)
	}
	return nil
}

type passthroughDesc struct {
	base
	acc  func(any) *Foreign
	tags []string
}

// Passthrough keeps child elements without interpreting them and writes them
// back at its position in the element order. With tags it keeps only
// children of those names; without, every child the schema does not declare.
func Passthrough[C any](name string, get func(*C) *Foreign, tags ...string) Descriptor {
	return &passthroughDesc{
		base: base{name: name, kind: KindPassthrough},
		acc:  func(o any) *Foreign { return get(o.(*C)) },
		tags: slices.Clone(tags),
	}
}

// Tags returns the child names the passthrough is restricted to, none for a
// catch-all.
func (d *passthroughDesc) Tags() []string { return slices.Clone(d.tags) }

func (d *passthroughDesc) Nullable() bool { return true }
func (d *passthroughDesc) Domain() string { return "foreign elements" }

func (d *passthroughDesc) bind(o any, reset bool) {
	if reset {
		d.acc(o).Reset()
	}
}

func (d *passthroughDesc) empty(o any) { d.acc(o).Reset() }

func (d *passthroughDesc) rebase(up func(any) any) Descriptor {
	acc := d.acc
	return &passthroughDesc{base: d.base, acc: func(o any) *Foreign { return acc(up(o)) }, tags: d.tags}
}

func (d *passthroughDesc) get(o any) any { return d.acc(o) }

func (d *passthroughDesc) set(o any, x any) error {
	f := d.acc(o)
	switch v := x.(type) {
	case nil:
		f.Reset()
	case *Foreign:
		f.Reset()
		for _, el := range v.els {
			f.Add(el)
		}
	default:
		return invalid(d.name, x, d.Domain())
	}
	return nil
}

func (d *passthroughDesc) equal(a, b any) bool {
	return d.acc(a).equal(&d.acc(b).fragments)
}

func (d *passthroughDesc) encode(o any, el *etree.Element, _ *encoder) { d.acc(o).emit(el) }

func (d *passthroughDesc) decodeElement(o any, el *etree.Element, _ *decoder) error {
	d.acc(o).Add(el)
	return nil
}

type aliasDesc struct {
	base
	target string
	to     Descriptor
}

// Alias exposes the field target under a second name. Aliases share the
// target's storage and are never written.
func Alias(name, target string) Descriptor {
	return &aliasDesc{base: base{name: name, kind: KindAlias}, target: target}
}

// Target returns the name the alias refers to.
func (d *aliasDesc) Target() string { return d.target }

func (d *aliasDesc) Nullable() bool { return d.to.Nullable() }
func (d *aliasDesc) Domain() string { return d.to.Domain() }

func (d *aliasDesc) bind(any, bool) {}

func (d *aliasDesc) rebase(func(any) any) Descriptor {
	return &aliasDesc{base: d.base, target: d.target}
}

func (d *aliasDesc) get(o any) any          { return d.to.get(o) }
func (d *aliasDesc) set(o any, x any) error { return d.to.set(o, x) }
func (d *aliasDesc) equal(any, any) bool    { return true }

func (d *aliasDesc) encode(any, *etree.Element, *encoder) {}
