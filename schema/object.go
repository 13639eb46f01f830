package schema

import (
	"github.com/beevik/etree"
)

type typedDesc[S any] struct {
	base
	acc   func(any) *One[S]
	child *Schema[S]
	rule  *slotRule
}

// Typed declares a single child object decoded and encoded by child.
// Unless nullable, new instances start with a fresh child.
func Typed[C, S any](name string, get func(*C) *One[S], child *Schema[S], opts ...Option) Descriptor {
	o := buildOptions(opts)
	domain := typeName[S]()
	if o.nullable {
		domain += " or None"
	}
	return &typedDesc[S]{
		base:  base{name: name, kind: KindTyped},
		acc:   func(o any) *One[S] { return get(o.(*C)) },
		child: child,
		rule:  &slotRule{name: name, nullable: o.nullable, domain: domain},
	}
}

func (d *typedDesc[S]) Nullable() bool { return d.rule.nullable }
func (d *typedDesc[S]) Domain() string { return d.rule.domain }

func (d *typedDesc[S]) bind(o any, reset bool) {
	f := d.acc(o)
	if f.r != nil && !reset {
		if f.p != nil {
			d.child.ensure(f.p)
		}
		return
	}
	f.r, f.p = d.rule, nil
	if !d.rule.nullable {
		f.p = d.child.New()
	}
}

func (d *typedDesc[S]) rebase(up func(any) any) Descriptor {
	c := *d
	acc := d.acc
	c.acc = func(o any) *One[S] { return acc(up(o)) }
	return &c
}

func (d *typedDesc[S]) get(o any) any {
	if p := d.acc(o).p; p != nil {
		return p
	}
	return nil
}

func (d *typedDesc[S]) set(o any, x any) error {
	f := d.acc(o)
	if x == nil {
		return f.Clear()
	}
	p, ok := x.(*S)
	if !ok {
		return invalid(d.name, x, d.rule.domain)
	}
	return f.Set(p)
}

func (d *typedDesc[S]) equal(a, b any) bool {
	return d.child.Equal(d.acc(a).p, d.acc(b).p)
}

func (d *typedDesc[S]) encode(o any, el *etree.Element, enc *encoder) {
	if p := d.acc(o).p; p != nil {
		el.AddChild(d.child.encode(p, d.name, d.child.meta.Namespace, *enc))
	}
}

func (d *typedDesc[S]) decodeElement(o any, el *etree.Element, dec *decoder) error {
	p, err := d.child.decode(el, dec)
	if err != nil {
		return err
	}
	return d.acc(o).Set(p)
}

type sequenceDesc[S any] struct {
	base
	acc   func(any) *Many[S]
	child *Schema[S]
}

// Sequence declares repeated child objects, each written as <name>.
func Sequence[C, S any](name string, get func(*C) *Many[S], child *Schema[S]) Descriptor {
	return &sequenceDesc[S]{
		base:  base{name: name, kind: KindSequence},
		acc:   func(o any) *Many[S] { return get(o.(*C)) },
		child: child,
	}
}

// NestedSequence declares child objects wrapped in a <name> container; each
// item is written with the tag of its own schema.
func NestedSequence[C, S any](name string, get func(*C) *Many[S], child *Schema[S]) Descriptor {
	return &sequenceDesc[S]{
		base:  base{name: name, kind: KindNestedSequence},
		acc:   func(o any) *Many[S] { return get(o.(*C)) },
		child: child,
	}
}

func (d *sequenceDesc[S]) Nullable() bool { return true }
func (d *sequenceDesc[S]) Domain() string { return "sequence of " + typeName[S]() }

func (d *sequenceDesc[S]) bind(o any, reset bool) {
	f := d.acc(o)
	f.name = d.name
	if reset {
		f.items = nil
		return
	}
	for _, it := range f.items {
		d.child.ensure(it)
	}
}

func (d *sequenceDesc[S]) empty(o any) { d.acc(o).items = nil }

func (d *sequenceDesc[S]) rebase(up func(any) any) Descriptor {
	c := *d
	acc := d.acc
	c.acc = func(o any) *Many[S] { return acc(up(o)) }
	return &c
}

func (d *sequenceDesc[S]) get(o any) any { return d.acc(o).Items() }

func (d *sequenceDesc[S]) set(o any, x any) error {
	f := d.acc(o)
	if x == nil {
		f.Reset()
		return nil
	}
	items, ok := x.([]*S)
	if !ok {
		return invalid(d.name, x, d.Domain())
	}
	return f.Set(items)
}

func (d *sequenceDesc[S]) equal(a, b any) bool {
	x, y := d.acc(a).items, d.acc(b).items
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !d.child.Equal(x[i], y[i]) {
			return false
		}
	}
	return true
}

func (d *sequenceDesc[S]) encode(o any, el *etree.Element, enc *encoder) {
	items := d.acc(o).items
	if len(items) == 0 {
		return
	}
	ns := d.child.meta.Namespace
	if d.kind == KindSequence {
		for _, it := range items {
			el.AddChild(d.child.encode(it, d.name, ns, *enc))
		}
		return
	}
	container := el.CreateElement(d.name)
	for _, it := range items {
		container.AddChild(d.child.encode(it, d.child.meta.Tag, ns, *enc))
	}
}

func (d *sequenceDesc[S]) decodeElement(o any, el *etree.Element, dec *decoder) error {
	f := d.acc(o)
	if d.kind == KindSequence {
		p, err := d.child.decode(el, dec)
		if err != nil {
			return err
		}
		return f.Append(p)
	}
	for _, ch := range el.ChildElements() {
		if ch.Tag != d.child.meta.Tag {
			dec.drop(el, ch)
			continue
		}
		p, err := d.child.decode(ch, dec)
		if err != nil {
			return err
		}
		if err := f.Append(p); err != nil {
			return err
		}
	}
	return nil
}
