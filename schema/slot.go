package schema

import (
	"slices"
)

type rule[T Scalar] struct {
	name     string
	nullable bool
	domain   string
	check    func(T) bool
	isNone   func(T) bool
	def      T
	hasDef   bool
}

func (r *rule[T]) validate(v T) error {
	if r.check != nil && !r.check(v) {
		return invalid(r.name, v, r.domain)
	}
	return nil
}

// Value is a validated scalar slot. Its rules come from the descriptor it
// is bound to; the zero Value is unbound and refuses assignments.
type Value[T Scalar] struct {
	v  T
	ok bool
	r  *rule[T]
}

// Get returns the current value, the zero value when None.
func (f *Value[T]) Get() T { return f.v }

// Lookup returns the current value and whether one is set.
func (f *Value[T]) Lookup() (T, bool) { return f.v, f.ok }

// IsNone reports whether the slot holds no value.
func (f *Value[T]) IsNone() bool { return !f.ok }

// Ptr returns a copy of the value or nil when None.
func (f *Value[T]) Ptr() *T {
	if !f.ok {
		return nil
	}
	v := f.v
	return &v
}

// Set validates and stores v. On failure the previous value is kept.
func (f *Value[T]) Set(v T) error {
	if f.r == nil {
		return ErrUnbound
	}
	if f.r.isNone != nil && f.r.isNone(v) {
		return f.Clear()
	}
	if err := f.r.validate(v); err != nil {
		return err
	}
	f.v, f.ok = v, true
	return nil
}

// Clear sets the slot to None.
func (f *Value[T]) Clear() error {
	if f.r == nil {
		return ErrUnbound
	}
	if !f.r.nullable {
		return invalid(f.r.name, nil, f.r.domain)
	}
	var zero T
	f.v, f.ok = zero, false
	return nil
}

func (f *Value[T]) bind(r *rule[T], reset bool) {
	if f.r != nil && !reset {
		return
	}
	f.r = r
	var zero T
	f.v, f.ok = zero, false
	if r.hasDef {
		f.v, f.ok = r.def, true
	}
}

func (f *Value[T]) equal(o *Value[T]) bool {
	return f.ok == o.ok && f.v == o.v
}

type slotRule struct {
	name     string
	nullable bool
	domain   string
}

// One holds a single child object.
type One[S any] struct {
	p *S
	r *slotRule
}

func (o *One[S]) Get() *S { return o.p }

// Set stores v. Passing nil is the same as Clear.
func (o *One[S]) Set(v *S) error {
	if o.r == nil {
		return ErrUnbound
	}
	if v == nil {
		return o.Clear()
	}
	o.p = v
	return nil
}

func (o *One[S]) Clear() error {
	if o.r == nil {
		return ErrUnbound
	}
	if !o.r.nullable {
		return invalid(o.r.name, nil, o.r.domain)
	}
	o.p = nil
	return nil
}

// Many holds an ordered list of child objects.
type Many[S any] struct {
	items []*S
	name  string
}

// Items returns a copy of the list.
func (m *Many[S]) Items() []*S { return slices.Clone(m.items) }

func (m *Many[S]) Len() int { return len(m.items) }

func (m *Many[S]) At(i int) *S { return m.items[i] }

// Append adds items in order. Nothing is added if any item is nil.
func (m *Many[S]) Append(items ...*S) error {
	for _, it := range items {
		if it == nil {
			return invalid(m.name, nil, "non-nil item")
		}
	}
	m.items = append(m.items, items...)
	return nil
}

// Set replaces the list. Nothing changes if any item is nil.
func (m *Many[S]) Set(items []*S) error {
	for _, it := range items {
		if it == nil {
			return invalid(m.name, nil, "non-nil item")
		}
	}
	m.items = slices.Clone(items)
	return nil
}

func (m *Many[S]) Reset() { m.items = nil }

// Values holds an ordered list of scalars.
type Values[T Scalar] struct {
	items []T
	r     *rule[T]
}

func (l *Values[T]) Items() []T { return slices.Clone(l.items) }

func (l *Values[T]) Len() int { return len(l.items) }

func (l *Values[T]) Set(items []T) error {
	if l.r == nil {
		return ErrUnbound
	}
	for _, v := range items {
		if err := l.r.validate(v); err != nil {
			return err
		}
	}
	l.items = slices.Clone(items)
	return nil
}

func (l *Values[T]) Append(items ...T) error {
	return l.Set(append(slices.Clone(l.items), items...))
}

func (l *Values[T]) Reset() { l.items = nil }

func (l *Values[T]) bind(r *rule[T], def []T, reset bool) {
	if l.r != nil && !reset {
		return
	}
	l.r = r
	l.items = slices.Clone(def)
}
