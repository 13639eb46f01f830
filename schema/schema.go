package schema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// Meta is the class level metadata of a schema class.
type Meta struct {
	// Tag is the element name the class is written as when it is the root.
	// As a child, the element is named after the field holding it.
	Tag string
	// Namespace, when set, is declared as default namespace on the element.
	Namespace string
	// Elements lists the fields written as child elements, in output order.
	Elements []string
	// Prefixes are namespace prefixes declared on the element whenever it is
	// written, so that descendants can use them without declaring their own.
	Prefixes map[string]string
}

// attrMatcher is implemented by attribute fields that check the namespace
// of a candidate attribute.
type attrMatcher interface {
	matches(a *etree.Attr) bool
}

// Schema is the field table of the schema class C.
type Schema[C any] struct {
	meta      Meta
	fields    []Descriptor
	index     map[string]Descriptor
	attrs     []Descriptor
	attrIndex map[string]Descriptor
	text      Descriptor
	elems     []Descriptor
	elemIndex map[string]Descriptor
	pass      Descriptor
}

// Define builds the schema of C from its descriptors, in declaration order.
// It panics if meta.Elements names an undeclared field or a field that
// cannot be an element, if names repeat or if an alias target is unknown.
func Define[C any](meta Meta, fields ...Descriptor) *Schema[C] {
	s := &Schema[C]{
		meta: Meta{
			Tag:       meta.Tag,
			Namespace: meta.Namespace,
			Elements:  slices.Clone(meta.Elements),
			Prefixes:  maps.Clone(meta.Prefixes),
		},
		fields:    slices.Clone(fields),
		index:     make(map[string]Descriptor, len(fields)),
		attrIndex: make(map[string]Descriptor),
		elemIndex: make(map[string]Descriptor),
	}
	for _, d := range s.fields {
		if _, dup := s.index[d.Name()]; dup {
			panic(fmt.Sprintf("schema: %s: field %s declared twice", meta.Tag, d.Name()))
		}
		s.index[d.Name()] = d
	}
	for _, d := range s.fields {
		a, ok := d.(*aliasDesc)
		if !ok {
			continue
		}
		to, ok := s.index[a.target]
		if !ok || to.Kind() == KindAlias {
			panic(fmt.Sprintf("schema: %s: alias %s refers to unknown field %s", meta.Tag, a.name, a.target))
		}
		a.to = to
	}
	for _, name := range s.meta.Elements {
		d, ok := s.index[name]
		if !ok {
			panic(fmt.Sprintf("schema: %s: element %s is not declared", meta.Tag, name))
		}
		if !d.Kind().IsElement() {
			panic(fmt.Sprintf("schema: %s: %s field %s cannot be an element", meta.Tag, d.Kind(), name))
		}
		if slices.Contains(s.elems, d) {
			panic(fmt.Sprintf("schema: %s: element %s listed twice", meta.Tag, name))
		}
		s.elems = append(s.elems, d)
		if p, ok := d.(*passthroughDesc); ok {
			if len(p.tags) == 0 {
				if s.pass != nil {
					panic(fmt.Sprintf("schema: %s: more than one catch-all passthrough", meta.Tag))
				}
				s.pass = d
				continue
			}
			for _, tag := range p.tags {
				s.addElement(tag, d)
			}
			continue
		}
		s.addElement(name, d)
	}
	for _, d := range s.fields {
		switch d.Kind() {
		case KindAttribute:
			s.attrs = append(s.attrs, d)
			s.attrIndex[d.Name()] = d
		case KindText:
			if s.text != nil {
				panic(fmt.Sprintf("schema: %s: more than one text field", meta.Tag))
			}
			s.text = d
		}
	}
	return s
}

func (s *Schema[C]) addElement(tag string, d Descriptor) {
	if _, dup := s.elemIndex[tag]; dup {
		panic(fmt.Sprintf("schema: %s: child %s is claimed twice", s.meta.Tag, tag))
	}
	s.elemIndex[tag] = d
}

func (s *Schema[C]) Tag() string       { return s.meta.Tag }
func (s *Schema[C]) Namespace() string { return s.meta.Namespace }

// Elements returns the names of the fields written as child elements.
func (s *Schema[C]) Elements() []string { return slices.Clone(s.meta.Elements) }

// Fields returns all descriptors in declaration order.
func (s *Schema[C]) Fields() []Descriptor { return slices.Clone(s.fields) }

// Lookup finds a descriptor by name, aliases included.
func (s *Schema[C]) Lookup(name string) (Descriptor, bool) {
	d, ok := s.index[name]
	return d, ok
}

// New returns an instance with every field at its default.
func (s *Schema[C]) New() *C {
	obj := new(C)
	s.Init(obj)
	return obj
}

// Init binds every field of obj to its descriptor and resets it to its
// default. Collections are fresh for every call.
func (s *Schema[C]) Init(obj *C) {
	for _, d := range s.fields {
		d.bind(obj, true)
	}
}

// ensure binds fields that are still unbound, leaving the others alone.
func (s *Schema[C]) ensure(obj *C) {
	for _, d := range s.fields {
		d.bind(obj, false)
	}
}

// Get returns the value of the named field: the scalar, nil for None, the
// child pointer or a copy of the list.
func (s *Schema[C]) Get(obj *C, name string) (any, error) {
	d, ok := s.index[name]
	if !ok {
		return nil, errors.Errorf("schema: %s has no field %s", s.meta.Tag, name)
	}
	s.ensure(obj)
	return d.get(obj), nil
}

// Set validates v and assigns it to the named field. nil means None.
func (s *Schema[C]) Set(obj *C, name string, v any) error {
	d, ok := s.index[name]
	if !ok {
		return errors.Errorf("schema: %s has no field %s", s.meta.Tag, name)
	}
	s.ensure(obj)
	return d.set(obj, v)
}

// Equal compares every declared field of a and b.
func (s *Schema[C]) Equal(a, b *C) bool {
	if a == nil || b == nil {
		return a == b
	}
	s.ensure(a)
	s.ensure(b)
	for _, d := range s.fields {
		if !d.equal(a, b) {
			return false
		}
	}
	return true
}

// ToTree builds the element tree of obj.
func (s *Schema[C]) ToTree(obj *C, opts ...EncodeOption) *etree.Element {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	tag, ns := s.meta.Tag, s.meta.Namespace
	if o.tag != "" {
		tag = o.tag
	}
	if o.namespace != "" {
		ns = o.namespace
	}
	return s.encode(obj, tag, ns, encoder{})
}

func (s *Schema[C]) encode(obj *C, tag, ns string, enc encoder) *etree.Element {
	s.ensure(obj)
	el := etree.NewElement(tag)
	if ns != "" && ns != enc.ns {
		el.CreateAttr("xmlns", ns)
		enc.ns = ns
	}
	for _, p := range slices.Sorted(maps.Keys(s.meta.Prefixes)) {
		enc.declare(el, p, s.meta.Prefixes[p])
	}
	for _, d := range s.attrs {
		d.encode(obj, el, &enc)
	}
	if s.text != nil {
		s.text.encode(obj, el, &enc)
	}
	for _, d := range s.elems {
		d.encode(obj, el, &enc)
	}
	return el
}

// FromTree builds a new instance from el. Attributes and children that
// the schema does not declare are ignored unless a passthrough field
// keeps them.
func (s *Schema[C]) FromTree(el *etree.Element, opts ...DecodeOption) (*C, error) {
	return s.decode(el, newDecoder(opts))
}

func (s *Schema[C]) decode(el *etree.Element, dec *decoder) (*C, error) {
	obj := s.New()
	// lists hold exactly what the document holds, not their defaults
	for _, d := range s.elems {
		d.empty(obj)
	}
	seen := make(map[string]bool)
	for _, a := range el.Attr {
		if isNamespaceDecl(a) {
			continue
		}
		d, ok := s.attrIndex[a.Key]
		if ok {
			if m, isMatcher := d.(attrMatcher); isMatcher {
				ok = m.matches(&a)
			} else {
				ok = a.Space == ""
			}
		}
		if !ok {
			dec.dropAttr(el, a)
			continue
		}
		if err := d.decodeAttr(obj, a.Value); err != nil {
			return nil, malformed(el.Tag, d.Name(), a.Value, err)
		}
		seen[d.Name()] = true
	}
	if s.text != nil {
		if err := s.text.decodeElement(obj, el, dec); err != nil {
			return nil, err
		}
		seen[s.text.Name()] = true
	}
	for _, ch := range el.ChildElements() {
		d, ok := s.elemIndex[ch.Tag]
		if !ok {
			if s.pass != nil {
				if err := s.pass.decodeElement(obj, ch, dec); err != nil {
					return nil, err
				}
				continue
			}
			dec.drop(el, ch)
			continue
		}
		seen[d.Name()] = true
		if err := d.decodeElement(obj, ch, dec); err != nil {
			return nil, malformed(ch.Tag, d.Name(), "", err)
		}
	}
	for _, d := range s.fields {
		if d.required() && !seen[d.Name()] && s.written(d) {
			return nil, malformed(el.Tag, d.Name(), "", errors.New("required content is missing"))
		}
	}
	return obj, nil
}

// written reports whether d takes part in serialization at all.
func (s *Schema[C]) written(d Descriptor) bool {
	switch d.Kind() {
	case KindAttribute, KindText:
		return true
	case KindAlias:
		return false
	}
	return slices.Contains(s.elems, d)
}

// Embed lifts descriptors declared on the embedded struct B so they can be
// used in the schema of C.
func Embed[C, B any](get func(*C) *B, fields ...Descriptor) []Descriptor {
	up := func(o any) any { return get(o.(*C)) }
	out := make([]Descriptor, len(fields))
	for i, d := range fields {
		out[i] = d.rebase(up)
	}
	return out
}

// Marshal writes obj as a standalone XML document.
func (s *Schema[C]) Marshal(obj *C, opts ...EncodeOption) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	doc.SetRoot(s.ToTree(obj, opts...))
	b, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrapf(err, "schema: write %s", s.meta.Tag)
	}
	return b, nil
}

// Unmarshal parses data and builds an instance from its root element.
func (s *Schema[C]) Unmarshal(data []byte, opts ...DecodeOption) (*C, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &MalformedError{Element: s.meta.Tag, Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &MalformedError{Element: s.meta.Tag, Err: errors.New("document has no root element")}
	}
	return s.FromTree(root, opts...)
}
