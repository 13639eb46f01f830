package schema

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// Kind tells where a descriptor puts its value in XML.
type Kind int

const (
	KindAttribute      Kind = iota // attribute of the owning element
	KindNested                     // child element with a val attribute
	KindNestedText                 // child element with text content
	KindText                       // text content of the owning element
	KindTyped                      // single child object
	KindSequence                   // repeated child objects
	KindNestedSequence             // child objects inside a container element
	KindValueSequence              // repeated child elements with a val attribute
	KindExtensionList              // opaque extLst block
	KindPassthrough                // undeclared children kept opaque
	KindAlias                      // second name of another descriptor
)

var kindNames = [...]string{
	KindAttribute:      "attribute",
	KindNested:         "nested",
	KindNestedText:     "nested text",
	KindText:           "text",
	KindTyped:          "typed",
	KindSequence:       "sequence",
	KindNestedSequence: "nested sequence",
	KindValueSequence:  "value sequence",
	KindExtensionList:  "extension list",
	KindPassthrough:    "passthrough",
	KindAlias:          "alias",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsElement reports whether values of this kind are written as child elements.
func (k Kind) IsElement() bool {
	switch k {
	case KindAttribute, KindText, KindAlias:
		return false
	}
	return true
}

// Descriptor is a named slot definition of a schema class. The set of
// implementations is closed; use the constructors of this package.
type Descriptor interface {
	Name() string
	Kind() Kind
	Nullable() bool
	// Domain describes the accepted values.
	Domain() string

	bind(owner any, reset bool)
	rebase(up func(any) any) Descriptor
	required() bool
	get(owner any) any
	set(owner any, v any) error
	equal(a, b any) bool
	empty(owner any)
	encode(owner any, el *etree.Element, enc *encoder)
	decodeAttr(owner any, s string) error
	decodeElement(owner any, el *etree.Element, dec *decoder) error
}

// Option configures a descriptor.
type Option func(*options)

type options struct {
	nullable bool
	def      any
	hasDef   bool
}

// Nullable lets the field hold None.
func Nullable() Option {
	return func(o *options) { o.nullable = true }
}

// Default sets the value a new instance starts with. Its type must match
// the field type.
func Default(v any) Option {
	return func(o *options) { o.def, o.hasDef = v, true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func typeName[S any]() string {
	return fmt.Sprintf("%T", (*S)(nil))
}

// base carries what every descriptor shares.
type base struct {
	name string
	kind Kind
}

func (b base) Name() string { return b.name }
func (b base) Kind() Kind   { return b.kind }

func (base) required() bool { return false }
func (base) empty(any)      {}

func (b base) decodeAttr(any, string) error {
	return errors.Errorf("%s is not an attribute", b.name)
}

func (b base) decodeElement(any, *etree.Element, *decoder) error {
	return errors.Errorf("%s is not an element", b.name)
}
