package schema

import (
	"maps"

	"github.com/beevik/etree"
	"github.com/go-logr/logr"
)

// EncodeOption configures ToTree and Marshal.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	namespace string
	tag       string
}

// WithNamespace declares uri as the default namespace of the root element.
func WithNamespace(uri string) EncodeOption {
	return func(o *encodeOptions) { o.namespace = uri }
}

// WithTag writes the root element as tag instead of the schema's tag.
func WithTag(tag string) EncodeOption {
	return func(o *encodeOptions) { o.tag = tag }
}

// DecodeOption configures FromTree and Unmarshal.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	log logr.Logger
}

// WithLogger sets the logger that reports ignored content (at V(1)).
func WithLogger(l logr.Logger) DecodeOption {
	return func(o *decodeOptions) { o.log = l }
}

// encoder tracks the namespaces in scope while an element tree is built.
type encoder struct {
	ns       string
	prefixes map[string]string
}

// declare makes uri available on el and returns the prefix bound to it.
func (e *encoder) declare(el *etree.Element, prefix, uri string) string {
	for p, u := range e.prefixes {
		if u == uri {
			return p
		}
	}
	m := make(map[string]string, len(e.prefixes)+1)
	maps.Copy(m, e.prefixes)
	m[prefix] = uri
	e.prefixes = m
	el.CreateAttr("xmlns:"+prefix, uri)
	return prefix
}

type decoder struct {
	log logr.Logger
}

func newDecoder(opts []DecodeOption) *decoder {
	o := decodeOptions{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return &decoder{log: o.log}
}

func (d *decoder) drop(parent, el *etree.Element) {
	d.log.V(1).Info("ignoring element", "parent", parent.Tag, "element", el.FullTag())
}

func (d *decoder) dropAttr(el *etree.Element, a etree.Attr) {
	d.log.V(1).Info("ignoring attribute", "element", el.Tag, "attribute", a.FullKey())
}
