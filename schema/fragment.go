package schema

import (
	"slices"

	"github.com/beevik/etree"
)

// fragments is an ordered list of opaque XML elements. Stored elements are
// detached copies that carry every namespace declaration they depend on.
type fragments struct {
	els []*etree.Element
}

// Len returns the number of kept elements.
func (f *fragments) Len() int { return len(f.els) }

// Elements returns copies of the kept elements in document order.
func (f *fragments) Elements() []*etree.Element {
	out := make([]*etree.Element, len(f.els))
	for i, el := range f.els {
		out[i] = el.Copy()
	}
	return out
}

// Add keeps a copy of el.
func (f *fragments) Add(el *etree.Element) {
	f.els = append(f.els, detach(el))
}

// Reset drops all kept elements.
func (f *fragments) Reset() { f.els = nil }

func (f *fragments) emit(parent *etree.Element) {
	for _, el := range f.els {
		parent.AddChild(el.Copy())
	}
}

func (f *fragments) equal(o *fragments) bool {
	return slices.EqualFunc(f.els, o.els, func(a, b *etree.Element) bool {
		return render(a) == render(b)
	})
}

// ExtensionList keeps the <ext> children of an <extLst> element without
// interpreting them.
type ExtensionList struct {
	fragments
}

// URIs returns the uri attribute of every extension.
func (l *ExtensionList) URIs() []string {
	out := make([]string, 0, len(l.els))
	for _, el := range l.els {
		out = append(out, el.SelectAttrValue("uri", ""))
	}
	return out
}

// Foreign keeps child elements the owning schema does not declare.
type Foreign struct {
	fragments
}

func detach(el *etree.Element) *etree.Element {
	c := el.Copy()
	for _, p := range usedPrefixes(c) {
		if declares(c, p) {
			continue
		}
		uri := lookupNamespace(el, p)
		if uri == "" {
			continue
		}
		if p == "" {
			c.CreateAttr("xmlns", uri)
		} else {
			c.CreateAttr("xmlns:"+p, uri)
		}
	}
	return c
}

func usedPrefixes(el *etree.Element) []string {
	var out []string
	add := func(p string) {
		if p == "xml" || p == "xmlns" || slices.Contains(out, p) {
			return
		}
		out = append(out, p)
	}
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		add(e.Space)
		for _, a := range e.Attr {
			if a.Space != "" {
				add(a.Space)
			}
		}
		for _, ch := range e.ChildElements() {
			walk(ch)
		}
	}
	walk(el)
	return out
}

func isNamespaceDecl(a etree.Attr) bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}

func declares(el *etree.Element, prefix string) bool {
	for _, a := range el.Attr {
		if prefix == "" && a.Space == "" && a.Key == "xmlns" {
			return true
		}
		if prefix != "" && a.Space == "xmlns" && a.Key == prefix {
			return true
		}
	}
	return false
}

func lookupNamespace(el *etree.Element, prefix string) string {
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if prefix == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if prefix != "" && a.Space == "xmlns" && a.Key == prefix {
				return a.Value
			}
		}
	}
	return ""
}

func render(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	s, _ := doc.WriteToString()
	return s
}
