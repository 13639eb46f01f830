package chart

import (
	"github.com/beevik/etree"

	"github.com/speedata/goxlsx/v2/schema"
)

// Namespace is the DrawingML chart namespace. The classes of this package
// are written without it; pass schema.WithNamespace(Namespace) when a tree
// becomes the root of a chart part.
const Namespace = "http://schemas.openxmlformats.org/drawingml/2006/chart"

// BarCharts are the bar charts found in one chart part.
type BarCharts struct {
	Bar   []*BarChart
	Bar3D []*BarChart3D
}

// Len returns the number of charts found.
func (b *BarCharts) Len() int { return len(b.Bar) + len(b.Bar3D) }

// FindBarCharts decodes every barChart and bar3DChart element below root,
// in document order. Other plot types are skipped.
func FindBarCharts(root *etree.Element, opts ...schema.DecodeOption) (*BarCharts, error) {
	found := &BarCharts{}
	var walk func(el *etree.Element) error
	walk = func(el *etree.Element) error {
		switch el.Tag {
		case BarChartSchema.Tag():
			c, err := BarChartFromTree(el, opts...)
			if err != nil {
				return err
			}
			found.Bar = append(found.Bar, c)
			return nil
		case BarChart3DSchema.Tag():
			c, err := BarChart3DFromTree(el, opts...)
			if err != nil {
				return err
			}
			found.Bar3D = append(found.Bar3D, c)
			return nil
		}
		for _, ch := range el.ChildElements() {
			if err := walk(ch); err != nil {
				return err
			}
		}
		return nil
	}
	if root == nil {
		return found, nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return found, nil
}
