package chart

import (
	"slices"

	"github.com/beevik/etree"

	"github.com/speedata/goxlsx/v2/schema"
)

// ChartLines are the connector lines drawn between stacked bars. Only their
// shape properties exist, which are kept untouched.
type ChartLines struct {
	SpPr schema.Foreign
}

var ChartLinesSchema = schema.Define[ChartLines](schema.Meta{
	Tag:      "serLines",
	Elements: []string{"spPr"},
},
	schema.Passthrough("spPr", func(c *ChartLines) *schema.Foreign { return &c.SpPr }),
)

func NewChartLines() *ChartLines { return ChartLinesSchema.New() }

func ChartLinesFromTree(el *etree.Element, opts ...schema.DecodeOption) (*ChartLines, error) {
	return ChartLinesSchema.FromTree(el, opts...)
}

func (c *ChartLines) ToTree(opts ...schema.EncodeOption) *etree.Element { return ChartLinesSchema.ToTree(c, opts...) }
func (c *ChartLines) Equal(o *ChartLines) bool { return ChartLinesSchema.Equal(c, o) }

var (
	barDirections = []string{"bar", "col"}
	barGroupings  = []string{"percentStacked", "clustered", "standard", "stacked"}
)

// barChartBase holds what flat and 3D bar charts have in common.
type barChartBase struct {
	BarDir     schema.Value[string]
	Grouping   schema.Value[string]
	VaryColors schema.Value[bool]
	Ser        schema.Many[Series]
	DLbls      schema.One[DataLabels]
}

// DataLabels returns the chart wide labels or nil.
func (b *barChartBase) DataLabels() *DataLabels { return b.DLbls.Get() }

var barChartFields = []schema.Descriptor{
	schema.NestedSet("barDir", func(b *barChartBase) *schema.Value[string] { return &b.BarDir }, barDirections, schema.Default("col")),
	schema.NestedSet("grouping", func(b *barChartBase) *schema.Value[string] { return &b.Grouping }, barGroupings, schema.Default("clustered")),
	schema.NestedBool("varyColors", func(b *barChartBase) *schema.Value[bool] { return &b.VaryColors }, schema.Nullable()),
	schema.Sequence("ser", func(b *barChartBase) *schema.Many[Series] { return &b.Ser }, SeriesSchema),
	schema.Typed("dLbls", func(b *barChartBase) *schema.One[DataLabels] { return &b.DLbls }, DataLabelsSchema, schema.Nullable()),
}

var barChartElements = []string{"barDir", "grouping", "varyColors", "ser", "dLbls"}

// BarChart is a two dimensional bar or column chart.
type BarChart struct {
	barChartBase
	GapWidth schema.Value[int]
	Overlap  schema.Value[int]
	SerLines schema.One[ChartLines]
	AxID     schema.Values[int]
	ExtLst   schema.ExtensionList
}

var BarChartSchema = schema.Define[BarChart](schema.Meta{
	Tag:      "barChart",
	Elements: slices.Concat(barChartElements, []string{"gapWidth", "overlap", "serLines", "axId", "extLst"}),
},
	slices.Concat(
		schema.Embed(func(b *BarChart) *barChartBase { return &b.barChartBase }, barChartFields...),
		[]schema.Descriptor{
			schema.Alias("dataLabels", "dLbls"),
			schema.NestedMinMax("gapWidth", func(b *BarChart) *schema.Value[int] { return &b.GapWidth }, 0, 500, schema.Default(150)),
			schema.NestedMinMax("overlap", func(b *BarChart) *schema.Value[int] { return &b.Overlap }, -100, 100, schema.Nullable()),
			schema.Typed("serLines", func(b *BarChart) *schema.One[ChartLines] { return &b.SerLines }, ChartLinesSchema, schema.Nullable()),
			schema.ValueSequence("axId", func(b *BarChart) *schema.Values[int] { return &b.AxID }, schema.Default([]int{10, 100})),
			schema.Extensions("extLst", func(b *BarChart) *schema.ExtensionList { return &b.ExtLst }),
		},
	)...,
)

func NewBarChart() *BarChart { return BarChartSchema.New() }

func BarChartFromTree(el *etree.Element, opts ...schema.DecodeOption) (*BarChart, error) {
	return BarChartSchema.FromTree(el, opts...)
}

func (b *BarChart) ToTree(opts ...schema.EncodeOption) *etree.Element { return BarChartSchema.ToTree(b, opts...) }
func (b *BarChart) Equal(o *BarChart) bool { return BarChartSchema.Equal(b, o) }

// BarChart3D is a bar chart drawn with depth.
type BarChart3D struct {
	barChartBase
	GapWidth schema.Value[int]
	GapDepth schema.Value[int]
	Shape    schema.Value[string]
	AxID     schema.Values[int]
	ExtLst   schema.ExtensionList
}

var BarChart3DSchema = schema.Define[BarChart3D](schema.Meta{
	Tag:      "bar3DChart",
	Elements: slices.Concat(barChartElements, []string{"gapWidth", "gapDepth", "shape", "axId", "extLst"}),
},
	slices.Concat(
		schema.Embed(func(b *BarChart3D) *barChartBase { return &b.barChartBase }, barChartFields...),
		[]schema.Descriptor{
			schema.Alias("dataLabels", "dLbls"),
			schema.NestedMinMax("gapWidth", func(b *BarChart3D) *schema.Value[int] { return &b.GapWidth }, 0, 500, schema.Default(150)),
			schema.NestedMinMax("gapDepth", func(b *BarChart3D) *schema.Value[int] { return &b.GapDepth }, 0, 500, schema.Default(150)),
			schema.NestedNoneSet("shape", func(b *BarChart3D) *schema.Value[string] { return &b.Shape }, barShapes),
			schema.ValueSequence("axId", func(b *BarChart3D) *schema.Values[int] { return &b.AxID }, schema.Default([]int{10, 100, 1000})),
			schema.Extensions("extLst", func(b *BarChart3D) *schema.ExtensionList { return &b.ExtLst }),
		},
	)...,
)

func NewBarChart3D() *BarChart3D { return BarChart3DSchema.New() }

func BarChart3DFromTree(el *etree.Element, opts ...schema.DecodeOption) (*BarChart3D, error) {
	return BarChart3DSchema.FromTree(el, opts...)
}

func (b *BarChart3D) ToTree(opts ...schema.EncodeOption) *etree.Element { return BarChart3DSchema.ToTree(b, opts...) }
func (b *BarChart3D) Equal(o *BarChart3D) bool { return BarChart3DSchema.Equal(b, o) }
