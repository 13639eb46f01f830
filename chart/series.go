package chart

import (
	"github.com/beevik/etree"

	"github.com/speedata/goxlsx/v2/schema"
)

// SeriesLabel names a series, by reference or literally.
type SeriesLabel struct {
	StrRef schema.One[StrRef]
	V      schema.Value[string]
}

var SeriesLabelSchema = schema.Define[SeriesLabel](schema.Meta{
	Tag:      "tx",
	Elements: []string{"strRef", "v"},
},
	schema.Typed("strRef", func(s *SeriesLabel) *schema.One[StrRef] { return &s.StrRef }, StrRefSchema, schema.Nullable()),
	schema.NestedText("v", func(s *SeriesLabel) *schema.Value[string] { return &s.V }, schema.Nullable()),
)

func NewSeriesLabel() *SeriesLabel { return SeriesLabelSchema.New() }

func SeriesLabelFromTree(el *etree.Element, opts ...schema.DecodeOption) (*SeriesLabel, error) {
	return SeriesLabelSchema.FromTree(el, opts...)
}

func (s *SeriesLabel) ToTree(opts ...schema.EncodeOption) *etree.Element { return SeriesLabelSchema.ToTree(s, opts...) }
func (s *SeriesLabel) Equal(o *SeriesLabel) bool { return SeriesLabelSchema.Equal(s, o) }

var barShapes = []string{"cone", "coneToMax", "box", "cylinder", "pyramid", "pyramidToMax"}

// Series is one bar series. Shape properties, picture options, data points,
// trendlines and error bars are not modelled and kept as they were read, each
// at its place in the element order.
type Series struct {
	Idx              schema.Value[int]
	Order            schema.Value[int]
	Tx               schema.One[SeriesLabel]
	SpPr             schema.Foreign
	InvertIfNegative schema.Value[bool]
	PictureOptions   schema.Foreign
	DPt              schema.Foreign
	DLbls            schema.One[DataLabels]
	Trendline        schema.Foreign
	ErrBars          schema.Foreign
	Cat              schema.One[AxDataSource]
	Val              schema.One[NumDataSource]
	Shape            schema.Value[string]
	ExtLst           schema.ExtensionList
}

var SeriesSchema = schema.Define[Series](schema.Meta{
	Tag: "ser",
	Elements: []string{
		"idx", "order", "tx", "spPr", "invertIfNegative", "pictureOptions",
		"dPt", "dLbls", "trendline", "errBars", "cat", "val", "shape", "extLst",
	},
},
	schema.NestedInteger("idx", func(s *Series) *schema.Value[int] { return &s.Idx }, schema.Default(0)),
	schema.NestedInteger("order", func(s *Series) *schema.Value[int] { return &s.Order }, schema.Default(0)),
	schema.Typed("tx", func(s *Series) *schema.One[SeriesLabel] { return &s.Tx }, SeriesLabelSchema, schema.Nullable()),
	schema.Passthrough("spPr", func(s *Series) *schema.Foreign { return &s.SpPr }, "spPr"),
	schema.NestedBool("invertIfNegative", func(s *Series) *schema.Value[bool] { return &s.InvertIfNegative }, schema.Nullable()),
	schema.Passthrough("pictureOptions", func(s *Series) *schema.Foreign { return &s.PictureOptions }, "pictureOptions"),
	schema.Passthrough("dPt", func(s *Series) *schema.Foreign { return &s.DPt }, "dPt"),
	schema.Typed("dLbls", func(s *Series) *schema.One[DataLabels] { return &s.DLbls }, DataLabelsSchema, schema.Nullable()),
	schema.Passthrough("trendline", func(s *Series) *schema.Foreign { return &s.Trendline }, "trendline"),
	schema.Passthrough("errBars", func(s *Series) *schema.Foreign { return &s.ErrBars }, "errBars"),
	schema.Typed("cat", func(s *Series) *schema.One[AxDataSource] { return &s.Cat }, AxDataSourceSchema, schema.Nullable()),
	schema.Typed("val", func(s *Series) *schema.One[NumDataSource] { return &s.Val }, NumDataSourceSchema, schema.Nullable()),
	schema.NestedNoneSet("shape", func(s *Series) *schema.Value[string] { return &s.Shape }, barShapes),
	schema.Extensions("extLst", func(s *Series) *schema.ExtensionList { return &s.ExtLst }),
)

func NewSeries() *Series { return SeriesSchema.New() }

func SeriesFromTree(el *etree.Element, opts ...schema.DecodeOption) (*Series, error) {
	return SeriesSchema.FromTree(el, opts...)
}

func (s *Series) ToTree(opts ...schema.EncodeOption) *etree.Element { return SeriesSchema.ToTree(s, opts...) }
func (s *Series) Equal(o *Series) bool { return SeriesSchema.Equal(s, o) }
