package chart

import (
	"slices"

	"github.com/beevik/etree"

	"github.com/speedata/goxlsx/v2/schema"
)

var labelPositions = []string{"bestFit", "b", "ctr", "inBase", "inEnd", "l", "outEnd", "r", "t"}

// labelOptions are the display settings shared by a single data label and
// the label group of a series or chart.
type labelOptions struct {
	DLblPos        schema.Value[string]
	ShowLegendKey  schema.Value[bool]
	ShowVal        schema.Value[bool]
	ShowCatName    schema.Value[bool]
	ShowSerName    schema.Value[bool]
	ShowPercent    schema.Value[bool]
	ShowBubbleSize schema.Value[bool]
	Separator      schema.Value[string]
}

var labelOptionFields = []schema.Descriptor{
	schema.NestedNoneSet("dLblPos", func(l *labelOptions) *schema.Value[string] { return &l.DLblPos }, labelPositions),
	schema.NestedBool("showLegendKey", func(l *labelOptions) *schema.Value[bool] { return &l.ShowLegendKey }, schema.Nullable()),
	schema.NestedBool("showVal", func(l *labelOptions) *schema.Value[bool] { return &l.ShowVal }, schema.Nullable()),
	schema.NestedBool("showCatName", func(l *labelOptions) *schema.Value[bool] { return &l.ShowCatName }, schema.Nullable()),
	schema.NestedBool("showSerName", func(l *labelOptions) *schema.Value[bool] { return &l.ShowSerName }, schema.Nullable()),
	schema.NestedBool("showPercent", func(l *labelOptions) *schema.Value[bool] { return &l.ShowPercent }, schema.Nullable()),
	schema.NestedBool("showBubbleSize", func(l *labelOptions) *schema.Value[bool] { return &l.ShowBubbleSize }, schema.Nullable()),
	schema.NestedText("separator", func(l *labelOptions) *schema.Value[string] { return &l.Separator }, schema.Nullable()),
}

var labelOptionElements = []string{
	"dLblPos", "showLegendKey", "showVal", "showCatName", "showSerName",
	"showPercent", "showBubbleSize", "separator",
}

// DataLabel overrides the label of a single data point.
type DataLabel struct {
	Idx    schema.Value[int]
	Delete schema.Value[bool]
	labelOptions
	ExtLst schema.ExtensionList
}

var DataLabelSchema = schema.Define[DataLabel](schema.Meta{
	Tag:      "dLbl",
	Elements: slices.Concat([]string{"idx", "delete"}, labelOptionElements, []string{"extLst"}),
},
	slices.Concat(
		[]schema.Descriptor{
			schema.NestedInteger("idx", func(d *DataLabel) *schema.Value[int] { return &d.Idx }, schema.Default(0)),
			schema.NestedBool("delete", func(d *DataLabel) *schema.Value[bool] { return &d.Delete }, schema.Nullable()),
		},
		schema.Embed(func(d *DataLabel) *labelOptions { return &d.labelOptions }, labelOptionFields...),
		[]schema.Descriptor{
			schema.Extensions("extLst", func(d *DataLabel) *schema.ExtensionList { return &d.ExtLst }),
		},
	)...,
)

func NewDataLabel() *DataLabel { return DataLabelSchema.New() }

func DataLabelFromTree(el *etree.Element, opts ...schema.DecodeOption) (*DataLabel, error) {
	return DataLabelSchema.FromTree(el, opts...)
}

func (d *DataLabel) ToTree(opts ...schema.EncodeOption) *etree.Element { return DataLabelSchema.ToTree(d, opts...) }
func (d *DataLabel) Equal(o *DataLabel) bool { return DataLabelSchema.Equal(d, o) }

// DataLabels holds the label settings of a series or a whole chart and the
// per point overrides.
type DataLabels struct {
	DLbl   schema.Many[DataLabel]
	Delete schema.Value[bool]
	labelOptions
	ShowLeaderLines schema.Value[bool]
	ExtLst          schema.ExtensionList
}

var DataLabelsSchema = schema.Define[DataLabels](schema.Meta{
	Tag:      "dLbls",
	Elements: slices.Concat([]string{"dLbl", "delete"}, labelOptionElements, []string{"showLeaderLines", "extLst"}),
},
	slices.Concat(
		[]schema.Descriptor{
			schema.Sequence("dLbl", func(d *DataLabels) *schema.Many[DataLabel] { return &d.DLbl }, DataLabelSchema),
			schema.NestedBool("delete", func(d *DataLabels) *schema.Value[bool] { return &d.Delete }, schema.Nullable()),
		},
		schema.Embed(func(d *DataLabels) *labelOptions { return &d.labelOptions }, labelOptionFields...),
		[]schema.Descriptor{
			schema.NestedBool("showLeaderLines", func(d *DataLabels) *schema.Value[bool] { return &d.ShowLeaderLines }, schema.Nullable()),
			schema.Extensions("extLst", func(d *DataLabels) *schema.ExtensionList { return &d.ExtLst }),
		},
	)...,
)

func NewDataLabels() *DataLabels { return DataLabelsSchema.New() }

func DataLabelsFromTree(el *etree.Element, opts ...schema.DecodeOption) (*DataLabels, error) {
	return DataLabelsSchema.FromTree(el, opts...)
}

func (d *DataLabels) ToTree(opts ...schema.EncodeOption) *etree.Element { return DataLabelsSchema.ToTree(d, opts...) }
func (d *DataLabels) Equal(o *DataLabels) bool { return DataLabelsSchema.Equal(d, o) }
