package chart

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedata/goxlsx/v2/schema"
)

func parse(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(s))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func xmlString(t *testing.T, el *etree.Element) string {
	t.Helper()
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	s, err := doc.WriteToString()
	require.NoError(t, err)
	return s
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		name string
		tree *etree.Element
		want string
	}{
		{"data labels", NewDataLabels().ToTree(), `<dLbls/>`},
		{"data label", NewDataLabel().ToTree(), `<dLbl><idx val="0"/></dLbl>`},
		{"series", NewSeries().ToTree(), `<ser><idx val="0"/><order val="0"/></ser>`},
		{"chart lines", NewChartLines().ToTree(), `<serLines/>`},
		{"bar chart", NewBarChart().ToTree(),
			`<barChart><barDir val="col"/><grouping val="clustered"/><gapWidth val="150"/>` +
				`<axId val="10"/><axId val="100"/></barChart>`},
		{"3d bar chart", NewBarChart3D().ToTree(),
			`<bar3DChart><barDir val="col"/><grouping val="clustered"/><gapWidth val="150"/>` +
				`<gapDepth val="150"/><axId val="10"/><axId val="100"/><axId val="1000"/></bar3DChart>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, xmlString(t, tt.tree)); diff != "" {
				t.Errorf("ToTree() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDataLabelsFlagsOff(t *testing.T) {
	dl, err := DataLabelsFromTree(parse(t, `
		<dLbls>
		  <showLegendKey val="0"/>
		  <showVal val="0"/>
		  <showCatName val="0"/>
		  <showSerName val="0"/>
		  <showPercent val="0"/>
		  <showBubbleSize val="0"/>
		</dLbls>`))
	require.NoError(t, err)

	for name, v := range map[string]*schema.Value[bool]{
		"showLegendKey":  &dl.ShowLegendKey,
		"showVal":        &dl.ShowVal,
		"showCatName":    &dl.ShowCatName,
		"showSerName":    &dl.ShowSerName,
		"showPercent":    &dl.ShowPercent,
		"showBubbleSize": &dl.ShowBubbleSize,
	} {
		got, ok := v.Lookup()
		assert.True(t, ok, name)
		assert.False(t, got, name)
	}
	assert.True(t, dl.Separator.IsNone())
	assert.True(t, dl.DLblPos.IsNone())
}

func TestDataLabelFromTree(t *testing.T) {
	got, err := DataLabelFromTree(parse(t, `<dLbl><idx val="6"></idx></dLbl>`))
	require.NoError(t, err)

	want := NewDataLabel()
	require.NoError(t, want.Idx.Set(6))
	assert.True(t, got.Equal(want))
	assert.False(t, got.Equal(NewDataLabel()))
}

func TestDataLabelPosition(t *testing.T) {
	dl := NewDataLabel()
	require.NoError(t, dl.DLblPos.Set("outEnd"))
	require.NoError(t, dl.ShowVal.Set(true))
	require.NoError(t, dl.Separator.Set("; "))
	assert.Equal(t,
		`<dLbl><idx val="0"/><dLblPos val="outEnd"/><showVal val="1"/><separator>; </separator></dLbl>`,
		xmlString(t, dl.ToTree()))

	var verr *schema.ValidationError
	require.ErrorAs(t, dl.DLblPos.Set("middle"), &verr)
	assert.Equal(t, "dLblPos", verr.Field)
	assert.Equal(t, "outEnd", dl.DLblPos.Get())

	require.NoError(t, dl.DLblPos.Set("none"))
	assert.True(t, dl.DLblPos.IsNone())
}

func TestBarChartValidation(t *testing.T) {
	r := require.New(t)
	bc := NewBarChart()

	var verr *schema.ValidationError
	r.ErrorAs(bc.BarDir.Set("diagonal"), &verr)
	r.Equal("barDir", verr.Field)
	r.Equal("diagonal", verr.Value)
	r.Equal("col", bc.BarDir.Get())

	r.Error(bc.GapWidth.Set(501))
	r.Error(bc.Overlap.Set(-101))
	r.NoError(bc.Overlap.Set(-100))
	r.NoError(bc.Overlap.Clear())
	r.Error(bc.Grouping.Clear())
	r.Equal(150, bc.GapWidth.Get())

	r.NoError(bc.BarDir.Set("bar"))
	r.NoError(bc.Grouping.Set("stacked"))
	r.Equal(`<barDir val="bar"/>`, xmlString(t, bc.ToTree().SelectElement("barDir")))
}

func TestBarChartDataLabelsAlias(t *testing.T) {
	r := require.New(t)
	bc := NewBarChart()
	r.Nil(bc.DataLabels())

	r.NoError(BarChartSchema.Set(bc, "dataLabels", NewDataLabels()))
	r.NotNil(bc.DataLabels())
	r.Same(bc.DLbls.Get(), bc.DataLabels())

	got, err := BarChartSchema.Get(bc, "dataLabels")
	r.NoError(err)
	r.Same(bc.DataLabels(), got)

	el := bc.ToTree()
	r.NotNil(el.SelectElement("dLbls"))
	r.Nil(el.SelectElement("dataLabels"))

	r.Error(BarChartSchema.Set(bc, "dataLabels", NewDataLabel()))
}

func TestNumRefAlias(t *testing.T) {
	n := NewNumRef()
	require.NoError(t, NumRefSchema.Set(n, "ref", "Sheet1!$B$2:$B$4"))
	assert.Equal(t, "Sheet1!$B$2:$B$4", n.Ref())
	assert.Equal(t, `<numRef><f>Sheet1!$B$2:$B$4</f></numRef>`, xmlString(t, n.ToTree()))
}

func TestNumRefRequiresFormula(t *testing.T) {
	_, err := NumRefFromTree(parse(t, `<numRef><numCache/></numRef>`))
	var merr *schema.MalformedError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "f", merr.Field)
}

func TestSeriesElementOrder(t *testing.T) {
	r := require.New(t)
	s := NewSeries()

	val := NewNumDataSource()
	ref := NewNumRef()
	r.NoError(ref.F.Set("Sheet1!$B$2:$B$3"))
	r.NoError(val.NumRef.Set(ref))
	r.NoError(s.Val.Set(val))

	cat := NewAxDataSource()
	lit := NewStrData()
	r.NoError(lit.PtCount.Set(1))
	pt := NewStrVal()
	r.NoError(pt.V.Set("north"))
	r.NoError(lit.Pt.Append(pt))
	r.NoError(cat.StrLit.Set(lit))
	r.NoError(s.Cat.Set(cat))

	tx := NewSeriesLabel()
	r.NoError(tx.V.Set("Sales"))
	r.NoError(s.Tx.Set(tx))
	r.NoError(s.Idx.Set(2))
	r.NoError(s.Order.Set(1))
	r.NoError(s.Shape.Set("box"))

	want := `<ser><idx val="2"/><order val="1"/><tx><v>Sales</v></tx>` +
		`<cat><strLit><ptCount val="1"/><pt idx="0"><v>north</v></pt></strLit></cat>` +
		`<val><numRef><f>Sheet1!$B$2:$B$3</f></numRef></val>` +
		`<shape val="box"/></ser>`
	if diff := cmp.Diff(want, xmlString(t, s.ToTree())); diff != "" {
		t.Errorf("ToTree() mismatch (-want +got):\n%s", diff)
	}
}

func TestSeriesKeepsUnmodelledChildrenInPlace(t *testing.T) {
	r := require.New(t)
	in := `<ser><idx val="0"/><order val="0"/>` +
		`<trendline><trendlineType val="linear"/></trendline>` +
		`<dPt><idx val="1"/></dPt>` +
		`<spPr><solidFill/></spPr>` +
		`<errBars><errDir val="y"/></errBars>` +
		`<invertIfNegative val="0"/>` +
		`<dLbls/>` +
		`<pictureOptions/>` +
		`<dPt><idx val="2"/></dPt>` +
		`<val><numRef><f>Sheet1!$B$2</f></numRef></val>` +
		`<unknown/>` +
		`</ser>`
	s, err := SeriesFromTree(parse(t, in))
	r.NoError(err)
	r.Equal(1, s.SpPr.Len())
	r.Equal(1, s.PictureOptions.Len())
	r.Equal(2, s.DPt.Len())
	r.Equal(1, s.Trendline.Len())
	r.Equal(1, s.ErrBars.Len())

	want := `<ser><idx val="0"/><order val="0"/>` +
		`<spPr><solidFill/></spPr>` +
		`<invertIfNegative val="0"/>` +
		`<pictureOptions/>` +
		`<dPt><idx val="1"/></dPt><dPt><idx val="2"/></dPt>` +
		`<dLbls/>` +
		`<trendline><trendlineType val="linear"/></trendline>` +
		`<errBars><errDir val="y"/></errBars>` +
		`<val><numRef><f>Sheet1!$B$2</f></numRef></val>` +
		`</ser>`
	out := s.ToTree()
	if diff := cmp.Diff(want, xmlString(t, out)); diff != "" {
		t.Errorf("ToTree() mismatch (-want +got):\n%s", diff)
	}

	back, err := SeriesFromTree(out)
	r.NoError(err)
	r.True(s.Equal(back))
}

const chartPart = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart"
  xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <c:chart>
    <c:plotArea>
      <c:layout/>
      <c:barChart>
        <c:barDir val="bar"/>
        <c:grouping val="stacked"/>
        <c:varyColors val="0"/>
        <c:ser>
          <c:idx val="0"/>
          <c:order val="0"/>
          <c:tx>
            <c:strRef>
              <c:f>Sheet1!$B$1</c:f>
              <c:strCache><c:ptCount val="1"/><c:pt idx="0"><c:v>Sales</c:v></c:pt></c:strCache>
            </c:strRef>
          </c:tx>
          <c:spPr><a:solidFill><a:srgbClr val="4472C4"/></a:solidFill></c:spPr>
          <c:invertIfNegative val="0"/>
          <c:cat>
            <c:strRef>
              <c:f>Sheet1!$A$2:$A$3</c:f>
              <c:strCache>
                <c:ptCount val="2"/>
                <c:pt idx="0"><c:v>north</c:v></c:pt>
                <c:pt idx="1"><c:v>south</c:v></c:pt>
              </c:strCache>
            </c:strRef>
          </c:cat>
          <c:val>
            <c:numRef>
              <c:f>Sheet1!$B$2:$B$3</c:f>
              <c:numCache>
                <c:formatCode>General</c:formatCode>
                <c:ptCount val="2"/>
                <c:pt idx="0"><c:v>12.5</c:v></c:pt>
                <c:pt idx="1"><c:v>7</c:v></c:pt>
              </c:numCache>
            </c:numRef>
          </c:val>
        </c:ser>
        <c:dLbls><c:showVal val="1"/></c:dLbls>
        <c:gapWidth val="50"/>
        <c:overlap val="100"/>
        <c:serLines><c:spPr><a:ln w="9525"/></c:spPr></c:serLines>
        <c:axId val="500"/>
        <c:axId val="501"/>
        <c:extLst>
          <c:ext uri="{02D57815-91ED-43cb-92C2-25804820EDAC}" xmlns:c15="http://schemas.microsoft.com/office/drawing/2012/chart">
            <c15:filteredBarSeries/>
          </c:ext>
        </c:extLst>
      </c:barChart>
      <c:bar3DChart>
        <c:barDir val="col"/>
        <c:grouping val="clustered"/>
        <c:shape val="cylinder"/>
        <c:axId val="1"/>
        <c:axId val="2"/>
        <c:axId val="3"/>
      </c:bar3DChart>
      <c:lineChart><c:grouping val="standard"/></c:lineChart>
    </c:plotArea>
  </c:chart>
</c:chartSpace>`

func TestFindBarCharts(t *testing.T) {
	r := require.New(t)
	found, err := FindBarCharts(parse(t, chartPart))
	r.NoError(err)
	r.Equal(2, found.Len())
	r.Len(found.Bar, 1)
	r.Len(found.Bar3D, 1)

	bc := found.Bar[0]
	r.Equal("bar", bc.BarDir.Get())
	r.Equal("stacked", bc.Grouping.Get())
	r.Equal(50, bc.GapWidth.Get())
	r.Equal(100, bc.Overlap.Get())
	r.Equal([]int{500, 501}, bc.AxID.Items())
	r.Equal([]string{"{02D57815-91ED-43cb-92C2-25804820EDAC}"}, bc.ExtLst.URIs())
	r.True(bc.DataLabels().ShowVal.Get())
	r.Equal(1, bc.SerLines.Get().SpPr.Len())

	r.Equal(1, bc.Ser.Len())
	ser := bc.Ser.At(0)
	r.Equal("Sheet1!$B$1", ser.Tx.Get().StrRef.Get().F.Get())
	r.Equal(1, ser.SpPr.Len())
	r.Equal("spPr", ser.SpPr.Elements()[0].Tag)
	inv, ok := ser.InvertIfNegative.Lookup()
	r.True(ok)
	r.False(inv)

	cache := ser.Cat.Get().StrRef.Get().StrCache.Get()
	r.Equal(2, cache.PtCount.Get())
	r.Equal("south", cache.Pt.At(1).V.Get())

	nums := ser.Val.Get().NumRef.Get()
	r.Equal("Sheet1!$B$2:$B$3", nums.Ref())
	r.Equal("General", nums.NumCache.Get().FormatCode.Get())
	r.InDelta(12.5, nums.NumCache.Get().Pt.At(0).V.Get(), 1e-9)
	r.InDelta(7.0, nums.NumCache.Get().Pt.At(1).V.Get(), 1e-9)

	b3 := found.Bar3D[0]
	r.Equal("cylinder", b3.Shape.Get())
	r.Equal(150, b3.GapDepth.Get())
	r.Equal([]int{1, 2, 3}, b3.AxID.Items())
}

func TestBarChartRoundTrip(t *testing.T) {
	r := require.New(t)
	found, err := FindBarCharts(parse(t, chartPart))
	r.NoError(err)

	for _, bc := range found.Bar {
		el := bc.ToTree(schema.WithNamespace(Namespace))
		r.Equal(Namespace, el.SelectAttrValue("xmlns", ""))
		back, err := BarChartFromTree(el)
		r.NoError(err)
		r.True(bc.Equal(back))

		ext := el.SelectElement("extLst").SelectElement("ext")
		r.NotNil(ext)
		r.Equal("http://schemas.microsoft.com/office/drawing/2012/chart", ext.SelectAttrValue("xmlns:c15", ""))
	}
	for _, b3 := range found.Bar3D {
		back, err := BarChart3DFromTree(b3.ToTree())
		r.NoError(err)
		r.True(b3.Equal(back))
	}
}

func TestBarChartToleratesUnknownContent(t *testing.T) {
	bc, err := BarChartFromTree(parse(t, `<barChart foo="1"><bogus/><barDir val="bar"/></barChart>`))
	require.NoError(t, err)
	assert.Equal(t, "bar", bc.BarDir.Get())
	assert.Empty(t, bc.AxID.Items())
	assert.Equal(t, `<barChart><barDir val="bar"/><grouping val="clustered"/><gapWidth val="150"/></barChart>`,
		xmlString(t, bc.ToTree()))
}

func TestBarChartMalformed(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"direction", `<barChart><barDir val="diagonal"/></barChart>`, "barDir"},
		{"gap", `<barChart><gapWidth val="900"/></barChart>`, "gapWidth"},
		{"axis", `<barChart><axId val="x"/></barChart>`, "axId"},
		{"series", `<barChart><ser><idx val="one"/></ser></barChart>`, "idx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BarChartFromTree(parse(t, tt.src))
			var merr *schema.MalformedError
			require.True(t, errors.As(err, &merr), "%v", err)
			assert.Equal(t, tt.field, merr.Field)
		})
	}
}

func TestFindBarChartsNil(t *testing.T) {
	found, err := FindBarCharts(nil)
	require.NoError(t, err)
	assert.Zero(t, found.Len())
}
