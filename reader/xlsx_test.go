package reader

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	relsNS = "http://schemas.openxmlformats.org/package/2006/relationships"
	docNS  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	mainNS = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
)

func rels(entries ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="` + relsNS + `">` +
		strings.Join(entries, "") + `</Relationships>`
}

func rel(id, typ, target string) string {
	return fmt.Sprintf(`<Relationship Id="%s" Type="%s/%s" Target="%s"/>`, id, docNS, typ, target)
}

var testFiles = map[string]string{
	"_rels/.rels": rels(rel("rId1", "officeDocument", "xl/workbook.xml")),

	"xl/_rels/workbook.xml.rels": rels(
		rel("rId1", "worksheet", "worksheets/sheet1.xml"),
		rel("rId2", "worksheet", "/xl/worksheets/data.xml"),
		rel("rId3", "sharedStrings", "sharedStrings.xml"),
		rel("rId4", "chartsheet", "chartsheets/sheet1.xml"),
	),
	"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="` + mainNS + `" xmlns:r="` + docNS + `">
  <workbookPr date1904="1" codeName="Book"/>
  <bookViews><workbookView activeTab="1"/></bookViews>
  <sheets>
    <sheet name="First" sheetId="1" r:id="rId1"/>
    <sheet name="Legacy" sheetId="7"/>
    <sheet name="Second" sheetId="2" state="hidden" r:id="rId2"/>
    <sheet name="Chart1" sheetId="3" r:id="rId4"/>
  </sheets>
  <definedNames><definedName name="Total">First!$B$2</definedName></definedNames>
</workbook>`,
	"xl/sharedStrings.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="` + mainNS + `" count="3" uniqueCount="3">
  <si><t>A</t></si>
  <si><t>B</t></si>
  <si><r><t>rich </t></r><r><t>text</t></r><rPh sb="0" eb="1"><t>x</t></rPh></si>
</sst>`,
	"xl/worksheets/sheet1.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="` + mainNS + `">
  <dimension ref="A1:C3"/>
  <sheetData>
    <row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c></row>
    <row r="2"><c r="A2"><v>42.0</v></c><c r="B2"><f>A2*2</f><v>84</v></c><c r="C2" t="inlineStr"><is><t>in</t><r><t>line</t></r></is></c></row>
    <row r="3"><c r="C3" t="b"><v>1</v></c></row>
  </sheetData>
</worksheet>`,
	"xl/worksheets/data.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="` + mainNS + `">
  <dimension ref="A1"/>
  <sheetData><row r="1"><c r="A1"><v>0</v></c></row></sheetData>
</worksheet>`,
	"xl/worksheets/_rels/sheet1.xml.rels":  rels(rel("rId1", "drawing", "../drawings/drawing1.xml")),
	"xl/chartsheets/sheet1.xml":           `<chartsheet xmlns="` + mainNS + `"/>`,
	"xl/chartsheets/_rels/sheet1.xml.rels": rels(rel("rId1", "drawing", "../drawings/drawing2.xml")),
	"xl/drawings/drawing1.xml":             `<wsDr/>`,
	"xl/drawings/drawing2.xml":             `<wsDr/>`,
	"xl/drawings/_rels/drawing1.xml.rels":  rels(rel("rId1", "chart", "../charts/chart1.xml")),
	"xl/drawings/_rels/drawing2.xml.rels":  rels(rel("rId1", "chart", "../charts/chart2.xml"), rel("rId2", "chart", "../charts/chart1.xml")),

	"xl/charts/chart1.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart">
  <c:chart><c:plotArea>
    <c:barChart><c:barDir val="bar"/><c:grouping val="clustered"/><c:axId val="1"/><c:axId val="2"/></c:barChart>
  </c:plotArea></c:chart>
</c:chartSpace>`,
	"xl/charts/chart2.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart">
  <c:chart><c:plotArea>
    <c:bar3DChart><c:barDir val="col"/><c:grouping val="standard"/><c:shape val="box"/></c:bar3DChart>
  </c:plotArea></c:chart>
</c:chartSpace>`,
}

func writeXLSX(t *testing.T, files map[string]string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "test.xlsx")
	f, err := os.Create(name)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for part, content := range files {
		w, err := zw.Create(part)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return name
}

func TestOpenFile(t *testing.T) {
	r := require.New(t)
	var logged []string
	log := funcr.New(func(prefix, args string) { logged = append(logged, args) }, funcr.Options{})

	xlsx, err := OpenFile(writeXLSX(t, testFiles), WithLogger(log))
	r.NoError(err)
	r.Equal(2, xlsx.NumWorksheets())
	r.True(xlsx.Date1904())
	r.Equal(1, xlsx.Active())
	r.Equal("Book", xlsx.Workbook().Properties().CodeName.Get())
	r.Len(xlsx.DefinedNames(), 1)
	r.Equal("First!$B$2", xlsx.DefinedNames()[0].Value.Get())
	r.Equal([]string{"A", "B", "rich text"}, xlsx.sharedStrings)

	r.Len(logged, 1)
	r.Contains(logged[0], `"sheet"="Legacy"`)

	ws, err := xlsx.Worksheet(0)
	r.NoError(err)
	r.Equal("First", ws.Name)
	r.False(ws.Hidden)
	r.Equal("xl/worksheets/sheet1.xml", ws.filename)
	r.Len(ws.rows, 3)
	r.Equal(1, ws.MinColumn)
	r.Equal(1, ws.MinRow)
	r.Equal(3, ws.MaxColumn)
	r.Equal(3, ws.MaxRow)

	r.Equal("A", ws.Cell(1, 1))
	r.Equal("B", ws.Cell(2, 1))
	r.Equal("rich text", ws.Cell(3, 1))
	r.Equal("42", ws.Cell(1, 2))
	r.Equal("84", ws.Cell(2, 2), "formulae are not returned")
	r.Equal("inline", ws.Cell(3, 2))
	r.Equal("1", ws.Cell(3, 3))
	r.Equal("", ws.Cell(1, 3))
	r.Equal("", ws.Cell(9, 9))

	second, err := xlsx.Worksheet(1)
	r.NoError(err)
	r.Equal("Second", second.Name)
	r.True(second.Hidden)
	r.Equal("xl/worksheets/data.xml", second.filename)
	r.Equal(1, second.MaxRow)
	r.Equal(1, second.MaxColumn)

	again, err := xlsx.Worksheet(1)
	r.NoError(err)
	r.Same(second, again)

	_, err = xlsx.Worksheet(2)
	r.Error(err)
	_, err = xlsx.Worksheet(-1)
	r.Error(err)
}

func TestCharts(t *testing.T) {
	r := require.New(t)
	xlsx, err := OpenFile(writeXLSX(t, testFiles))
	r.NoError(err)

	parts, err := xlsx.Charts()
	r.NoError(err)
	r.Len(parts, 2)

	r.Equal("xl/charts/chart1.xml", parts[0].Name)
	r.Equal("First", parts[0].Sheet)
	r.Len(parts[0].Bars.Bar, 1)
	r.Equal("bar", parts[0].Bars.Bar[0].BarDir.Get())
	r.Equal([]int{1, 2}, parts[0].Bars.Bar[0].AxID.Items())

	r.Equal("xl/charts/chart2.xml", parts[1].Name)
	r.Equal("Chart1", parts[1].Sheet)
	r.Len(parts[1].Bars.Bar3D, 1)
	r.Equal("box", parts[1].Bars.Bar3D[0].Shape.Get())

	c, err := xlsx.Chart("xl/charts/chart2.xml")
	r.NoError(err)
	r.Equal(1, c.Bars.Len())
	_, err = xlsx.Chart("xl/charts/chart9.xml")
	r.Error(err)
}

func TestOpenFileDefaults(t *testing.T) {
	files := map[string]string{
		"xl/workbook.xml": `<workbook xmlns="` + mainNS + `" xmlns:r="` + docNS + `"><sheets><sheet name="S" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": rels(rel("rId1", "worksheet", "worksheets/sheet1.xml")),
		"xl/worksheets/sheet1.xml": `<worksheet xmlns="` + mainNS + `"><sheetData><row><c><v>3</v></c><c><v>4.5</v></c></row></sheetData></worksheet>`,
	}
	xlsx, err := OpenFile(writeXLSX(t, files))
	require.NoError(t, err)
	assert.False(t, xlsx.Date1904())
	assert.Empty(t, xlsx.sharedStrings)

	ws, err := xlsx.Worksheet(0)
	require.NoError(t, err)
	assert.Equal(t, "3", ws.Cell(1, 1))
	assert.Equal(t, "4.5", ws.Cell(2, 1))
}

func TestOpenFileErrors(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)

	broken := map[string]string{
		"xl/workbook.xml":            `<workbook><sheets><sheet name="S" sheetId="x"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": rels(),
	}
	_, err = OpenFile(writeXLSX(t, broken))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheetId")

	dangling := map[string]string{
		"xl/workbook.xml": `<workbook xmlns:r="` + docNS + `"><sheets><sheet name="S" sheetId="1" r:id="rId9"/></sheets></workbook>`,
	}
	_, err = OpenFile(writeXLSX(t, dangling))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rId9")

	badIndex := map[string]string{
		"xl/workbook.xml":            `<workbook xmlns:r="` + docNS + `"><sheets><sheet name="S" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": rels(rel("rId1", "worksheet", "worksheets/sheet1.xml")),
		"xl/worksheets/sheet1.xml":   `<worksheet><sheetData><row r="1"><c r="A1" t="s"><v>5</v></c></row></sheetData></worksheet>`,
	}
	xlsx, err := OpenFile(writeXLSX(t, badIndex))
	require.NoError(t, err)
	_, err = xlsx.Worksheet(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shared string")
}

func TestReadStrings(t *testing.T) {
	tests := []struct {
		name, count string
	}{
		{"missing", ""},
		{"negative", ` uniqueCount="-1"`},
		{"zero", ` uniqueCount="0"`},
		{"huge", ` uniqueCount="4611686018427387904"`},
		{"too small", ` uniqueCount="1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<sst` + tt.count + `><si><t>a</t></si><si><t>b</t></si></sst>`
			got, err := readStrings(xml.NewDecoder(strings.NewReader(doc)))
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, got)
		})
	}

	_, err := readStrings(xml.NewDecoder(strings.NewReader(`<sst uniqueCount="many"/>`)))
	assert.ErrorContains(t, err, "uniqueCount")
}

func TestTime(t *testing.T) {
	xlsx, err := OpenFile(writeXLSX(t, testFiles))
	require.NoError(t, err)
	assert.Equal(t, time.Date(1904, 1, 2, 12, 0, 0, 0, time.UTC), xlsx.Time(1.5))

	ws, err := xlsx.Worksheet(0)
	require.NoError(t, err)
	got, err := ws.Time(1, 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1904, 2, 12, 0, 0, 0, 0, time.UTC), got)
	_, err = ws.Time(1, 1)
	assert.Error(t, err)

	require.NoError(t, xlsx.pkg.Properties().Date1904.Clear())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), xlsx.Time(45292))
	assert.Equal(t, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), xlsx.Time(1))
}
