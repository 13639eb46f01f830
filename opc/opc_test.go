package opc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workbookRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet2.xml"/>
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/sheet1.xml"/>
  <Relationship Id="rId9" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/" TargetMode="External"/>
</Relationships>`

func TestRelsPath(t *testing.T) {
	tests := map[string]string{
		"":                         "_rels/.rels",
		"/":                        "_rels/.rels",
		"xl/workbook.xml":          "xl/_rels/workbook.xml.rels",
		"/xl/workbook.xml":         "xl/_rels/workbook.xml.rels",
		"xl/worksheets/sheet1.xml": "xl/worksheets/_rels/sheet1.xml.rels",
	}
	for part, want := range tests {
		assert.Equal(t, want, RelsPath(part), part)
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		source, target, want string
	}{
		{"", "xl/workbook.xml", "xl/workbook.xml"},
		{"xl/workbook.xml", "worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/workbook.xml", "/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "../drawings/drawing1.xml", "xl/drawings/drawing1.xml"},
		{"xl/drawings/drawing1.xml", "../charts/chart1.xml", "xl/charts/chart1.xml"},
		{"xl/workbook.xml", "../../../escape.xml", "escape.xml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveTarget(tt.source, tt.target), "%s -> %s", tt.source, tt.target)
	}
}

func TestUnmarshal(t *testing.T) {
	r := require.New(t)
	rels, err := Unmarshal([]byte(workbookRels))
	r.NoError(err)
	r.Equal(4, rels.Relationship.Len())

	sheets := rels.Find(TypeWorksheet)
	r.Len(sheets, 2)
	r.Equal("rId2", sheets[0].ID.Get())
	r.Equal("rId1", sheets[1].ID.Get())

	link, ok := rels.Get("rId9")
	r.True(ok)
	r.True(link.External())
	r.Equal("https://example.com/", link.Target.Get())

	first, ok := rels.Get("rId1")
	r.True(ok)
	r.False(first.External())
	r.Equal("xl/worksheets/sheet1.xml", ResolveTarget("xl/workbook.xml", first.Target.Get()))

	_, ok = rels.Get("rId42")
	r.False(ok)
	r.Empty(rels.Find(TypeChart))
}

func TestMarshal(t *testing.T) {
	r := require.New(t)
	rels := NewRelationships()
	r.NoError(rels.Relationship.Append(NewRelationship("rId1", TypeOfficeDocument, "xl/workbook.xml")))

	out, err := rels.Marshal()
	r.NoError(err)
	want := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="` + Namespace + `">` +
		`<Relationship Id="rId1" Type="` + TypeOfficeDocument + `" Target="xl/workbook.xml"/>` +
		`</Relationships>`
	r.Equal(want, string(out))

	back, err := Unmarshal(out)
	r.NoError(err)
	r.True(RelationshipsSchema.Equal(rels, back))
}

func TestUnmarshalRequiresAttributes(t *testing.T) {
	_, err := Unmarshal([]byte(`<Relationships><Relationship Id="rId1" Target="x.xml"/></Relationships>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Type")
}
