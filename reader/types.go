package reader

import (
	"github.com/go-logr/logr"

	"github.com/speedata/goxlsx/v2/chart"
	"github.com/speedata/goxlsx/v2/opc"
	"github.com/speedata/goxlsx/v2/workbook"
)

// Spreadsheet is an opened xlsx file. Worksheets are read on demand.
type Spreadsheet struct {
	filepath      string
	log           logr.Logger
	workbookPart  string
	rels          *opc.Relationships
	pkg           *workbook.Package
	worksheets    []*Worksheet
	sharedStrings []string
}

type Worksheet struct {
	Name      string
	Hidden    bool
	MaxRow    int
	MaxColumn int
	MinRow    int
	MinColumn int
	filename  string
	rows      map[int]*row
	// ready is set once the cells have been read
	ready       bool
	spreadsheet *Spreadsheet
}

type cell struct {
	Name  string
	Type  string
	Value string
}

type row struct {
	Num   int
	Cells map[int]*cell
}

// ChartPart is a chart part of the file together with the bar charts found
// in it.
type ChartPart struct {
	// Name is the part name inside the archive, e.g. xl/charts/chart1.xml.
	Name string
	// Sheet is the name of the sheet whose drawing shows the chart.
	Sheet string
	Bars  *chart.BarCharts
}

// Option configures OpenFile.
type Option func(*Spreadsheet)

// WithLogger sets the logger for warnings about the file and for content
// the schema classes ignore.
func WithLogger(l logr.Logger) Option {
	return func(s *Spreadsheet) { s.log = l }
}
