package reader

import (
	"archive/zip"
	"io/fs"

	"github.com/beevik/etree"
	"github.com/pkg/errors"

	"github.com/speedata/goxlsx/v2/chart"
	"github.com/speedata/goxlsx/v2/opc"
	"github.com/speedata/goxlsx/v2/schema"
)

// Charts returns the chart parts drawn on the sheets of the file, in sheet
// order, each with the bar charts it contains.
func (s *Spreadsheet) Charts() ([]*ChartPart, error) {
	r, err := zip.OpenReader(s.filepath)
	if err != nil {
		return nil, errors.Wrap(err, "open xlsx")
	}
	defer r.Close()

	var (
		parts []*ChartPart
		seen  = make(map[string]bool)
	)
	for _, sh := range s.pkg.Sheets.Items() {
		rid, ok := sh.ID.Lookup()
		if !ok {
			continue
		}
		rel, ok := s.rels.Get(rid)
		if !ok || rel.External() {
			continue
		}
		sheetPart := opc.ResolveTarget(s.workbookPart, rel.Target.Get())
		found, err := s.sheetCharts(r, sheetPart)
		if err != nil {
			return nil, errors.Wrapf(err, "sheet %q", sh.Name.Get())
		}
		for _, name := range found {
			if seen[name] {
				continue
			}
			seen[name] = true
			bars, err := s.readChart(r, name)
			if err != nil {
				return nil, err
			}
			parts = append(parts, &ChartPart{Name: name, Sheet: sh.Name.Get(), Bars: bars})
		}
	}
	return parts, nil
}

// Chart returns the chart part with the given name, for example
// xl/charts/chart1.xml.
func (s *Spreadsheet) Chart(name string) (*ChartPart, error) {
	parts, err := s.Charts()
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.Errorf("chart %s not found", name)
}

// sheetCharts follows sheet -> drawing -> chart relationships.
func (s *Spreadsheet) sheetCharts(fsys fs.FS, sheetPart string) ([]string, error) {
	sheetRels, err := readRels(fsys, sheetPart, s.log)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, d := range sheetRels.Find(opc.TypeDrawing) {
		if d.External() {
			continue
		}
		drawing := opc.ResolveTarget(sheetPart, d.Target.Get())
		drawingRels, err := readRels(fsys, drawing, s.log)
		if err != nil {
			return nil, err
		}
		for _, c := range drawingRels.Find(opc.TypeChart) {
			if c.External() {
				continue
			}
			names = append(names, opc.ResolveTarget(drawing, c.Target.Get()))
		}
	}
	return names, nil
}

func (s *Spreadsheet) readChart(fsys fs.FS, name string) (*chart.BarCharts, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, "parse %s", name)
	}
	bars, err := chart.FindBarCharts(doc.Root(), schema.WithLogger(s.log))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", name)
	}
	return bars, nil
}
