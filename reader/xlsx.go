// Excel file reader for go.
// Support for reading files in the Excel 2007 format (.xlsx) is included.
package reader

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/speedata/goxlsx/v2/opc"
	"github.com/speedata/goxlsx/v2/schema"
	"github.com/speedata/goxlsx/v2/workbook"
)

const (
	defaultWorkbook      = "xl/workbook.xml"
	defaultSharedStrings = "xl/sharedStrings.xml"

	maxStringsHint = 1 << 16
)

// readRels reads the relationships of part. A part without relationships
// yields an empty list.
func readRels(fsys fs.FS, part string, log logr.Logger) (*opc.Relationships, error) {
	name := opc.RelsPath(part)
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return opc.NewRelationships(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	rels, err := opc.Unmarshal(data, schema.WithLogger(log))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", name)
	}
	return rels, nil
}

// findSheets returns the worksheets of the workbook in tab order. Sheets
// without a relationship id occur in some older files; they are dropped.
func (s *Spreadsheet) findSheets() ([]*Worksheet, error) {
	worksheets := make([]*Worksheet, 0, s.pkg.Sheets.Len())
	for _, sh := range s.pkg.Sheets.Items() {
		name := sh.Name.Get()
		rid, ok := sh.ID.Lookup()
		if !ok || rid == "" {
			s.log.Info("sheet has no relationship id, it is removed", "sheet", name)
			continue
		}
		rel, ok := s.rels.Get(rid)
		if !ok {
			return nil, errors.Errorf("sheet %q: relationship %s not found in %s", name, rid, opc.RelsPath(s.workbookPart))
		}
		if rel.Type.Get() != opc.TypeWorksheet {
			s.log.V(1).Info("skipping sheet that is not a worksheet", "sheet", name, "type", rel.Type.Get())
			continue
		}
		worksheets = append(worksheets, &Worksheet{
			Name:        name,
			Hidden:      sh.Hidden(),
			filename:    opc.ResolveTarget(s.workbookPart, rel.Target.Get()),
			spreadsheet: s,
		})
	}
	return worksheets, nil
}

func readStrings(d *xml.Decoder) ([]string, error) {
	var (
		sharedStrings []string
		buf           strings.Builder
		inText        bool
		inPhonetic    bool
	)
	for {
		token, err := d.Token()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		switch x := token.(type) {
		case xml.StartElement:
			switch x.Name.Local {
			case "sst":
				// root element
				for _, a := range x.Attr {
					if a.Name.Local == "uniqueCount" {
						// only a capacity hint, the file may lie about it
						count, err := strconv.Atoi(a.Value)
						if err != nil {
							return nil, errors.Wrap(err, "uniqueCount")
						}
						if count > 0 {
							sharedStrings = make([]string, 0, min(count, maxStringsHint))
						}
					}
				}
			case "si":
				buf.Reset()
			case "t":
				inText = true
			case "rPh":
				// phonetic hints are not part of the value
				inPhonetic = true
			}
		case xml.CharData:
			if inText && !inPhonetic {
				buf.Write(x)
			}
		case xml.EndElement:
			switch x.Name.Local {
			case "t":
				inText = false
			case "rPh":
				inPhonetic = false
			case "si":
				sharedStrings = append(sharedStrings, buf.String())
			}
		}
	}
	return sharedStrings, nil
}

// OpenFile reads the Excel file located at the given path: the package
// relationships, the workbook part and the shared strings.
func OpenFile(path string, opts ...Option) (*Spreadsheet, error) {
	xlsx := &Spreadsheet{
		filepath:     path,
		log:          logr.Discard(),
		workbookPart: defaultWorkbook,
	}
	for _, opt := range opts {
		opt(xlsx)
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "open xlsx")
	}
	defer r.Close()

	rootRels, err := readRels(r, "", xlsx.log)
	if err != nil {
		return nil, err
	}
	if docs := rootRels.Find(opc.TypeOfficeDocument); len(docs) > 0 {
		xlsx.workbookPart = opc.ResolveTarget("", docs[0].Target.Get())
	}
	if xlsx.rels, err = readRels(r, xlsx.workbookPart, xlsx.log); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(r, xlsx.workbookPart)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", xlsx.workbookPart)
	}
	if xlsx.pkg, err = workbook.Unmarshal(data, schema.WithLogger(xlsx.log)); err != nil {
		return nil, errors.Wrapf(err, "parse %s", xlsx.workbookPart)
	}
	if xlsx.worksheets, err = xlsx.findSheets(); err != nil {
		return nil, err
	}

	stringsPart := defaultSharedStrings
	if rels := xlsx.rels.Find(opc.TypeSharedStrings); len(rels) > 0 {
		stringsPart = opc.ResolveTarget(xlsx.workbookPart, rels[0].Target.Get())
	}
	rc, err := r.Open(stringsPart)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// a workbook without any text has no shared strings
	case err != nil:
		return nil, errors.Wrapf(err, "open %s", stringsPart)
	default:
		defer rc.Close()
		if xlsx.sharedStrings, err = readStrings(xml.NewDecoder(rc)); err != nil {
			return nil, errors.Wrapf(err, "parse %s", stringsPart)
		}
	}
	return xlsx, nil
}

// Workbook returns the parsed workbook part.
func (s *Spreadsheet) Workbook() *workbook.Package { return s.pkg }

// NumWorksheets returns the number of worksheets in the file.
func (s *Spreadsheet) NumWorksheets() int { return len(s.worksheets) }

// Active returns the index of the sheet selected when the file was saved.
func (s *Spreadsheet) Active() int { return s.pkg.Active() }

// DefinedNames returns the named ranges and formulas of the workbook.
func (s *Spreadsheet) DefinedNames() []*workbook.DefinedName { return s.pkg.DefinedNames.Items() }

// Date1904 reports whether the file uses the 1904 date system.
func (s *Spreadsheet) Date1904() bool { return s.pkg.Date1904() }

// Time converts a serial date of this file into a time.
func (s *Spreadsheet) Time(serial float64) time.Time {
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	switch {
	case s.Date1904():
		base = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	case serial < 61:
		// 1900 is wrongly treated as leap year, serials before March 1st
		// are one day off
		base = base.AddDate(0, 0, 1)
	}
	ms := int64(serial*24*60*60*1000 + 0.5)
	return base.Add(time.Duration(ms) * time.Millisecond)
}

// excelpos is something like "AC101"
func stringToPosition(excelpos string) (int, int) {
	var columnnumber, rownumber rune
	for _, v := range excelpos {
		if v >= 'A' && v <= 'Z' {
			columnnumber = columnnumber*26 + v - 'A' + 1
		}
		if v >= '0' && v <= '9' {
			rownumber = rownumber*10 + v - '0'
		}
	}
	return int(columnnumber), int(rownumber)
}

func (ws *Worksheet) readWorksheetXML(dec *xml.Decoder) (map[int]*row, error) {
	rows := make(map[int]*row)
	var (
		rownum      int
		cellnumber  int
		currentCell *cell
		currentRow  *row
		inValue     bool
		hasValue    bool
		value       strings.Builder
	)
	for {
		token, err := dec.Token()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		switch x := token.(type) {
		case xml.StartElement:
			switch x.Name.Local {
			case "dimension":
				for _, a := range x.Attr {
					if a.Name.Local == "ref" {
						// example: ref="A1:AC101" or just "A1"
						from, to, found := strings.Cut(a.Value, ":")
						if !found {
							to = from
						}
						ws.MinColumn, ws.MinRow = stringToPosition(from)
						ws.MaxColumn, ws.MaxRow = stringToPosition(to)
					}
				}
			case "row":
				rownum++
				for _, a := range x.Attr {
					if a.Name.Local == "r" {
						rownum, err = strconv.Atoi(a.Value)
						if err != nil {
							return nil, errors.Wrapf(err, "row %q", a.Value)
						}
					}
				}
				currentRow = &row{Num: rownum, Cells: make(map[int]*cell)}
				rows[rownum] = currentRow
				cellnumber = 0
			case "c":
				if currentRow == nil {
					return nil, errors.New("cell outside of a row")
				}
				currentCell = &cell{}
				hasValue = false
				value.Reset()
				cellnumber++
				for _, a := range x.Attr {
					switch a.Name.Local {
					case "r":
						currentCell.Name = a.Value
						cellnumber, _ = stringToPosition(a.Value)
					case "t":
						currentCell.Type = a.Value
					}
				}
				currentRow.Cells[cellnumber] = currentCell
			case "v", "t":
				// inline strings may consist of several runs
				if currentCell != nil {
					inValue, hasValue = true, true
				}
			}
		case xml.EndElement:
			switch x.Name.Local {
			case "v", "t":
				inValue = false
			case "c":
				if currentCell != nil && hasValue {
					if err := ws.setValue(currentCell, value.String()); err != nil {
						return nil, err
					}
				}
				currentCell = nil
			}
		case xml.CharData:
			if inValue {
				value.Write(x)
			}
		}
	}
	return rows, nil
}

func (ws *Worksheet) setValue(c *cell, val string) error {
	switch c.Type {
	case "s":
		idx, err := strconv.Atoi(val)
		if err != nil || idx < 0 || idx >= len(ws.spreadsheet.sharedStrings) {
			return errors.Errorf("cell %s: invalid shared string index %q", c.Name, val)
		}
		c.Value = ws.spreadsheet.sharedStrings[idx]
	case "n", "":
		c.Value = strings.TrimSuffix(val, ".0")
	default:
		c.Value = val
	}
	return nil
}

func (ws *Worksheet) readWorksheetZIP() error {
	r, err := zip.OpenReader(ws.spreadsheet.filepath)
	if err != nil {
		return errors.Wrap(err, "open xlsx")
	}
	defer r.Close()

	rc, err := r.Open(ws.filename)
	if err != nil {
		return errors.Wrapf(err, "open worksheet %s", ws.Name)
	}
	defer rc.Close()
	rows, err := ws.readWorksheetXML(xml.NewDecoder(rc))
	if err != nil {
		return errors.Wrapf(err, "parse %s", ws.filename)
	}
	ws.rows = rows
	ws.ready = true
	return nil
}

// Cell returns the contents of cell at column, row, where 1,1 is the top
// left corner. The return value is always a string. The user is in charge
// to convert this value to a number, if necessary. Formulae are not
// returned.
func (ws *Worksheet) Cell(column, row int) string {
	xrow := ws.rows[row]
	if xrow == nil {
		return ""
	}
	if xrow.Cells[column] == nil {
		return ""
	}
	return xrow.Cells[column].Value
}

// Time returns the cell at column, row as a date, using the date system
// of the file.
func (ws *Worksheet) Time(column, row int) (time.Time, error) {
	v := ws.Cell(column, row)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "cell %d,%d is not a date", column, row)
	}
	return ws.spreadsheet.Time(f), nil
}

// Worksheet returns the worksheet with the given number, starting at 0.
func (s *Spreadsheet) Worksheet(number int) (*Worksheet, error) {
	if number >= len(s.worksheets) || number < 0 {
		return nil, errors.Errorf("worksheet %d: index out of range", number)
	}
	ws := s.worksheets[number]
	if ws.ready {
		return ws, nil
	}
	if err := ws.readWorksheetZIP(); err != nil {
		return nil, err
	}
	return ws, nil
}
