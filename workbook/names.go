package workbook

import (
	"strings"

	"github.com/speedata/goxlsx/v2/schema"
)

// DefinedName is a named formula. Names starting with _xlnm. are reserved
// for print areas, print titles and similar built-ins.
type DefinedName struct {
	Name         schema.Value[string]
	Comment      schema.Value[string]
	LocalSheetID schema.Value[int]
	Hidden       schema.Value[bool]
	Function     schema.Value[bool]
	Value        schema.Value[string]
}

var DefinedNameSchema = schema.Define[DefinedName](schema.Meta{Tag: "definedName"},
	schema.String("name", func(d *DefinedName) *schema.Value[string] { return &d.Name }),
	schema.String("comment", func(d *DefinedName) *schema.Value[string] { return &d.Comment }, schema.Nullable()),
	schema.Integer("localSheetId", func(d *DefinedName) *schema.Value[int] { return &d.LocalSheetID }, schema.Nullable()),
	schema.Bool("hidden", func(d *DefinedName) *schema.Value[bool] { return &d.Hidden }, schema.Nullable()),
	schema.Bool("function", func(d *DefinedName) *schema.Value[bool] { return &d.Function }, schema.Nullable()),
	schema.Text("value", func(d *DefinedName) *schema.Value[string] { return &d.Value }, schema.Nullable()),
)

func NewDefinedName() *DefinedName { return DefinedNameSchema.New() }

const reservedPrefix = "_xlnm."

// Reserved returns the built-in name without its prefix, for example
// "Print_Area", or "" for user defined names.
func (d *DefinedName) Reserved() string {
	name, ok := strings.CutPrefix(d.Name.Get(), reservedPrefix)
	if !ok {
		return ""
	}
	return name
}

// Scope returns the index of the sheet the name is local to and false for
// workbook wide names.
func (d *DefinedName) Scope() (int, bool) { return d.LocalSheetID.Lookup() }
