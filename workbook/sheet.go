package workbook

import (
	"github.com/speedata/goxlsx/v2/schema"
)

var visibilities = []string{"visible", "hidden", "veryHidden"}

// ChildSheet is a <sheet> entry of the workbook: the name and the
// relationship id of a worksheet, chartsheet or dialog sheet part.
type ChildSheet struct {
	Name    schema.Value[string]
	SheetID schema.Value[int]
	State   schema.Value[string]
	ID      schema.Value[string]
}

var ChildSheetSchema = schema.Define[ChildSheet](schema.Meta{Tag: "sheet"},
	schema.String("name", func(c *ChildSheet) *schema.Value[string] { return &c.Name }),
	schema.Integer("sheetId", func(c *ChildSheet) *schema.Value[int] { return &c.SheetID }),
	schema.NoneSet("state", func(c *ChildSheet) *schema.Value[string] { return &c.State }, visibilities),
	schema.Relation("id", func(c *ChildSheet) *schema.Value[string] { return &c.ID }),
)

func NewChildSheet() *ChildSheet { return ChildSheetSchema.New() }

// Hidden reports whether the sheet is hidden or very hidden.
func (c *ChildSheet) Hidden() bool {
	s, ok := c.State.Lookup()
	return ok && s != "visible"
}

// BookView is a window on the workbook.
type BookView struct {
	Visibility             schema.Value[string]
	Minimized              schema.Value[bool]
	ShowHorizontalScroll   schema.Value[bool]
	ShowVerticalScroll     schema.Value[bool]
	ShowSheetTabs          schema.Value[bool]
	XWindow                schema.Value[int]
	YWindow                schema.Value[int]
	WindowWidth            schema.Value[int]
	WindowHeight           schema.Value[int]
	TabRatio               schema.Value[int]
	FirstSheet             schema.Value[int]
	ActiveTab              schema.Value[int]
	AutoFilterDateGrouping schema.Value[bool]
	ExtLst                 schema.ExtensionList
}

var BookViewSchema = schema.Define[BookView](schema.Meta{
	Tag:      "workbookView",
	Elements: []string{"extLst"},
},
	schema.NoneSet("visibility", func(b *BookView) *schema.Value[string] { return &b.Visibility }, visibilities),
	schema.Bool("minimized", func(b *BookView) *schema.Value[bool] { return &b.Minimized }, schema.Nullable()),
	schema.Bool("showHorizontalScroll", func(b *BookView) *schema.Value[bool] { return &b.ShowHorizontalScroll }, schema.Nullable()),
	schema.Bool("showVerticalScroll", func(b *BookView) *schema.Value[bool] { return &b.ShowVerticalScroll }, schema.Nullable()),
	schema.Bool("showSheetTabs", func(b *BookView) *schema.Value[bool] { return &b.ShowSheetTabs }, schema.Nullable()),
	schema.Integer("xWindow", func(b *BookView) *schema.Value[int] { return &b.XWindow }, schema.Nullable()),
	schema.Integer("yWindow", func(b *BookView) *schema.Value[int] { return &b.YWindow }, schema.Nullable()),
	schema.Integer("windowWidth", func(b *BookView) *schema.Value[int] { return &b.WindowWidth }, schema.Nullable()),
	schema.Integer("windowHeight", func(b *BookView) *schema.Value[int] { return &b.WindowHeight }, schema.Nullable()),
	schema.MinMax("tabRatio", func(b *BookView) *schema.Value[int] { return &b.TabRatio }, 0, 1000, schema.Nullable()),
	schema.Integer("firstSheet", func(b *BookView) *schema.Value[int] { return &b.FirstSheet }, schema.Nullable()),
	schema.Integer("activeTab", func(b *BookView) *schema.Value[int] { return &b.ActiveTab }, schema.Nullable()),
	schema.Bool("autoFilterDateGrouping", func(b *BookView) *schema.Value[bool] { return &b.AutoFilterDateGrouping }, schema.Nullable()),
	schema.Extensions("extLst", func(b *BookView) *schema.ExtensionList { return &b.ExtLst }),
)

func NewBookView() *BookView { return BookViewSchema.New() }
