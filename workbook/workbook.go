package workbook

import (
	"github.com/beevik/etree"

	"github.com/speedata/goxlsx/v2/schema"
)

// Namespace is the SpreadsheetML main namespace.
const Namespace = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// FileVersion records the application that last saved the file.
type FileVersion struct {
	AppName      schema.Value[string]
	LastEdited   schema.Value[string]
	LowestEdited schema.Value[string]
	RupBuild     schema.Value[string]
	CodeName     schema.Value[string]
}

var FileVersionSchema = schema.Define[FileVersion](schema.Meta{Tag: "fileVersion"},
	schema.String("appName", func(f *FileVersion) *schema.Value[string] { return &f.AppName }, schema.Nullable()),
	schema.String("lastEdited", func(f *FileVersion) *schema.Value[string] { return &f.LastEdited }, schema.Nullable()),
	schema.String("lowestEdited", func(f *FileVersion) *schema.Value[string] { return &f.LowestEdited }, schema.Nullable()),
	schema.String("rupBuild", func(f *FileVersion) *schema.Value[string] { return &f.RupBuild }, schema.Nullable()),
	schema.String("codeName", func(f *FileVersion) *schema.Value[string] { return &f.CodeName }, schema.Nullable()),
)

var (
	showObjects  = []string{"all", "placeholders"}
	updateLinks  = []string{"userSet", "never", "always"}
	calcModes    = []string{"manual", "auto", "autoNoTable"}
	referenceMod = []string{"A1", "R1C1"}
)

// WorkbookProperties are the workbook wide settings of <workbookPr>.
type WorkbookProperties struct {
	Date1904                   schema.Value[bool]
	DateCompatibility          schema.Value[bool]
	ShowObjects                schema.Value[string]
	ShowBorderUnselectedTables schema.Value[bool]
	FilterPrivacy              schema.Value[bool]
	PromptedSolutions          schema.Value[bool]
	ShowInkAnnotation          schema.Value[bool]
	BackupFile                 schema.Value[bool]
	SaveExternalLinkValues     schema.Value[bool]
	UpdateLinks                schema.Value[string]
	CodeName                   schema.Value[string]
	HidePivotFieldList         schema.Value[bool]
	ShowPivotChartFilter       schema.Value[bool]
	AllowRefreshQuery          schema.Value[bool]
	PublishItems               schema.Value[bool]
	CheckCompatibility         schema.Value[bool]
	AutoCompressPictures       schema.Value[bool]
	RefreshAllConnections      schema.Value[bool]
	DefaultThemeVersion        schema.Value[int]
}

var WorkbookPropertiesSchema = schema.Define[WorkbookProperties](schema.Meta{Tag: "workbookPr"},
	schema.Bool("date1904", func(w *WorkbookProperties) *schema.Value[bool] { return &w.Date1904 }, schema.Nullable()),
	schema.Bool("dateCompatibility", func(w *WorkbookProperties) *schema.Value[bool] { return &w.DateCompatibility }, schema.Nullable()),
	schema.NoneSet("showObjects", func(w *WorkbookProperties) *schema.Value[string] { return &w.ShowObjects }, showObjects),
	schema.Bool("showBorderUnselectedTables", func(w *WorkbookProperties) *schema.Value[bool] { return &w.ShowBorderUnselectedTables }, schema.Nullable()),
	schema.Bool("filterPrivacy", func(w *WorkbookProperties) *schema.Value[bool] { return &w.FilterPrivacy }, schema.Nullable()),
	schema.Bool("promptedSolutions", func(w *WorkbookProperties) *schema.Value[bool] { return &w.PromptedSolutions }, schema.Nullable()),
	schema.Bool("showInkAnnotation", func(w *WorkbookProperties) *schema.Value[bool] { return &w.ShowInkAnnotation }, schema.Nullable()),
	schema.Bool("backupFile", func(w *WorkbookProperties) *schema.Value[bool] { return &w.BackupFile }, schema.Nullable()),
	schema.Bool("saveExternalLinkValues", func(w *WorkbookProperties) *schema.Value[bool] { return &w.SaveExternalLinkValues }, schema.Nullable()),
	schema.NoneSet("updateLinks", func(w *WorkbookProperties) *schema.Value[string] { return &w.UpdateLinks }, updateLinks),
	schema.String("codeName", func(w *WorkbookProperties) *schema.Value[string] { return &w.CodeName }, schema.Nullable()),
	schema.Bool("hidePivotFieldList", func(w *WorkbookProperties) *schema.Value[bool] { return &w.HidePivotFieldList }, schema.Nullable()),
	schema.Bool("showPivotChartFilter", func(w *WorkbookProperties) *schema.Value[bool] { return &w.ShowPivotChartFilter }, schema.Nullable()),
	schema.Bool("allowRefreshQuery", func(w *WorkbookProperties) *schema.Value[bool] { return &w.AllowRefreshQuery }, schema.Nullable()),
	schema.Bool("publishItems", func(w *WorkbookProperties) *schema.Value[bool] { return &w.PublishItems }, schema.Nullable()),
	schema.Bool("checkCompatibility", func(w *WorkbookProperties) *schema.Value[bool] { return &w.CheckCompatibility }, schema.Nullable()),
	schema.Bool("autoCompressPictures", func(w *WorkbookProperties) *schema.Value[bool] { return &w.AutoCompressPictures }, schema.Nullable()),
	schema.Bool("refreshAllConnections", func(w *WorkbookProperties) *schema.Value[bool] { return &w.RefreshAllConnections }, schema.Nullable()),
	schema.Integer("defaultThemeVersion", func(w *WorkbookProperties) *schema.Value[int] { return &w.DefaultThemeVersion }, schema.Nullable()),
)

func NewWorkbookProperties() *WorkbookProperties { return WorkbookPropertiesSchema.New() }

// CalcProperties control recalculation.
type CalcProperties struct {
	CalcID         schema.Value[int]
	CalcMode       schema.Value[string]
	FullCalcOnLoad schema.Value[bool]
	RefMode        schema.Value[string]
	Iterate        schema.Value[bool]
	IterateCount   schema.Value[int]
	IterateDelta   schema.Value[float64]
}

var CalcPropertiesSchema = schema.Define[CalcProperties](schema.Meta{Tag: "calcPr"},
	schema.Integer("calcId", func(c *CalcProperties) *schema.Value[int] { return &c.CalcID }, schema.Default(124519)),
	schema.NoneSet("calcMode", func(c *CalcProperties) *schema.Value[string] { return &c.CalcMode }, calcModes),
	schema.Bool("fullCalcOnLoad", func(c *CalcProperties) *schema.Value[bool] { return &c.FullCalcOnLoad }, schema.Nullable()),
	schema.NoneSet("refMode", func(c *CalcProperties) *schema.Value[string] { return &c.RefMode }, referenceMod),
	schema.Bool("iterate", func(c *CalcProperties) *schema.Value[bool] { return &c.Iterate }, schema.Nullable()),
	schema.Integer("iterateCount", func(c *CalcProperties) *schema.Value[int] { return &c.IterateCount }, schema.Nullable()),
	schema.Float("iterateDelta", func(c *CalcProperties) *schema.Value[float64] { return &c.IterateDelta }, schema.Nullable()),
)

// Package is the root element of the workbook part.
type Package struct {
	FileVersion        schema.One[FileVersion]
	WorkbookPr         schema.One[WorkbookProperties]
	BookViews          schema.Many[BookView]
	Sheets             schema.Many[ChildSheet]
	ExternalReferences schema.Many[ExternalReference]
	DefinedNames       schema.Many[DefinedName]
	CalcPr             schema.One[CalcProperties]
	PivotCaches        schema.Many[PivotCache]
	ExtLst             schema.ExtensionList
}

var PackageSchema = schema.Define[Package](schema.Meta{
	Tag:       "workbook",
	Namespace: Namespace,
	Prefixes:  map[string]string{"r": schema.RelationshipsNS},
	Elements: []string{
		"fileVersion", "workbookPr", "bookViews", "sheets", "externalReferences",
		"definedNames", "calcPr", "pivotCaches", "extLst",
	},
},
	schema.Typed("fileVersion", func(p *Package) *schema.One[FileVersion] { return &p.FileVersion }, FileVersionSchema, schema.Nullable()),
	schema.Typed("workbookPr", func(p *Package) *schema.One[WorkbookProperties] { return &p.WorkbookPr }, WorkbookPropertiesSchema),
	schema.Alias("properties", "workbookPr"),
	schema.NestedSequence("bookViews", func(p *Package) *schema.Many[BookView] { return &p.BookViews }, BookViewSchema),
	schema.NestedSequence("sheets", func(p *Package) *schema.Many[ChildSheet] { return &p.Sheets }, ChildSheetSchema),
	schema.NestedSequence("externalReferences", func(p *Package) *schema.Many[ExternalReference] { return &p.ExternalReferences }, ExternalReferenceSchema),
	schema.NestedSequence("definedNames", func(p *Package) *schema.Many[DefinedName] { return &p.DefinedNames }, DefinedNameSchema),
	schema.Typed("calcPr", func(p *Package) *schema.One[CalcProperties] { return &p.CalcPr }, CalcPropertiesSchema, schema.Nullable()),
	schema.NestedSequence("pivotCaches", func(p *Package) *schema.Many[PivotCache] { return &p.PivotCaches }, PivotCacheSchema),
	schema.Extensions("extLst", func(p *Package) *schema.ExtensionList { return &p.ExtLst }),
)

func NewPackage() *Package { return PackageSchema.New() }

func PackageFromTree(el *etree.Element, opts ...schema.DecodeOption) (*Package, error) {
	return PackageSchema.FromTree(el, opts...)
}

// Unmarshal parses a workbook part.
func Unmarshal(data []byte, opts ...schema.DecodeOption) (*Package, error) {
	return PackageSchema.Unmarshal(data, opts...)
}

func (p *Package) ToTree(opts ...schema.EncodeOption) *etree.Element {
	return PackageSchema.ToTree(p, opts...)
}

// Marshal writes the workbook part, XML declaration included.
func (p *Package) Marshal(opts ...schema.EncodeOption) ([]byte, error) {
	return PackageSchema.Marshal(p, opts...)
}

func (p *Package) Equal(o *Package) bool { return PackageSchema.Equal(p, o) }

// Properties returns the workbook properties, never nil for instances
// built by NewPackage or read from a tree.
func (p *Package) Properties() *WorkbookProperties { return p.WorkbookPr.Get() }

// Date1904 reports whether serial dates count from 1904 instead of 1900.
func (p *Package) Date1904() bool {
	if pr := p.Properties(); pr != nil {
		return pr.Date1904.Get()
	}
	return false
}

// Active returns the index of the sheet shown when the workbook opens: the
// first view's active tab, or 0.
func (p *Package) Active() int {
	for _, v := range p.BookViews.Items() {
		if tab, ok := v.ActiveTab.Lookup(); ok {
			return tab
		}
	}
	return 0
}

// Sheet returns the sheet entry with the given name.
func (p *Package) Sheet(name string) (*ChildSheet, bool) {
	for _, s := range p.Sheets.Items() {
		if s.Name.Get() == name {
			return s, true
		}
	}
	return nil, false
}

// PivotCacheByID returns the pivot cache registered under id.
func (p *Package) PivotCacheByID(id int) (*PivotCache, bool) {
	for _, c := range p.PivotCaches.Items() {
		if c.CacheID.Get() == id {
			return c, true
		}
	}
	return nil, false
}
