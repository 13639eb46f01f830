package chart

import (
	"github.com/beevik/etree"

	"github.com/speedata/goxlsx/v2/schema"
)

// NumVal is one cached numeric point.
type NumVal struct {
	Idx        schema.Value[int]
	FormatCode schema.Value[string]
	V          schema.Value[float64]
}

var NumValSchema = schema.Define[NumVal](schema.Meta{
	Tag:      "pt",
	Elements: []string{"v"},
},
	schema.Integer("idx", func(n *NumVal) *schema.Value[int] { return &n.Idx }),
	schema.String("formatCode", func(n *NumVal) *schema.Value[string] { return &n.FormatCode }, schema.Nullable()),
	schema.NestedText("v", func(n *NumVal) *schema.Value[float64] { return &n.V }, schema.Nullable()),
)

func NewNumVal() *NumVal { return NumValSchema.New() }

func NumValFromTree(el *etree.Element, opts ...schema.DecodeOption) (*NumVal, error) {
	return NumValSchema.FromTree(el, opts...)
}

func (n *NumVal) ToTree(opts ...schema.EncodeOption) *etree.Element { return NumValSchema.ToTree(n, opts...) }
func (n *NumVal) Equal(o *NumVal) bool { return NumValSchema.Equal(n, o) }

// NumData is a numeric cache or literal: numCache below a reference,
// numLit directly inside a data source.
type NumData struct {
	FormatCode schema.Value[string]
	PtCount    schema.Value[int]
	Pt         schema.Many[NumVal]
	ExtLst     schema.ExtensionList
}

var NumDataSchema = schema.Define[NumData](schema.Meta{
	Tag:      "numData",
	Elements: []string{"formatCode", "ptCount", "pt", "extLst"},
},
	schema.NestedText("formatCode", func(n *NumData) *schema.Value[string] { return &n.FormatCode }, schema.Nullable()),
	schema.NestedInteger("ptCount", func(n *NumData) *schema.Value[int] { return &n.PtCount }, schema.Nullable()),
	schema.Sequence("pt", func(n *NumData) *schema.Many[NumVal] { return &n.Pt }, NumValSchema),
	schema.Extensions("extLst", func(n *NumData) *schema.ExtensionList { return &n.ExtLst }),
)

func NewNumData() *NumData { return NumDataSchema.New() }

func NumDataFromTree(el *etree.Element, opts ...schema.DecodeOption) (*NumData, error) {
	return NumDataSchema.FromTree(el, opts...)
}

func (n *NumData) ToTree(opts ...schema.EncodeOption) *etree.Element { return NumDataSchema.ToTree(n, opts...) }
func (n *NumData) Equal(o *NumData) bool { return NumDataSchema.Equal(n, o) }

// NumRef points at a cell range holding numbers, with an optional cache of
// the values last seen there.
type NumRef struct {
	F        schema.Value[string]
	NumCache schema.One[NumData]
	ExtLst   schema.ExtensionList
}

var NumRefSchema = schema.Define[NumRef](schema.Meta{
	Tag:      "numRef",
	Elements: []string{"f", "numCache", "extLst"},
},
	schema.NestedText("f", func(n *NumRef) *schema.Value[string] { return &n.F }),
	schema.Alias("ref", "f"),
	schema.Typed("numCache", func(n *NumRef) *schema.One[NumData] { return &n.NumCache }, NumDataSchema, schema.Nullable()),
	schema.Extensions("extLst", func(n *NumRef) *schema.ExtensionList { return &n.ExtLst }),
)

func NewNumRef() *NumRef { return NumRefSchema.New() }

func NumRefFromTree(el *etree.Element, opts ...schema.DecodeOption) (*NumRef, error) {
	return NumRefSchema.FromTree(el, opts...)
}

// Ref is the range formula, the same value as F.
func (n *NumRef) Ref() string { return n.F.Get() }
func (n *NumRef) ToTree(opts ...schema.EncodeOption) *etree.Element { return NumRefSchema.ToTree(n, opts...) }
func (n *NumRef) Equal(o *NumRef) bool { return NumRefSchema.Equal(n, o) }

// StrVal is one cached string point.
type StrVal struct {
	Idx schema.Value[int]
	V   schema.Value[string]
}

var StrValSchema = schema.Define[StrVal](schema.Meta{
	Tag:      "pt",
	Elements: []string{"v"},
},
	schema.Integer("idx", func(s *StrVal) *schema.Value[int] { return &s.Idx }, schema.Default(0)),
	schema.NestedText("v", func(s *StrVal) *schema.Value[string] { return &s.V }, schema.Nullable()),
)

func NewStrVal() *StrVal { return StrValSchema.New() }

func StrValFromTree(el *etree.Element, opts ...schema.DecodeOption) (*StrVal, error) {
	return StrValSchema.FromTree(el, opts...)
}

func (s *StrVal) ToTree(opts ...schema.EncodeOption) *etree.Element { return StrValSchema.ToTree(s, opts...) }
func (s *StrVal) Equal(o *StrVal) bool { return StrValSchema.Equal(s, o) }

// StrData is a string cache or literal.
type StrData struct {
	PtCount schema.Value[int]
	Pt      schema.Many[StrVal]
	ExtLst  schema.ExtensionList
}

var StrDataSchema = schema.Define[StrData](schema.Meta{
	Tag:      "strData",
	Elements: []string{"ptCount", "pt", "extLst"},
},
	schema.NestedInteger("ptCount", func(s *StrData) *schema.Value[int] { return &s.PtCount }, schema.Nullable()),
	schema.Sequence("pt", func(s *StrData) *schema.Many[StrVal] { return &s.Pt }, StrValSchema),
	schema.Extensions("extLst", func(s *StrData) *schema.ExtensionList { return &s.ExtLst }),
)

func NewStrData() *StrData { return StrDataSchema.New() }

func StrDataFromTree(el *etree.Element, opts ...schema.DecodeOption) (*StrData, error) {
	return StrDataSchema.FromTree(el, opts...)
}

func (s *StrData) ToTree(opts ...schema.EncodeOption) *etree.Element { return StrDataSchema.ToTree(s, opts...) }
func (s *StrData) Equal(o *StrData) bool { return StrDataSchema.Equal(s, o) }

// StrRef points at a cell range holding strings.
type StrRef struct {
	F        schema.Value[string]
	StrCache schema.One[StrData]
	ExtLst   schema.ExtensionList
}

var StrRefSchema = schema.Define[StrRef](schema.Meta{
	Tag:      "strRef",
	Elements: []string{"f", "strCache", "extLst"},
},
	schema.NestedText("f", func(s *StrRef) *schema.Value[string] { return &s.F }, schema.Nullable()),
	schema.Typed("strCache", func(s *StrRef) *schema.One[StrData] { return &s.StrCache }, StrDataSchema, schema.Nullable()),
	schema.Extensions("extLst", func(s *StrRef) *schema.ExtensionList { return &s.ExtLst }),
)

func NewStrRef() *StrRef { return StrRefSchema.New() }

func StrRefFromTree(el *etree.Element, opts ...schema.DecodeOption) (*StrRef, error) {
	return StrRefSchema.FromTree(el, opts...)
}

func (s *StrRef) ToTree(opts ...schema.EncodeOption) *etree.Element { return StrRefSchema.ToTree(s, opts...) }
func (s *StrRef) Equal(o *StrRef) bool { return StrRefSchema.Equal(s, o) }

// NumDataSource is the value range of a series.
type NumDataSource struct {
	NumRef schema.One[NumRef]
	NumLit schema.One[NumData]
}

var NumDataSourceSchema = schema.Define[NumDataSource](schema.Meta{
	Tag:      "val",
	Elements: []string{"numRef", "numLit"},
},
	schema.Typed("numRef", func(n *NumDataSource) *schema.One[NumRef] { return &n.NumRef }, NumRefSchema, schema.Nullable()),
	schema.Typed("numLit", func(n *NumDataSource) *schema.One[NumData] { return &n.NumLit }, NumDataSchema, schema.Nullable()),
)

func NewNumDataSource() *NumDataSource { return NumDataSourceSchema.New() }

func NumDataSourceFromTree(el *etree.Element, opts ...schema.DecodeOption) (*NumDataSource, error) {
	return NumDataSourceSchema.FromTree(el, opts...)
}

func (n *NumDataSource) ToTree(opts ...schema.EncodeOption) *etree.Element { return NumDataSourceSchema.ToTree(n, opts...) }
func (n *NumDataSource) Equal(o *NumDataSource) bool { return NumDataSourceSchema.Equal(n, o) }

// AxDataSource is the category range of a series: numbers or strings,
// referenced or literal.
type AxDataSource struct {
	NumRef schema.One[NumRef]
	NumLit schema.One[NumData]
	StrRef schema.One[StrRef]
	StrLit schema.One[StrData]
}

var AxDataSourceSchema = schema.Define[AxDataSource](schema.Meta{
	Tag:      "cat",
	Elements: []string{"numRef", "numLit", "strRef", "strLit"},
},
	schema.Typed("numRef", func(a *AxDataSource) *schema.One[NumRef] { return &a.NumRef }, NumRefSchema, schema.Nullable()),
	schema.Typed("numLit", func(a *AxDataSource) *schema.One[NumData] { return &a.NumLit }, NumDataSchema, schema.Nullable()),
	schema.Typed("strRef", func(a *AxDataSource) *schema.One[StrRef] { return &a.StrRef }, StrRefSchema, schema.Nullable()),
	schema.Typed("strLit", func(a *AxDataSource) *schema.One[StrData] { return &a.StrLit }, StrDataSchema, schema.Nullable()),
)

func NewAxDataSource() *AxDataSource { return AxDataSourceSchema.New() }

func AxDataSourceFromTree(el *etree.Element, opts ...schema.DecodeOption) (*AxDataSource, error) {
	return AxDataSourceSchema.FromTree(el, opts...)
}

func (a *AxDataSource) ToTree(opts ...schema.EncodeOption) *etree.Element { return AxDataSourceSchema.ToTree(a, opts...) }
func (a *AxDataSource) Equal(o *AxDataSource) bool { return AxDataSourceSchema.Equal(a, o) }
