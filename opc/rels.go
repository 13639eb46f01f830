package opc

import (
	"github.com/beevik/etree"

	"github.com/speedata/goxlsx/v2/schema"
)

// Namespace is the namespace of relationship parts.
const Namespace = "http://schemas.openxmlformats.org/package/2006/relationships"

// Relationship types used when walking a spreadsheet package.
const (
	TypeOfficeDocument     = schema.RelationshipsNS + "/officeDocument"
	TypeWorksheet          = schema.RelationshipsNS + "/worksheet"
	TypeChartsheet         = schema.RelationshipsNS + "/chartsheet"
	TypeSharedStrings      = schema.RelationshipsNS + "/sharedStrings"
	TypeStyles             = schema.RelationshipsNS + "/styles"
	TypeDrawing            = schema.RelationshipsNS + "/drawing"
	TypeChart              = schema.RelationshipsNS + "/chart"
	TypeExternalLink       = schema.RelationshipsNS + "/externalLink"
	TypePivotCacheDef      = schema.RelationshipsNS + "/pivotCacheDefinition"
	TypeCoreProperties     = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	TypeExtendedProperties = schema.RelationshipsNS + "/extended-properties"
)

var targetModes = []string{"External", "Internal"}

// Relationship links a source part to a target part or an external
// resource.
type Relationship struct {
	ID         schema.Value[string]
	Type       schema.Value[string]
	Target     schema.Value[string]
	TargetMode schema.Value[string]
}

var RelationshipSchema = schema.Define[Relationship](schema.Meta{Tag: "Relationship"},
	schema.String("Id", func(r *Relationship) *schema.Value[string] { return &r.ID }),
	schema.String("Type", func(r *Relationship) *schema.Value[string] { return &r.Type }),
	schema.String("Target", func(r *Relationship) *schema.Value[string] { return &r.Target }),
	schema.NoneSet("TargetMode", func(r *Relationship) *schema.Value[string] { return &r.TargetMode }, targetModes),
)

// NewRelationship returns a relationship with the given id, type and
// target.
func NewRelationship(id, typ, target string) *Relationship {
	r := RelationshipSchema.New()
	// plain strings always validate
	_ = r.ID.Set(id)
	_ = r.Type.Set(typ)
	_ = r.Target.Set(target)
	return r
}

// External reports whether the target lies outside the package.
func (r *Relationship) External() bool { return r.TargetMode.Get() == "External" }

// Relationships is the content of a .rels part.
type Relationships struct {
	Relationship schema.Many[Relationship]
}

var RelationshipsSchema = schema.Define[Relationships](schema.Meta{
	Tag:       "Relationships",
	Namespace: Namespace,
	Elements:  []string{"Relationship"},
},
	schema.Sequence("Relationship", func(r *Relationships) *schema.Many[Relationship] { return &r.Relationship }, RelationshipSchema),
)

func NewRelationships() *Relationships { return RelationshipsSchema.New() }

// Unmarshal parses a .rels part.
func Unmarshal(data []byte, opts ...schema.DecodeOption) (*Relationships, error) {
	return RelationshipsSchema.Unmarshal(data, opts...)
}

func (r *Relationships) Marshal(opts ...schema.EncodeOption) ([]byte, error) {
	return RelationshipsSchema.Marshal(r, opts...)
}

func (r *Relationships) ToTree(opts ...schema.EncodeOption) *etree.Element {
	return RelationshipsSchema.ToTree(r, opts...)
}

// Get returns the relationship with the given id.
func (r *Relationships) Get(id string) (*Relationship, bool) {
	for _, rel := range r.Relationship.Items() {
		if rel.ID.Get() == id {
			return rel, true
		}
	}
	return nil, false
}

// Find returns the relationships of the given type in document order.
func (r *Relationships) Find(typ string) []*Relationship {
	var out []*Relationship
	for _, rel := range r.Relationship.Items() {
		if rel.Type.Get() == typ {
			out = append(out, rel)
		}
	}
	return out
}
