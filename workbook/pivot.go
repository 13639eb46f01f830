package workbook

import (
	"github.com/beevik/etree"

	"github.com/speedata/goxlsx/v2/schema"
)

// PivotCache links a cache id used by pivot tables to the pivot cache
// definition part.
type PivotCache struct {
	CacheID schema.Value[int]
	ID      schema.Value[string]
}

var PivotCacheSchema = schema.Define[PivotCache](schema.Meta{Tag: "pivotCache"},
	schema.Integer("cacheId", func(p *PivotCache) *schema.Value[int] { return &p.CacheID }),
	schema.Relation("id", func(p *PivotCache) *schema.Value[string] { return &p.ID }),
)

func NewPivotCache() *PivotCache { return PivotCacheSchema.New() }

func PivotCacheFromTree(el *etree.Element, opts ...schema.DecodeOption) (*PivotCache, error) {
	return PivotCacheSchema.FromTree(el, opts...)
}

func (p *PivotCache) ToTree(opts ...schema.EncodeOption) *etree.Element {
	return PivotCacheSchema.ToTree(p, opts...)
}

func (p *PivotCache) Equal(o *PivotCache) bool { return PivotCacheSchema.Equal(p, o) }

// ExternalReference points at an external link part.
type ExternalReference struct {
	ID schema.Value[string]
}

var ExternalReferenceSchema = schema.Define[ExternalReference](schema.Meta{Tag: "externalReference"},
	schema.Relation("id", func(e *ExternalReference) *schema.Value[string] { return &e.ID }),
)

func NewExternalReference() *ExternalReference { return ExternalReferenceSchema.New() }
