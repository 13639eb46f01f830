// Package schema maps OOXML elements to Go structs through declared field
// tables.
//
// A schema class is a struct whose fields are validated slots (Value, One,
// Many, Values, ExtensionList, Foreign) plus a Schema built once with Define:
//
//	type PivotCache struct {
//		CacheID schema.Value[int]
//		ID      schema.Value[string]
//	}
//
//	var PivotCacheSchema = schema.Define[PivotCache](schema.Meta{Tag: "pivotCache"},
//		schema.Integer("cacheId", func(p *PivotCache) *schema.Value[int] { return &p.CacheID }),
//		schema.Relation("id", func(p *PivotCache) *schema.Value[string] { return &p.ID }),
//	)
//
// Fields not listed in Meta.Elements are written as attributes; the listed
// ones become child elements in exactly that order. Reading accepts children
// in any order and ignores what it does not know, except for content kept by
// Extensions and Passthrough fields, which is written back unchanged.
//
// Instances are plain values without locking; a tree must not be mutated
// from several goroutines at once.
package schema
