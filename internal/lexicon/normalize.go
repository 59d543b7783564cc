package lexicon

import (
	"database/sql/driver"

	"github.com/ohler55/ojg/oj"
)

// RawField is an opaque serialized JSON value, or absent. The bytes are
// stored and returned verbatim; nothing downstream interprets them.
type RawField struct {
	JSON  string
	Valid bool
}

// Value implements driver.Valuer: absent fields map to SQL NULL.
func (f RawField) Value() (driver.Value, error) {
	if !f.Valid {
		return nil, nil
	}
	return f.JSON, nil
}

// NodeRecord is the persisted projection of an entry: the computed identity,
// the scalar attributes the graph understands, and the opaque reference
// fields kept for downstream consumers.
type NodeRecord struct {
	NodeID          string
	Word            string
	Lang            *string
	LangCode        string
	POS             *string
	EtymologyNumber *int64
	EtymologyText   *string

	EtymologyTemplates RawField
	Derived            RawField
	Descendants        RawField
	AltOf              RawField
	FormOf             RawField
	Categories         RawField
	Redirects          RawField

	LiteralMeaning *string
	Wikidata       *string
}

// Normalize projects a raw entry onto the persisted record shape. Attributes
// outside the fixed allow-list are discarded. Scalars pass through as
// nullable values; list and object valued fields are serialized verbatim,
// with a present-but-null value counting as absent.
func Normalize(e Entry) NodeRecord {
	return NodeRecord{
		NodeID:          NodeID(e),
		Word:            e.Word(),
		Lang:            optStr(e, "lang"),
		LangCode:        e.LangCode(),
		POS:             optStr(e, "pos"),
		EtymologyNumber: e.EtymologyNumber(),
		EtymologyText:   optStr(e, "etymology_text"),

		EtymologyTemplates: rawField(e, "etymology_templates"),
		Derived:            rawField(e, "derived"),
		Descendants:        rawField(e, "descendants"),
		AltOf:              rawField(e, "alt_of"),
		FormOf:             rawField(e, "form_of"),
		Categories:         rawField(e, "categories"),
		Redirects:          rawField(e, "redirects"),

		LiteralMeaning: optStr(e, "literal_meaning"),
		Wikidata:       optStr(e, "wikidata"),
	}
}

func optStr(e Entry, key string) *string {
	if s, ok := e[key].(string); ok {
		return &s
	}
	return nil
}

func rawField(e Entry, key string) RawField {
	v, ok := e[key]
	if !ok || v == nil {
		return RawField{}
	}
	return RawField{JSON: oj.JSON(v), Valid: true}
}
