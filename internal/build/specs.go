// Package build materializes the graph from a corpus in two phases: every
// node is written and committed before the first edge is resolved.
package build

import "github.com/lexigraph/etymograph/internal/config"

// RelationSpec describes how one list field of an entry becomes edges: the
// field read, the relation kind written, whether the source entry's part of
// speech guides disambiguation, and whether a reference that names no
// language inherits the source entry's.
type RelationSpec struct {
	Field       string
	Kind        string
	MatchPOS    bool
	InheritLang bool
}

// BuiltinSpecs is the default relation table.
//
// Alternate forms, canonical forms, and redirects stay inside one language
// and one part of speech. Derivations stay inside the language but cross
// parts of speech. Descendants cross languages, so inheriting the source
// language would fabricate same-language edges; a descendant that names no
// language is dropped instead.
func BuiltinSpecs() []RelationSpec {
	return []RelationSpec{
		{Field: "alt_of", Kind: "alt_of", MatchPOS: true, InheritLang: true},
		{Field: "form_of", Kind: "form_of", MatchPOS: true, InheritLang: true},
		{Field: "redirects", Kind: "redirect", MatchPOS: true, InheritLang: true},
		{Field: "derived", Kind: "derived", MatchPOS: false, InheritLang: true},
		{Field: "descendants", Kind: "descendant", MatchPOS: false, InheritLang: false},
	}
}

// MergeSpecs overlays extra specs onto base: a spec with a kind already in
// base replaces it in place, any other kind is appended. Base order is
// preserved.
func MergeSpecs(base, extra []RelationSpec) []RelationSpec {
	out := make([]RelationSpec, len(base))
	copy(out, base)
	for _, e := range extra {
		replaced := false
		for i := range out {
			if out[i].Kind == e.Kind {
				out[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, e)
		}
	}
	return out
}

// SpecsFromConfig is the builtin table overlaid with the configuration's
// relation blocks.
func SpecsFromConfig(cfg *config.Config) []RelationSpec {
	extra := make([]RelationSpec, 0, len(cfg.Relations))
	for _, r := range cfg.Relations {
		field := r.Field
		if field == "" {
			field = r.Kind
		}
		extra = append(extra, RelationSpec{
			Field:       field,
			Kind:        r.Kind,
			MatchPOS:    r.MatchPOS,
			InheritLang: r.InheritLang,
		})
	}
	return MergeSpecs(BuiltinSpecs(), extra)
}
