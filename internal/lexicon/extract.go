package lexicon

import "fmt"

// RelationRef is one outgoing cross-reference: the referenced spelling plus
// an optional language code. An empty LangCode means the source list did not
// say which language the target belongs to.
type RelationRef struct {
	Word     string
	LangCode string
}

// RelationRefs extracts the cross-references held in one of the entry's list
// fields, in source order. Items are either structured sub-records (a word
// plus optional lang_code, falling back to lang) or bare values treated as
// spellings. Structured items without a word are dropped, as are null items.
// A field that is absent or not a list yields nil.
//
// The function is pure: calling it again re-derives the same references.
func RelationRefs(e Entry, field string) []RelationRef {
	items, ok := e[field].([]any)
	if !ok {
		return nil
	}
	refs := make([]RelationRef, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case map[string]any:
			word, _ := v["word"].(string)
			if word == "" {
				continue
			}
			lang, _ := v["lang_code"].(string)
			if lang == "" {
				lang, _ = v["lang"].(string)
			}
			refs = append(refs, RelationRef{Word: word, LangCode: lang})
		case string:
			refs = append(refs, RelationRef{Word: v})
		case nil:
			continue
		default:
			refs = append(refs, RelationRef{Word: fmt.Sprint(v)})
		}
	}
	return refs
}
