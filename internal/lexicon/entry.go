// Package lexicon models raw corpus entries and their projection onto the
// graph schema: canonical node identity, the normalized record shape, and
// extraction of cross-references from list fields.
package lexicon

// Entry is one parsed corpus record. Values follow the conventions of the
// JSON parser that produced them: objects are map[string]any, arrays are
// []any, integers are int64, floats are float64.
type Entry map[string]any

// Has reports whether the entry carries the key at all, regardless of value.
// Identity requires the word and lang_code keys to be present; their values
// may still be empty.
func (e Entry) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Str returns the string value for key, or "" when the key is absent, null,
// or not a string.
func (e Entry) Str(key string) string {
	s, _ := e[key].(string)
	return s
}

// Word is the entry's spelling.
func (e Entry) Word() string { return e.Str("word") }

// LangCode is the entry's language code, e.g. "en".
func (e Entry) LangCode() string { return e.Str("lang_code") }

// POS is the entry's part of speech, "" when absent.
func (e Entry) POS() string { return e.Str("pos") }

// EtymologyNumber returns the entry's etymology sense number, or nil when
// absent, null, or not numeric.
func (e Entry) EtymologyNumber() *int64 {
	switch v := e["etymology_number"].(type) {
	case int64:
		return &v
	case float64:
		n := int64(v)
		return &n
	default:
		return nil
	}
}
