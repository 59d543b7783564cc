package lexicon

import "strconv"

// NodeID computes the canonical graph identity of an entry: language code,
// spelling, part of speech, and etymology sense number joined with ":".
// An absent part of speech contributes an empty segment; an absent or null
// sense number contributes 0. Distinct senses of the same spelling map to
// distinct ids, and re-ingesting the same sense maps back to the same id.
func NodeID(e Entry) string {
	var ety int64
	if n := e.EtymologyNumber(); n != nil {
		ety = *n
	}
	return MakeNodeID(e.LangCode(), e.Word(), e.POS(), ety)
}

// MakeNodeID builds a node id from its four identity parts.
func MakeNodeID(langCode, word, pos string, etymologyNumber int64) string {
	return langCode + ":" + word + ":" + pos + ":" + strconv.FormatInt(etymologyNumber, 10)
}
