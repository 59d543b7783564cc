// Package graph persists the etymology graph: one row per node identity in
// the entries table, one row per directed edge in the edges table, all in a
// single SQLite database.
package graph

import "errors"

var ErrNotFound = errors.New("node not found")

// Edge is one directed relation between two node identities. Duplicate rows
// are meaningful (an entry may cite the same target through two different
// senses) and are never collapsed.
type Edge struct {
	SrcID      string  `json:"src_id"`
	DstID      string  `json:"dst_id"`
	Kind       string  `json:"kind"`
	RawPayload *string `json:"raw_payload"`
}

// Candidate is one resolution candidate for a (lang_code, word) pair: the
// node id plus the two attributes the precedence rules inspect. POS is ""
// and EtymologyNumber nil when the stored column is NULL.
type Candidate struct {
	NodeID          string
	POS             string
	EtymologyNumber *int64
}

// NodeInfo is a summary row returned by lookups. Nullable text columns come
// back as "".
type NodeInfo struct {
	NodeID          string `json:"node_id"`
	Word            string `json:"word"`
	Lang            string `json:"lang"`
	LangCode        string `json:"lang_code"`
	POS             string `json:"pos"`
	EtymologyNumber *int64 `json:"etymology_number"`
	EtymologyText   string `json:"etymology_text"`
}
