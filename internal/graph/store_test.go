package graph

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexigraph/etymograph/internal/lexicon"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "graph.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.InitSchema())
	return store
}

func seedNodes(t *testing.T, store *Store, entries ...lexicon.Entry) {
	t.Helper()
	require.NoError(t, store.BeginBatch(0))
	for _, e := range entries {
		require.NoError(t, store.UpsertNode(lexicon.Normalize(e)))
	}
	require.NoError(t, store.Flush())
}

func strptr(s string) *string { return &s }

func TestInitSchemaIdempotent(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.InitSchema())
}

func TestUpsertNodeReplaces(t *testing.T) {
	store := openTestStore(t)
	seedNodes(t, store,
		lexicon.Entry{"word": "foo", "lang_code": "en", "pos": "noun", "etymology_text": "old", "wikidata": "Q1"},
		lexicon.Entry{"word": "foo", "lang_code": "en", "pos": "noun", "etymology_text": "new"},
	)

	n, err := store.CountNodes()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	info, err := store.GetNode("en:foo:noun:0")
	require.NoError(t, err)
	assert.Equal(t, "new", info.EtymologyText)
}

func TestWholeRowReplacement(t *testing.T) {
	store := openTestStore(t)
	seedNodes(t, store,
		lexicon.Entry{"word": "foo", "lang_code": "en", "etymology_text": "kept?"},
		lexicon.Entry{"word": "foo", "lang_code": "en"},
	)

	info, err := store.GetNode("en:foo::0")
	require.NoError(t, err)
	assert.Equal(t, "", info.EtymologyText)
}

func TestGetNodeNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.GetNode("en:missing::0")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWritesRequireOpenBatch(t *testing.T) {
	store := openTestStore(t)
	err := store.UpsertNode(lexicon.Normalize(lexicon.Entry{"word": "x", "lang_code": "en"}))
	require.Error(t, err)
	err = store.InsertEdge(Edge{SrcID: "a", DstID: "b", Kind: "derived"})
	require.Error(t, err)
}

func TestBatchCheckpointInvisible(t *testing.T) {
	store := openTestStore(t)

	// Batch size 2 forces checkpoints mid-stream; reads must still see
	// every write, committed or not.
	require.NoError(t, store.BeginBatch(2))
	words := []string{"a", "b", "c", "d", "e"}
	for i, w := range words {
		e := lexicon.Entry{"word": "same", "lang_code": "en", "pos": w, "etymology_number": int64(i)}
		require.NoError(t, store.UpsertNode(lexicon.Normalize(e)))
	}

	cands, err := store.Candidates("en", "same")
	require.NoError(t, err)
	assert.Len(t, cands, 5)

	require.NoError(t, store.Flush())
	cands, err = store.Candidates("en", "same")
	require.NoError(t, err)
	assert.Len(t, cands, 5)
}

func TestCandidatesOrderAndNulls(t *testing.T) {
	store := openTestStore(t)
	seedNodes(t, store,
		lexicon.Entry{"word": "bank", "lang_code": "en", "pos": "verb", "etymology_number": int64(2)},
		lexicon.Entry{"word": "bank", "lang_code": "en"},
		lexicon.Entry{"word": "bank", "lang_code": "en", "pos": "noun", "etymology_number": int64(1)},
	)

	cands, err := store.Candidates("en", "bank")
	require.NoError(t, err)
	require.Len(t, cands, 3)

	assert.Equal(t, "en:bank:verb:2", cands[0].NodeID)
	assert.Equal(t, "verb", cands[0].POS)
	require.NotNil(t, cands[0].EtymologyNumber)
	assert.Equal(t, int64(2), *cands[0].EtymologyNumber)

	// NULL pos and etymology_number come back as zero values.
	assert.Equal(t, "en:bank::0", cands[1].NodeID)
	assert.Equal(t, "", cands[1].POS)
	assert.Nil(t, cands[1].EtymologyNumber)

	assert.Equal(t, "en:bank:noun:1", cands[2].NodeID)
}

func TestNodesByWord(t *testing.T) {
	store := openTestStore(t)
	seedNodes(t, store,
		lexicon.Entry{"word": "agua", "lang_code": "es", "pos": "noun"},
		lexicon.Entry{"word": "agua", "lang_code": "pt", "pos": "noun"},
		lexicon.Entry{"word": "eau", "lang_code": "fr", "pos": "noun"},
	)

	all, err := store.NodesByWord("agua", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pt, err := store.NodesByWord("agua", "pt")
	require.NoError(t, err)
	require.Len(t, pt, 1)
	assert.Equal(t, "pt:agua:noun:0", pt[0].NodeID)

	none, err := store.NodesByWord("wasser", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEdges(t *testing.T) {
	store := openTestStore(t)
	seedNodes(t, store,
		lexicon.Entry{"word": "aqua", "lang_code": "la", "pos": "noun"},
		lexicon.Entry{"word": "eau", "lang_code": "fr", "pos": "noun"},
	)

	require.NoError(t, store.BeginBatch(0))
	src, dst := "la:aqua:noun:0", "fr:eau:noun:0"
	require.NoError(t, store.InsertEdge(Edge{SrcID: src, DstID: dst, Kind: "descendant"}))
	require.NoError(t, store.InsertEdge(Edge{SrcID: src, DstID: dst, Kind: "descendant"}))
	require.NoError(t, store.InsertEdge(Edge{
		SrcID: src, DstID: dst, Kind: "derived",
		RawPayload: strptr(`{"word":"eau"}`),
	}))
	require.NoError(t, store.Flush())

	// Duplicates are preserved.
	n, err := store.CountEdges()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	out, err := store.EdgesFrom(src)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "descendant", out[0].Kind)
	assert.Nil(t, out[0].RawPayload)
	require.NotNil(t, out[2].RawPayload)
	assert.Equal(t, `{"word":"eau"}`, *out[2].RawPayload)

	in, err := store.EdgesTo(dst)
	require.NoError(t, err)
	assert.Len(t, in, 3)

	in, err = store.EdgesTo(src)
	require.NoError(t, err)
	assert.Empty(t, in)
}

func TestForEachEdgeOrder(t *testing.T) {
	store := openTestStore(t)
	seedNodes(t, store, lexicon.Entry{"word": "a", "lang_code": "en"})

	require.NoError(t, store.BeginBatch(0))
	for _, kind := range []string{"alt_of", "derived", "redirect"} {
		require.NoError(t, store.InsertEdge(Edge{SrcID: "en:a::0", DstID: "en:a::0", Kind: kind}))
	}
	require.NoError(t, store.Flush())

	var kinds []string
	err := store.ForEachEdge(func(e Edge) error {
		kinds = append(kinds, e.Kind)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alt_of", "derived", "redirect"}, kinds)
}
