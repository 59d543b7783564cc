package build

import (
	"fmt"

	"github.com/lexigraph/etymograph/internal/corpus"
	"github.com/lexigraph/etymograph/internal/graph"
	"github.com/lexigraph/etymograph/internal/lexicon"
)

// Stats counts what a build did.
type Stats struct {
	NodesWritten  int // entries upserted in the node pass
	EntriesLinked int // entries walked in the edge pass
	EdgesCreated  int
	RefsDropped   int // references skipped: empty word, no language, or no matching node
	LinesSkipped  int // undecodable corpus lines
}

// Builder runs the two-pass build. The node pass upserts one row per entry
// carrying both word and lang_code keys; a commit barrier follows; the edge
// pass re-scans the corpus and resolves cross-references against the now
// complete node set. Entries the node pass skipped are skipped again, so an
// edge source always exists as a node.
type Builder struct {
	Store    *graph.Store
	Resolver *graph.Resolver
	Specs    []RelationSpec

	NodeBatchSize int
	EdgeBatchSize int
}

// NewBuilder wires a builder with the builtin relation table and default
// batch sizes.
func NewBuilder(store *graph.Store) *Builder {
	return &Builder{
		Store:         store,
		Resolver:      graph.NewResolver(store),
		Specs:         BuiltinSpecs(),
		NodeBatchSize: 5000,
		EdgeBatchSize: 2000,
	}
}

// Run executes both passes against src and returns the counts. Corpus
// decode problems and unresolvable references never fail a build; store
// errors do.
func (b *Builder) Run(src *corpus.Source) (*Stats, error) {
	stats := &Stats{}
	if err := b.buildNodes(src, stats); err != nil {
		return nil, fmt.Errorf("node pass: %w", err)
	}
	if err := b.buildEdges(src, stats); err != nil {
		return nil, fmt.Errorf("edge pass: %w", err)
	}
	return stats, nil
}

func (b *Builder) buildNodes(src *corpus.Source, stats *Stats) error {
	if err := b.Store.BeginBatch(b.NodeBatchSize); err != nil {
		return err
	}

	count := 0
	err := src.Each(func(e lexicon.Entry) error {
		if !e.Has("word") || !e.Has("lang_code") {
			return nil
		}
		if err := b.Store.UpsertNode(lexicon.Normalize(e)); err != nil {
			return err
		}
		count++
		if count%100000 == 0 {
			fmt.Printf("\rIndexing %d entries...", count)
		}
		return nil
	})
	if count >= 100000 {
		fmt.Printf("\rIndexed %d entries.\n", count)
	}
	if err != nil {
		return err
	}

	// Commit barrier: every node must be visible before the first edge is
	// resolved.
	if err := b.Store.Flush(); err != nil {
		return err
	}
	stats.NodesWritten = count
	stats.LinesSkipped = src.Skipped
	return nil
}

func (b *Builder) buildEdges(src *corpus.Source, stats *Stats) error {
	if err := b.Store.BeginBatch(b.EdgeBatchSize); err != nil {
		return err
	}

	count := 0
	err := src.Each(func(e lexicon.Entry) error {
		if !e.Has("word") || !e.Has("lang_code") {
			return nil
		}
		srcID := lexicon.NodeID(e)
		srcLang := e.LangCode()
		srcPOS := e.POS()

		for _, spec := range b.Specs {
			for _, ref := range lexicon.RelationRefs(e, spec.Field) {
				if ref.Word == "" {
					stats.RefsDropped++
					continue
				}
				lang := ref.LangCode
				if lang == "" && spec.InheritLang {
					lang = srcLang
				}
				pos := ""
				if spec.MatchPOS {
					pos = srcPOS
				}

				dstID, err := b.Resolver.Resolve(lang, ref.Word, pos)
				if err != nil {
					return err
				}
				if dstID == "" {
					stats.RefsDropped++
					continue
				}

				if err := b.Store.InsertEdge(graph.Edge{SrcID: srcID, DstID: dstID, Kind: spec.Kind}); err != nil {
					return err
				}
				stats.EdgesCreated++
			}
		}

		count++
		if count%100000 == 0 {
			fmt.Printf("\rLinking %d entries...", count)
		}
		return nil
	})
	if count >= 100000 {
		fmt.Printf("\rLinked %d entries.\n", count)
	}
	if err != nil {
		return err
	}

	if err := b.Store.Flush(); err != nil {
		return err
	}
	stats.EntriesLinked = count
	return nil
}
