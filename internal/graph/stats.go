package graph

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// KindStats summarizes one relation kind: how many edges carry it and how
// many distinct nodes appear on each side.
type KindStats struct {
	Kind        string
	Edges       uint64
	DistinctSrc uint64
	DistinctDst uint64
}

// StatsReport is the output of CollectStats.
type StatsReport struct {
	Nodes int64
	Edges int64
	Kinds []KindStats // sorted by kind
}

// kindBitmaps accumulates the node sets for one relation kind. Node ids are
// interned to uint32 so the sets stay compact at tens of millions of edges.
type kindBitmaps struct {
	edges uint64
	src   *roaring.Bitmap
	dst   *roaring.Bitmap
}

// CollectStats scans every edge once and reports per-kind cardinalities.
func CollectStats(s *Store) (*StatsReport, error) {
	ids := make(map[string]uint32)
	var nextID uint32
	intern := func(nodeID string) uint32 {
		id, ok := ids[nodeID]
		if !ok {
			id = nextID
			nextID++
			ids[nodeID] = id
		}
		return id
	}

	kinds := make(map[string]*kindBitmaps)
	err := s.ForEachEdge(func(e Edge) error {
		kb, ok := kinds[e.Kind]
		if !ok {
			kb = &kindBitmaps{src: roaring.New(), dst: roaring.New()}
			kinds[e.Kind] = kb
		}
		kb.edges++
		kb.src.Add(intern(e.SrcID))
		kb.dst.Add(intern(e.DstID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &StatsReport{}
	if report.Nodes, err = s.CountNodes(); err != nil {
		return nil, err
	}
	if report.Edges, err = s.CountEdges(); err != nil {
		return nil, err
	}
	for kind, kb := range kinds {
		report.Kinds = append(report.Kinds, KindStats{
			Kind:        kind,
			Edges:       kb.edges,
			DistinctSrc: kb.src.GetCardinality(),
			DistinctDst: kb.dst.GetCardinality(),
		})
	}
	sort.Slice(report.Kinds, func(i, j int) bool {
		return report.Kinds[i].Kind < report.Kinds[j].Kind
	})
	return report, nil
}
