package graph

import "sort"

// Resolver picks destination nodes for loosely-specified references. It
// never guesses across languages or spellings: only exact (lang_code, word)
// matches are candidates, and the choice among them is deterministic.
type Resolver struct {
	store *Store
}

func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the node id for a reference, or "" when the reference
// cannot be resolved: empty language or word, or no candidate rows. A
// non-nil error means the store failed, never that the reference was
// unknown.
//
// Precedence among candidates sharing (langCode, word):
//
//  1. candidates matching currentPOS (when given), smallest etymology
//     number first, null numbers last, ties to the oldest write;
//  2. the primary sense: etymology number 0 or null, oldest write first;
//  3. the oldest candidate.
func (r *Resolver) Resolve(langCode, word, currentPOS string) (string, error) {
	if langCode == "" || word == "" {
		return "", nil
	}
	cands, err := r.store.Candidates(langCode, word)
	if err != nil {
		return "", err
	}
	if len(cands) == 0 {
		return "", nil
	}
	return pickBest(cands, currentPOS), nil
}

func pickBest(cands []Candidate, currentPOS string) string {
	if currentPOS != "" {
		var posMatches []Candidate
		for _, c := range cands {
			if c.POS == currentPOS {
				posMatches = append(posMatches, c)
			}
		}
		if len(posMatches) > 0 {
			sort.SliceStable(posMatches, func(i, j int) bool {
				a, b := posMatches[i].EtymologyNumber, posMatches[j].EtymologyNumber
				if (a == nil) != (b == nil) {
					return b == nil
				}
				if a == nil {
					return false
				}
				return *a < *b
			})
			return posMatches[0].NodeID
		}
	}

	for _, c := range cands {
		if c.EtymologyNumber == nil || *c.EtymologyNumber == 0 {
			return c.NodeID
		}
	}
	return cands[0].NodeID
}
