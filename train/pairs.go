package train

import (
	"fmt"

	"github.com/poiesic/embedeval/core"
)

// Pair is one contrastive training example: a query text and the text
// of its positive document.
type Pair struct {
	Query    string `json:"query"`
	Positive string `json:"positive"`
}

// BuildPairs constructs the training pairs for a dataset: exactly one
// pair per query, pairing the query text with the text of its first
// relevant document. Additional relevant documents are ignored. A query
// without a relevant-docs entry, or whose ground-truth document is
// absent from the corpus, fails the whole construction.
func BuildPairs(ds *core.Dataset) ([]Pair, error) {
	pairs := make([]Pair, 0, len(ds.Queries))
	for _, queryID := range ds.QueryIDs() {
		docID, err := ds.GroundTruth(queryID)
		if err != nil {
			return nil, err
		}
		text, ok := ds.Corpus[docID]
		if !ok {
			return nil, fmt.Errorf("%w: query %s references %s", ErrDocumentNotInCorpus, queryID, docID)
		}
		pairs = append(pairs, Pair{Query: ds.Queries[queryID], Positive: text})
	}
	return pairs, nil
}
