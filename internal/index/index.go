// Package index maintains per-domain TF-IDF similarity models over
// normalized questions and answers nearest-match queries against them.
// The index is a per-process derived cache: it is always rebuilt in full
// from the knowledge store and is never the system of record.
package index

import (
	"errors"
	"sync"
)

// ErrNoKnowledge is returned when a domain has no fitted model or an empty
// item set. Callers use it to short-circuit before applying the similarity
// threshold.
var ErrNoKnowledge = errors.New("no knowledge available")

type domainModel struct {
	vec     *vectorizer
	vectors [][]float64
}

// Index holds one fitted model per domain. Build replaces a domain's model
// atomically: concurrent readers observe either the previous or the new
// model, never a mixture.
type Index struct {
	maxFeatures int

	mu     sync.RWMutex
	models map[string]*domainModel
}

func New(maxFeatures int) *Index {
	return &Index{
		maxFeatures: maxFeatures,
		models:      make(map[string]*domainModel),
	}
}

// Build fits a TF-IDF model over the given normalized questions and swaps
// it in for the domain. The caller supplies questions in store order
// (usage desc, confidence desc), so argmax ties implicitly favor the
// higher-usage item.
func (ix *Index) Build(domain string, questions []string) {
	model := &domainModel{}
	if len(questions) > 0 {
		model.vec = fitVectorizer(questions, ix.maxFeatures)
		model.vectors = make([][]float64, len(questions))
		for i, q := range questions {
			model.vectors[i] = model.vec.transform(q)
		}
	}

	ix.mu.Lock()
	ix.models[domain] = model
	ix.mu.Unlock()
}

// Drop removes a domain's model.
func (ix *Index) Drop(domain string) {
	ix.mu.Lock()
	delete(ix.models, domain)
	ix.mu.Unlock()
}

// Has reports whether the domain has a fitted model.
func (ix *Index) Has(domain string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	model, ok := ix.models[domain]
	return ok && len(model.vectors) > 0
}

// Search vectorizes the normalized query with the domain's fitted model and
// returns the index and cosine similarity of the best-matching question.
// Ties keep the first-encountered index.
func (ix *Index) Search(domain, query string) (int, float64, error) {
	ix.mu.RLock()
	model, ok := ix.models[domain]
	ix.mu.RUnlock()

	if !ok || len(model.vectors) == 0 {
		return 0, 0, ErrNoKnowledge
	}

	queryVec := model.vec.transform(query)

	bestIdx := 0
	bestScore := cosineSimilarity(queryVec, model.vectors[0])
	for i := 1; i < len(model.vectors); i++ {
		if score := cosineSimilarity(queryVec, model.vectors[i]); score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	return bestIdx, bestScore, nil
}
