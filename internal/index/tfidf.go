package index

import (
	"math"
	"sort"
	"strings"
)

// vectorizer is a TF-IDF model fitted over one domain's normalized
// questions. Terms outside the fitted vocabulary are ignored at transform
// time, mirroring how the model behaves on unseen query words.
type vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// fitVectorizer builds the vocabulary and inverse document frequencies for
// the given documents. When maxFeatures > 0 the vocabulary is capped to the
// most frequent terms across the corpus, ties broken alphabetically.
func fitVectorizer(docs []string, maxFeatures int) *vectorizer {
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range strings.Fields(doc) {
			termFreq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	terms := make([]string, 0, len(termFreq))
	for term := range termFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termFreq[terms[i]] != termFreq[terms[j]] {
			return termFreq[terms[i]] > termFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	// Stable term order keeps vector layout deterministic across rebuilds.
	sort.Strings(terms)

	v := &vectorizer{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF so every fitted term keeps a positive weight.
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return v
}

// transform maps a normalized document to its L2-normalized TF-IDF vector.
// A document with no in-vocabulary terms yields the zero vector.
func (v *vectorizer) transform(doc string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, term := range strings.Fields(doc) {
		if i, ok := v.vocabulary[term]; ok {
			vec[i] += v.idf[i]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
