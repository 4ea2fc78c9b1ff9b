package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_ExactMatch(t *testing.T) {
	ix := New(1000)
	ix.Build("legal", []string{"breach contract", "included contract parties"})

	idx, score, err := ix.Search("legal", "breach contract")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestSearch_IgnoresUnseenQueryTerms(t *testing.T) {
	ix := New(1000)
	ix.Build("legal", []string{"breach contract", "vital signs temperature"})

	// "obligation" is outside the fitted vocabulary, so the query vector
	// collapses to the stored "breach contract" vector.
	idx, score, err := ix.Search("legal", "breach contract obligation")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestSearch_GibberishScoresZero(t *testing.T) {
	ix := New(1000)
	ix.Build("legal", []string{"breach contract", "included contract parties"})

	_, score, err := ix.Search("legal", "xyzzy frobnicate")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestSearch_UnknownDomain(t *testing.T) {
	ix := New(1000)

	_, _, err := ix.Search("medical", "vital signs")
	assert.ErrorIs(t, err, ErrNoKnowledge)
}

func TestSearch_EmptyDomain(t *testing.T) {
	ix := New(1000)
	ix.Build("medical", nil)

	_, _, err := ix.Search("medical", "vital signs")
	assert.ErrorIs(t, err, ErrNoKnowledge)
	assert.False(t, ix.Has("medical"))
}

func TestSearch_TieKeepsFirstIndex(t *testing.T) {
	ix := New(1000)
	ix.Build("legal", []string{"breach contract", "breach contract"})

	idx, score, err := ix.Search("legal", "breach contract")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestBuild_ReplacesModel(t *testing.T) {
	ix := New(1000)
	ix.Build("tech", []string{"machine learning"})

	idx, score, err := ix.Search("tech", "machine learning")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 1.0, score, 1e-9)

	ix.Build("tech", []string{"docker containers", "machine learning"})
	idx, score, err = ix.Search("tech", "machine learning")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestDrop(t *testing.T) {
	ix := New(1000)
	ix.Build("tech", []string{"machine learning"})
	require.True(t, ix.Has("tech"))

	ix.Drop("tech")
	assert.False(t, ix.Has("tech"))
	_, _, err := ix.Search("tech", "machine learning")
	assert.ErrorIs(t, err, ErrNoKnowledge)
}
