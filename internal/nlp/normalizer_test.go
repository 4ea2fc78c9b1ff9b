package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_LowercasesAndStripsPunctuation(t *testing.T) {
	got := Normalize("What is Machine Learning?!", "en")
	assert.Equal(t, "machine learning", got)
}

func TestNormalize_RemovesEnglishStopWords(t *testing.T) {
	got := Normalize("what should be included in a contract", "en")
	assert.Equal(t, "included contract", got)
}

func TestNormalize_RemovesRussianStopWords(t *testing.T) {
	got := Normalize("что такое машинное обучение", "ru")
	assert.Equal(t, "такое машинное обучение", got)
}

func TestNormalize_RemovesUzbekStopWords(t *testing.T) {
	got := Normalize("shartnoma nima va qanday tuziladi", "uz")
	assert.Equal(t, "shartnoma tuziladi", got)
}

func TestNormalize_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, Normalize("what is a contract", "en"), Normalize("what is a contract", "de"))
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Normalize("", "en"))
	assert.Equal(t, "", Normalize("   ", "en"))
	assert.Equal(t, "", Normalize("?!42...", "en"))
}

func TestNormalize_AllStopWords(t *testing.T) {
	assert.Equal(t, "", Normalize("what is the", "en"))
}

func TestNormalize_Deterministic(t *testing.T) {
	input := "What IS a Breach of Contract??"
	first := Normalize(input, "en")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Normalize(input, "en"))
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("breach   of \t contract\n", "en")
	assert.Equal(t, "breach contract", got)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"breach", "contract"}, Tokenize("a breach of contract", "en"))
	assert.Nil(t, Tokenize("the of a", "en"))
	assert.Nil(t, Tokenize("", "en"))
}
