package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("What is the Hostel FEE for 2024? e-mail: office@college.edu")
	assert.Equal(t, []string{"hostel", "fee", "2024", "mail", "office", "college", "edu"}, got)
	assert.Empty(t, Tokenize("the and of a"))
	assert.Empty(t, Tokenize(""))
}

func TestFit_VocabularyAndIDF(t *testing.T) {
	m := Fit([]string{
		"hostel fee is due",
		"library opens early",
		"hostel rooms are shared",
	})
	assert.Equal(t, []string{"due", "early", "fee", "hostel", "library", "opens", "rooms", "shared"}, m.Terms())
	assert.Equal(t, 8, m.Dimension())
	assert.Equal(t, "tfidf", m.Name())

	idf, ok := m.IDF("hostel")
	require.True(t, ok)
	assert.InDelta(t, math.Log(4.0/3.0)+1, idf, 1e-12)

	idf, ok = m.IDF("library")
	require.True(t, ok)
	assert.InDelta(t, math.Log(4.0/2.0)+1, idf, 1e-12)

	_, ok = m.IDF("the")
	assert.False(t, ok)
}

func TestEmbed_NormalisedAndSorted(t *testing.T) {
	m := Fit([]string{"hostel fee hostel", "library hours"})
	v := m.Embed("hostel hostel fee unknownword")
	require.Len(t, v, 2)
	assert.Less(t, v[0].Index, v[1].Index)
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)
}

func TestEmbed_OutOfVocabularyIsEmpty(t *testing.T) {
	m := Fit([]string{"hostel fee"})
	assert.True(t, m.Embed("zxqv blorp").IsZero())
	assert.Empty(t, m.Embed(""))
}

func TestFit_EmptyCorpus(t *testing.T) {
	m := Fit(nil)
	assert.Equal(t, 0, m.Dimension())
	assert.Empty(t, m.Embed("hostel fee"))

	m = Fit([]string{"the a of", "  "})
	assert.Equal(t, 0, m.Dimension())
	assert.Empty(t, m.Embed("anything"))
}

func TestFit_Deterministic(t *testing.T) {
	corpus := []string{"hostel fee is due in july", "library fee waived", "hostel warden email"}
	a, b := Fit(corpus), Fit(corpus)
	assert.Equal(t, a.Terms(), b.Terms())
	for _, q := range []string{"hostel fee", "library", "warden email july"} {
		assert.Equal(t, a.Embed(q), b.Embed(q))
	}
}
