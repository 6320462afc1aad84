package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmatch/bookmatch/internal/catalog"
)

func TestJaroKnownValues(t *testing.T) {
	tests := []struct {
		a, b     string
		jaro, jw float64
	}{
		{"martha", "marhta", 0.9444, 0.9611},
		{"dwayne", "duane", 0.8222, 0.8400},
		{"dixon", "dicksonx", 0.7667, 0.8133},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.jaro, Jaro(tt.a, tt.b), 0.0001)
			assert.InDelta(t, tt.jw, JaroWinkler(tt.a, tt.b), 0.0001)
		})
	}
}

func TestJaroDegenerateCases(t *testing.T) {
	assert.Equal(t, 1.0, Jaro("", ""))
	assert.Equal(t, 1.0, JaroWinkler("", ""))
	assert.Equal(t, 0.0, Jaro("abc", ""))
	assert.Equal(t, 0.0, Jaro("", "abc"))
	assert.Equal(t, 0.0, JaroWinkler("abc", "xyz"))
	assert.Equal(t, 1.0, JaroWinkler("a", "a"))
	assert.Equal(t, 1.0, JaroWinkler("coração", "coração"))
}

func TestSimilarityNormalizes(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("MEMÓRIAS", "memorias"))
}

func catalogFixture() []catalog.Book {
	return []catalog.Book{
		{ISBN: "001", Title: "Harry Potter e a Pedra Filosofal"},
		{ISBN: "002", Title: "Harry Potter e a Câmara Secreta"},
		{ISBN: "003", Title: "Harry"},
		{ISBN: "004", Title: "O Hobbit"},
		{ISBN: "005", Title: "Dom Casmurro"},
		{ISBN: "006", Title: "Harry"},
	}
}

func TestSearchRankingIsDeterministic(t *testing.T) {
	books := catalogFixture()

	first := Search("harry", books, DefaultOptions())
	second := Search("harry", books, DefaultOptions())
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)

	for i, r := range first {
		assert.Greater(t, r.Score, DefaultThreshold)
		if i > 0 {
			assert.LessOrEqual(t, r.Score, first[i-1].Score)
		}
	}

	// Exact matches rank first; ties are ordered by ISBN.
	assert.Equal(t, "003", first[0].ISBN)
	assert.Equal(t, 1.0, first[0].Score)
	assert.Equal(t, "006", first[1].ISBN)
}

func TestSearchEmptyCollection(t *testing.T) {
	results := Search("anything", nil, DefaultOptions())
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchThresholdIsExclusive(t *testing.T) {
	books := []catalog.Book{{ISBN: "1", Title: "dixon"}}
	score := Similarity("dicksonx", "dixon")

	assert.Empty(t, Search("dicksonx", books, Options{Threshold: score}))
	assert.Len(t, Search("dicksonx", books, Options{Threshold: score - 0.01}), 1)
}

func TestSearchLimit(t *testing.T) {
	books := catalogFixture()

	limited := Search("harry", books, Options{Limit: 2, Threshold: DefaultThreshold})
	assert.Len(t, limited, 2)

	unlimited := Search("harry", books, Options{Limit: 0, Threshold: 0})
	assert.Len(t, unlimited, len(Search("harry", books, Options{Limit: 100, Threshold: 0})))
}
