package wikidex

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSingleTermIndex(t *testing.T, dir, name, term, article string, weight int) string {
	t.Helper()
	w, err := NewWriter(filepath.Join(dir, name))
	require.NoError(t, err)
	for i := 0; i < weight; i++ {
		require.NoError(t, w.Index(term, article))
	}
	path, err := w.Flush(true)
	require.NoError(t, err)
	return path
}

func TestAggregatorMergesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	fileA := writeSingleTermIndex(t, dir, "a", "poetry", "Art", 3)
	fileB := writeSingleTermIndex(t, dir, "b", "poetry", "Artistry", 1)

	agg := NewAggregator()
	loaded := agg.Init([]string{fileA, fileB})
	require.Equal(t, 2, loaded)
	defer agg.Close()

	res, err := agg.Search("poetry")
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
	require.Equal(t, []SearchHit{
		{Article: "Art", Weight: 3},
		{Article: "Artistry", Weight: 1},
	}, res.Top)
}

func TestAggregatorSumsWeightForArticleSeenInMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	fileA := writeSingleTermIndex(t, dir, "a", "poetry", "Art", 2)
	fileB := writeSingleTermIndex(t, dir, "b", "poetry", "Art", 5)

	agg := NewAggregator()
	require.Equal(t, 2, agg.Init([]string{fileA, fileB}))
	defer agg.Close()

	res, err := agg.Search("poetry")
	require.NoError(t, err)
	require.Equal(t, []SearchHit{{Article: "Art", Weight: 7}}, res.Top)
}

func TestAggregatorInitSkipsUnopenableFiles(t *testing.T) {
	dir := t.TempDir()
	fileA := writeSingleTermIndex(t, dir, "a", "poetry", "Art", 1)

	agg := NewAggregator()
	loaded := agg.Init([]string{fileA, filepath.Join(dir, "missing")})
	require.Equal(t, 1, loaded)
	defer agg.Close()

	res, err := agg.Search("poetry")
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
}
