package wikidex

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenRejectsMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestReaderMergesTermOffsetsAcrossPartialFlushes(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out")

	w, err := NewWriter(base)
	require.NoError(t, err)

	// Force two independent partial-flush cycles for the same term by
	// crossing partialFlushLimit twice before the whole-index flush.
	for i := 0; i < partialFlushLimit; i++ {
		require.NoError(t, w.Index("repeated", "One"))
	}
	require.NoError(t, w.Index("repeated", "Two"))
	for i := 0; i < partialFlushLimit-1; i++ {
		require.NoError(t, w.Index("repeated", "Two"))
	}

	path, err := w.Flush(true)
	require.NoError(t, err)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.offsets["repeated"], 2)

	res, err := r.Search("repeated")
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
	require.Equal(t, []SearchHit{
		{Article: "One", Weight: partialFlushLimit},
		{Article: "Two", Weight: partialFlushLimit},
	}, res.Top)
}

func TestReaderSearchUnknownTermIsEmptyNotError(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out")

	w, err := NewWriter(base)
	require.NoError(t, err)
	require.NoError(t, w.Index("known", "Only"))
	path, err := w.Flush(true)
	require.NoError(t, err)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	res, err := r.Search("unknown")
	require.NoError(t, err)
	require.Equal(t, SearchResult{}, res)
}
