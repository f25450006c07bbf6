package wikidex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkerIndexesWholeRegion(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out")

	w, err := NewWorker(0, "testdata/short.xml", Region{Begin: 0, End: fileSize(t, "testdata/short.xml")}, base)
	require.NoError(t, err)

	files, err := w.Run()
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.True(t, w.Finished())

	r, err := Open(files[0])
	require.NoError(t, err)
	defer r.Close()

	res, err := r.Search("poetry")
	require.NoError(t, err)
	require.Equal(t, []SearchHit{{Article: "Art", Weight: 1}}, res.Top)
}

func TestWorkerStopFlushesAndExits(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out")

	w, err := NewWorker(0, "testdata/short.xml", Region{Begin: 0, End: fileSize(t, "testdata/short.xml")}, base)
	require.NoError(t, err)
	w.Stop()

	files, err := w.Run()
	require.NoError(t, err)
	require.Len(t, files, 1)

	r, err := Open(files[0])
	require.NoError(t, err)
	defer r.Close()
	require.Empty(t, r.titles)
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	fi, err := os.Stat(path)
	require.NoError(t, err)
	return fi.Size()
}
