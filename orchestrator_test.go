package wikidex

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrchestratorRunProducesSearchableIndex(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out")

	var progressCalls int
	orch := &Orchestrator{
		Path:         "testdata/short.xml",
		OutBase:      base,
		Workers:      2,
		pollInterval: 0,
		OnProgress: func(p Progress) {
			progressCalls++
			require.Equal(t, 2, p.WorkersTotal)
		},
	}

	files, err := orch.Run()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	require.GreaterOrEqual(t, progressCalls, 1)

	agg := NewAggregator()
	loaded := agg.Init(files)
	require.Equal(t, len(files), loaded)
	defer agg.Close()

	res, err := agg.Search("poetry")
	require.NoError(t, err)
	require.Equal(t, []SearchHit{{Article: "Art", Weight: 1}}, res.Top)

	res, err = agg.Search("sextilis")
	require.NoError(t, err)
	require.Equal(t, []SearchHit{{Article: "August", Weight: 1}}, res.Top)
}

func TestOrchestratorDefaultsWorkerCountWhenUnset(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out")

	orch := &Orchestrator{Path: "testdata/short.xml", OutBase: base, pollInterval: 0}
	files, err := orch.Run()
	require.NoError(t, err)
	require.NotEmpty(t, files)
}
