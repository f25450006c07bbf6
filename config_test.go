package wikidex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThreadsFromEnv(t *testing.T) {
	t.Setenv("THREADS", "")
	require.Equal(t, 0, ThreadsFromEnv())

	t.Setenv("THREADS", "4")
	require.Equal(t, 4, ThreadsFromEnv())

	t.Setenv("THREADS", "not-a-number")
	require.Equal(t, 0, ThreadsFromEnv())

	t.Setenv("THREADS", "-3")
	require.Equal(t, 0, ThreadsFromEnv())

	t.Setenv("THREADS", "0")
	require.Equal(t, 0, ThreadsFromEnv())
}

func TestParseIndexerArgs(t *testing.T) {
	t.Setenv("THREADS", "3")
	cfg, err := ParseIndexerArgs([]string{"dump.xml", "out"})
	require.NoError(t, err)
	require.Equal(t, IndexerConfig{XMLPath: "dump.xml", OutBase: "out", Workers: 3}, cfg)

	_, err = ParseIndexerArgs([]string{"dump.xml"})
	require.Error(t, err)

	_, err = ParseIndexerArgs(nil)
	require.Error(t, err)
}

func TestParseReaderArgs(t *testing.T) {
	cfg, err := ParseReaderArgs([]string{"a.idx", "b.idx"})
	require.NoError(t, err)
	require.Equal(t, ReaderConfig{IndexPaths: []string{"a.idx", "b.idx"}}, cfg)

	_, err = ParseReaderArgs(nil)
	require.Error(t, err)
}
