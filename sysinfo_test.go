package wikidex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultWorkerCountIsWithinBounds(t *testing.T) {
	n := DefaultWorkerCount()
	require.GreaterOrEqual(t, n, 1)
	require.LessOrEqual(t, n, maxRegions)
}
