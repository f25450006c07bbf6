package wikidex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFatalfWrapsSiteAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := fatalf("Writer.Flush", "write body record: %w", cause)

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "Writer.Flush", fe.Site)
	require.True(t, errors.Is(err, cause))
	require.Contains(t, err.Error(), "Writer.Flush")
	require.Contains(t, err.Error(), "disk full")
}

func TestFatalErrorWithoutCauseIsJustSite(t *testing.T) {
	fe := &FatalError{Site: "Partition"}
	require.Equal(t, "Partition", fe.Error())
	require.Nil(t, fe.Unwrap())
}
