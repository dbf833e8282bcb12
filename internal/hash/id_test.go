package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	require.Equal(t, ID("foo"), ID("foo"))
	require.NotEqual(t, ID("foo"), ID("bar"))
	require.NotEqual(t, ID(""), ID("foo"))
}

func TestPairID(t *testing.T) {
	require.Equal(t, PairID(3, 45), PairID(3, 45))
	require.NotEqual(t, PairID(3, 45), PairID(3, 46))

	// Order-sensitive: a (process, thread) pair is directional.
	require.NotEqual(t, PairID(3, 45), PairID(45, 3))
}
