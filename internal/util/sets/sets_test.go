package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := New("v2", "v1")
	s.Add("latest")
	s.Add("v1")

	require.True(t, s.Has("latest"))
	require.False(t, s.Has("v3"))
	require.Equal(t, []string{"latest", "v1", "v2"}, Sorted(s))
}
