package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	from, limit := Calculate(1, 10)
	require.Equal(t, 0, from)
	require.Equal(t, 10, limit)

	from, limit = Calculate(3, 25)
	require.Equal(t, 50, from)
	require.Equal(t, 25, limit)

	// out-of-range values fall back to defaults
	from, limit = Calculate(0, 0)
	require.Equal(t, 0, from)
	require.Equal(t, DefaultPageSize, limit)

	from, limit = Calculate(-5, 1000)
	require.Equal(t, 0, from)
	require.Equal(t, DefaultPageSize, limit)
}

func TestParseIntDefault(t *testing.T) {
	require.Equal(t, 7, ParseIntDefault("7", 1))
	require.Equal(t, 1, ParseIntDefault("", 1))
	require.Equal(t, 1, ParseIntDefault("abc", 1))
}
