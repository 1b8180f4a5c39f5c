package phase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestToggle verifies that toggling alternates between red and green.
func TestToggle(t *testing.T) {
	t.Parallel()

	require.Equal(t, Green, Red.Toggle())
	require.Equal(t, Red, Green.Toggle())
	require.Equal(t, Red, Red.Toggle().Toggle())
}

// TestString checks the textual form of every phase.
func TestString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "red", Red.String())
	require.Equal(t, "green", Green.String())
	require.Equal(t, "unknown", Phase(42).String())
}

// TestParse verifies known names are accepted regardless of case and unknown ones are rejected.
func TestParse(t *testing.T) {
	t.Parallel()

	cases := map[string]Phase{
		"red":     Red,
		"GREEN":   Green,
		" Green ": Green,
	}
	for s, want := range cases {
		got, err := Parse(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := Parse("yellow")
	require.ErrorIs(t, err, ErrUnknownPhase)
}
