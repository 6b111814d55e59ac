package gamemode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDifficulty(t *testing.T) {
	cases := []struct {
		label    string
		expected float64
	}{
		{"beginner", 1},
		{"Begginer", 1},
		{"easy", 1},
		{"EASY", 1},
		{"normal", 2},
		{"Default", 2},
		{"regular", 2},
		{"hard", 4},
		// "hard" is a byte prefix of "harder"; the hard set still wins
		// because matching is by prefix against sets in order.
		{"harder", 4},
		{"difficult", 4},
		{"suicidal", 5},
		{"SUICIDAL", 5},
		{"hell on earth", 7},
		{"Hell On Earth", 7},
		{"hoe", 7},
		{"  hoe  ", 7},
	}

	for _, c := range cases {
		require.Equal(t, c.expected, ResolveDifficulty(c.label), "label %q", c.label)
	}
}

func TestResolveDifficultyFallback(t *testing.T) {
	// Unrecognized labels are parsed as literal numbers.
	require.Equal(t, 3.5, ResolveDifficulty("3.5"))
	require.Equal(t, 6.0, ResolveDifficulty("6"))

	// Non-numeric text degrades to 0, silently.
	require.Equal(t, 0.0, ResolveDifficulty("impossible"))
	require.Equal(t, 0.0, ResolveDifficulty(""))
}
