package gamemode

import (
	"strconv"
	"strings"
)

// Synonym sets are tried in this order; a label matches a set when it starts
// with any of the set's synonyms, so "harder" resolves through "hard". The
// misspelling "begginer" ships on enough servers to be worth keeping.
var difficultyLevels = []struct {
	value    float64
	synonyms []string
}{
	{1, []string{"easy", "beginner", "begginer"}},
	{2, []string{"normal", "default", "regular"}},
	{4, []string{"hard", "difficult"}},
	{5, []string{"suicidal"}},
	{7, []string{"hell on earth", "hoe"}},
}

// ResolveDifficulty maps a free-text difficulty label onto the host's fixed
// numeric levels {1, 2, 4, 5, 7}. Matching is case-insensitive by prefix;
// the first set with a matching synonym wins. An unrecognized label is
// parsed as a literal number and, failing that, becomes 0 — this mirrors
// the host's own defensive defaulting, whether or not 0 is a difficulty the
// host considers meaningful.
func ResolveDifficulty(label string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(label))

	for _, level := range difficultyLevels {
		for _, synonym := range level.synonyms {
			if strings.HasPrefix(normalized, synonym) {
				return level.value
			}
		}
	}

	parsed, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}
	return parsed
}
