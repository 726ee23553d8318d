package domain

import "strings"

// Recipe is a single suggestion returned by the provider gateway. A whole
// batch is created per suggestion request and fully replaces the prior one.
type Recipe struct {
	ID                 string
	Title              string
	Description        string
	IngredientsUsed    []string // roster names the recipe consumes, in order
	MissingIngredients []string // names not present in the roster
	Steps              []string // 1-indexed when displayed
	Difficulty         Difficulty
	Time               string // provider-supplied free text, e.g. "25 min"
}

// FullySatisfiable reports whether the recipe can be cooked from the
// roster alone. Derived solely from the emptiness of MissingIngredients,
// never recomputed against roster names.
func (r Recipe) FullySatisfiable() bool {
	return len(r.MissingIngredients) == 0
}

// Difficulty is a closed three-value scale.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// String returns a human-readable difficulty label.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	default:
		return "medium"
	}
}

// DifficultyFromString coerces a provider-supplied label onto the closed
// scale. Unrecognized labels map to medium.
func DifficultyFromString(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "fácil", "facil":
		return DifficultyEasy
	case "hard", "difficult", "difícil", "dificil":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}
