package domain

import "testing"

func TestDietaryPreferenceCycle(t *testing.T) {
	p := DietNone
	order := []DietaryPreference{DietVegetarian, DietVegan, DietNone}

	for i, want := range order {
		p = p.Next()
		if p != want {
			t.Fatalf("step %d: expected %s, got %s", i, want, p)
		}
	}
}

func TestDifficultyFromString(t *testing.T) {
	tests := []struct {
		input string
		want  Difficulty
	}{
		{"easy", DifficultyEasy},
		{"Easy", DifficultyEasy},
		{"fácil", DifficultyEasy},
		{"hard", DifficultyHard},
		{"difficult", DifficultyHard},
		{"difícil", DifficultyHard},
		{"medium", DifficultyMedium},
		{"", DifficultyMedium},
		{"challenging", DifficultyMedium},
		{"  easy  ", DifficultyEasy},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DifficultyFromString(tt.input); got != tt.want {
				t.Fatalf("DifficultyFromString(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFullySatisfiable(t *testing.T) {
	if !(Recipe{}).FullySatisfiable() {
		t.Fatal("recipe with no missing ingredients must be satisfiable")
	}
	if (Recipe{MissingIngredients: []string{"butter"}}).FullySatisfiable() {
		t.Fatal("recipe with missing ingredients must not be satisfiable")
	}
}
