package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcook/snapcook/internal/domain"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", "[1,2]"},
		{"surrounding whitespace", "  \n```json\n{}\n```\n ", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.input))
		})
	}
}

func TestIngredientNames(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "object with ingredients field",
			raw:  `{"ingredients": ["tomato", "cheese"]}`,
			want: []string{"tomato", "cheese"},
		},
		{
			name: "bare array",
			raw:  `["rice", "eggs"]`,
			want: []string{"rice", "eggs"},
		},
		{
			name: "fenced reply",
			raw:  "```json\n{\"ingredients\": [\"onion\"]}\n```",
			want: []string{"onion"},
		},
		{
			name: "absent field means nothing detected",
			raw:  `{"note": "no food visible"}`,
			want: nil,
		},
		{
			name: "null field means nothing detected",
			raw:  `{"ingredients": null}`,
			want: nil,
		},
		{
			name: "empty array",
			raw:  `{"ingredients": []}`,
			want: nil,
		},
		{
			name: "blank entries dropped",
			raw:  `{"ingredients": ["tomato", "  ", ""]}`,
			want: []string{"tomato"},
		},
		{
			name:    "not JSON at all",
			raw:     "I could not find any ingredients, sorry!",
			wantErr: true,
		},
		{
			name:    "field is not an array",
			raw:     `{"ingredients": "tomato"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ingredientNames(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRecipes(t *testing.T) {
	raw := `[
		{
			"title": "Tomato Rice",
			"description": "A quick skillet dinner.",
			"ingredients_used": ["rice", "tomato"],
			"missing_ingredients": [],
			"steps": ["Cook the rice.", "Stir in the tomato."],
			"difficulty": "easy",
			"time": "20 min"
		},
		{
			"title": "Cheese Omelette",
			"description": "Classic.",
			"ingredients_used": ["eggs", "cheese"],
			"missing_ingredients": ["butter"],
			"steps": ["Beat the eggs.", "Cook and fold."],
			"difficulty": "weird-value",
			"time": "10 min"
		}
	]`

	recipes, err := decodeRecipes(raw, "openai")
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	assert.Equal(t, "Tomato Rice", recipes[0].Title)
	assert.True(t, recipes[0].FullySatisfiable())
	assert.Equal(t, domain.DifficultyEasy, recipes[0].Difficulty)

	assert.False(t, recipes[1].FullySatisfiable())
	// Unrecognized difficulty falls back to medium.
	assert.Equal(t, domain.DifficultyMedium, recipes[1].Difficulty)

	assert.NotEqual(t, recipes[0].ID, recipes[1].ID)
	assert.Contains(t, recipes[0].ID, "openai-0")
	assert.Contains(t, recipes[1].ID, "openai-1")
}

func TestDecodeRecipesWrappedObject(t *testing.T) {
	raw := `{"recipes": [{"title": "Plain Rice", "steps": ["Boil."], "difficulty": "easy", "time": "15 min"}]}`

	recipes, err := decodeRecipes(raw, "gemini")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Plain Rice", recipes[0].Title)
	assert.Contains(t, recipes[0].ID, "gemini-0")
}

func TestDecodeRecipesMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose reply", "Here are some great recipes for you!"},
		{"object without recipes", `{"ideas": []}`},
		{"scalar", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeRecipes(tt.raw, "openai")
			require.Error(t, err)
		})
	}
}

func TestRecipeIDsAreUniqueAcrossBatches(t *testing.T) {
	raw := `[{"title": "A", "steps": ["x"], "difficulty": "easy", "time": "5 min"}]`

	first, err := decodeRecipes(raw, "openai")
	require.NoError(t, err)
	second, err := decodeRecipes(raw, "openai")
	require.NoError(t, err)

	assert.NotEqual(t, first[0].ID, second[0].ID)
}
