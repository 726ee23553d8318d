package provider

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/snapcook/snapcook/internal/domain"
)

// stripCodeFence removes ```json ... ``` wrappers that LLMs love to add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// ingredientNames extracts the detected-name list from a model reply.
// Accepts either a bare JSON array of strings or an object with an
// "ingredients" field. An absent or null field yields an empty slice,
// not an error; anything that isn't JSON at all is an error.
func ingredientNames(raw string) ([]string, error) {
	raw = stripCodeFence(raw)
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("reply is not valid JSON")
	}

	val := gjson.Parse(raw)
	if val.IsObject() {
		val = val.Get("ingredients")
	}
	if !val.Exists() || val.Type == gjson.Null {
		return nil, nil
	}
	if !val.IsArray() {
		return nil, fmt.Errorf("ingredients field is not an array")
	}

	var names []string
	for _, elem := range val.Array() {
		if name := strings.TrimSpace(elem.String()); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// recipePayload is the wire shape of a single suggested recipe.
type recipePayload struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	IngredientsUsed    []string `json:"ingredients_used"`
	MissingIngredients []string `json:"missing_ingredients"`
	Steps              []string `json:"steps"`
	Difficulty         string   `json:"difficulty"`
	Time               string   `json:"time"`
}

// decodeRecipes validates a model reply into the Recipe shape. Accepts a
// bare JSON array or an object wrapping one under "recipes". Each recipe
// gets a fresh id tagged with the serving provider and its batch index;
// ids from a prior batch are never reused.
func decodeRecipes(raw, providerName string) ([]domain.Recipe, error) {
	raw = stripCodeFence(raw)
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("reply is not valid JSON")
	}

	val := gjson.Parse(raw)
	if val.IsObject() {
		val = val.Get("recipes")
	}
	if !val.IsArray() {
		return nil, fmt.Errorf("reply contains no recipe array")
	}

	var payloads []recipePayload
	if err := json.Unmarshal([]byte(val.Raw), &payloads); err != nil {
		return nil, fmt.Errorf("decoding recipe array: %w", err)
	}

	recipes := make([]domain.Recipe, 0, len(payloads))
	for i, p := range payloads {
		recipes = append(recipes, domain.Recipe{
			ID:                 recipeID(providerName, i),
			Title:              p.Title,
			Description:        p.Description,
			IngredientsUsed:    p.IngredientsUsed,
			MissingIngredients: p.MissingIngredients,
			Steps:              p.Steps,
			Difficulty:         domain.DifficultyFromString(p.Difficulty),
			Time:               p.Time,
		})
	}
	return recipes, nil
}

// recipeID builds a provider-tagged, batch-indexed recipe id with a random
// suffix so rapid successive batches never collide.
func recipeID(providerName string, index int) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%d", providerName, index)
	}
	return fmt.Sprintf("%s-%d-%x", providerName, index, b)
}
