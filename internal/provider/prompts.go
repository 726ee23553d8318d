package provider

import (
	"fmt"
	"strings"

	"github.com/snapcook/snapcook/internal/domain"
)

// Prompts live here so wording changes are a single-file edit. Keep them
// concise — every token costs money and latency.

// detectionInstruction asks the model to name the distinct food items
// visible across all submitted images combined.
func detectionInstruction(locale string) string {
	return fmt.Sprintf(`You are an ingredient detector for a kitchen assistant.
Look at ALL the attached photos together and identify the distinct food items they contain.

Rules:
- Merge findings across the photos and deduplicate: each food item appears once.
- Use a generic but specific name ("tomato", not "San Marzano tomato"; "cheese", not "aged manchego").
- Name the items in this language: %s.
- Ignore packaging, utensils, and anything inedible.

Respond with a JSON object and nothing else:
{"ingredients": ["...", "..."]}`, locale)
}

// pantryStaples are assumed to be on hand and must never be counted as
// missing.
var pantryStaples = []string{"salt", "oil", "pepper", "water"}

// suggestionBrief serializes the roster and preference into the
// natural-language request for recipe suggestions.
func suggestionBrief(roster []domain.Ingredient, pref domain.DietaryPreference) string {
	var names, priority []string
	for _, ing := range roster {
		names = append(names, ing.Name)
		if ing.IsPriority {
			priority = append(priority, ing.Name)
		}
	}

	var b strings.Builder
	b.WriteString("You are a recipe assistant. Suggest recipes from the ingredients I have.\n\n")
	fmt.Fprintf(&b, "Available ingredients: %s.\n", strings.Join(names, ", "))
	if len(priority) > 0 {
		fmt.Fprintf(&b, "Must use (near expiry): %s. Build around these first.\n", strings.Join(priority, ", "))
	}
	if pref != domain.DietNone {
		fmt.Fprintf(&b, "Strict dietary constraint: every recipe must be %s. No exceptions.\n", pref)
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- Suggest exactly 4 recipes that maximize use of the available ingredients.\n")
	fmt.Fprintf(&b, "- Assume common pantry staples (%s) are on hand; never list them as missing.\n", strings.Join(pantryStaples, ", "))
	b.WriteString("- Prefer recipes whose missing-ingredient list is empty, then minimal.\n")
	b.WriteString("\nRespond with a JSON array and nothing else. Each element:\n")
	b.WriteString(`{"title": "...", "description": "...", "ingredients_used": ["..."], "missing_ingredients": ["..."], "steps": ["..."], "difficulty": "easy|medium|hard", "time": "e.g. 25 min"}`)
	return b.String()
}
