// Package domain defines the core types and interfaces for the kitchen
// assistant. All other packages depend on domain; domain depends on nothing.
package domain

// Ingredient is a single entry in the user's working roster.
type Ingredient struct {
	ID         string
	Name       string
	IsPriority bool // "use this before it expires"
}

// DietaryPreference constrains recipe suggestions. Exactly one is active
// at a time.
type DietaryPreference int

const (
	DietNone DietaryPreference = iota
	DietVegetarian
	DietVegan
)

// String returns a human-readable preference name.
func (p DietaryPreference) String() string {
	switch p {
	case DietVegetarian:
		return "vegetarian"
	case DietVegan:
		return "vegan"
	default:
		return "none"
	}
}

// Next cycles to the following preference, wrapping around. Used by the
// UI toggle.
func (p DietaryPreference) Next() DietaryPreference {
	switch p {
	case DietNone:
		return DietVegetarian
	case DietVegetarian:
		return DietVegan
	default:
		return DietNone
	}
}
