package domain

// ViewState identifies the active screen. Exactly one is active at a time;
// the app controller owns the transition graph.
type ViewState int

const (
	ViewHome ViewState = iota
	ViewCamera
	ViewIngredientRoster
	ViewRecipeList
	ViewRecipeDetail
)

// String returns a human-readable view name.
func (v ViewState) String() string {
	switch v {
	case ViewCamera:
		return "camera"
	case ViewIngredientRoster:
		return "ingredient_roster"
	case ViewRecipeList:
		return "recipe_list"
	case ViewRecipeDetail:
		return "recipe_detail"
	default:
		return "home"
	}
}
