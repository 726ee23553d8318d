package app

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/snapcook/snapcook/internal/domain"
	"github.com/snapcook/snapcook/internal/logger"
)

// fakeProvider scripts gateway replies per call.
type fakeProvider struct {
	detectNames []string
	detectErr   error
	recipes     []domain.Recipe
	suggestErr  error

	detectCalls  int
	suggestCalls int
	lastRoster   []domain.Ingredient
	lastPref     domain.DietaryPreference
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) DetectIngredients(ctx context.Context, images []domain.EncodedImage) ([]string, error) {
	f.detectCalls++
	if f.detectErr != nil {
		return nil, f.detectErr
	}
	return f.detectNames, nil
}

func (f *fakeProvider) SuggestRecipes(ctx context.Context, roster []domain.Ingredient, pref domain.DietaryPreference) ([]domain.Recipe, error) {
	f.suggestCalls++
	f.lastRoster = roster
	f.lastPref = pref
	if f.suggestErr != nil {
		return nil, f.suggestErr
	}
	return f.recipes, nil
}

// fakeDevice yields a fixed frame.
type fakeDevice struct {
	released int
}

func (d *fakeDevice) Frame() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func (d *fakeDevice) Release() { d.released++ }

type fakeCamera struct {
	device *fakeDevice
	err    error
}

func (c *fakeCamera) Acquire(ctx context.Context) (domain.CaptureDevice, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.device, nil
}

func setup(t *testing.T, gw *fakeProvider, cam domain.Camera) (*Controller, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	return New(gw, cam, log), context.Background()
}

func TestHappyPathScanToDetail(t *testing.T) {
	gw := &fakeProvider{
		detectNames: []string{"tomato", "cheese", "rice"},
		recipes: []domain.Recipe{
			{ID: "fake-0-a", Title: "Tomato Rice"},
			{ID: "fake-1-b", Title: "Cheese Bake", MissingIngredients: []string{"cream"}},
		},
	}
	ctrl, ctx := setup(t, gw, &fakeCamera{device: &fakeDevice{}})

	ctrl.StartScan(ctx)
	if got := ctrl.View(); got != domain.ViewCamera {
		t.Fatalf("expected camera view, got %s", got)
	}

	ctrl.CaptureFrame()
	ctrl.CaptureFrame()
	if got := ctrl.CaptureCount(); got != 2 {
		t.Fatalf("expected 2 captures, got %d", got)
	}

	ctrl.FinishCamera(ctx)
	if got := ctrl.View(); got != domain.ViewIngredientRoster {
		t.Fatalf("expected roster view, got %s", got)
	}
	if gw.detectCalls != 1 {
		t.Fatalf("expected 1 detect call, got %d", gw.detectCalls)
	}
	if got := len(ctrl.Ingredients()); got != 3 {
		t.Fatalf("expected 3 ingredients, got %d", got)
	}

	ctrl.RequestRecipes(ctx)
	if got := ctrl.View(); got != domain.ViewRecipeList {
		t.Fatalf("expected recipe list view, got %s", got)
	}
	if got := len(ctrl.Recipes()); got != 2 {
		t.Fatalf("expected 2 recipes, got %d", got)
	}

	ctrl.SelectRecipe(1)
	if got := ctrl.View(); got != domain.ViewRecipeDetail {
		t.Fatalf("expected detail view, got %s", got)
	}
	if sel := ctrl.Selected(); sel == nil || sel.Title != "Cheese Bake" {
		t.Fatalf("expected Cheese Bake selected, got %+v", sel)
	}
}

func TestScanCameraUnavailable(t *testing.T) {
	gw := &fakeProvider{}
	ctrl, ctx := setup(t, gw, &fakeCamera{err: errors.New("permission denied")})

	ctrl.StartScan(ctx)

	if got := ctrl.View(); got != domain.ViewHome {
		t.Fatalf("expected to stay home, got %s", got)
	}
	if ctrl.Notice() == "" {
		t.Fatal("expected a notice after camera failure")
	}
	if gw.detectCalls != 0 {
		t.Fatal("no gateway call expected on camera failure")
	}
}

func TestScanWithoutBackend(t *testing.T) {
	ctrl, ctx := setup(t, &fakeProvider{}, nil)

	ctrl.StartScan(ctx)

	if got := ctrl.View(); got != domain.ViewHome {
		t.Fatalf("expected to stay home, got %s", got)
	}
	if ctrl.Notice() == "" {
		t.Fatal("expected a notice when no backend is configured")
	}
}

func TestFinishWithEmptyBufferSkipsDetection(t *testing.T) {
	gw := &fakeProvider{}
	ctrl, ctx := setup(t, gw, &fakeCamera{device: &fakeDevice{}})

	ctrl.StartScan(ctx)
	ctrl.FinishCamera(ctx)

	if got := ctrl.View(); got != domain.ViewHome {
		t.Fatalf("expected home after empty finish, got %s", got)
	}
	if gw.detectCalls != 0 {
		t.Fatal("detect must not be called with an empty buffer")
	}
}

func TestDetectionFailureKeepsViewAndRoster(t *testing.T) {
	gw := &fakeProvider{detectErr: domain.ErrDetectionFailed}
	ctrl, ctx := setup(t, gw, &fakeCamera{device: &fakeDevice{}})

	ctrl.AddManual("rice")
	ctrl.Back() // return home

	ctrl.StartScan(ctx)
	ctrl.CaptureFrame()
	ctrl.FinishCamera(ctx)

	if got := ctrl.View(); got != domain.ViewCamera {
		t.Fatalf("expected view unchanged on detect failure, got %s", got)
	}
	if ctrl.Notice() == "" {
		t.Fatal("expected a notice after detect failure")
	}
	if got := len(ctrl.Ingredients()); got != 1 {
		t.Fatalf("roster must be untouched on failure, got %d entries", got)
	}
	if loading, _ := ctrl.Loading(); loading {
		t.Fatal("loading flag must clear on failure")
	}
}

func TestCancelCameraDiscardsCaptures(t *testing.T) {
	gw := &fakeProvider{}
	dev := &fakeDevice{}
	ctrl, ctx := setup(t, gw, &fakeCamera{device: dev})

	ctrl.StartScan(ctx)
	ctrl.CaptureFrame()
	ctrl.CancelCamera()

	if got := ctrl.View(); got != domain.ViewHome {
		t.Fatalf("expected home after cancel, got %s", got)
	}
	if dev.released != 1 {
		t.Fatalf("expected device released once, got %d", dev.released)
	}
	if gw.detectCalls != 0 {
		t.Fatal("cancel must not trigger detection")
	}

	// Captures from the cancelled session must not leak into the next.
	ctrl.StartScan(ctx)
	if got := ctrl.CaptureCount(); got != 0 {
		t.Fatalf("expected fresh buffer, got %d captures", got)
	}
}

func TestAddManualFromHomeOpensRoster(t *testing.T) {
	ctrl, _ := setup(t, &fakeProvider{}, nil)

	ctrl.AddManual("eggs")

	if got := ctrl.View(); got != domain.ViewIngredientRoster {
		t.Fatalf("expected roster view, got %s", got)
	}
	if got := len(ctrl.Ingredients()); got != 1 {
		t.Fatalf("expected 1 ingredient, got %d", got)
	}

	// Empty names change nothing.
	ctrl.AddManual("   ")
	if got := len(ctrl.Ingredients()); got != 1 {
		t.Fatalf("empty add mutated the roster: %d entries", got)
	}
}

func TestRequestRecipesEmptyRoster(t *testing.T) {
	gw := &fakeProvider{}
	ctrl, ctx := setup(t, gw, nil)

	ctrl.RequestRecipes(ctx)

	if ctrl.Notice() != noticeEmptyRoster {
		t.Fatalf("expected empty-roster notice, got %q", ctrl.Notice())
	}
	if gw.suggestCalls != 0 {
		t.Fatal("suggest must not be called with an empty roster")
	}
	if got := ctrl.View(); got != domain.ViewHome {
		t.Fatalf("view must not change, got %s", got)
	}
}

func TestRequestRecipesCarriesPreferenceAndPriority(t *testing.T) {
	gw := &fakeProvider{recipes: []domain.Recipe{{ID: "fake-0-a", Title: "Salad"}}}
	ctrl, ctx := setup(t, gw, nil)

	ctrl.AddManual("lettuce")
	ctrl.AddManual("cheese")
	items := ctrl.Ingredients()
	ctrl.TogglePriority(items[1].ID)

	ctrl.CyclePreference() // vegetarian
	ctrl.CyclePreference() // vegan

	ctrl.RequestRecipes(ctx)

	if gw.lastPref != domain.DietVegan {
		t.Fatalf("expected vegan preference forwarded, got %s", gw.lastPref)
	}
	if len(gw.lastRoster) != 2 || !gw.lastRoster[1].IsPriority {
		t.Fatalf("expected priority flag forwarded, got %+v", gw.lastRoster)
	}
}

func TestSuggestionFailurePreservesPriorBatch(t *testing.T) {
	gw := &fakeProvider{recipes: []domain.Recipe{{ID: "fake-0-a", Title: "Salad"}}}
	ctrl, ctx := setup(t, gw, nil)

	ctrl.AddManual("lettuce")
	ctrl.RequestRecipes(ctx)
	if got := len(ctrl.Recipes()); got != 1 {
		t.Fatalf("expected initial batch of 1, got %d", got)
	}

	gw.suggestErr = domain.ErrSuggestionFailed
	ctrl.RequestRecipes(ctx)

	if ctrl.Notice() == "" {
		t.Fatal("expected a notice after suggest failure")
	}
	got := ctrl.Recipes()
	if len(got) != 1 || got[0].Title != "Salad" {
		t.Fatalf("prior batch must survive a failed request, got %+v", got)
	}
}

func TestSelectRecipeOutOfRange(t *testing.T) {
	gw := &fakeProvider{recipes: []domain.Recipe{{ID: "fake-0-a", Title: "Salad"}}}
	ctrl, ctx := setup(t, gw, nil)

	ctrl.AddManual("lettuce")
	ctrl.RequestRecipes(ctx)

	ctrl.SelectRecipe(5)
	if got := ctrl.View(); got != domain.ViewRecipeList {
		t.Fatalf("out-of-range select must not navigate, got %s", got)
	}
	ctrl.SelectRecipe(-1)
	if got := ctrl.View(); got != domain.ViewRecipeList {
		t.Fatalf("negative select must not navigate, got %s", got)
	}
}

func TestBackWalksTheScreenChain(t *testing.T) {
	gw := &fakeProvider{recipes: []domain.Recipe{{ID: "fake-0-a", Title: "Salad"}}}
	ctrl, ctx := setup(t, gw, nil)

	ctrl.AddManual("lettuce")
	ctrl.RequestRecipes(ctx)
	ctrl.SelectRecipe(0)

	ctrl.Back()
	if got := ctrl.View(); got != domain.ViewRecipeList {
		t.Fatalf("expected recipe list, got %s", got)
	}
	if ctrl.Selected() != nil {
		t.Fatal("selection must clear when leaving the detail view")
	}

	ctrl.Back()
	if got := ctrl.View(); got != domain.ViewIngredientRoster {
		t.Fatalf("expected roster, got %s", got)
	}
	if len(ctrl.Recipes()) != 0 {
		t.Fatal("batch must be discarded when leaving the list")
	}

	ctrl.Back()
	if got := ctrl.View(); got != domain.ViewHome {
		t.Fatalf("expected home, got %s", got)
	}
}

func TestNewBatchReplacesOld(t *testing.T) {
	gw := &fakeProvider{recipes: []domain.Recipe{
		{ID: "fake-0-a", Title: "Salad"},
		{ID: "fake-1-b", Title: "Soup"},
	}}
	ctrl, ctx := setup(t, gw, nil)

	ctrl.AddManual("lettuce")
	ctrl.RequestRecipes(ctx)
	ctrl.SelectRecipe(0)

	ctrl.Back()
	ctrl.Back() // roster

	gw.recipes = []domain.Recipe{{ID: "fake-0-c", Title: "Stir Fry"}}
	ctrl.RequestRecipes(ctx)

	recipes := ctrl.Recipes()
	if len(recipes) != 1 || recipes[0].Title != "Stir Fry" {
		t.Fatalf("expected the fresh batch only, got %+v", recipes)
	}
	if ctrl.Selected() != nil {
		t.Fatal("selection from the old batch must not persist")
	}
}

func TestIngestFileFailure(t *testing.T) {
	gw := &fakeProvider{}
	ctrl, ctx := setup(t, gw, nil)

	ctrl.IngestFile(ctx, "/does/not/exist.jpg")

	if ctrl.Notice() == "" {
		t.Fatal("expected a notice for an unreadable file")
	}
	if gw.detectCalls != 0 {
		t.Fatal("detect must not run when the file cannot be read")
	}
	if got := ctrl.View(); got != domain.ViewHome {
		t.Fatalf("view must not change, got %s", got)
	}
}

func TestCaptureOutsideCameraViewIsNoop(t *testing.T) {
	ctrl, _ := setup(t, &fakeProvider{}, &fakeCamera{device: &fakeDevice{}})

	ctrl.CaptureFrame()
	if got := ctrl.CaptureCount(); got != 0 {
		t.Fatalf("capture outside the camera view must be ignored, got %d", got)
	}
}
