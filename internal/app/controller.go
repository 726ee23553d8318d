// Package app implements the view state machine that sequences camera
// capture, ingredient detection, roster curation, and recipe suggestion.
package app

import (
	"context"
	"sync"

	"github.com/snapcook/snapcook/internal/camera"
	"github.com/snapcook/snapcook/internal/domain"
	"github.com/snapcook/snapcook/internal/ingest"
	"github.com/snapcook/snapcook/internal/logger"
	"github.com/snapcook/snapcook/internal/roster"
)

// User-visible messages. Gateway failures surface as one normalized line;
// provider-specific detail goes to the log only.
const (
	noticeCameraFailed  = "Camera unavailable. Check the device and permissions."
	noticeDetectFailed  = "Could not detect ingredients. Please try again."
	noticeSuggestFailed = "Could not generate recipes. Please try again."
	noticeEmptyRoster   = "Add at least one ingredient first."
	noticeFileFailed    = "Could not read that image file."

	statusDetecting  = "Detecting ingredients..."
	statusSuggesting = "Cooking up ideas..."
)

// Option configures the controller.
type Option func(*Controller)

// WithCaptureQuality sets the JPEG quality for camera captures.
func WithCaptureQuality(q int) Option {
	return func(c *Controller) { c.quality = q }
}

// Controller owns the session context: the active view, the loading
// overlay, the roster, the current recipe batch, and the capture session.
// All methods are safe for concurrent use; the mutex is released during
// outbound gateway calls so renders never block on the network. Triggers
// arriving while the loading flag is set are ignored.
type Controller struct {
	mu       sync.Mutex
	view     domain.ViewState
	loading  bool
	status   string
	notice   string
	pref     domain.DietaryPreference
	recipes  []domain.Recipe
	selected *domain.Recipe

	quality  int
	cam      domain.Camera // nil when no capture backend is available
	gateway  domain.Provider
	session  *camera.Session
	roster   *roster.Roster
	ingestor *ingest.Ingestor
	log      *logger.Logger
}

// New creates a controller in the Home view with an empty roster.
func New(gateway domain.Provider, cam domain.Camera, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		view:    domain.ViewHome,
		quality: camera.DefaultQuality,
		cam:     cam,
		gateway: gateway,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.roster = roster.New(log)
	c.session = camera.NewSession(c.quality, log)
	c.ingestor = ingest.New(gateway, c.roster, log)
	return c
}

// ── Camera flow ──────────────────────────────────────────────────

// StartScan acquires the camera and enters the Camera view. The capture
// buffer is cleared first. On acquisition failure the view stays Home and
// a recoverable notice is shown; there is no automatic retry.
func (c *Controller) StartScan(ctx context.Context) {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return
	}
	c.notice = ""
	cam := c.cam
	c.mu.Unlock()

	err := c.session.Start(ctx, cam)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Error("app: start scan: %v", err)
		c.notice = noticeCameraFailed
		c.view = domain.ViewHome
		return
	}
	c.view = domain.ViewCamera
}

// CaptureFrame appends the current frame to the session buffer. Silent
// no-op outside the Camera view or before the first decoded frame.
func (c *Controller) CaptureFrame() {
	c.mu.Lock()
	inCamera := c.view == domain.ViewCamera
	c.mu.Unlock()

	if inCamera {
		c.session.Capture()
	}
}

// CancelCamera stops the device and returns Home without a network call.
func (c *Controller) CancelCamera() {
	c.session.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == domain.ViewCamera {
		c.view = domain.ViewHome
	}
}

// FinishCamera stops the device and, if anything was captured, submits the
// buffer for detection in capture order. An empty buffer goes straight
// Home. Detection failure leaves the view and roster unchanged apart from
// the notice; the loading flag is cleared on both paths.
func (c *Controller) FinishCamera(ctx context.Context) {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return
	}
	c.notice = ""

	images := c.session.Finish()
	if len(images) == 0 {
		c.view = domain.ViewHome
		c.mu.Unlock()
		return
	}

	c.loading = true
	c.status = statusDetecting
	c.mu.Unlock()

	_, err := c.ingestor.Ingest(ctx, images)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.log.Error("app: finish camera: %v", err)
		c.notice = noticeDetectFailed
		return
	}
	c.view = domain.ViewIngredientRoster
}

// IngestFile reads a user-selected image file and runs the same detection
// round trip as a camera batch. Available from the Home view.
func (c *Controller) IngestFile(ctx context.Context, path string) {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return
	}
	c.notice = ""
	c.mu.Unlock()

	token, err := ingest.LoadFile(path)
	if err != nil {
		c.log.Error("app: ingest file: %v", err)
		c.mu.Lock()
		c.notice = noticeFileFailed
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.loading = true
	c.status = statusDetecting
	c.mu.Unlock()

	_, err = c.ingestor.Ingest(ctx, []domain.EncodedImage{ingest.Normalize(string(token))})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.log.Error("app: ingest file: %v", err)
		c.notice = noticeDetectFailed
		return
	}
	c.view = domain.ViewIngredientRoster
}

// ── Roster flow ──────────────────────────────────────────────────

// AddManual appends a typed ingredient. From Home this also opens the
// roster view. Empty names are ignored.
func (c *Controller) AddManual(name string) {
	added := c.roster.AddManual(name)

	c.mu.Lock()
	defer c.mu.Unlock()
	if added != nil && c.view == domain.ViewHome {
		c.view = domain.ViewIngredientRoster
	}
}

// RemoveIngredient deletes the entry with the given id; unknown ids are a
// no-op.
func (c *Controller) RemoveIngredient(id string) {
	c.roster.Remove(id)
}

// TogglePriority flips the near-expiry flag on the given entry.
func (c *Controller) TogglePriority(id string) {
	c.roster.TogglePriority(id)
}

// CyclePreference advances the dietary preference: none → vegetarian →
// vegan → none.
func (c *Controller) CyclePreference() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pref = c.pref.Next()
}

// RequestRecipes gates the suggestion call: an empty roster produces a
// validation notice and no gateway call. On success the fresh batch
// replaces any prior one and the view moves to the recipe list; on failure
// the prior batch is preserved.
func (c *Controller) RequestRecipes(ctx context.Context) {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return
	}
	c.notice = ""

	if c.roster.Len() == 0 {
		c.log.Warn("app: request recipes: %v", domain.ErrEmptyRoster)
		c.notice = noticeEmptyRoster
		c.mu.Unlock()
		return
	}

	items := c.roster.Items()
	pref := c.pref
	c.loading = true
	c.status = statusSuggesting
	c.mu.Unlock()

	recipes, err := c.gateway.SuggestRecipes(ctx, items, pref)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.log.Error("app: request recipes: %v", err)
		c.notice = noticeSuggestFailed
		return
	}
	c.recipes = recipes
	c.selected = nil
	c.view = domain.ViewRecipeList
}

// ── Recipe flow ──────────────────────────────────────────────────

// SelectRecipe marks the recipe at the given batch index as selected and
// opens the detail view. Out-of-range indices are a no-op.
func (c *Controller) SelectRecipe(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != domain.ViewRecipeList || index < 0 || index >= len(c.recipes) {
		return
	}
	r := c.recipes[index]
	c.selected = &r
	c.view = domain.ViewRecipeDetail
}

// Back steps one screen towards Home. Leaving the Camera view releases the
// device; leaving the recipe-list context discards the batch.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.view {
	case domain.ViewCamera:
		c.session.Stop()
		c.view = domain.ViewHome
	case domain.ViewIngredientRoster:
		c.view = domain.ViewHome
	case domain.ViewRecipeList:
		c.recipes = nil
		c.selected = nil
		c.view = domain.ViewIngredientRoster
	case domain.ViewRecipeDetail:
		c.selected = nil
		c.view = domain.ViewRecipeList
	}
}

// ── Snapshots for rendering ──────────────────────────────────────

// View returns the active screen.
func (c *Controller) View() domain.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Loading returns the overlay flag and its status message.
func (c *Controller) Loading() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading, c.status
}

// Notice returns the last user-visible message; empty when none.
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// Preference returns the active dietary preference.
func (c *Controller) Preference() domain.DietaryPreference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pref
}

// Ingredients returns the roster entries in insertion order.
func (c *Controller) Ingredients() []domain.Ingredient {
	return c.roster.Items()
}

// Recipes returns a copy of the current batch.
func (c *Controller) Recipes() []domain.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Selected returns the recipe open in the detail view, or nil.
func (c *Controller) Selected() *domain.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == nil {
		return nil
	}
	r := *c.selected
	return &r
}

// CaptureCount returns the number of stills in the current session buffer.
func (c *Controller) CaptureCount() int {
	return c.session.Captures()
}
