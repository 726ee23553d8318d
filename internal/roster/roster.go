// Package roster holds the authoritative in-memory set of ingredients for
// the current session.
package roster

import (
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"

	"github.com/snapcook/snapcook/internal/domain"
	"github.com/snapcook/snapcook/internal/logger"
)

// Roster is the ordered, mutable collection of ingredients. Safe for
// concurrent access. Identifiers are unique; names may repeat — new
// detection batches are appended regardless of existing names.
type Roster struct {
	mu      sync.RWMutex
	entries []domain.Ingredient
	log     *logger.Logger
}

// New creates an empty roster.
func New(log *logger.Logger) *Roster {
	return &Roster{log: log}
}

// AddManual appends a user-typed ingredient. A name that trims to empty is
// a no-op and returns nil.
func (r *Roster) AddManual(name string) *domain.Ingredient {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ing := domain.Ingredient{ID: uuid.NewString(), Name: name}
	r.entries = append(r.entries, ing)
	r.log.Debug("roster: added manual ingredient %q (id=%s)", ing.Name, ing.ID)
	return &ing
}

// MergeDetected maps a detection batch into fresh ingredients and appends
// them in detection order. Existing entries are never removed or renamed.
// Each detected name gets its first character capitalized.
func (r *Roster) MergeDetected(names []string) []domain.Ingredient {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := make([]domain.Ingredient, 0, len(names))
	for _, name := range names {
		ing := domain.Ingredient{ID: uuid.NewString(), Name: capitalize(name)}
		r.entries = append(r.entries, ing)
		added = append(added, ing)
	}
	r.log.Debug("roster: merged %d detected ingredients (total=%d)", len(added), len(r.entries))
	return added
}

// Remove deletes the entry with the matching id. Unknown ids are a no-op.
func (r *Roster) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ing := range r.entries {
		if ing.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			r.log.Debug("roster: removed %q (id=%s)", ing.Name, id)
			return
		}
	}
}

// TogglePriority flips the priority flag on the matching entry. Unknown
// ids are a no-op.
func (r *Roster) TogglePriority(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries[i].IsPriority = !r.entries[i].IsPriority
			r.log.Debug("roster: priority %v for %q", r.entries[i].IsPriority, r.entries[i].Name)
			return
		}
	}
}

// Items returns a copy of the entries in insertion order.
func (r *Roster) Items() []domain.Ingredient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Ingredient, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// capitalize upper-cases the first rune, leaving the rest untouched.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
