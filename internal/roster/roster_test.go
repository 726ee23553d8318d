package roster

import (
	"testing"

	"github.com/snapcook/snapcook/internal/logger"
)

func newTestRoster(t *testing.T) *Roster {
	t.Helper()
	return New(logger.New(logger.LevelOff, nil))
}

func TestAddManual(t *testing.T) {
	r := newTestRoster(t)

	tests := []struct {
		name     string
		input    string
		wantAdd  bool
		wantName string
	}{
		{"plain name", "leftover rice", true, "leftover rice"},
		{"surrounding whitespace trimmed", "  eggs  ", true, "eggs"},
		{"empty string rejected", "", false, ""},
		{"whitespace only rejected", "   ", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := r.Len()
			added := r.AddManual(tt.input)
			if !tt.wantAdd {
				if added != nil {
					t.Fatalf("expected nil, got %+v", added)
				}
				if r.Len() != before {
					t.Fatal("roster length changed on rejected add")
				}
				return
			}
			if added == nil {
				t.Fatal("expected an ingredient, got nil")
			}
			if added.Name != tt.wantName {
				t.Fatalf("expected name %q, got %q", tt.wantName, added.Name)
			}
			if added.ID == "" {
				t.Fatal("ingredient ID is empty")
			}
			if added.IsPriority {
				t.Fatal("fresh ingredient should not be priority")
			}
		})
	}
}

func TestMergeDetectedAppendsInOrder(t *testing.T) {
	r := newTestRoster(t)
	r.AddManual("rice")

	added := r.MergeDetected([]string{"tomato", "cheese"})
	if len(added) != 2 {
		t.Fatalf("expected 2 added, got %d", len(added))
	}

	items := r.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(items))
	}
	if items[1].Name != "Tomato" || items[2].Name != "Cheese" {
		t.Fatalf("detected names not capitalized in order: %q, %q", items[1].Name, items[2].Name)
	}
}

func TestMergeDetectedKeepsDuplicateNames(t *testing.T) {
	r := newTestRoster(t)
	r.MergeDetected([]string{"tomato"})
	r.MergeDetected([]string{"tomato"})

	items := r.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 entries across batches, got %d", len(items))
	}
	if items[0].ID == items[1].ID {
		t.Fatal("duplicate names must still get distinct ids")
	}
}

func TestRemove(t *testing.T) {
	r := newTestRoster(t)
	a := r.AddManual("rice")
	b := r.AddManual("eggs")

	r.Remove(a.ID)
	items := r.Items()
	if len(items) != 1 || items[0].ID != b.ID {
		t.Fatalf("expected only %q to remain, got %+v", b.Name, items)
	}

	// Unknown id is a no-op.
	r.Remove("nope")
	if r.Len() != 1 {
		t.Fatal("remove of unknown id changed the roster")
	}
}

func TestTogglePriority(t *testing.T) {
	r := newTestRoster(t)
	ing := r.AddManual("cheese")

	r.TogglePriority(ing.ID)
	if !r.Items()[0].IsPriority {
		t.Fatal("expected priority set after first toggle")
	}

	r.TogglePriority(ing.ID)
	if r.Items()[0].IsPriority {
		t.Fatal("expected priority cleared after second toggle")
	}

	// Unknown id is a no-op.
	r.TogglePriority("nope")
	if r.Items()[0].IsPriority {
		t.Fatal("toggle of unknown id mutated an entry")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	r := newTestRoster(t)
	r.AddManual("rice")

	items := r.Items()
	items[0].Name = "mutated"

	if r.Items()[0].Name != "rice" {
		t.Fatal("mutating the returned slice leaked into the roster")
	}
}
