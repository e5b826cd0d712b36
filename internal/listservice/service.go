// Package listservice owns per-user grocery list state transitions.
//
// Every operation is one atomic transition: load the raw state, mutate it,
// rebuild the aggregated snapshot, persist, and return the full snapshot.
// Operations on the same user's list are serialized by a per-user mutex;
// different users never block each other.
package listservice

import (
	"context"
	"strings"
	"sync"

	"github.com/chefassist/marketrun/internal/aggregate"
	"github.com/chefassist/marketrun/internal/aisle"
	"github.com/chefassist/marketrun/internal/apperr"
	"github.com/chefassist/marketrun/internal/ingredient"
	"github.com/chefassist/marketrun/internal/liststore"
	"github.com/chefassist/marketrun/internal/models"
)

// Event kinds passed to the change callback.
const (
	EventListUpdated = "list.updated"
	EventListCleared = "list.cleared"
)

// ChangeFunc is notified after a successful mutation, outside the user lock.
type ChangeFunc func(userID, kind string)

// Service coordinates the aggregation engine and the list store.
type Service struct {
	store    liststore.Store
	aisles   *aisle.Classifier
	onChange ChangeFunc

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a new list service. onChange may be nil.
func New(store liststore.Store, aisles *aisle.Classifier, onChange ChangeFunc) *Service {
	return &Service{
		store:    store,
		aisles:   aisles,
		onChange: onChange,
		locks:    make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing operations on one user's list.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Get returns the current aggregated snapshot for a user.
func (s *Service) Get(_ context.Context, userID string) (models.Snapshot, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	state, err := s.store.Get(userID)
	if err != nil {
		return models.Snapshot{}, err
	}
	return aggregate.Build(state, s.aisles.Classify), nil
}

// AddRecipe adds (or replaces) a recipe's ingredient contribution. Re-adding
// a recipe name first drops its prior contribution, so the call never
// double-counts. The whole payload is validated up front: a malformed
// ingredient rejects the call atomically with no partial merge.
func (s *Service) AddRecipe(_ context.Context, userID, name string, items []models.Ingredient) (models.Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(items) == 0 {
		return models.Snapshot{}, apperr.ErrValidation
	}
	for _, it := range items {
		if ingredient.Key(it.Name) == "" {
			return models.Snapshot{}, apperr.ErrValidation
		}
	}
	return s.update(userID, EventListUpdated, func(state *models.ListState) error {
		state.Recipes = removeRecipeEntry(state.Recipes, name)
		state.Recipes = append(state.Recipes, models.RecipeEntry{Name: name, Items: items})
		return nil
	})
}

// RemoveRecipe drops a recipe's contribution. Items left without any
// contributing recipe disappear from the snapshot, along with their overrides.
func (s *Service) RemoveRecipe(_ context.Context, userID, name string) (models.Snapshot, error) {
	return s.update(userID, EventListUpdated, func(state *models.ListState) error {
		next := removeRecipeEntry(state.Recipes, name)
		if len(next) == len(state.Recipes) {
			return apperr.ErrNotFound
		}
		state.Recipes = next
		return nil
	})
}

// EditItem records a manual override for an aggregated item. Fields merge
// into any prior override for the same key.
func (s *Service) EditItem(_ context.Context, userID, key string, edit models.Override) (models.Snapshot, error) {
	key = ingredient.Key(key)
	if key == "" {
		return models.Snapshot{}, apperr.ErrValidation
	}
	return s.update(userID, EventListUpdated, func(state *models.ListState) error {
		if !aggregate.HasItem(*state, key) {
			return apperr.ErrNotFound
		}
		ov := state.Overrides[key]
		if edit.Quantity != nil {
			ov.Quantity = edit.Quantity
		}
		if edit.Unit != nil {
			ov.Unit = edit.Unit
		}
		if edit.Aisle != nil {
			ov.Aisle = edit.Aisle
		}
		setOverride(state, key, ov)
		return nil
	})
}

// DeleteItem hides an aggregated item outright. Contributing recipes stay on
// the list as long as they still contribute other items.
func (s *Service) DeleteItem(_ context.Context, userID, key string) (models.Snapshot, error) {
	key = ingredient.Key(key)
	if key == "" {
		return models.Snapshot{}, apperr.ErrValidation
	}
	return s.update(userID, EventListUpdated, func(state *models.ListState) error {
		if !aggregate.HasItem(*state, key) {
			return apperr.ErrNotFound
		}
		setOverride(state, key, models.Override{Remove: true})
		return nil
	})
}

// SetPantry replaces the user's pantry staples. Pantry ingredients are
// skipped during aggregation. An empty list clears the pantry.
func (s *Service) SetPantry(_ context.Context, userID string, items []string) (models.Snapshot, error) {
	return s.update(userID, EventListUpdated, func(state *models.ListState) error {
		pantry := make([]string, 0, len(items))
		seen := make(map[string]struct{}, len(items))
		for _, it := range items {
			k := ingredient.Key(it)
			if k == "" {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			pantry = append(pantry, k)
		}
		state.Pantry = pantry
		return nil
	})
}

// Clear empties the list: recipes, overrides, and pantry.
func (s *Service) Clear(_ context.Context, userID string) (models.Snapshot, error) {
	return s.update(userID, EventListCleared, func(state *models.ListState) error {
		*state = models.ListState{}
		return nil
	})
}

// update runs one atomic state transition under the user's lock.
func (s *Service) update(userID, event string, fn func(*models.ListState) error) (models.Snapshot, error) {
	l := s.userLock(userID)
	l.Lock()
	snap, err := func() (models.Snapshot, error) {
		state, err := s.store.Get(userID)
		if err != nil {
			return models.Snapshot{}, err
		}
		if err := fn(&state); err != nil {
			return models.Snapshot{}, err
		}
		pruneOverrides(&state)
		snap := aggregate.Build(state, s.aisles.Classify)
		if err := s.store.Save(userID, state); err != nil {
			return models.Snapshot{}, err
		}
		return snap, nil
	}()
	l.Unlock()

	if err == nil && s.onChange != nil {
		s.onChange(userID, event)
	}
	return snap, err
}

// pruneOverrides drops overrides whose item no longer has any contributing
// recipe: a manual edit dies with the item it edited.
func pruneOverrides(state *models.ListState) {
	if len(state.Overrides) == 0 {
		return
	}
	keys := aggregate.Keys(*state)
	for k := range state.Overrides {
		if _, ok := keys[k]; !ok {
			delete(state.Overrides, k)
		}
	}
}

func setOverride(state *models.ListState, key string, ov models.Override) {
	if state.Overrides == nil {
		state.Overrides = make(map[string]models.Override)
	}
	state.Overrides[key] = ov
}

// removeRecipeEntry filters out the entry matching name, case-insensitively.
func removeRecipeEntry(recipes []models.RecipeEntry, name string) []models.RecipeEntry {
	out := make([]models.RecipeEntry, 0, len(recipes))
	for _, r := range recipes {
		if strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(name)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
