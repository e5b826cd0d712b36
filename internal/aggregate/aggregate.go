// Package aggregate builds the merged grocery snapshot from raw per-recipe
// ingredient contributions and user overrides.
//
// The aggregate is never mutated incrementally: every operation rebuilds it
// from the full multiset of raw contributions. That makes merging commutative
// and associative for free, and turns recipe removal into plain recomputation
// instead of subtraction.
package aggregate

import (
	"sort"
	"strings"

	"github.com/chefassist/marketrun/internal/aisle"
	"github.com/chefassist/marketrun/internal/ingredient"
	"github.com/chefassist/marketrun/internal/models"
)

// itemAccum collects contributions for one normalized key.
type itemAccum struct {
	key      string
	name     string // first-seen casing
	recipes  []string
	contribs []ingredient.Parsed
}

// Build computes the full snapshot for a list state: normalize every raw
// ingredient, fold contributions per key, classify aisles, apply overrides,
// and group the result by aisle (insertion order preserved within a group).
func Build(state models.ListState, classify func(string) string) models.Snapshot {
	if classify == nil {
		classify = func(string) string { return aisle.DefaultAisle }
	}
	order, accums := collect(state)

	snap := models.Snapshot{Recipes: []string{}, Items: []models.GroceryItem{}}
	seenRecipes := make(map[string]struct{})

	for _, key := range order {
		acc := accums[key]
		ov, overridden := state.Overrides[key]
		if overridden && ov.Remove {
			continue
		}
		item := reduce(acc)
		item.Aisle = classify(key)
		if overridden {
			applyOverride(&item, ov)
		}
		snap.Items = append(snap.Items, item)
		for _, r := range item.Recipes {
			if _, ok := seenRecipes[strings.ToLower(r)]; !ok {
				seenRecipes[strings.ToLower(r)] = struct{}{}
				snap.Recipes = append(snap.Recipes, r)
			}
		}
	}

	// Group by aisle; the stable sort keeps insertion order within each group.
	sort.SliceStable(snap.Items, func(i, j int) bool {
		return snap.Items[i].Aisle < snap.Items[j].Aisle
	})
	return snap
}

// Keys returns the set of item keys the raw contributions produce, before
// overrides are applied. Used to garbage-collect overrides whose item lost
// its last contributing recipe.
func Keys(state models.ListState) map[string]struct{} {
	order, _ := collect(state)
	out := make(map[string]struct{}, len(order))
	for _, k := range order {
		out[k] = struct{}{}
	}
	return out
}

// HasItem reports whether key is visible on the list: contributed by at least
// one recipe and not hidden by a remove override.
func HasItem(state models.ListState, key string) bool {
	if ov, ok := state.Overrides[key]; ok && ov.Remove {
		return false
	}
	_, ok := Keys(state)[key]
	return ok
}

func collect(state models.ListState) ([]string, map[string]*itemAccum) {
	pantry := make(map[string]struct{}, len(state.Pantry))
	for _, p := range state.Pantry {
		if k := ingredient.Key(p); k != "" {
			pantry[k] = struct{}{}
		}
	}

	var order []string
	accums := make(map[string]*itemAccum)

	for _, recipe := range state.Recipes {
		for _, ing := range recipe.Items {
			key := ingredient.Key(ing.Name)
			if key == "" {
				continue
			}
			if _, skip := pantry[key]; skip {
				continue
			}
			acc, ok := accums[key]
			if !ok {
				acc = &itemAccum{key: key, name: strings.TrimSpace(ing.Name)}
				accums[key] = acc
				order = append(order, key)
			}
			if !containsFold(acc.recipes, recipe.Name) {
				acc.recipes = append(acc.recipes, recipe.Name)
			}
			acc.contribs = append(acc.contribs, ingredient.Parse(ing.Quantity, ing.Unit))
		}
	}
	return order, accums
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
