package aggregate

import (
	"testing"

	"github.com/chefassist/marketrun/internal/models"
)

func strptr(s string) *string { return &s }

func overrideState(ov models.Override) models.ListState {
	return models.ListState{
		Recipes: []models.RecipeEntry{
			{Name: "A", Items: []models.Ingredient{{Name: "butter", Quantity: "2", Unit: "tbsp"}}},
			{Name: "B", Items: []models.Ingredient{{Name: "butter", Quantity: "100", Unit: "g"}}},
		},
		Overrides: map[string]models.Override{"butter": ov},
	}
}

func TestOverride_AisleOnly(t *testing.T) {
	snap := Build(overrideState(models.Override{Aisle: strptr("Baking")}), classify)
	item := findItem(t, snap, "butter")
	if item.Aisle != "Baking" {
		t.Errorf("aisle = %q, want Baking", item.Aisle)
	}
	if !item.ManualOverride {
		t.Error("edited item should be flagged manual_override")
	}
	// The merged quantity is untouched, so the unknown flag stays.
	if !item.Unknown {
		t.Error("aisle edit alone should not clear unknown")
	}
}

func TestOverride_QuantityAndUnitClearUnknown(t *testing.T) {
	snap := Build(overrideState(models.Override{
		Quantity: strptr("130"),
		Unit:     strptr("g"),
	}), classify)
	item := findItem(t, snap, "butter")
	if item.Unknown {
		t.Error("numeric quantity plus unit should clear unknown")
	}
	if item.Quantity.Amount == nil || *item.Quantity.Amount != 130 {
		t.Errorf("quantity = %v, want 130", item.Quantity)
	}
	if item.Unit != "g" {
		t.Errorf("unit = %q, want g", item.Unit)
	}
}

func TestOverride_QuantityWithEmbeddedUnit(t *testing.T) {
	snap := Build(overrideState(models.Override{Quantity: strptr("2 cups")}), classify)
	item := findItem(t, snap, "butter")
	if item.Quantity.Amount == nil || *item.Quantity.Amount != 2 {
		t.Errorf("quantity = %v, want 2", item.Quantity)
	}
	if item.Unit != "cups" {
		t.Errorf("unit = %q, want cups (carried from quantity text)", item.Unit)
	}
	if item.Unknown {
		t.Error("numeric edit with unit should clear unknown")
	}
}

func TestOverride_ExplicitUnitBeatsEmbedded(t *testing.T) {
	snap := Build(overrideState(models.Override{
		Quantity: strptr("2 cups"),
		Unit:     strptr("sticks"),
	}), classify)
	item := findItem(t, snap, "butter")
	if item.Unit != "sticks" {
		t.Errorf("unit = %q, want sticks", item.Unit)
	}
}

func TestOverride_FreeTextQuantityStaysUnknown(t *testing.T) {
	snap := Build(overrideState(models.Override{Quantity: strptr("to taste")}), classify)
	item := findItem(t, snap, "butter")
	if !item.Unknown {
		t.Error("free-text edit cannot clear unknown")
	}
	if item.Quantity.Text != "to taste" {
		t.Errorf("quantity text = %q, want %q", item.Quantity.Text, "to taste")
	}
}

func TestOverride_UnitOnlyKeepsCompositeText(t *testing.T) {
	// Editing just the unit must not mangle the composite quantity text.
	snap := Build(overrideState(models.Override{Unit: strptr("g")}), classify)
	item := findItem(t, snap, "butter")
	if item.Quantity.Text == "" {
		t.Fatal("composite text should survive a unit-only edit")
	}
	if item.Unit != "g" {
		t.Errorf("unit = %q, want g", item.Unit)
	}
}

func TestOverride_EmptyQuantityClears(t *testing.T) {
	snap := Build(overrideState(models.Override{Quantity: strptr("")}), classify)
	item := findItem(t, snap, "butter")
	if !item.Quantity.IsZero() {
		t.Errorf("quantity = %v, want cleared", item.Quantity)
	}
}

func TestOverride_NumericQuantityWithoutUnitStaysUnknown(t *testing.T) {
	state := models.ListState{
		Recipes: []models.RecipeEntry{
			{Name: "A", Items: []models.Ingredient{{Name: "parsley"}}},
		},
		Overrides: map[string]models.Override{"parsley": {Quantity: strptr("2")}},
	}
	snap := Build(state, classify)
	item := findItem(t, snap, "parsley")
	if !item.Unknown {
		t.Error("amount without any unit should stay unknown")
	}
}
