// Package models defines the domain types for Marketrun.
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Ingredient is one raw ingredient line as supplied by a recipe. Quantity is
// free text and may embed the unit ("1 cup"); Unit may itself be free text
// when the recipe has no parseable amount ("a pinch").
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// RecipeEntry is one recipe's raw contribution to a grocery list. The raw
// per-recipe breakdown is the source of truth: the aggregated view is always
// recomputed from it, never mutated in place.
type RecipeEntry struct {
	Name  string       `json:"name"`
	Items []Ingredient `json:"items"`
}

// Override records a manual edit to one aggregated item, keyed by the item's
// normalized key. Nil fields are untouched. Remove hides the item entirely.
// Overrides outlive re-aggregation and are discarded only when the item's last
// contributing recipe leaves the list.
type Override struct {
	Quantity *string `json:"quantity,omitempty"`
	Unit     *string `json:"unit,omitempty"`
	Aisle    *string `json:"aisle,omitempty"`
	Remove   bool    `json:"remove,omitempty"`
}

// ListState is the persisted per-user state a grocery list is derived from.
type ListState struct {
	Recipes   []RecipeEntry       `json:"recipes"`
	Overrides map[string]Override `json:"overrides,omitempty"`
	Pantry    []string            `json:"pantry,omitempty"`
}

// Quantity is a merged amount: a number when every contribution agreed on a
// unit, free text when they could not be merged, absent when nothing was
// parseable. It marshals as a JSON number, string, or null accordingly.
type Quantity struct {
	Amount *float64
	Text   string
}

// NumericQuantity builds a numeric Quantity.
func NumericQuantity(v float64) Quantity {
	return Quantity{Amount: &v}
}

// IsZero reports whether the quantity carries no information.
func (q Quantity) IsZero() bool {
	return q.Amount == nil && q.Text == ""
}

// String renders the quantity for display.
func (q Quantity) String() string {
	if q.Amount != nil {
		return strconv.FormatFloat(*q.Amount, 'f', -1, 64)
	}
	return q.Text
}

// MarshalJSON implements json.Marshaler.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.Amount != nil {
		return json.Marshal(*q.Amount)
	}
	if q.Text != "" {
		return json.Marshal(q.Text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting number, string, or null.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*q = Quantity{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*q = Quantity{Text: text}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*q = Quantity{Amount: &v}
	return nil
}

// GroceryItem is one aggregated line on the shopping list. Items are derived
// state: they exist only while at least one recipe contributes the ingredient.
type GroceryItem struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	Quantity       Quantity `json:"quantity"`
	Unit           string   `json:"unit"`
	Aisle          string   `json:"aisle"`
	Recipes        []string `json:"recipes"`
	Unknown        bool     `json:"unknown"`
	ManualOverride bool     `json:"manual_override"`
}

// Snapshot is the full aggregated view returned by every list operation.
type Snapshot struct {
	Recipes []string      `json:"recipes"`
	Items   []GroceryItem `json:"items"`
}
