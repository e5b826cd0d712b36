package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/chefassist/marketrun/internal/models"
)

// AddRecipeRequest is the body for POST /list/recipes.
type AddRecipeRequest struct {
	Name        string              `json:"name"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

// Validate rejects the whole payload when any ingredient is malformed, so an
// add is always all-or-nothing.
func (r AddRecipeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Ingredients, validation.Required, validation.Each(validation.By(validIngredient))),
	)
}

func validIngredient(value any) error {
	ing, _ := value.(models.Ingredient)
	return validation.ValidateStruct(&ing,
		validation.Field(&ing.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&ing.Quantity, validation.Length(0, 100)),
		validation.Field(&ing.Unit, validation.Length(0, 100)),
	)
}

// EditItemRequest is the body for PATCH /list/items/{key}. Absent fields are
// left untouched on the item.
type EditItemRequest struct {
	Quantity *string `json:"quantity"`
	Unit     *string `json:"unit"`
	Aisle    *string `json:"aisle"`
}

// Validate requires at least one field to edit.
func (r EditItemRequest) Validate() error {
	if r.Quantity == nil && r.Unit == nil && r.Aisle == nil {
		return validation.NewError("validation_empty_edit",
			"at least one of quantity, unit, aisle must be set")
	}
	return nil
}

func (r EditItemRequest) toOverride() models.Override {
	return models.Override{Quantity: r.Quantity, Unit: r.Unit, Aisle: r.Aisle}
}

// PantryRequest is the body for PUT /list/pantry. An empty list clears the
// pantry.
type PantryRequest struct {
	Items []string `json:"items"`
}

// Validate bounds each pantry entry.
func (r PantryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.Each(validation.Length(1, 200))),
	)
}

// Snapshot is the response payload for every list operation (aliased from the
// domain layer).
type Snapshot = models.Snapshot
