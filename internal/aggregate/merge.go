package aggregate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chefassist/marketrun/internal/ingredient"
	"github.com/chefassist/marketrun/internal/models"
)

// reduce folds one item's contributions into a merged quantity.
//
// Contributions are grouped by canonical unit and summed within each group.
// A single unit group with no free text and no missing quantities is the
// clean case: a numeric quantity in the first-seen unit spelling. Anything
// else cannot be merged numerically, so the result is flagged unknown and
// every fragment is kept in the quantity text for the shopper to resolve.
// Fragments are emitted in a sorted, input-order-independent sequence so the
// merge result depends only on the multiset of contributions.
func reduce(acc *itemAccum) models.GroceryItem {
	type unitSum struct {
		unit    string // canonical
		display string // first-seen spelling
		total   float64
	}
	var sums []unitSum
	idx := make(map[string]int)
	var freeTexts []string
	missing := false

	for _, p := range acc.contribs {
		if p.Amount == nil {
			if p.Raw == "" {
				missing = true
			} else {
				freeTexts = append(freeTexts, p.Raw)
			}
			continue
		}
		i, ok := idx[p.Unit]
		if !ok {
			i = len(sums)
			idx[p.Unit] = i
			sums = append(sums, unitSum{unit: p.Unit, display: p.DisplayUnit})
		}
		sums[i].total += *p.Amount
	}

	item := models.GroceryItem{
		Key:     acc.key,
		Name:    acc.name,
		Recipes: append([]string{}, acc.recipes...),
	}

	switch {
	case len(sums) == 1 && len(freeTexts) == 0 && !missing:
		item.Quantity = models.NumericQuantity(sums[0].total)
		item.Unit = sums[0].display

	case len(sums) == 0 && len(freeTexts) == 0:
		// No quantity information at all.
		item.Unknown = true

	default:
		item.Unknown = true
		fragments := make([]string, 0, len(sums)+len(freeTexts))
		sort.Slice(sums, func(i, j int) bool { return sums[i].unit < sums[j].unit })
		for _, s := range sums {
			fragments = append(fragments, formatAmount(s.total, s.display))
		}
		texts := append([]string{}, freeTexts...)
		sort.Strings(texts)
		fragments = append(fragments, texts...)
		item.Quantity = models.Quantity{Text: strings.Join(fragments, " + ")}
	}
	return item
}

// applyOverride applies a manual edit on top of the merged item. Edited
// fields replace the merged values directly; the unknown flag is cleared only
// when the edit leaves the item with a numeric amount and a unit.
func applyOverride(item *models.GroceryItem, ov models.Override) {
	item.ManualOverride = true
	if ov.Aisle != nil && strings.TrimSpace(*ov.Aisle) != "" {
		item.Aisle = strings.TrimSpace(*ov.Aisle)
	}
	if ov.Unit != nil {
		item.Unit = strings.TrimSpace(*ov.Unit)
	}
	if ov.Quantity != nil {
		q := strings.TrimSpace(*ov.Quantity)
		p := ingredient.Parse(q, "")
		switch {
		case q == "":
			item.Quantity = models.Quantity{}
		case p.Amount != nil:
			item.Quantity = models.Quantity{Amount: p.Amount}
			// "2 cups" in the quantity field carries the unit along,
			// unless the edit set the unit explicitly.
			if p.DisplayUnit != "" && ov.Unit == nil {
				item.Unit = p.DisplayUnit
			}
		default:
			item.Quantity = models.Quantity{Text: q}
		}
	}
	if item.Quantity.Amount != nil && item.Unit != "" {
		item.Unknown = false
	}
}

func formatAmount(v float64, displayUnit string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if displayUnit == "" {
		return s
	}
	return s + " " + displayUnit
}
