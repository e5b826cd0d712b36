package ingredient

import "strings"

// unitSynonyms folds spelling variants onto one canonical token. Folding is
// used for comparison only; display keeps the recipe's original spelling.
// No cross-unit conversion happens here: "cup" and "tbsp" stay distinct.
var unitSynonyms = map[string]string{
	"g":           "g",
	"gram":        "g",
	"grams":       "g",
	"kg":          "kg",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"mg":          "mg",
	"milligram":   "mg",
	"milligrams":  "mg",
	"ml":          "ml",
	"milliliter":  "ml",
	"milliliters": "ml",
	"l":           "l",
	"liter":       "l",
	"liters":      "l",
	"litre":       "l",
	"litres":      "l",
	"cup":         "cup",
	"cups":        "cup",
	"tbsp":        "tbsp",
	"tbsps":       "tbsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tsp":         "tsp",
	"tsps":        "tsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"oz":          "oz",
	"ounce":       "oz",
	"ounces":      "oz",
	"lb":          "lb",
	"lbs":         "lb",
	"pound":       "lb",
	"pounds":      "lb",
	"clove":       "clove",
	"cloves":      "clove",
	"can":         "can",
	"cans":        "can",
	"slice":       "slice",
	"slices":      "slice",
	"piece":       "piece",
	"pieces":      "piece",
	"bunch":       "bunch",
	"bunches":     "bunch",
	"pinch":       "pinch",
	"pinches":     "pinch",
}

// CanonicalUnit returns the canonical form of a unit token. Unknown units
// pass through lowercased and trimmed, so two recipes writing the same
// unusual unit still merge.
func CanonicalUnit(u string) string {
	t := strings.ToLower(strings.TrimSpace(u))
	if c, ok := unitSynonyms[t]; ok {
		return c
	}
	return t
}

// SameUnit reports whether two unit spellings refer to the same unit.
func SameUnit(a, b string) bool {
	return CanonicalUnit(a) == CanonicalUnit(b)
}
