// Package ingredient canonicalizes raw recipe ingredients into comparable form.
package ingredient

import (
	"strconv"
	"strings"
)

// Key canonicalizes an ingredient name into its list identity: lowercase,
// trimmed, inner whitespace collapsed. Plural forms are kept as-is, so "egg"
// and "eggs" stay separate keys; folding them would risk false merges.
func Key(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Parsed is the machine-readable form of one raw quantity/unit pair.
type Parsed struct {
	Amount      *float64 // nil when no leading number could be parsed
	Unit        string   // canonical unit token, empty when Amount is nil
	DisplayUnit string   // unit as the recipe spelled it
	Raw         string   // full original text, kept for unmergeable display
}

// Parse splits a quantity/unit pair into an amount and a unit. The quantity
// string may embed the unit ("1 cup") or carry a separate unit field
// ("2" + "cloves"); both forms compose to the same parse. A quantity with no
// leading number ("a pinch") yields a nil Amount with the whole text in Raw.
// Parse never fails: malformed input degrades to free text.
func Parse(quantity, unit string) Parsed {
	raw := strings.TrimSpace(strings.TrimSpace(quantity) + " " + strings.TrimSpace(unit))
	if raw == "" {
		return Parsed{}
	}
	fields := strings.Fields(strings.ToLower(raw))
	amount, rest := parseAmount(fields)
	if amount == nil {
		return Parsed{Raw: raw}
	}
	display := strings.Join(rest, " ")
	return Parsed{
		Amount:      amount,
		Unit:        CanonicalUnit(display),
		DisplayUnit: display,
		Raw:         raw,
	}
}

// parseAmount consumes the leading numeric tokens of fields. Plain numbers,
// decimals, fractions ("3/4"), and mixed numbers ("1 1/2") are supported.
func parseAmount(fields []string) (*float64, []string) {
	if len(fields) == 0 {
		return nil, fields
	}
	v, ok := parseNumberToken(fields[0])
	if !ok {
		return nil, fields
	}
	n := 1
	if len(fields) > 1 && strings.Contains(fields[1], "/") {
		if frac, ok := parseNumberToken(fields[1]); ok {
			v += frac
			n = 2
		}
	}
	return &v, fields[n:]
}

func parseNumberToken(tok string) (float64, bool) {
	if num, den, ok := strings.Cut(tok, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
