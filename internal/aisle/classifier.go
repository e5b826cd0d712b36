// Package aisle maps normalized ingredient names to shopping-aisle categories.
package aisle

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultAisle is returned when no rule matches.
const DefaultAisle = "Other"

// Rule maps a keyword to an aisle. Rules are ordered; the first keyword
// contained in the ingredient key wins, so more specific keywords must come
// before the general ones they contain ("tomato paste" before "tomato").
type Rule struct {
	Keyword string `yaml:"keyword"`
	Aisle   string `yaml:"aisle"`
}

// Classifier holds an ordered keyword rule table. Safe for concurrent use;
// LoadFile swaps the table atomically so in-flight lookups are unaffected.
type Classifier struct {
	mu    sync.RWMutex
	rules []Rule
}

// New creates a classifier with the given rule table.
func New(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// NewDefault creates a classifier with the built-in rule table.
func NewDefault() *Classifier {
	return New(defaultRules())
}

// Classify returns the aisle for a normalized ingredient key. Deterministic
// and total: unmatched keys fall back to DefaultAisle.
func (c *Classifier) Classify(key string) string {
	key = strings.ToLower(key)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.rules {
		if strings.Contains(key, r.Keyword) {
			return r.Aisle
		}
	}
	return DefaultAisle
}

// Len returns the number of active rules.
func (c *Classifier) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}

// LoadFile replaces the rule table with the contents of a YAML rules file
// (a list of {keyword, aisle} entries). Entries with an empty keyword or
// aisle are dropped; keywords are lowercased.
func (c *Classifier) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("aisle: read rules file: %w", err)
	}
	var raw []Rule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("aisle: parse rules file: %w", err)
	}
	rules := make([]Rule, 0, len(raw))
	for _, r := range raw {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		aisle := strings.TrimSpace(r.Aisle)
		if kw == "" || aisle == "" {
			continue
		}
		rules = append(rules, Rule{Keyword: kw, Aisle: aisle})
	}
	if len(rules) == 0 {
		return fmt.Errorf("aisle: rules file %s has no usable rules", path)
	}
	c.mu.Lock()
	c.rules = rules
	c.mu.Unlock()
	return nil
}
