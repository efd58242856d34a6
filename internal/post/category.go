package post

import (
	"fmt"
	"strings"
)

// Category classifies a post. The set is fixed: every generation run
// produces at most one post per category.
type Category string

const (
	// CategoryAll is the filter sentinel, never stored on a post.
	CategoryAll Category = "All"

	ArtificialIntelligence Category = "Artificial Intelligence"
	Cybersecurity          Category = "Cybersecurity"
	Space                  Category = "Space"
	Robotics               Category = "Robotics"
	ClimateTech            Category = "Climate Tech"
	Biotech                Category = "Biotech"
)

// Categories returns the post categories in canonical order, without
// the "All" sentinel.
func Categories() []Category {
	return []Category{ArtificialIntelligence, Cybersecurity, Space, Robotics, ClimateTech, Biotech}
}

// ValidCategory reports whether name is a known post category.
func ValidCategory(name string) bool {
	for _, c := range Categories() {
		if string(c) == name {
			return true
		}
	}
	return false
}

// categoryAliases maps short CLI flags to full category names.
var categoryAliases = map[string]Category{
	"ai":       ArtificialIntelligence,
	"security": Cybersecurity,
	"space":    Space,
	"robotics": Robotics,
	"climate":  ClimateTech,
	"biotech":  Biotech,
	"all":      CategoryAll,
}

// ResolveAlias maps a CLI alias or full category name to a Category.
func ResolveAlias(alias string) (Category, error) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	if cat, ok := categoryAliases[alias]; ok {
		return cat, nil
	}
	for _, cat := range Categories() {
		if strings.EqualFold(string(cat), alias) {
			return cat, nil
		}
	}
	valid := make([]string, 0, len(categoryAliases))
	for k := range categoryAliases {
		valid = append(valid, k)
	}
	return "", fmt.Errorf("unknown category %q (valid: %s)", alias, strings.Join(valid, ", "))
}
