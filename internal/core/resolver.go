package core

import "strings"

// Fallback display attributes for expenses whose category name no longer
// matches any stored category (deleted or renamed categories orphan their
// references silently).
const (
	DefaultIcon  = "📋"
	DefaultColor = "bg-gray-100"
)

// Resolver maps free-text category names to stored categories. Matching is a
// case-insensitive exact comparison, never an id join. Lookups go through a
// lowercased-name index rather than a scan.
type Resolver struct {
	byName map[string]Category
}

// NewResolver indexes the given categories. When two names differ only by
// case the later entry wins, matching creation-order behavior.
func NewResolver(categories []Category) *Resolver {
	idx := make(map[string]Category, len(categories))
	for _, c := range categories {
		idx[strings.ToLower(c.Name)] = c
	}
	return &Resolver{byName: idx}
}

// Resolve returns the category whose name matches case-insensitively.
// A miss is not an error; callers fall back to DefaultIcon/DefaultColor.
func (r *Resolver) Resolve(name string) (Category, bool) {
	c, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Display returns the icon and color to render for a category name,
// substituting the generic fallback on a miss.
func (r *Resolver) Display(name string) (icon, color string) {
	if c, ok := r.Resolve(name); ok {
		return c.Icon, c.Color
	}
	return DefaultIcon, DefaultColor
}
