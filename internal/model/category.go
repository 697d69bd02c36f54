package model

// Category represents a named bucket expenses can be tagged with.
// The name is the primary key and is compared case-sensitively.
type Category struct {
	Name string
}

// DefaultCategories are seeded on first run.
var DefaultCategories = []string{
	"Food",
	"Transport",
	"Rent",
	"Utilities",
	"Entertainment",
	"Other",
}

// CategoryNames flattens a category slice into its names.
func CategoryNames(categories []Category) []string {
	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		names = append(names, cat.Name)
	}
	return names
}
