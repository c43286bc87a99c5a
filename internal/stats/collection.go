package stats

import "slices"

// Collection accumulates ingredient text across recipes. Values are only
// appended; duplicates are kept so they can be counted.
type Collection struct {
	files  []string
	values []string
}

// Add records one ingredient occurrence.
func (c *Collection) Add(text string) {
	c.values = append(c.values, text)
}

// Visit records a recipe path that contributed to the collection.
func (c *Collection) Visit(path string) {
	c.files = append(c.files, path)
}

// Len returns the number of occurrences recorded.
func (c *Collection) Len() int {
	return len(c.values)
}

// Values returns a copy of every recorded occurrence in insertion order.
func (c *Collection) Values() []string {
	return slices.Clone(c.values)
}

// Files returns the visited recipe paths in visit order.
func (c *Collection) Files() []string {
	return slices.Clone(c.files)
}

// Counts computes the value counts of the collection.
func (c *Collection) Counts() []Count {
	return ValueCounts(c.values)
}
