package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

// Count is one distinct value and its number of occurrences.
type Count = interfaces.IngredientCount

// ValueCounts groups values by exact string equality and returns one Count
// per distinct value, sorted by descending count. Equal counts keep the order
// in which their values first appeared.
func ValueCounts(values []string) []Count {
	index := make(map[string]int, len(values))
	counts := make([]Count, 0)
	for _, value := range values {
		if pos, ok := index[value]; ok {
			counts[pos].Count++
			continue
		}
		index[value] = len(counts)
		counts = append(counts, Count{Text: value, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// Write prints one "text: count" line per entry. Every entry is written.
func Write(w io.Writer, counts []Count) error {
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "%s: %d\n", c.Text, c.Count); err != nil {
			return fmt.Errorf("stats write: %w", err)
		}
	}
	return nil
}
