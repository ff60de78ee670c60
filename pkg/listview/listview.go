// Package listview implements the in-memory projection the list screens
// share: free-text search OR-combined across designated fields, discrete
// filters AND-combined, and a single-column sort with a toggling direction.
// Derivation is pure; it never mutates the source collection and always
// recomputes from scratch.
package listview

import (
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction of a column sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec names the active sort column and direction.
type SortSpec struct {
	Key       string
	Direction Direction
}

// Toggle applies the column-header click law: clicking the active column
// flips asc↔desc, clicking a new column resets to asc.
func Toggle(cur SortSpec, key string) SortSpec {
	if cur.Key == key && cur.Direction == Asc {
		return SortSpec{Key: key, Direction: Desc}
	}
	return SortSpec{Key: key, Direction: Asc}
}

// Comparator orders two elements; negative means a before b.
type Comparator[T any] func(a, b T) int

// Query describes one derivation over a source collection.
type Query[T any] struct {
	// Search is matched case-insensitively as a substring against every
	// SearchFields extractor; any hit keeps the element.
	Search       string
	SearchFields []func(T) string

	// Filters are AND-combined with each other and with the search match.
	Filters []func(T) bool

	Sort        SortSpec
	Comparators map[string]Comparator[T]
}

// Derive produces the filtered, sorted projection. The result is a fresh
// slice; src is left untouched. Equal elements keep their source order so
// repeated derivation with the same arguments is identical.
func Derive[T any](src []T, q Query[T]) []T {
	out := make([]T, 0, len(src))
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	for _, item := range src {
		if needle != "" && !matchesSearch(item, needle, q.SearchFields) {
			continue
		}
		keep := true
		for _, f := range q.Filters {
			if !f(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}

	if cmp, ok := q.Comparators[q.Sort.Key]; ok {
		sort.SliceStable(out, func(i, j int) bool {
			c := cmp(out[i], out[j])
			if q.Sort.Direction == Desc {
				return c > 0
			}
			return c < 0
		})
	}

	return out
}

func matchesSearch[T any](item T, needle string, fields []func(T) string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f(item)), needle) {
			return true
		}
	}
	return false
}

// The collator buffers state between calls, so comparisons are serialized.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English, collate.Loose)
)

func compareStrings(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// ByString builds a locale-aware comparator from a string extractor.
// Missing values extract as "" and sort first ascending.
func ByString[T any](f func(T) string) Comparator[T] {
	return func(a, b T) int {
		return compareStrings(f(a), f(b))
	}
}

// ByNumber builds a comparator from a numeric extractor.
func ByNumber[T any](f func(T) float64) Comparator[T] {
	return func(a, b T) int {
		av, bv := f(a), f(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}
}

// ByTime builds a comparator from a time extractor. Extractors should return
// the zero time for missing values, which orders them as the epoch rather
// than failing.
func ByTime[T any](f func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		av, bv := f(a), f(b)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		default:
			return 0
		}
	}
}
