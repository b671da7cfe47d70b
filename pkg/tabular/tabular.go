// Package tabular is the table pipeline shared by every screen: given the
// full record list and the user-controlled state, it filters, stable-sorts,
// and paginates, in that order. It is a pure function of its inputs; the
// same records and state always produce the same page.
package tabular

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// View describes how one entity type is searched, faceted, and sorted. Build
// it once per screen and reuse it for every Compute call.
type View[T any] struct {
	texts  []func(T) string
	facets map[string]func(T) string
	fields map[string]func(a, b T) int
}

// NewView returns an empty view definition.
func NewView[T any]() *View[T] {
	return &View[T]{
		facets: map[string]func(T) string{},
		fields: map[string]func(a, b T) int{},
	}
}

// SearchText registers the fields the free-text query matches against. A
// record matches when any registered field contains the query.
func (v *View[T]) SearchText(accessors ...func(T) string) *View[T] {
	v.texts = append(v.texts, accessors...)
	return v
}

// Facet registers a named categorical filter.
func (v *View[T]) Facet(name string, accessor func(T) string) *View[T] {
	v.facets[name] = accessor
	return v
}

// SortField registers a named sortable column with its comparison.
func (v *View[T]) SortField(name string, compare func(a, b T) int) *View[T] {
	v.fields[name] = compare
	return v
}

// Result is the exact slice to render plus the paging facts around it.
type Result[T any] struct {
	Rows       []T
	TotalRows  int
	TotalPages int
	PageIndex  int
}

// Compute runs filter, then sort, then paginate. Sorting happens over the
// whole filtered set so page boundaries reflect the final order; the sort is
// stable so records equal on the key keep their input order and repeated
// renders paginate identically. The page index clamps to the last valid
// page, and an empty result is still page 1 of 1.
func (v *View[T]) Compute(records []T, state State) Result[T] {
	filtered := v.filter(records, state)

	if compare, ok := v.fields[state.Sort.Field]; ok && state.Sort.Field != "" {
		if state.Sort.Direction == Descending {
			inner := compare
			compare = func(a, b T) int { return -inner(a, b) }
		}
		slices.SortStableFunc(filtered, compare)
	}

	size := state.Page.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	totalRows := len(filtered)
	totalPages := (totalRows + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	index := state.Page.Index
	if index < 0 {
		index = 0
	}
	if index > totalPages-1 {
		index = totalPages - 1
	}

	start := index * size
	end := start + size
	if start > totalRows {
		start = totalRows
	}
	if end > totalRows {
		end = totalRows
	}

	return Result[T]{
		Rows:       filtered[start:end],
		TotalRows:  totalRows,
		TotalPages: totalPages,
		PageIndex:  index,
	}
}

func (v *View[T]) filter(records []T, state State) []T {
	query := strings.ToLower(strings.TrimSpace(state.Query))

	out := make([]T, 0, len(records))
	for _, record := range records {
		if query != "" && !v.matchesQuery(record, query) {
			continue
		}
		if !v.matchesFacets(record, state.Facets) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func (v *View[T]) matchesQuery(record T, query string) bool {
	for _, accessor := range v.texts {
		if strings.Contains(strings.ToLower(accessor(record)), query) {
			return true
		}
	}
	return false
}

func (v *View[T]) matchesFacets(record T, facets map[string]string) bool {
	for name, want := range facets {
		if facetMatchesAll(want) {
			continue
		}
		accessor, ok := v.facets[name]
		if !ok {
			continue
		}
		if accessor(record) != want {
			return false
		}
	}
	return true
}

// The pipeline runs on a single goroutine per screen, so one shared
// collator is fine.
var textCollator = collate.New(language.Und, collate.Loose)

// ByText compares a string field with locale-aware collation.
func ByText[T any](accessor func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return textCollator.CompareString(accessor(a), accessor(b))
	}
}

// ByOrdered compares any ordered field (ints, floats, plain strings).
func ByOrdered[T any, K cmp.Ordered](accessor func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(accessor(a), accessor(b))
	}
}

// ByDecimal compares a decimal field numerically.
func ByDecimal[T any](accessor func(T) decimal.Decimal) func(a, b T) int {
	return func(a, b T) int {
		return accessor(a).Cmp(accessor(b))
	}
}

// ByTime compares a timestamp field chronologically.
func ByTime[T any](accessor func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		return accessor(a).Compare(accessor(b))
	}
}
