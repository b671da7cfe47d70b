package tabular

import "strings"

// Direction orders a sorted column.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

const (
	// DefaultPageSize is the page size of every full-screen table.
	DefaultPageSize = 10
	// WidgetPageSize is the page size of the dashboard low-stock widget.
	WidgetPageSize = 5
)

// FacetAll is the sentinel meaning "match everything" for a categorical
// filter; an empty string means the same.
const FacetAll = "all"

// Sort selects the ordered column. An empty Field preserves input order.
type Sort struct {
	Field     string
	Direction Direction
}

// Page is a zero-based page request over the filtered and sorted set.
type Page struct {
	Index int
	Size  int
}

// State is the user-controlled half of the table pipeline: free-text query,
// categorical facets, sort, and page. Mutating methods implement the reset
// rules the tables rely on, so pagination can never point past the end of a
// freshly narrowed result set.
type State struct {
	Query  string
	Facets map[string]string
	Sort   Sort
	Page   Page
}

// NewState returns an empty state with the given page size.
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		Facets: map[string]string{},
		Page:   Page{Size: pageSize},
	}
}

// SetQuery replaces the free-text query and rewinds to the first page.
func (s *State) SetQuery(query string) {
	if s.Query == query {
		return
	}
	s.Query = query
	s.Page.Index = 0
}

// SetFacet replaces one categorical filter and rewinds to the first page.
func (s *State) SetFacet(name, value string) {
	if s.Facets == nil {
		s.Facets = map[string]string{}
	}
	if s.Facets[name] == value {
		return
	}
	s.Facets[name] = value
	s.Page.Index = 0
}

// ToggleSort sorts by field, flipping direction when the field is already
// the sort key and starting Ascending otherwise. Either way the page rewinds.
func (s *State) ToggleSort(field string) {
	if s.Sort.Field == field {
		if s.Sort.Direction == Ascending {
			s.Sort.Direction = Descending
		} else {
			s.Sort.Direction = Ascending
		}
	} else {
		s.Sort = Sort{Field: field, Direction: Ascending}
	}
	s.Page.Index = 0
}

// ClearSort restores input order.
func (s *State) ClearSort() {
	s.Sort = Sort{}
	s.Page.Index = 0
}

// SetPage requests a page. The index is clamped against the filtered set at
// compute time, so callers may pass any non-negative value.
func (s *State) SetPage(index int) {
	if index < 0 {
		index = 0
	}
	s.Page.Index = index
}

func facetMatchesAll(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, FacetAll)
}
