package tabular

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name     string
	Category string
	Qty      int
	Seq      int
}

func testView() *View[row] {
	return NewView[row]().
		SearchText(func(r row) string { return r.Name }).
		Facet("category", func(r row) string { return r.Category }).
		SortField("name", ByText(func(r row) string { return r.Name })).
		SortField("qty", ByOrdered(func(r row) int { return r.Qty }))
}

func sampleRows() []row {
	return []row{
		{Name: "Widget", Category: "tools", Qty: 5, Seq: 0},
		{Name: "Gadget", Category: "tools", Qty: 2, Seq: 1},
		{Name: "Grommet", Category: "parts", Qty: 5, Seq: 2},
		{Name: "Washer", Category: "parts", Qty: 0, Seq: 3},
		{Name: "widget pro", Category: "tools", Qty: 9, Seq: 4},
	}
}

func TestFilterTextIsCaseInsensitiveSubstring(t *testing.T) {
	view := testView()
	state := NewState(DefaultPageSize)
	state.SetQuery("WIDG")

	result := view.Compute(sampleRows(), state)
	require.Len(t, result.Rows, 2)
	for _, r := range result.Rows {
		assert.Contains(t, strings.ToLower(r.Name), "widg")
	}
}

func TestFilterFacetAndTextAreConjunctive(t *testing.T) {
	view := testView()
	state := NewState(DefaultPageSize)
	state.SetQuery("g")
	state.SetFacet("category", "parts")

	result := view.Compute(sampleRows(), state)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Grommet", result.Rows[0].Name)
}

func TestFilterSentinelMatchesEverything(t *testing.T) {
	view := testView()
	for _, sentinel := range []string{"", "all", "All", "  ALL  "} {
		state := NewState(DefaultPageSize)
		state.SetFacet("category", sentinel)
		result := view.Compute(sampleRows(), state)
		assert.Equal(t, len(sampleRows()), result.TotalRows, "sentinel %q", sentinel)
	}
}

func TestFilterSoundnessAndCompleteness(t *testing.T) {
	view := testView()
	records := sampleRows()
	state := NewState(100)
	state.SetQuery("e")

	result := view.Compute(records, state)

	// Every returned row satisfies the predicate and came from the input.
	for _, r := range result.Rows {
		assert.Contains(t, strings.ToLower(r.Name), "e")
		assert.Contains(t, records, r)
	}
	// Every input row satisfying the predicate is present.
	want := 0
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), "e") {
			want++
		}
	}
	assert.Equal(t, want, result.TotalRows)
}

func TestSortAscendingAndDescending(t *testing.T) {
	view := testView()
	state := NewState(DefaultPageSize)
	state.ToggleSort("qty")

	result := view.Compute(sampleRows(), state)
	for i := 1; i < len(result.Rows); i++ {
		assert.LessOrEqual(t, result.Rows[i-1].Qty, result.Rows[i].Qty)
	}

	state.ToggleSort("qty")
	result = view.Compute(sampleRows(), state)
	for i := 1; i < len(result.Rows); i++ {
		assert.GreaterOrEqual(t, result.Rows[i-1].Qty, result.Rows[i].Qty)
	}
}

func TestSortIsStable(t *testing.T) {
	view := testView()
	state := NewState(DefaultPageSize)
	state.ToggleSort("qty")

	result := view.Compute(sampleRows(), state)

	// Widget (seq 0) and Grommet (seq 2) share qty 5 and must keep their
	// relative input order.
	var fives []int
	for _, r := range result.Rows {
		if r.Qty == 5 {
			fives = append(fives, r.Seq)
		}
	}
	require.Equal(t, []int{0, 2}, fives)
}

func TestUnknownSortFieldPreservesInputOrder(t *testing.T) {
	view := testView()
	state := NewState(DefaultPageSize)
	state.Sort = Sort{Field: "nope", Direction: Ascending}

	result := view.Compute(sampleRows(), state)
	for i, r := range result.Rows {
		assert.Equal(t, i, r.Seq)
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	view := testView()
	records := sampleRows()
	state := NewState(DefaultPageSize)
	state.ToggleSort("qty")

	view.Compute(records, state)
	for i, r := range records {
		assert.Equal(t, i, r.Seq)
	}
}

func TestPaginationBoundaries(t *testing.T) {
	view := NewView[row]().SortField("seq", ByOrdered(func(r row) int { return r.Seq }))
	records := make([]row, 23)
	for i := range records {
		records[i] = row{Seq: i}
	}

	state := NewState(10)
	state.ToggleSort("seq")

	page0 := view.Compute(records, state)
	require.Equal(t, 3, page0.TotalPages)
	require.Len(t, page0.Rows, 10)
	assert.Equal(t, 0, page0.Rows[0].Seq)
	assert.Equal(t, 9, page0.Rows[9].Seq)

	state.SetPage(2)
	page2 := view.Compute(records, state)
	require.Len(t, page2.Rows, 3)
	assert.Equal(t, 20, page2.Rows[0].Seq)
	assert.Equal(t, 22, page2.Rows[2].Seq)
}

func TestPageIndexClampsToLastPage(t *testing.T) {
	view := testView()
	records := sampleRows()

	last := NewState(2)
	last.SetPage(2) // 5 rows, size 2 -> pages 0..2

	for _, requested := range []int{2, 3, 10, 1000} {
		state := NewState(2)
		state.SetPage(requested)
		result := view.Compute(records, state)
		assert.Equal(t, 2, result.PageIndex, "requested %d", requested)
		assert.Equal(t, view.Compute(records, last).Rows, result.Rows, "requested %d", requested)
	}
}

func TestTotalPagesFormula(t *testing.T) {
	view := NewView[row]()
	tests := []struct {
		count, size, pages int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{23, 10, 3},
		{5, 5, 1},
		{6, 5, 2},
	}
	for _, tt := range tests {
		records := make([]row, tt.count)
		state := NewState(tt.size)
		result := view.Compute(records, state)
		assert.Equal(t, tt.pages, result.TotalPages, "count=%d size=%d", tt.count, tt.size)
	}
}

func TestEmptyInputIsPageOneOfOne(t *testing.T) {
	view := testView()
	result := view.Compute(nil, NewState(DefaultPageSize))
	assert.Empty(t, result.Rows)
	assert.Equal(t, 0, result.TotalRows)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 0, result.PageIndex)
}

func TestComputeIsIdempotent(t *testing.T) {
	view := testView()
	records := sampleRows()
	state := NewState(2)
	state.SetQuery("g")
	state.ToggleSort("name")
	state.SetPage(1)

	first := view.Compute(records, state)
	second := view.Compute(records, state)
	assert.Equal(t, first, second)
}

func TestQueryChangeResetsPage(t *testing.T) {
	state := NewState(10)
	state.SetPage(4)
	state.SetQuery("abc")
	assert.Equal(t, 0, state.Page.Index)

	// Setting the same query again keeps the page.
	state.SetPage(2)
	state.SetQuery("abc")
	assert.Equal(t, 2, state.Page.Index)
}

func TestFacetChangeResetsPage(t *testing.T) {
	state := NewState(10)
	state.SetPage(4)
	state.SetFacet("category", "tools")
	assert.Equal(t, 0, state.Page.Index)

	state.SetPage(3)
	state.SetFacet("category", "tools")
	assert.Equal(t, 3, state.Page.Index, "unchanged facet keeps the page")
}

func TestToggleSortSemantics(t *testing.T) {
	state := NewState(10)

	state.ToggleSort("name")
	assert.Equal(t, Sort{Field: "name", Direction: Ascending}, state.Sort)

	state.ToggleSort("name")
	assert.Equal(t, Sort{Field: "name", Direction: Descending}, state.Sort)

	state.ToggleSort("name")
	assert.Equal(t, Sort{Field: "name", Direction: Ascending}, state.Sort)

	// New field starts ascending regardless of the previous direction.
	state.ToggleSort("name")
	state.SetPage(3)
	state.ToggleSort("qty")
	assert.Equal(t, Sort{Field: "qty", Direction: Ascending}, state.Sort)
	assert.Equal(t, 0, state.Page.Index)
}

func TestLocaleAwareTextSort(t *testing.T) {
	view := NewView[row]().SortField("name", ByText(func(r row) string { return r.Name }))
	records := []row{
		{Name: "zebra"},
		{Name: "Apple"},
		{Name: "apple"},
		{Name: "Éclair"},
		{Name: "banana"},
	}
	state := NewState(DefaultPageSize)
	state.ToggleSort("name")

	result := view.Compute(records, state)
	names := make([]string, len(result.Rows))
	for i, r := range result.Rows {
		names[i] = r.Name
	}
	// Collation folds case and diacritics: éclair lands between banana and
	// zebra instead of after them.
	assert.Equal(t, []string{"Apple", "apple", "banana", "Éclair", "zebra"}, names)
}

func TestManyPagesScenario(t *testing.T) {
	view := NewView[row]().SortField("seq", ByOrdered(func(r row) int { return r.Seq }))
	records := make([]row, 101)
	for i := range records {
		records[i] = row{Seq: i, Name: fmt.Sprintf("row-%03d", i)}
	}
	state := NewState(10)
	result := view.Compute(records, state)
	assert.Equal(t, 11, result.TotalPages)

	state.SetPage(10)
	result = view.Compute(records, state)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 100, result.Rows[0].Seq)
}
