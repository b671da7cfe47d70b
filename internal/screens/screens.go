// Package screens holds the view-model layer of the console: one table
// engine per entity wrapping the tabular pipeline, the query cache, and the
// mutation flows with their dialog and in-flight rules.
package screens

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/KennethTannn98/stockflow-console/internal/cache"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/tabular"
)

// DialogMode is the open dialog of a screen, if any.
type DialogMode string

const (
	DialogNone          DialogMode = ""
	DialogCreate        DialogMode = "create"
	DialogEdit          DialogMode = "edit"
	DialogConfirmDelete DialogMode = "confirm-delete"
)

// Table is the generic screen engine: it owns the tabular view and state
// for one entity, reads through the query cache, and serializes mutations.
type Table[T any] struct {
	view  *tabular.View[T]
	store cache.Store
	key   cache.Key
	fetch func(context.Context) ([]T, error)
	log   *logger.Logger

	mu       sync.Mutex
	state    tabular.State
	dialog   DialogMode
	selected int
	inFlight bool
}

// NewTable wires a screen engine. fetch loads the full record list; reads
// go through store under key when a store is present.
func NewTable[T any](view *tabular.View[T], pageSize int, store cache.Store, key cache.Key, fetch func(context.Context) ([]T, error), log *logger.Logger) *Table[T] {
	return &Table[T]{
		view:  view,
		store: store,
		key:   key,
		fetch: fetch,
		log:   log,
		state: tabular.NewState(pageSize),
	}
}

// Rows loads the record list (cache first) and computes the current page.
func (t *Table[T]) Rows(ctx context.Context) (tabular.Result[T], error) {
	records, err := cache.Fetch(ctx, t.store, t.key, t.fetch)
	if err != nil {
		return tabular.Result[T]{}, err
	}

	t.mu.Lock()
	state := t.state
	t.mu.Unlock()
	return t.view.Compute(records, state), nil
}

// State returns a copy of the current table state.
func (t *Table[T]) State() tabular.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Search replaces the free-text query.
func (t *Table[T]) Search(query string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.SetQuery(query)
}

// Filter sets one categorical facet.
func (t *Table[T]) Filter(name, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.SetFacet(name, value)
}

// ToggleSort sorts by field or flips its direction.
func (t *Table[T]) ToggleSort(field string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.ToggleSort(field)
}

// ClearSort restores input order.
func (t *Table[T]) ClearSort() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.ClearSort()
}

// GoToPage requests a page of the filtered set.
func (t *Table[T]) GoToPage(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.SetPage(index)
}

// Dialog returns the open dialog mode and the selected record ID.
func (t *Table[T]) Dialog() (DialogMode, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dialog, t.selected
}

// OpenCreate opens the create dialog.
func (t *Table[T]) OpenCreate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dialog = DialogCreate
	t.selected = 0
}

// OpenEdit opens the edit dialog for one record.
func (t *Table[T]) OpenEdit(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dialog = DialogEdit
	t.selected = id
}

// OpenConfirmDelete opens the delete confirmation for one record.
func (t *Table[T]) OpenConfirmDelete(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dialog = DialogConfirmDelete
	t.selected = id
}

// CloseDialog dismisses any open dialog.
func (t *Table[T]) CloseDialog() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dialog = DialogNone
	t.selected = 0
}

// requireDialog checks that the expected dialog is open for the record.
func (t *Table[T]) requireDialog(mode DialogMode, id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dialog != mode || t.selected != id {
		return pkgerrors.New(pkgerrors.CodeConflict, "no open dialog for this record")
	}
	return nil
}

// runMutation serializes one write flow. A second submission while one is
// in flight is rejected with a conflict. On success the listed cache keys
// are invalidated and the dialog closes; on failure the dialog stays open
// so the user can correct and retry.
func (t *Table[T]) runMutation(ctx context.Context, invalidate []cache.Key, op func(context.Context) error) error {
	t.mu.Lock()
	if t.inFlight {
		t.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeConflict, "another change is still in flight")
	}
	t.inFlight = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.inFlight = false
		t.mu.Unlock()
	}()

	if err := op(ctx); err != nil {
		return err
	}

	t.invalidateKeys(ctx, invalidate)

	t.mu.Lock()
	t.dialog = DialogNone
	t.selected = 0
	t.mu.Unlock()
	return nil
}

// invalidateKeys drops the stale read keys. Failures leave stale cache
// entries behind, which the TTL bounds; they never fail the mutation.
func (t *Table[T]) invalidateKeys(ctx context.Context, keys []cache.Key) {
	if t.store == nil || len(keys) == 0 {
		return
	}
	var combined error
	for _, key := range keys {
		combined = multierr.Append(combined, t.store.Invalidate(ctx, key))
	}
	if combined != nil && t.log != nil {
		t.log.Error(ctx, "cache invalidation failed", combined)
	}
}

// dashboardKeys lists the dashboard reads a stock-affecting mutation makes stale.
func dashboardKeys() []cache.Key {
	return []cache.Key{
		cache.ScopedKey(cache.EntityDashboard, "stats"),
		cache.ScopedKey(cache.EntityDashboard, "monthly"),
		cache.ScopedKey(cache.EntityDashboard, "lowstocks"),
		cache.ScopedKey(cache.EntityDashboard, "todays"),
	}
}
