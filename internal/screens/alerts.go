package screens

import (
	"context"
	"time"

	"github.com/KennethTannn98/stockflow-console/internal/cache"
	"github.com/KennethTannn98/stockflow-console/internal/client"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
	"github.com/KennethTannn98/stockflow-console/pkg/tabular"
)

// Alert facet values for the resolved state.
const (
	AlertFacetResolved = "resolved"

	AlertStateOpen     = "open"
	AlertStateResolved = "resolved"
)

// AlertDraft is the create form for raising an alert by hand.
type AlertDraft struct {
	ProductID int `json:"productId" validate:"gt=0"`
}

// Alerts is the low-stock alert screen. Alerts are toggled resolved or
// reopened, never edited in place.
type Alerts struct {
	*Table[models.Alert]
	api *client.Client
}

// NewAlerts builds the alerts screen.
func NewAlerts(api *client.Client, store cache.Store, log *logger.Logger) *Alerts {
	view := tabular.NewView[models.Alert]().
		SearchText(
			func(a models.Alert) string { return a.ProductName },
			func(a models.Alert) string { return a.ProductSKU },
		).
		Facet(AlertFacetResolved, func(a models.Alert) string {
			if a.Resolved {
				return AlertStateResolved
			}
			return AlertStateOpen
		}).
		SortField("createdDate", tabular.ByTime(func(a models.Alert) time.Time { return a.CreatedDate })).
		SortField("product", tabular.ByText(func(a models.Alert) string { return a.ProductName }))

	screen := &Alerts{api: api}
	screen.Table = NewTable(view, tabular.DefaultPageSize, store,
		cache.EntityKey(cache.EntityAlerts), api.ListAlerts, log)
	return screen
}

// Create validates the draft and raises an alert for a product.
func (s *Alerts) Create(ctx context.Context, draft AlertDraft) (*models.Alert, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	keys := append([]cache.Key{cache.EntityKey(cache.EntityAlerts)}, dashboardKeys()...)
	var created *models.Alert
	err := s.runMutation(ctx, keys, func(ctx context.Context) error {
		alert, err := s.api.CreateAlert(ctx, client.AlertCreate{ProductID: draft.ProductID})
		created = alert
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SetResolved flips the resolved flag in one call. It is not a dialog
// flow; the server stamps the updated-by audit fields.
func (s *Alerts) SetResolved(ctx context.Context, id int, resolved bool) (*models.Alert, error) {
	// Resolving or reopening moves the open-alert counter on the dashboard.
	keys := append([]cache.Key{
		cache.EntityKey(cache.EntityAlerts),
		cache.RecordKey(cache.EntityAlerts, id),
	}, dashboardKeys()...)
	var updated *models.Alert
	err := s.runMutation(ctx, keys, func(ctx context.Context) error {
		alert, err := s.api.UpdateAlert(ctx, id, client.AlertUpdate{Resolved: resolved})
		updated = alert
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the alert the open confirmation dialog points at.
func (s *Alerts) Delete(ctx context.Context, id int) error {
	if err := s.requireDialog(DialogConfirmDelete, id); err != nil {
		return err
	}

	keys := append([]cache.Key{
		cache.EntityKey(cache.EntityAlerts),
		cache.RecordKey(cache.EntityAlerts, id),
	}, dashboardKeys()...)
	return s.runMutation(ctx, keys, func(ctx context.Context) error {
		return s.api.DeleteAlert(ctx, id)
	})
}
