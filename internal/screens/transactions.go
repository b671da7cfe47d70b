package screens

import (
	"context"
	"strconv"

	"github.com/KennethTannn98/stockflow-console/internal/cache"
	"github.com/KennethTannn98/stockflow-console/internal/client"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
	"github.com/KennethTannn98/stockflow-console/pkg/tabular"
)

// TransactionFacetType filters the table by movement type.
const TransactionFacetType = "type"

// TransactionDraft is the create and correction form. The date must be a
// real calendar day no later than today.
type TransactionDraft struct {
	ProductID int         `json:"productId" validate:"gt=0"`
	Quantity  int         `json:"quantity" validate:"gt=0"`
	Type      string      `json:"transactionType" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Reference string      `json:"reference" validate:"required"`
	Date      models.Date `json:"transactionDate"`
}

// validateTransactionDraft layers the date rule on top of the tag checks.
func validateTransactionDraft(draft TransactionDraft) error {
	err := validateDraft(draft)
	switch {
	case draft.Date.IsZero():
		err = withFieldError(err, "transactionDate", "is required")
	case draft.Date.After(models.Today()):
		err = withFieldError(err, "transactionDate", "must not be in the future")
	}
	return err
}

// Transactions is the stock movement history screen. Movements are a
// ledger: edits and deletes exist for corrections only, so both demand an
// explicit confirmation on top of the open dialog.
type Transactions struct {
	*Table[models.Transaction]
	api *client.Client
}

// NewTransactions builds the transactions screen.
func NewTransactions(api *client.Client, store cache.Store, log *logger.Logger) *Transactions {
	view := tabular.NewView[models.Transaction]().
		SearchText(
			func(t models.Transaction) string { return t.ProductName },
			func(t models.Transaction) string { return t.ProductSKU },
			func(t models.Transaction) string { return t.Reference },
		).
		Facet(TransactionFacetType, func(t models.Transaction) string { return t.Type.String() }).
		SortField("date", tabular.ByOrdered(func(t models.Transaction) string { return t.Date.String() })).
		SortField("quantity", tabular.ByOrdered(func(t models.Transaction) int { return t.Quantity })).
		SortField("product", tabular.ByText(func(t models.Transaction) string { return t.ProductName })).
		SortField("type", tabular.ByOrdered(func(t models.Transaction) string { return t.Type.String() }))

	screen := &Transactions{api: api}
	screen.Table = NewTable(view, tabular.DefaultPageSize, store,
		cache.EntityKey(cache.EntityTransactions), api.ListTransactions, log)
	return screen
}

// historyKey caches the movement history of one product.
func historyKey(productID int) cache.Key {
	return cache.ScopedKey(cache.EntityTransactions, "product:"+strconv.Itoa(productID))
}

// mutationKeys covers every read a stock movement can change: the movement
// list itself, the mutated product's history, product quantities,
// auto-raised alerts, and the dashboard.
func (s *Transactions) mutationKeys(productID int, extra ...cache.Key) []cache.Key {
	keys := []cache.Key{
		cache.EntityKey(cache.EntityTransactions),
		cache.EntityKey(cache.EntityProducts),
		cache.EntityKey(cache.EntityAlerts),
	}
	if productID > 0 {
		keys = append(keys, historyKey(productID))
	}
	keys = append(keys, extra...)
	return append(keys, dashboardKeys()...)
}

// Create validates the draft and records a stock movement.
func (s *Transactions) Create(ctx context.Context, draft TransactionDraft) (*models.Transaction, error) {
	if err := validateTransactionDraft(draft); err != nil {
		return nil, err
	}

	var created *models.Transaction
	err := s.runMutation(ctx, s.mutationKeys(draft.ProductID), func(ctx context.Context) error {
		transaction, err := s.api.CreateTransaction(ctx, transactionInput(draft))
		created = transaction
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update corrects a movement. It refuses to run without confirmed set.
func (s *Transactions) Update(ctx context.Context, id int, draft TransactionDraft, confirmed bool) (*models.Transaction, error) {
	if !confirmed {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "correcting a transaction requires confirmation")
	}
	if err := s.requireDialog(DialogEdit, id); err != nil {
		return nil, err
	}
	if err := validateTransactionDraft(draft); err != nil {
		return nil, err
	}

	// A correction never moves to another product, so the draft's product
	// names the one history that changes.
	keys := s.mutationKeys(draft.ProductID, cache.RecordKey(cache.EntityTransactions, id))
	var updated *models.Transaction
	err := s.runMutation(ctx, keys, func(ctx context.Context) error {
		transaction, err := s.api.UpdateTransaction(ctx, id, transactionInput(draft))
		updated = transaction
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a movement. It refuses to run without confirmed set.
func (s *Transactions) Delete(ctx context.Context, id int, confirmed bool) error {
	if !confirmed {
		return pkgerrors.New(pkgerrors.CodeValidation, "deleting a transaction requires confirmation")
	}
	if err := s.requireDialog(DialogConfirmDelete, id); err != nil {
		return err
	}

	// The movement being deleted names the product whose history goes stale.
	transaction, err := s.api.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	keys := s.mutationKeys(transaction.ProductID, cache.RecordKey(cache.EntityTransactions, id))
	return s.runMutation(ctx, keys, func(ctx context.Context) error {
		return s.api.DeleteTransaction(ctx, id)
	})
}

// History returns the movement history of one product, cache-backed. Any
// mutation touching the product's movements invalidates the key.
func (s *Transactions) History(ctx context.Context, productID int) ([]models.Transaction, error) {
	return cache.Fetch(ctx, s.store, historyKey(productID), func(ctx context.Context) ([]models.Transaction, error) {
		return s.api.ListTransactionsByProduct(ctx, productID)
	})
}

func transactionInput(draft TransactionDraft) client.TransactionInput {
	return client.TransactionInput{
		ProductID: draft.ProductID,
		Quantity:  draft.Quantity,
		Type:      enums.TransactionType(draft.Type),
		Reference: draft.Reference,
		Date:      draft.Date,
	}
}
