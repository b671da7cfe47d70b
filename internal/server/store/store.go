// Package store holds the GORM repositories of the reference API server.
// All writes stamp the acting username into the audit columns; the stock
// side effects of transactions run inside a single database transaction.
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/KennethTannn98/stockflow-console/pkg/db"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
)

// Store bundles the per-entity repositories over one shared connection.
type Store struct {
	Products     *ProductRepo
	Transactions *TransactionRepo
	Alerts       *AlertRepo
	Users        *UserRepo
	Dashboard    *DashboardRepo
}

// New wires the repositories. The client must be migrated already.
func New(client *db.Client) (*Store, error) {
	if client == nil {
		return nil, errors.New("db client is required")
	}
	return &Store{
		Products:     &ProductRepo{client: client},
		Transactions: &TransactionRepo{client: client},
		Alerts:       &AlertRepo{client: client},
		Users:        &UserRepo{client: client},
		Dashboard:    &DashboardRepo{client: client},
	}, nil
}

// mapReadError converts gorm read failures into typed errors.
func mapReadError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, what+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query "+what)
}
