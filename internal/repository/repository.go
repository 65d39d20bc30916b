package repository

import (
	"context"
	"errors"
	"time"

	"github.com/finbridge/cashkick-service/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store captures the persistence operations the services depend on.
// The Postgres implementation lives in this package; tests substitute fakes.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, passwordHash *string, creditBalance *float64) error
	// DecrementUserBalance applies a relative balance update so concurrent
	// financings of the same user serialize at the row level.
	DecrementUserBalance(ctx context.Context, id string, amount float64) error

	CreateCashkick(ctx context.Context, cashkick *models.Cashkick) error
	ListCashkicksByUser(ctx context.Context, userID string) ([]models.Cashkick, error)
	ListCashkicksWithContracts(ctx context.Context, userID string) ([]models.CashkickWithContracts, error)
	ListMaturedPendingCashkicks(ctx context.Context, asOf time.Time) ([]models.Cashkick, error)
	UpdateCashkickStatus(ctx context.Context, id string, status models.CashkickStatus) error

	CreateAssociation(ctx context.Context, assoc *models.CashkickContract) error
	FindAssociation(ctx context.Context, cashkickID, contractID string) (*models.CashkickContract, error)

	CreateContract(ctx context.Context, contract *models.Contract) error
	ListContracts(ctx context.Context) ([]models.Contract, error)

	// Tx runs fn against a transactional view of the store, committing when
	// fn returns nil and rolling back otherwise.
	Tx(ctx context.Context, fn func(Store) error) error
}
