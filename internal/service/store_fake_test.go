package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finbridge/cashkick-service/internal/models"
	"github.com/finbridge/cashkick-service/internal/repository"
)

var errStore = errors.New("store blew up")

// fakeStore is an in-memory repository.Store with switchable failure points.
// Tx snapshots the state and restores it when fn fails, mirroring the
// rollback semantics of the Postgres implementation.
type fakeStore struct {
	users        map[string]*models.User
	cashkicks    []models.Cashkick
	contracts    []models.Contract
	associations []models.CashkickContract
	// joined is the fixture served by ListCashkicksWithContracts; tests set
	// it directly to control pair iteration order.
	joined []models.CashkickWithContracts

	failListCashkicks     bool
	failCreateCashkick    bool
	failCreateAssociation bool
	failDecrementBalance  bool
	failListContracts     bool
	failCreateContract    bool
	failListJoined        bool
	failListUsers         bool
	failCreateUser        bool
	failUpdateUser        bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*models.User)}
}

func (f *fakeStore) clone() *fakeStore {
	c := *f
	c.users = make(map[string]*models.User, len(f.users))
	for id, u := range f.users {
		copied := *u
		c.users[id] = &copied
	}
	c.cashkicks = append([]models.Cashkick(nil), f.cashkicks...)
	c.contracts = append([]models.Contract(nil), f.contracts...)
	c.associations = append([]models.CashkickContract(nil), f.associations...)
	c.joined = append([]models.CashkickWithContracts(nil), f.joined...)
	return &c
}

func (f *fakeStore) Tx(ctx context.Context, fn func(repository.Store) error) error {
	snapshot := f.clone()
	if err := fn(f); err != nil {
		*f = *snapshot
		return err
	}
	return nil
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	if f.failCreateUser {
		return errStore
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.User, error) {
	if f.failListUsers {
		return nil, errStore
	}
	var users []models.User
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeStore) UpdateUser(ctx context.Context, id string, passwordHash *string, creditBalance *float64) error {
	if f.failUpdateUser {
		return errStore
	}
	user, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	if creditBalance != nil {
		user.CreditBalance = *creditBalance
	}
	return nil
}

func (f *fakeStore) DecrementUserBalance(ctx context.Context, id string, amount float64) error {
	if f.failDecrementBalance {
		return errStore
	}
	user, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.CreditBalance -= amount
	return nil
}

func (f *fakeStore) CreateCashkick(ctx context.Context, cashkick *models.Cashkick) error {
	if f.failCreateCashkick {
		return errStore
	}
	if cashkick.ID == "" {
		cashkick.ID = uuid.NewString()
	}
	cashkick.CreatedAt = time.Now()
	f.cashkicks = append(f.cashkicks, *cashkick)
	return nil
}

func (f *fakeStore) ListCashkicksByUser(ctx context.Context, userID string) ([]models.Cashkick, error) {
	if f.failListCashkicks {
		return nil, errStore
	}
	var out []models.Cashkick
	for _, ck := range f.cashkicks {
		if ck.UserID == userID {
			out = append(out, ck)
		}
	}
	return out, nil
}

func (f *fakeStore) ListCashkicksWithContracts(ctx context.Context, userID string) ([]models.CashkickWithContracts, error) {
	if f.failListJoined {
		return nil, errStore
	}
	var out []models.CashkickWithContracts
	for _, ck := range f.joined {
		if ck.UserID == userID {
			out = append(out, ck)
		}
	}
	return out, nil
}

func (f *fakeStore) ListMaturedPendingCashkicks(ctx context.Context, asOf time.Time) ([]models.Cashkick, error) {
	if f.failListCashkicks {
		return nil, errStore
	}
	var out []models.Cashkick
	for _, ck := range f.cashkicks {
		if ck.Status == models.CashkickStatusPending && !ck.Maturity.After(asOf) {
			out = append(out, ck)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateCashkickStatus(ctx context.Context, id string, status models.CashkickStatus) error {
	for i := range f.cashkicks {
		if f.cashkicks[i].ID == id {
			f.cashkicks[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) CreateAssociation(ctx context.Context, assoc *models.CashkickContract) error {
	if f.failCreateAssociation {
		return errStore
	}
	if assoc.ID == "" {
		assoc.ID = uuid.NewString()
	}
	f.associations = append(f.associations, *assoc)
	return nil
}

func (f *fakeStore) FindAssociation(ctx context.Context, cashkickID, contractID string) (*models.CashkickContract, error) {
	for _, assoc := range f.associations {
		if assoc.CashkickID == cashkickID && assoc.ContractID == contractID {
			copied := assoc
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) CreateContract(ctx context.Context, contract *models.Contract) error {
	if f.failCreateContract {
		return errStore
	}
	if contract.ID == "" {
		contract.ID = uuid.NewString()
	}
	contract.CreatedAt = time.Now()
	f.contracts = append(f.contracts, *contract)
	return nil
}

func (f *fakeStore) ListContracts(ctx context.Context) ([]models.Contract, error) {
	if f.failListContracts {
		return nil, errStore
	}
	return append([]models.Contract(nil), f.contracts...), nil
}
