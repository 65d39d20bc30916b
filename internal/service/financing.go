package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/finbridge/cashkick-service/internal/models"
	"github.com/finbridge/cashkick-service/internal/repository"
)

// FinancingService turns raw advance requests into persisted financial
// records and computes per-user financing views.
type FinancingService struct {
	store repository.Store
	log   *logrus.Logger
}

// NewFinancingService initializes a new financing service
func NewFinancingService(store repository.Store, log *logrus.Logger) *FinancingService {
	return &FinancingService{store: store, log: log}
}

// UserCashkicks returns the user's cashkicks, each enriched with the total
// financed amount: the received amount plus the markup from the user's rate.
func (s *FinancingService) UserCashkicks(ctx context.Context, userID string) ([]models.UserCashkick, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		s.log.Errorf("Failed to fetch user %s: %v", userID, err)
		return nil, ErrCashkickFetch
	}

	cashkicks, err := s.store.ListCashkicksByUser(ctx, userID)
	if err != nil {
		s.log.Errorf("Failed to fetch cashkicks for user %s: %v", userID, err)
		return nil, ErrCashkickFetch
	}

	views := make([]models.UserCashkick, 0, len(cashkicks))
	for _, ck := range cashkicks {
		totalFinanced := ck.TotalReceived + ck.TotalReceived*(float64(user.Rate)/100)
		views = append(views, models.UserCashkick{Cashkick: ck, TotalFinanced: totalFinanced})
	}
	return views, nil
}

// CreateCashkick persists a new cashkick for the user. When contracts are
// given, the markup totalReceived*(rate/100) is split evenly across them as
// association rows and deducted from the user's credit balance; with no
// contracts the balance is untouched. The whole sequence runs in one
// transaction.
func (s *FinancingService) CreateCashkick(ctx context.Context, input models.CashkickInput) (*models.Cashkick, error) {
	user, err := s.store.FindUserByID(ctx, input.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		s.log.Errorf("Failed to fetch user %s: %v", input.UserID, err)
		return nil, ErrCashkickCreate
	}

	cashkick := &models.Cashkick{
		Name:          input.Name,
		Status:        input.Status,
		Maturity:      input.Maturity,
		TotalReceived: input.TotalReceived,
		UserID:        user.ID,
	}

	err = s.store.Tx(ctx, func(tx repository.Store) error {
		if err := tx.CreateCashkick(ctx, cashkick); err != nil {
			return err
		}
		if len(input.ContractIDs) == 0 {
			return nil
		}

		totalFinanced := input.TotalReceived * (float64(user.Rate) / 100)
		perContract := totalFinanced / float64(len(input.ContractIDs))
		for _, contractID := range input.ContractIDs {
			assoc := &models.CashkickContract{
				CashkickID:    cashkick.ID,
				ContractID:    contractID,
				TotalFinanced: perContract,
			}
			if err := tx.CreateAssociation(ctx, assoc); err != nil {
				return err
			}
		}
		return tx.DecrementUserBalance(ctx, user.ID, totalFinanced)
	})
	if err != nil {
		s.log.Errorf("Failed to create cashkick for user %s: %v", user.ID, err)
		return nil, ErrCashkickCreate
	}

	s.log.Infof("Cashkick %s created for user %s (%d contracts)", cashkick.ID, user.ID, len(input.ContractIDs))
	return cashkick, nil
}
