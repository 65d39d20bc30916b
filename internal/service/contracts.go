package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/finbridge/cashkick-service/internal/models"
	"github.com/finbridge/cashkick-service/internal/repository"
)

// ContractService reconstructs per-user contract views and handles bulk
// contract creation.
type ContractService struct {
	store repository.Store
	log   *logrus.Logger
}

// NewContractService initializes a new contract service
func NewContractService(store repository.Store, log *logrus.Logger) *ContractService {
	return &ContractService{store: store, log: log}
}

// ContractsForUser returns the deduplicated contracts reachable from the
// user's cashkicks, each carrying the financed amount of the first
// association encountered. Duplicate policy is first-wins: a contract
// financed by several cashkicks keeps the figure from whichever pairing
// store iteration yields first. An empty userID returns the full contract
// catalog without financing attached.
func (s *ContractService) ContractsForUser(ctx context.Context, userID string) ([]models.ContractView, error) {
	if userID == "" {
		contracts, err := s.store.ListContracts(ctx)
		if err != nil {
			s.log.Errorf("Failed to list contracts: %v", err)
			return nil, ErrContractFetch
		}
		views := make([]models.ContractView, 0, len(contracts))
		for _, c := range contracts {
			views = append(views, models.ContractView{Contract: c})
		}
		return views, nil
	}

	cashkicks, err := s.store.ListCashkicksWithContracts(ctx, userID)
	if err != nil {
		s.log.Errorf("Failed to list cashkicks with contracts for user %s: %v", userID, err)
		return nil, ErrContractFetch
	}

	seen := make(map[string]bool)
	views := []models.ContractView{}
	for _, ck := range cashkicks {
		for _, contract := range ck.Contracts {
			if seen[contract.ID] {
				continue
			}
			assoc, err := s.store.FindAssociation(ctx, ck.ID, contract.ID)
			if errors.Is(err, repository.ErrNotFound) {
				// Inconsistent pair without an association row; skip it.
				continue
			}
			if err != nil {
				s.log.Errorf("Failed to find association (%s, %s): %v", ck.ID, contract.ID, err)
				return nil, ErrContractFetch
			}
			seen[contract.ID] = true
			totalFinanced := assoc.TotalFinanced
			views = append(views, models.ContractView{Contract: contract, TotalFinanced: &totalFinanced})
		}
	}
	return views, nil
}

// CreateContracts inserts the given contracts one by one. Any failure
// surfaces as a single aggregate error without reporting which contracts
// were created.
func (s *ContractService) CreateContracts(ctx context.Context, inputs []models.ContractInput) error {
	for _, in := range inputs {
		contract := &models.Contract{
			Name:          in.Name,
			Status:        in.Status,
			Type:          in.Type,
			PerPayment:    in.PerPayment,
			TermLength:    in.TermLength,
			PaymentAmount: in.PaymentAmount,
		}
		if err := s.store.CreateContract(ctx, contract); err != nil {
			s.log.Errorf("Failed to create contract %q: %v", in.Name, err)
			return ErrContractCreate
		}
	}
	s.log.Infof("Created %d contracts", len(inputs))
	return nil
}
