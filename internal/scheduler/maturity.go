package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/finbridge/cashkick-service/internal/models"
	"github.com/finbridge/cashkick-service/internal/repository"
)

// Notifier delivers the approval notice to the cashkick owner
type Notifier interface {
	SendCashkickApproved(to, username, cashkickName string, maturity time.Time, totalReceived float64) error
}

// MaturityScheduler periodically approves pending cashkicks whose maturity
// date has passed and notifies their owners. It never touches balances;
// financing is settled at creation time.
type MaturityScheduler struct {
	store    repository.Store
	notifier Notifier
	log      *logrus.Logger
	cron     *cron.Cron
}

// NewMaturityScheduler initializes a new maturity scheduler
func NewMaturityScheduler(store repository.Store, notifier Notifier, log *logrus.Logger) *MaturityScheduler {
	return &MaturityScheduler{
		store:    store,
		notifier: notifier,
		log:      log,
		cron:     cron.New(),
	}
}

// Start registers the job with the given cron spec and starts the scheduler
func (s *MaturityScheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.Run); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Maturity scheduler started (%s)", spec)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *MaturityScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Run executes one approval pass. Failures are logged and the affected
// cashkicks are retried on the next tick.
func (s *MaturityScheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cashkicks, err := s.store.ListMaturedPendingCashkicks(ctx, time.Now())
	if err != nil {
		s.log.Errorf("Failed to list matured cashkicks: %v", err)
		return
	}

	for _, ck := range cashkicks {
		if err := s.store.UpdateCashkickStatus(ctx, ck.ID, models.CashkickStatusApproved); err != nil {
			s.log.Errorf("Failed to approve cashkick %s: %v", ck.ID, err)
			continue
		}
		s.log.Infof("Cashkick %s approved at maturity", ck.ID)

		if s.notifier == nil {
			continue
		}
		user, err := s.store.FindUserByID(ctx, ck.UserID)
		if err != nil {
			s.log.Errorf("Failed to fetch owner of cashkick %s: %v", ck.ID, err)
			continue
		}
		if err := s.notifier.SendCashkickApproved(user.Email, user.Name, ck.Name, ck.Maturity, ck.TotalReceived); err != nil {
			s.log.Errorf("Failed to notify user %s: %v", user.ID, err)
		}
	}
}
