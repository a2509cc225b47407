package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/pocketledger/backend/internal/models"
)

// Scheduler runs the periodic maintenance jobs: the hourly budget reset
// sweep and the daily generation of transactions from recurring rules.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
	}
}

// Start registers the jobs and starts the scheduler. Both jobs also run
// once immediately so that work that came due while the backend was down
// is not delayed until the next tick.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@hourly", ResetBudgets)
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc("@daily", GenerateRecurringTransactions)
	if err != nil {
		return err
	}

	ResetBudgets()
	GenerateRecurringTransactions()

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// ResetBudgets advances the reset marker of every budget whose window has
// rolled over since its last reset.
func ResetBudgets() {
	count, err := models.ResetStaleBudgets(models.DB, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Budget reset sweep failed")
		return
	}

	if count > 0 {
		log.Info().Int("count", count).Msg("Budgets reset")
	}
}

// GenerateRecurringTransactions creates the transactions for all recurring
// rules that are due and advances their due dates.
func GenerateRecurringTransactions() {
	count, err := models.GenerateDueTransactions(models.DB, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Generating due recurring transactions failed")
		return
	}

	if count > 0 {
		log.Info().Int("count", count).Msg("Recurring transactions created")
	}
}
