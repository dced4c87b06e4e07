package worker

import (
	"context"
	"fmt"
	"time"

	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/domain/port/persistence"
	purchaseUseCase "github.com/propstake/token-ledger/internal/domain/usecase/purchase"
	"github.com/robfig/cron/v3"
)

// SettlementWorker polls for pending deferred-settlement purchases and
// settles the ones whose confirmation delay has elapsed. Settlement state
// lives in the ledger, so purchases created before a restart are picked up
// by the next poll.
type SettlementWorker struct {
	purchaseService   *purchaseUseCase.Service
	transactionRepo   persistence.TransactionRepository
	timeProvider      coreport.TimeProvider
	logger            coreport.Logger
	pollInterval      time.Duration
	confirmationDelay time.Duration
	batchSize         int
	scheduler         *cron.Cron
}

// NewSettlementWorker creates a new settlement worker
func NewSettlementWorker(
	purchaseService *purchaseUseCase.Service,
	transactionRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	pollInterval time.Duration,
	confirmationDelay time.Duration,
	batchSize int,
) *SettlementWorker {
	return &SettlementWorker{
		purchaseService:   purchaseService,
		transactionRepo:   transactionRepo,
		timeProvider:      timeProvider,
		logger:            logger,
		pollInterval:      pollInterval,
		confirmationDelay: confirmationDelay,
		batchSize:         batchSize,
		scheduler:         cron.New(),
	}
}

// Start schedules the poller and returns immediately
func (w *SettlementWorker) Start() error {
	spec := fmt.Sprintf("@every %s", w.pollInterval)
	if _, err := w.scheduler.AddFunc(spec, w.runOnce); err != nil {
		return fmt.Errorf("failed to schedule settlement poller: %w", err)
	}

	w.scheduler.Start()
	w.logger.Info("Settlement worker started", map[string]any{
		"poll_interval":      w.pollInterval.String(),
		"confirmation_delay": w.confirmationDelay.String(),
		"batch_size":         w.batchSize,
	})
	return nil
}

// Stop halts the poller and waits for any in-flight run to finish
func (w *SettlementWorker) Stop() {
	ctx := w.scheduler.Stop()
	<-ctx.Done()
	w.logger.Info("Settlement worker stopped", nil)
}

// runOnce settles one batch of matured pending purchases
func (w *SettlementWorker) runOnce() {
	ctx, cancel := w.timeProvider.WithTimeout(context.Background(), w.pollInterval)
	defer cancel()

	cutoff := w.timeProvider.Now().Add(-w.confirmationDelay)
	pending, err := w.transactionRepo.ListPendingDeferred(ctx, cutoff, w.batchSize)
	if err != nil {
		w.logger.Error("Settlement poll failed", map[string]any{
			"error": err.Error(),
		})
		return
	}
	if len(pending) == 0 {
		return
	}

	settled := 0
	for i := range pending {
		if err := w.purchaseService.Settle(ctx, pending[i].ID); err != nil {
			w.logger.Error("Failed to settle transaction", map[string]any{
				"transaction_id": pending[i].ID,
				"error":          err.Error(),
			})
			continue
		}
		settled++
	}

	w.logger.Info("Settlement batch processed", map[string]any{
		"candidates": len(pending),
		"settled":    settled,
	})
}
