package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/remessa/remessa/internal/refdata"
)

// warmupConcurrency bounds the per-bank fan-out.
const warmupConcurrency = 4

// RefDataWarmupJob warms the bank and account-type lookup cache so that
// beneficiary validation rarely touches Postgres for reference data.
type RefDataWarmupJob struct {
	RefData *refdata.Service
	Logger  *slog.Logger
}

// NewRefDataWarmupJob wires dependencies for the warmup handler.
func NewRefDataWarmupJob(refData *refdata.Service, logger *slog.Logger) *RefDataWarmupJob {
	return &RefDataWarmupJob{RefData: refData, Logger: logger}
}

// Handle processes cache warmup tasks.
func (j *RefDataWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.RefData == nil {
		return errors.New("refdata warmup: handler not configured")
	}
	var payload RefDataWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	bankIDs := payload.BankIDs
	if len(bankIDs) == 0 {
		banks, err := j.RefData.ListBanks(ctx)
		if err != nil {
			return err
		}
		for _, b := range banks {
			bankIDs = append(bankIDs, b.ID)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(warmupConcurrency)
	for _, bankID := range bankIDs {
		bankID := bankID
		g.Go(func() error {
			if err := j.RefData.WarmCache(ctx, bankID); err != nil {
				j.logger().Warn("warm bank cache", slog.String("bank_id", bankID), slog.Any("error", err))
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	j.logger().Info("refdata cache warmed", slog.Int("banks", len(bankIDs)))
	return nil
}

func (j *RefDataWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
