package round

import (
	"context"
	"fmt"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

// lossSettlementJob records a lost round on the ledger. Its outcome never
// changes the round, so failures are only logged by the worker pool. The
// request is submitted without the pool's deadline: a signer may take as long
// as it needs.
type lossSettlementJob struct {
	settler Settler
	request domain.SettlementRequest
}

func (j *lossSettlementJob) Name() string {
	return JobNameLossSettlement
}

func (j *lossSettlementJob) Process(ctx context.Context) error {
	res := j.settler.Settle(context.WithoutCancel(ctx), j.request)
	if res.Outcome != domain.SettlementSettled {
		return fmt.Errorf("round %s: %s: %w", j.request.RoundID, res.Outcome, res.Err)
	}
	logger.FromContext(ctx).Info(LogMsgLossSettled, "round_id", j.request.RoundID, "tx_id", res.TxID)
	return nil
}

// syncQueue runs each job on the caller's goroutine. It stands in when no pool
// is wired, so no background work outlives the call.
type syncQueue struct{}

func (syncQueue) Enqueue(job worker.Job) error {
	if err := job.Process(context.Background()); err != nil {
		name := fmt.Sprintf("%T", job)
		if n, ok := job.(worker.Named); ok {
			name = n.Name()
		}
		logger.Warn(LogMsgInlineJobFailed, "job", name, "error", err)
	}
	return nil
}
