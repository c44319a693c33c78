package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ecuaforma/simulador-backend/internal/config"
	"github.com/ecuaforma/simulador-backend/internal/model"
	"github.com/ecuaforma/simulador-backend/internal/repository"
)

const (
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second
)

// ResultWorker drains scored quiz attempts from the Redis queue and persists
// them in batches. Finalize already answered the candidate by the time a
// payload lands here, so persistence failures never surface to them — bad
// rows are requeued and retried.
type ResultWorker struct {
	resultRepo *repository.ResultRepository
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewResultWorker creates a new ResultWorker.
func NewResultWorker(resultRepo *repository.ResultRepository, rdb *redis.Client, log zerolog.Logger) *ResultWorker {
	return &ResultWorker{
		resultRepo: resultRepo,
		rdb:        rdb,
		log:        log.With().Str("component", "result_worker").Logger(),
	}
}

// Start runs the worker loop until the context is cancelled, flushing any
// remaining batch on shutdown.
func (w *ResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultWorker started")

	batch := make([]model.Result, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var res model.Result
			if err := json.Unmarshal([]byte(item[1]), &res); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, res)
		}
	}
}

// flushSafe tries the bulk insert first and falls back to per-row inserts so
// that one malformed row cannot sink a whole batch. Rows that still fail are
// requeued.
func (w *ResultWorker) flushSafe(ctx context.Context, batch []model.Result) {
	if len(batch) == 0 {
		return
	}

	if err := w.resultRepo.BulkInsert(ctx, batch); err != nil {
		w.log.Warn().Err(err).Int("batch", len(batch)).Msg("Bulk result insert failed, using fallback")

		for i := range batch {
			if err := w.resultRepo.Insert(ctx, &batch[i]); err != nil {
				w.log.Error().Err(err).Msg("Single result insert failed — requeueing")
				raw, _ := json.Marshal(batch[i])
				w.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
			}
		}
		return
	}

	w.log.Debug().Int("batch", len(batch)).Msg("Results persisted")
}
