package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// QueuePriceAlerts is the Redis list the HTTP layer pushes alert jobs onto.
const QueuePriceAlerts = "jobs:price-alerts"

const (
	JobTypePriceAlert = "price_alert"

	popTimeout = 5 * time.Second
)

type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues background jobs from request handlers.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) EnqueuePriceAlert(ctx context.Context, payload PriceAlertPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job, err := json.Marshal(Job{Type: JobTypePriceAlert, Payload: raw})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueuePriceAlerts, job).Err()
}

// Handlers groups the processors the pool can route jobs to.
type Handlers struct {
	PriceAlert *PriceAlertWorker
}

// StartPool launches numWorkers goroutines that block-pop jobs from the queue
// until ctx is cancelled.
func StartPool(ctx context.Context, rdb *redis.Client, handlers Handlers, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Int("workers", numWorkers).Msg("worker pool started")
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers Handlers, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := rdb.BRPop(ctx, popTimeout, QueuePriceAlerts).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Error().Err(err).Int("worker", id).Msg("queue pop failed")
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [key, value].
		if len(res) < 2 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			log.Error().Err(err).Int("worker", id).Msg("malformed job dropped")
			continue
		}

		switch job.Type {
		case JobTypePriceAlert:
			if handlers.PriceAlert == nil {
				log.Warn().Int("worker", id).Msg("no price alert handler configured")
				continue
			}
			if err := handlers.PriceAlert.Process(ctx, job.Payload); err != nil {
				log.Error().Err(err).Int("worker", id).Msg("price alert job failed")
			}
		default:
			log.Warn().Str("type", job.Type).Int("worker", id).Msg("unknown job type dropped")
		}
	}
}
