package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/codecohort/alumni-directory/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Reconciler rebuilds the alumni set of a single cohort.
type Reconciler interface {
	Reconcile(ctx context.Context, cohortID string) (bool, error)
}

// CohortSource lists every cohort id for a full sweep.
type CohortSource interface {
	CohortIDs(ctx context.Context) ([]string, error)
}

// Dispatcher routes cohort ids to a fixed set of workers using consistent
// hashing, so a cohort is never reconciled by two workers at once.
type Dispatcher struct {
	workers    []chan string
	reconciler Reconciler
	log        zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, reconciler Reconciler, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:    make([]chan string, numWorkers),
		reconciler: reconciler,
		log:        log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a cohort to its worker without blocking. When the worker is
// saturated the id is dropped; the next sweep covers it.
func (d *Dispatcher) Enqueue(cohortID string) {
	idx := d.shardIndex(cohortID)
	select {
	case d.workers[idx] <- cohortID:
		metrics.ReconcileQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("cohort_id", cohortID).Int("worker_id", idx).Msg("reconcile queue full, dropping cohort")
	}
}

// EnqueueBatch enqueues multiple cohorts.
func (d *Dispatcher) EnqueueBatch(cohortIDs []string) {
	for _, id := range cohortIDs {
		d.Enqueue(id)
	}
}

// Sweep enqueues every cohort from source once per interval until ctx is
// cancelled.
func (d *Dispatcher) Sweep(ctx context.Context, interval time.Duration, source CohortSource) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ids, err := source.CohortIDs(ctx)
			if err != nil {
				d.log.Error().Err(err).Msg("reconcile sweep: list cohorts failed")
				continue
			}
			d.EnqueueBatch(ids)
		}
	}
}

// shardIndex maps a cohort id deterministically to a worker index.
func (d *Dispatcher) shardIndex(cohortID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(cohortID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case cohortID, ok := <-ch:
			if !ok {
				return
			}
			metrics.ReconcileQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			corrected, err := d.reconciler.Reconcile(ctx, cohortID)
			if err != nil {
				metrics.ReconcileDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
				d.log.Error().Err(err).
					Str("cohort_id", cohortID).
					Int("worker_id", id).
					Msg("cohort reconciliation failed")
				continue
			}
			metrics.ReconcileDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
			if corrected {
				d.log.Info().Str("cohort_id", cohortID).Int("worker_id", id).Msg("cohort alumni corrected")
			}
		}
	}
}
