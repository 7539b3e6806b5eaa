package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/medimeet/booking-api/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Store abstracts the view-cache backend (Redis).
type Store interface {
	Invalidate(ctx context.Context, path string) error
}

// Dispatcher fans view invalidations out to a fixed set of workers using
// consistent hashing on the path, so repeated busts of the same view stay
// ordered and the request path never blocks on Redis. It implements
// ports.ViewInvalidator.
type Dispatcher struct {
	workers []chan string
	store   Store
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store Store, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
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

// Invalidate sends a path to the worker responsible for it. The call is
// non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Invalidate(path string) {
	i := d.shardIndex(path)
	d.workers[i] <- path
	metrics.ViewInvalidationQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a path deterministically to a worker index.
func (d *Dispatcher) shardIndex(path string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-ch:
			if !ok {
				return
			}
			if err := d.store.Invalidate(ctx, path); err != nil {
				d.log.Warn().Err(err).
					Str("path", path).
					Int("worker_id", id).
					Msg("view invalidation failed")
			}
			metrics.ViewInvalidationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		}
	}
}
