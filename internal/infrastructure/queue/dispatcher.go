package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher applies plane-counter increments asynchronously. Updates are
// routed to a fixed set of workers by consistent hashing on the owner email,
// so increments for one account are applied in order. The counter is a
// display hint: N submissions settle the counter at +N eventually, not
// within the submitting request.
type Dispatcher struct {
	workers []chan string
	users   ports.UserRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, users ports.UserRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		users:   users,
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

// Enqueue schedules a +1 plane-counter update for the given owner.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(ownerEmail string) {
	d.workers[d.shardIndex(ownerEmail)] <- ownerEmail
}

// shardIndex maps an owner email deterministically to a worker index.
func (d *Dispatcher) shardIndex(ownerEmail string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ownerEmail))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-ch:
			if !ok {
				return
			}
			if err := d.users.IncrementPlaneCount(ctx, email, 1); err != nil {
				d.log.Error().Err(err).
					Str("owner", email).
					Int("worker_id", id).
					Msg("plane counter update failed")
			}
		}
	}
}
