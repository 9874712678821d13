package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestionmed/admin-gateway/internal/api/metrics"
	"github.com/gestionmed/admin-gateway/internal/core/ports"
	"github.com/gestionmed/admin-gateway/internal/infrastructure/backend"
)

const (
	defaultWorkers  = 4
	channelBuffer   = 64
	deliveryTimeout = 5 * time.Second
)

// Sender posts a session notice to the backend with an explicit token.
type Sender interface {
	Notify(ctx context.Context, path, token string, payload any) error
}

var _ Sender = (*backend.Client)(nil)

// Notifier delivers session lifecycle events to the backend over a fixed set
// of workers, sharded by account email so events for one account keep their
// order. Delivery is strictly fire-and-forget: Notify never blocks and a
// failed or dropped delivery never affects the local session transition.
type Notifier struct {
	workers []chan ports.SessionEvent
	sender  Sender
	path    string
	log     zerolog.Logger
}

// NewNotifier creates a Notifier with numWorkers sharded workers posting to
// path. If numWorkers <= 0, defaultWorkers is used.
func NewNotifier(numWorkers int, sender Sender, path string, log zerolog.Logger) *Notifier {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	n := &Notifier{
		workers: make([]chan ports.SessionEvent, numWorkers),
		sender:  sender,
		path:    path,
		log:     log,
	}
	for i := range n.workers {
		n.workers[i] = make(chan ports.SessionEvent, channelBuffer)
	}
	return n
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	for i, ch := range n.workers {
		go n.runWorker(ctx, i, ch)
	}
}

// Notify enqueues an event for delivery. When the responsible worker's buffer
// is full the event is dropped with a warning rather than blocking the
// session transition that produced it.
func (n *Notifier) Notify(event ports.SessionEvent) {
	idx := n.shardIndex(event.Email)
	select {
	case n.workers[idx] <- event:
		metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(n.workers[idx])))
	default:
		n.log.Warn().
			Str("kind", string(event.Kind)).
			Str("email", event.Email).
			Msg("notifier queue full, dropping session event")
	}
}

// shardIndex maps an account email deterministically to a worker index.
func (n *Notifier) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(n.workers)
}

func (n *Notifier) runWorker(ctx context.Context, id int, ch <-chan ports.SessionEvent) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotifyQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			n.deliver(ctx, event)
		}
	}
}

func (n *Notifier) deliver(ctx context.Context, event ports.SessionEvent) {
	sendCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	payload := map[string]string{
		"evento": string(event.Kind),
		"email":  event.Email,
		"motivo": event.Reason,
		"fecha":  event.At.Format(time.RFC3339),
	}
	if err := n.sender.Notify(sendCtx, n.path, event.Token, payload); err != nil {
		n.log.Warn().Err(err).
			Str("kind", string(event.Kind)).
			Str("email", event.Email).
			Msg("session event delivery failed")
	}
}
