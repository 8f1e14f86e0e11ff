// Package eventbus fans out shift-report entries to a Redis Pub/Sub channel
// for external dashboards. It is a fire-and-forget side channel: nothing the
// controller does waits on it, and a nil *Bus is valid and simply drops
// every publish.
package eventbus

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/holla2040/boilerctl/internal/shiftreport"
)

// Option configures a Bus.
type Option func(*Bus)

// WithChannel overrides the default Pub/Sub channel name.
func WithChannel(name string) Option {
	return func(b *Bus) { b.channel = name }
}

// WithTimeout overrides the per-publish Redis call timeout (default 2s).
func WithTimeout(d time.Duration) Option {
	return func(b *Bus) { b.timeout = d }
}

// Bus publishes shiftreport.Entry values as JSON to a Redis channel.
type Bus struct {
	rdb     *redis.Client
	channel string
	timeout time.Duration
}

// New creates a Bus publishing to "boiler:events" by default.
func New(rdb *redis.Client, opts ...Option) *Bus {
	b := &Bus{
		rdb:     rdb,
		channel: "boiler:events",
		timeout: 2 * time.Second,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Publish marshals entry and fires it at the Redis channel, logging a
// warning rather than returning an error: a dropped dashboard update must
// never slow down or fail a control cycle.
func (b *Bus) Publish(entry shiftreport.Entry) {
	if b == nil || b.rdb == nil {
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		log.Printf("eventbus: marshal entry: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		log.Printf("eventbus: publish to %s: %v", b.channel, err)
	}
}
