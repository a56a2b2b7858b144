package realtime

import (
	"context"
	"sync"
)

// MemoryBus is an in-process publisher for tests and single-node deploys
// where no redis is configured.
type MemoryBus struct {
	mu     sync.Mutex
	closed bool
	events map[string][]Event
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{events: make(map[string][]Event)}
}

func (b *MemoryBus) Publish(ctx context.Context, channel string, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.events[channel] = append(b.events[channel], event)

	return nil
}

// Events returns a copy of everything published on the channel.
func (b *MemoryBus) Events(channel string) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := make([]Event, len(b.events[channel]))
	copy(events, b.events[channel])

	return events
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true

	return nil
}
