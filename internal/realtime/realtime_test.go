package realtime

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryBusPublish(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), "company:org-1:jobs", Event{Type: "job.created"})
	require.NoError(t, err)
	err = bus.Publish(context.Background(), "company:org-1:jobs", Event{Type: "job.updated"})
	require.NoError(t, err)

	events := bus.Events("company:org-1:jobs")
	require.Len(t, events, 2)
	require.Equal(t, "job.created", events[0].Type)
	require.Equal(t, "job.updated", events[1].Type)
	require.Empty(t, bus.Events("company:org-2:jobs"))
}

func TestMemoryBusClosedDropsSilently(t *testing.T) {
	bus := NewMemoryBus()
	require.NoError(t, bus.Close())

	require.NoError(t, bus.Publish(context.Background(), "marketplace:new_job", Event{Type: "job.posted"}))
	require.Empty(t, bus.Events("marketplace:new_job"))
}

type failingPublisher struct{}

func (failingPublisher) Publish(ctx context.Context, channel string, event Event) error {
	return errors.New("broker down")
}

func (failingPublisher) Close() error { return nil }

func TestEmitterSwallowsPublishErrors(t *testing.T) {
	emitter := NewEmitter(failingPublisher{}, zap.NewNop())

	require.NotPanics(t, func() {
		emitter.Emit("company:org-1:bids", Event{Type: "bid.received"})
	})
}

func TestChannelKind(t *testing.T) {
	require.Equal(t, "company:jobs", channelKind("company:org-1:jobs"))
	require.Equal(t, "janitor:assignments", channelKind("janitor:worker-1:assignments"))
	require.Equal(t, "marketplace:new_job", channelKind("marketplace:new_job"))
}

func TestChannelNames(t *testing.T) {
	require.Equal(t, "company:org-1:jobs", CompanyJobsChannel("org-1"))
	require.Equal(t, "company:org-1:bids", CompanyBidsChannel("org-1"))
	require.Equal(t, "janitor:worker-1:assignments", WorkerAssignmentsChannel("worker-1"))
	require.Equal(t, "user:u-1:messages", UserMessagesChannel("u-1"))
	require.Equal(t, "marketplace:new_job", MarketplaceChannel)
}
