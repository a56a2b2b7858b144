package realtime

import (
	"context"
	"strings"
	"time"

	"cleaning-marketplace-api/internal/metrics"

	"go.uber.org/zap"
)

// publishTimeout bounds every emit; the business transaction has already
// committed by the time an event is published, so delivery is best-effort.
const publishTimeout = 3 * time.Second

// Event is the payload published on every channel.
type Event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Publisher is the transport behind the emitter. Implementations must not
// retain the payload after returning.
type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
	Close() error
}

// Emitter is what the services hold. Emit never fails and never blocks past
// the publish timeout; a lost event is acceptable, a failed business
// operation is not.
type Emitter struct {
	publisher Publisher
	logger    *zap.Logger
}

func NewEmitter(publisher Publisher, logger *zap.Logger) *Emitter {
	return &Emitter{publisher: publisher, logger: logger}
}

func (e *Emitter) Emit(channel string, event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := e.publisher.Publish(ctx, channel, event); err != nil {
		e.logger.Debug("realtime publish dropped",
			zap.String("channel", channel),
			zap.String("type", event.Type),
			zap.Error(err))
		return
	}

	metrics.ObserveEvent(channelKind(channel))
}

// channelKind strips the per-entity ids so the metric cardinality stays flat.
func channelKind(channel string) string {
	parts := strings.Split(channel, ":")
	if len(parts) == 3 {
		return parts[0] + ":" + parts[2]
	}

	return channel
}

// Channel name helpers. The channel encodes the scoping, mirroring what
// subscribers listen on.

func CompanyJobsChannel(orgId string) string {
	return "company:" + orgId + ":jobs"
}

func CompanyBidsChannel(orgId string) string {
	return "company:" + orgId + ":bids"
}

func WorkerAssignmentsChannel(workerId string) string {
	return "janitor:" + workerId + ":assignments"
}

func UserMessagesChannel(userId string) string {
	return "user:" + userId + ":messages"
}

const MarketplaceChannel = "marketplace:new_job"
