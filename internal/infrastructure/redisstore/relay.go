package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domcustomer "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	domoutbox "github.com/Zhima-Mochi/customer-events/internal/domain/outbox"
	"github.com/Zhima-Mochi/customer-events/internal/observability"
	"github.com/Zhima-Mochi/customer-events/internal/observability/logctx"
	"github.com/redis/go-redis/v9"
)

const relayPeer = "redis"

// Publisher is the subset of *redis.Client the relay needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Message is the JSON payload published for every customer event.
type Message struct {
	Event      string    `json:"event"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Relay copies customer events from the bus onto redis pub/sub channels.
type Relay struct {
	client Publisher
	prefix string

	log          observability.Logger
	extCounter   observability.Counter   // external_requests_total{peer,endpoint,outcome}
	extHistogram observability.Histogram // external_request_duration_seconds{peer,endpoint}
}

func NewRelay(client Publisher, channelPrefix string, tel observability.Observability) *Relay {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()
	return &Relay{
		client:       client,
		prefix:       channelPrefix,
		log:          tel.Logger().With(observability.F("component", "redis_relay")),
		extCounter:   metrics.Counter(observability.MExternalRequests),
		extHistogram: metrics.Histogram(observability.MExternalRequestDuration),
	}
}

func (r *Relay) Start(sub domoutbox.Subscriber) {
	if sub == nil || r.client == nil {
		return
	}
	sub.Subscribe(domcustomer.EventSaved, r.handle)
	sub.Subscribe(domcustomer.EventDeleted, r.handle)
}

// Channel returns the redis channel an event name is published on.
func (r *Relay) Channel(eventName string) string {
	if r.prefix == "" {
		return eventName
	}
	return r.prefix + "." + eventName
}

func (r *Relay) handle(ctx context.Context, e domoutbox.Event) error {
	msg, ok := toMessage(e)
	if !ok {
		return nil
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("redis relay: encode %s: %w", msg.Event, err)
	}

	channel := r.Channel(msg.Event)
	start := time.Now()
	outcome := "success"
	err = r.client.Publish(ctx, channel, payload).Err()
	if err != nil {
		outcome = "error"
	}

	r.extCounter.Add(1,
		observability.L("peer", relayPeer),
		observability.L("endpoint", msg.Event),
		observability.L("outcome", outcome),
	)
	r.extHistogram.Observe(time.Since(start).Seconds(),
		observability.L("peer", relayPeer),
		observability.L("endpoint", msg.Event),
	)

	if err != nil {
		return fmt.Errorf("redis relay: publish %s: %w", channel, err)
	}
	logctx.FromOr(ctx, r.log).Debug("event_relayed",
		observability.F("channel", channel),
		observability.F("customer_id", msg.CustomerID),
	)
	return nil
}

func toMessage(e domoutbox.Event) (Message, bool) {
	switch evt := e.(type) {
	case domcustomer.SavedEvent:
		return Message{Event: evt.EventName(), CustomerID: evt.CustomerID, Name: evt.Name, OccurredAt: evt.OccurredAt}, true
	case domcustomer.DeletedEvent:
		return Message{Event: evt.EventName(), CustomerID: evt.CustomerID, Name: evt.Name, OccurredAt: evt.OccurredAt}, true
	default:
		return Message{}, false
	}
}
