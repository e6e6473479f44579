package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/revenue-engine-api/internal/domain"
)

func TestPublish_DeliversToTypeSubscribers(t *testing.T) {
	n := New()

	var received []Event
	n.Subscribe(EventAffiliateSale, func(e Event) {
		received = append(received, e)
	})

	n.Publish(Event{Type: EventAffiliateSale, Data: map[string]any{"program_id": "agencies"}})
	n.Publish(Event{Type: EventCampaignCreated, Data: map[string]any{}})

	// Apenas eventos do tipo inscrito são entregues
	assert.Len(t, received, 1)
	assert.Equal(t, EventAffiliateSale, received[0].Type)
	assert.Equal(t, "agencies", received[0].Data["program_id"])
}

func TestPublish_DeliversToAllSubscribers(t *testing.T) {
	n := New()

	var received []Event
	n.SubscribeAll(func(e Event) {
		received = append(received, e)
	})

	n.Publish(Event{Type: EventAffiliateSale})
	n.Publish(Event{Type: EventRevenueAlert})
	n.Publish(Event{Type: EventError})

	assert.Len(t, received, 3)
}

func TestPublish_SetsTimestampWhenZero(t *testing.T) {
	n := New()

	var received Event
	n.SubscribeAll(func(e Event) {
		received = e
	})

	before := time.Now()
	n.Publish(Event{Type: EventMetricsSnapshot})

	assert.False(t, received.Timestamp.IsZero())
	assert.False(t, received.Timestamp.Before(before))
}

func TestPublish_PreservesExplicitTimestamp(t *testing.T) {
	n := New()

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var received Event
	n.SubscribeAll(func(e Event) {
		received = e
	})

	n.Publish(Event{Type: EventMetricsSnapshot, Timestamp: fixed})
	assert.Equal(t, fixed, received.Timestamp)
}

func TestPublish_PanicInSubscriberDoesNotStopDelivery(t *testing.T) {
	n := New()

	n.Subscribe(EventRevenueAlert, func(e Event) {
		panic("observador com defeito")
	})

	delivered := false
	n.Subscribe(EventRevenueAlert, func(e Event) {
		delivered = true
	})

	assert.NotPanics(t, func() {
		n.Publish(Event{Type: EventRevenueAlert})
	})
	assert.True(t, delivered)
}

func TestPublishCampaignCreated(t *testing.T) {
	n := New()

	var received Event
	n.Subscribe(EventCampaignCreated, func(e Event) {
		received = e
	})

	n.PublishCampaignCreated(&domain.AdCampaign{
		ID:       "abc123",
		Name:     "Campanha de verão",
		Platform: domain.AdPlatformGoogle,
		Budget:   1500,
	})

	assert.Equal(t, EventCampaignCreated, received.Type)
	assert.Equal(t, "abc123", received.Data["campaign_id"])
	assert.Equal(t, "Campanha de verão", received.Data["name"])
	assert.Equal(t, "google", received.Data["platform"])
	assert.Equal(t, 1500.0, received.Data["budget"])
}

func TestPublishRevenueAlert(t *testing.T) {
	n := New()

	var received Event
	n.Subscribe(EventRevenueAlert, func(e Event) {
		received = e
	})

	n.PublishRevenueAlert(1200, 1500, 80)

	assert.Equal(t, 1200.0, received.Data["current"])
	assert.Equal(t, 1500.0, received.Data["target"])
	assert.Equal(t, 80.0, received.Data["percentage"])
}

func TestPublishError(t *testing.T) {
	n := New()

	var received Event
	n.Subscribe(EventError, func(e Event) {
		received = e
	})

	n.PublishError("billing", "Falha no provedor", assert.AnError)

	assert.Equal(t, "billing", received.Data["source"])
	assert.Equal(t, "Falha no provedor", received.Data["message"])
	assert.Equal(t, assert.AnError.Error(), received.Data["error"])
}
