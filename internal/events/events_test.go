package events

import (
	"encoding/json"
	"testing"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		received = event
		callCount++
		return nil
	})

	payload := BookingEventPayload{BookingID: "b1", VendorID: "v1", Status: "pending"}
	if err := bus.PublishJSON(EventBookingCreated, payload); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
	if received.Type != EventBookingCreated {
		t.Errorf("expected type %s, got %s", EventBookingCreated, received.Type)
	}

	var decoded BookingEventPayload
	if err := json.Unmarshal(received.Payload, &decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if decoded.BookingID != "b1" || decoded.VendorID != "v1" {
		t.Errorf("unexpected payload: %+v", decoded)
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var count1, count2 int

	bus.Subscribe("event", func(_ *Event) error { count1++; return nil })
	bus.Subscribe("event", func(_ *Event) error { count2++; return nil })
	bus.Subscribe("other", func(_ *Event) error { t.Error("wrong type delivered"); return nil })

	if err := bus.PublishJSON("event", map[string]string{"k": "v"}); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestNilBusPublish(t *testing.T) {
	var bus *EventBus
	if err := bus.PublishJSON("event", nil); err != nil {
		t.Fatalf("nil bus should be a no-op, got %v", err)
	}
}
