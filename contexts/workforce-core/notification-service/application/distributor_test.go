package application

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "foreman/contexts/workforce-core/notification-service/domain/errors"
	"foreman/contexts/workforce-core/notification-service/ports"
)

type fakeBus struct {
	topics map[string]chan ports.Event
}

func newFakeBus() *fakeBus {
	return &fakeBus{topics: make(map[string]chan ports.Event)}
}

func (b *fakeBus) Subscribe(_ context.Context, topic string) (<-chan ports.Event, error) {
	ch, ok := b.topics[topic]
	if !ok {
		ch = make(chan ports.Event, 16)
		b.topics[topic] = ch
	}
	return ch, nil
}

func (b *fakeBus) publish(topic string, event ports.Event) {
	b.topics[topic] <- event
}

func receiveEvent(t *testing.T, ch <-chan ports.Event) ports.Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return ports.Event{}
	}
}

func assertNoEvent(t *testing.T, ch <-chan ports.Event) {
	t.Helper()
	select {
	case event := <-ch:
		t.Fatalf("unexpected event delivered: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDistributorBossSeesAllOrgEvents(t *testing.T) {
	bus := newFakeBus()
	distributor := Distributor{Bus: bus}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := distributor.Subscribe(ctx, ports.Subscription{
		OrgID:  "org-1",
		UserID: "boss-1",
		Role:   ports.RoleBoss,
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	bus.publish("org-1", ports.Event{EventID: "evt-1", Kind: "contractor.applied", OrgID: "org-1"})
	bus.publish("org-1", ports.Event{EventID: "evt-2", Kind: "timesheet.submitted", OrgID: "org-1", RecipientID: "ctr-1"})

	first := receiveEvent(t, events)
	second := receiveEvent(t, events)
	if first.EventID != "evt-1" || second.EventID != "evt-2" {
		t.Fatalf("expected publish order preserved, got %s then %s", first.EventID, second.EventID)
	}
}

func TestDistributorContractorSeesOnlyOwnAndBroadcast(t *testing.T) {
	bus := newFakeBus()
	distributor := Distributor{Bus: bus}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := distributor.Subscribe(ctx, ports.Subscription{
		OrgID:  "org-1",
		UserID: "ctr-1",
		Role:   ports.RoleContractor,
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	bus.publish("org-1", ports.Event{EventID: "evt-other", OrgID: "org-1", RecipientID: "ctr-2"})
	bus.publish("org-1", ports.Event{EventID: "evt-broadcast", OrgID: "org-1"})
	bus.publish("org-1", ports.Event{EventID: "evt-own", OrgID: "org-1", RecipientID: "ctr-1"})

	if got := receiveEvent(t, events); got.EventID != "evt-broadcast" {
		t.Fatalf("expected the broadcast event first, got %s", got.EventID)
	}
	if got := receiveEvent(t, events); got.EventID != "evt-own" {
		t.Fatalf("expected the self-directed event, got %s", got.EventID)
	}
	assertNoEvent(t, events)
}

func TestDistributorRejectsInvalidSubscription(t *testing.T) {
	distributor := Distributor{Bus: newFakeBus()}

	cases := []ports.Subscription{
		{OrgID: "", UserID: "boss-1", Role: ports.RoleBoss},
		{OrgID: "org-1", UserID: "", Role: ports.RoleBoss},
		{OrgID: "org-1", UserID: "user-1", Role: "auditor"},
	}
	for _, sub := range cases {
		if _, err := distributor.Subscribe(context.Background(), sub); !errors.Is(err, domainerrors.ErrInvalidSubscription) {
			t.Fatalf("expected invalid subscription for %+v, got %v", sub, err)
		}
	}
}

func TestDistributorClosesStreamOnCancel(t *testing.T) {
	bus := newFakeBus()
	distributor := Distributor{Bus: bus}

	ctx, cancel := context.WithCancel(context.Background())
	events, err := distributor.Subscribe(ctx, ports.Subscription{
		OrgID:  "org-1",
		UserID: "boss-1",
		Role:   ports.RoleBoss,
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	cancel()
	select {
	case _, open := <-events:
		if open {
			t.Fatal("expected the channel to close after cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancellation")
	}
}
