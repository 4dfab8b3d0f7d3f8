package application

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "foreman/contexts/workforce-core/notification-service/domain/errors"
	"foreman/contexts/workforce-core/notification-service/ports"
)

// Distributor fans committed workforce events out to connected listeners.
// It subscribes per organization, so any single listener observes that
// organization's events in publish order; events for other organizations
// never reach it. Disconnection is silent unsubscription via ctx.
type Distributor struct {
	Bus    ports.Bus
	Logger *slog.Logger
}

// Subscribe attaches a listener. The returned channel carries only events
// the subscription may see and closes when ctx is cancelled.
func (d Distributor) Subscribe(ctx context.Context, sub ports.Subscription) (<-chan ports.Event, error) {
	if strings.TrimSpace(sub.OrgID) == "" || strings.TrimSpace(sub.UserID) == "" {
		return nil, domainerrors.ErrInvalidSubscription
	}
	if sub.Role != ports.RoleBoss && sub.Role != ports.RoleContractor {
		return nil, domainerrors.ErrInvalidSubscription
	}

	source, err := d.Bus.Subscribe(ctx, sub.OrgID)
	if err != nil {
		return nil, err
	}

	out := make(chan ports.Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-source:
				if !ok {
					return
				}
				if !visibleTo(sub, event) {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case out <- event:
				}
			}
		}
	}()

	if d.Logger != nil {
		d.Logger.Info("subscriber attached",
			"event", "distributor_subscribe",
			"module", "workforce-core/notification-service",
			"layer", "application",
			"org_id", sub.OrgID,
			"role", sub.Role,
		)
	}
	return out, nil
}

// A boss sees everything in the organization. A contractor sees org-wide
// events and events addressed to them, never another principal's.
func visibleTo(sub ports.Subscription, event ports.Event) bool {
	if event.OrgID != sub.OrgID {
		return false
	}
	if sub.Role == ports.RoleBoss {
		return true
	}
	return event.RecipientID == "" || event.RecipientID == sub.UserID
}
