package httpadapter

import (
	"fmt"
	"log/slog"
	"net/http"

	"foreman/contexts/workforce-core/notification-service/application"
	"foreman/contexts/workforce-core/notification-service/ports"
)

// Handler streams distributor events as server-sent events. The stream lives
// for the connection: a client disconnect cancels the request context, which
// silently detaches the subscription.
type Handler struct {
	Distributor application.Distributor
	Logger      *slog.Logger
}

func (h Handler) StreamEventsHandler(w http.ResponseWriter, r *http.Request, sub ports.Subscription) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("response writer does not support streaming")
	}

	events, err := h.Distributor.Subscribe(r.Context(), sub)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return nil
		case event, open := <-events:
			if !open {
				return nil
			}
			if event.EventID != "" {
				fmt.Fprintf(w, "id: %s\n", event.EventID)
			}
			fmt.Fprintf(w, "event: %s\n", event.Kind)
			fmt.Fprintf(w, "data: %s\n\n", event.Payload)
			flusher.Flush()
		}
	}
}
