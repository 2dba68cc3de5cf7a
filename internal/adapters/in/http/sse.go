package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/notifications"
)

// StreamNotifications handles GET /api/v1/notifications/stream?channel=...
// as a Server-Sent Events stream. The subscription lives exactly as long as
// the HTTP connection: no replay, no catch-up, matching the at-most-once
// fan-out contract.
func (s *Server) StreamNotifications(ctx echo.Context) error {
	channel := notifications.ChannelKey(ctx.QueryParam("channel"))
	if !validChannel(channel) {
		return badRequest(ctx, "Invalid channel; expected session:<id>, staff:<id> or restaurant:<id>")
	}

	sub, err := s.broker.Subscribe(ctx.Request().Context(), channel)
	if err != nil {
		return serverError(ctx, "Failed to subscribe")
	}
	defer sub.Close()

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-store")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := writeSSE(resp, event); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}

func writeSSE(resp *echo.Response, event notifications.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", event.Type, data)
	return err
}

func validChannel(channel notifications.ChannelKey) bool {
	key := string(channel)
	for _, prefix := range []string{"session:", "staff:", "restaurant:"} {
		if rest, ok := strings.CutPrefix(key, prefix); ok {
			return rest != ""
		}
	}
	return false
}
