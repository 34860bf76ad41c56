package controllers

import (
	"time"

	"github.com/anikasharma/greenbasket/app/stream"
	"github.com/anikasharma/greenbasket/pkg/ctx"
	"github.com/anikasharma/greenbasket/pkg/sse"
)

// StreamController exposes the customer-facing SSE feed of order status
// changes.
type StreamController struct{}

func NewStreamController() *StreamController {
	return &StreamController{}
}

// Orders streams status updates for the authenticated user's orders until
// the client disconnects. A periodic ping keeps intermediaries from timing
// the connection out.
func (sc *StreamController) Orders(c *ctx.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	s := sse.New(c.W, c.R)
	if s == nil {
		return
	}

	updates, cancel := stream.WatchOrders(id)
	defer cancel()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-c.R.Context().Done():
			return
		case order := <-updates:
			s.Send("order.updated", map[string]interface{}{
				"order_number": order.OrderNumber,
				"status":       order.Status,
			})
		case <-ping.C:
			s.Send("ping", time.Now().Unix())
		}
		if s.IsClosed() {
			return
		}
	}
}
