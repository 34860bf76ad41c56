// Package stream fans order activity out to connected clients: a websocket
// feed per seller and an SSE feed per customer.
package stream

import (
	"encoding/json"
	"sync"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/logger"
	"github.com/anikasharma/greenbasket/pkg/ws"
)

var (
	mu         sync.Mutex
	sellerHubs = map[uint]*ws.Hub{}

	watchMu  sync.Mutex
	watchers = map[uint][]chan models.Order{}
)

// SellerHub returns the websocket hub carrying one seller's live order
// feed, starting it on first use.
func SellerHub(sellerID uint) *ws.Hub {
	mu.Lock()
	defer mu.Unlock()

	hub, ok := sellerHubs[sellerID]
	if !ok {
		hub = ws.NewHub()
		go hub.Run()
		sellerHubs[sellerID] = hub
	}
	return hub
}

// BroadcastNewOrder pushes a placed order to every seller with items in it.
func BroadcastNewOrder(order models.Order) {
	sellers := map[uint]bool{}
	for _, f := range order.Fulfillments {
		sellers[f.SellerID] = true
	}

	for sellerID := range sellers {
		payload, err := json.Marshal(map[string]interface{}{
			"event":        "order.placed",
			"order_number": order.OrderNumber,
			"order_id":     order.ID,
		})
		if err != nil {
			logger.Error("stream: marshal order event", "error", err)
			return
		}
		SellerHub(sellerID).Broadcast <- payload
	}
}

// WatchOrders subscribes to status changes of the user's orders. The caller
// must call the returned cancel function when done.
func WatchOrders(userID uint) (<-chan models.Order, func()) {
	ch := make(chan models.Order, 8)

	watchMu.Lock()
	watchers[userID] = append(watchers[userID], ch)
	watchMu.Unlock()

	cancel := func() {
		watchMu.Lock()
		defer watchMu.Unlock()
		subs := watchers[userID]
		for i, sub := range subs {
			if sub == ch {
				watchers[userID] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

// NotifyOrderUpdated pushes an order to its owner's watchers. Slow watchers
// are skipped rather than blocked on.
func NotifyOrderUpdated(order models.Order) {
	watchMu.Lock()
	defer watchMu.Unlock()

	for _, ch := range watchers[order.UserID] {
		select {
		case ch <- order:
		default:
		}
	}
}
