// Package jobs holds the background work dispatched through pkg/queue.
package jobs

import (
	"fmt"
	"time"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
	"github.com/anikasharma/greenbasket/config"
	"github.com/anikasharma/greenbasket/pkg/http"
	"github.com/anikasharma/greenbasket/pkg/notification"
	"github.com/anikasharma/greenbasket/pkg/queue"
)

// Register makes every job type known to the queue so workers can decode
// them. Call once at boot, in both the server and the worker process.
func Register() {
	queue.Register("*jobs.OrderPlacedJob", func() queue.Job { return &OrderPlacedJob{} })
}

// OrderPlacedJob runs after checkout commits: confirmation mail to the
// customer, a Slack ping for operations, and an optional webhook to the
// fulfilment partner. Only the order id crosses the queue; the job re-reads
// the order so it survives serialisation.
type OrderPlacedJob struct {
	OrderID uint `json:"order_id"`
}

func (j *OrderPlacedJob) Handle() error {
	order, err := repositories.NewOrderRepository().FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("order placed job: load order %d: %w", j.OrderID, err)
	}

	notification.SendAsync(order.Email, &orderPlacedNotification{Order: order})

	if url := config.Get("ORDER_WEBHOOK_URL", ""); url != "" {
		resp, err := http.Post(url).
			Body(map[string]interface{}{
				"order_number": order.OrderNumber,
				"total":        order.Total,
				"items":        len(order.Items),
			}).
			Timeout(10 * time.Second).
			Retry(3, time.Second).
			Send()
		if err != nil {
			return fmt.Errorf("order placed job: webhook: %w", err)
		}
		if err := resp.Throw(); err != nil {
			return fmt.Errorf("order placed job: webhook: %w", err)
		}
	}

	return nil
}

type orderPlacedNotification struct {
	Order models.Order
}

func (n *orderPlacedNotification) Via() []string {
	if config.Get("SLACK_WEBHOOK_URL", "") != "" {
		return []string{"mail", "slack"}
	}
	return []string{"mail"}
}

func (n *orderPlacedNotification) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Order " + n.Order.OrderNumber + " confirmed",
		Body: fmt.Sprintf(
			"<h1>Thanks for your order, %s!</h1><p>Order <strong>%s</strong> for %.2f is confirmed and will be prepared shortly.</p>",
			n.Order.FirstName, n.Order.OrderNumber, n.Order.Total),
	}
}

func (n *orderPlacedNotification) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("New order %s (%.2f, %d items)",
			n.Order.OrderNumber, n.Order.Total, len(n.Order.Items)),
	}
}
