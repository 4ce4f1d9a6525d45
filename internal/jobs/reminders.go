package jobs

import (
	"context"
	"fmt"
	"time"
)

// OrderReminders queries orders placed within the last week and logs a
// reminder line per order.
type OrderReminders struct {
	Client  *Client
	LogPath string
}

func (j *OrderReminders) Name() string { return "order-reminders" }

const remindersQuery = `
	query GetRecentOrders($since: Time!) {
		allOrders(filter: { orderDateGte: $since }, orderBy: "-order_date") {
			id
			orderDate
			customer { email }
		}
	}
`

func (j *OrderReminders) Run(ctx context.Context) error {
	ts := time.Now().Format("2006-01-02 15:04:05")
	since := time.Now().AddDate(0, 0, -7).UTC().Format(time.RFC3339)

	var data struct {
		AllOrders []struct {
			ID        string `json:"id"`
			OrderDate string `json:"orderDate"`
			Customer  struct {
				Email string `json:"email"`
			} `json:"customer"`
		} `json:"allOrders"`
	}
	err := j.Client.Do(ctx, remindersQuery, map[string]any{"since": since}, &data)
	if err != nil {
		return appendLine(j.LogPath, fmt.Sprintf("[%s] Error processing reminders: %v", ts, err))
	}

	for _, o := range data.AllOrders {
		line := fmt.Sprintf("[%s] Order ID: %s, Customer: %s", ts, o.ID, o.Customer.Email)
		if err := appendLine(j.LogPath, line); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("[%s] Order reminders processed! %d recent orders found.", ts, len(data.AllOrders))
	return appendLine(j.LogPath, summary)
}
