package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Report totals customers, orders and revenue and appends one summary
// line per run.
type Report struct {
	Client  *Client
	LogPath string
}

func (j *Report) Name() string { return "report" }

const reportQuery = `
	query GetCRMSummary {
		allCustomers { id }
		allOrders { totalAmount }
	}
`

func (j *Report) Run(ctx context.Context) error {
	ts := time.Now().Format("2006-01-02 15:04:05")

	var data struct {
		AllCustomers []struct {
			ID string `json:"id"`
		} `json:"allCustomers"`
		AllOrders []struct {
			TotalAmount string `json:"totalAmount"`
		} `json:"allOrders"`
	}
	if err := j.Client.Do(ctx, reportQuery, nil, &data); err != nil {
		return appendLine(j.LogPath, fmt.Sprintf("%s - Error generating CRM report: %v", ts, err))
	}

	revenue := decimal.Zero
	for _, o := range data.AllOrders {
		amount, err := decimal.NewFromString(o.TotalAmount)
		if err != nil {
			return fmt.Errorf("jobs: bad totalAmount %q: %w", o.TotalAmount, err)
		}
		revenue = revenue.Add(amount)
	}

	line := fmt.Sprintf("%s - Report: %d customers, %d orders, $%s revenue",
		ts, len(data.AllCustomers), len(data.AllOrders), revenue.StringFixed(2))
	return appendLine(j.LogPath, line)
}
