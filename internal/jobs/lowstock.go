package jobs

import (
	"context"
	"fmt"
	"time"
)

// LowStock triggers the stock-replenishment mutation and logs every
// product it touched.
type LowStock struct {
	Client  *Client
	LogPath string
}

func (j *LowStock) Name() string { return "low-stock" }

const lowStockMutation = `
	mutation UpdateLowStock {
		updateLowStockProducts {
			products { name stock }
			message
		}
	}
`

func (j *LowStock) Run(ctx context.Context) error {
	ts := time.Now().Format("2006-01-02 15:04:05")

	var data struct {
		UpdateLowStockProducts struct {
			Products []struct {
				Name  string `json:"name"`
				Stock int32  `json:"stock"`
			} `json:"products"`
			Message string `json:"message"`
		} `json:"updateLowStockProducts"`
	}
	if err := j.Client.Do(ctx, lowStockMutation, nil, &data); err != nil {
		return appendLine(j.LogPath, fmt.Sprintf("[%s] Error: %v", ts, err))
	}

	if err := appendLine(j.LogPath, fmt.Sprintf("[%s] %s", ts, data.UpdateLowStockProducts.Message)); err != nil {
		return err
	}
	for _, p := range data.UpdateLowStockProducts.Products {
		if err := appendLine(j.LogPath, fmt.Sprintf("[%s] %s -> stock %d", ts, p.Name, p.Stock)); err != nil {
			return err
		}
	}
	return nil
}
