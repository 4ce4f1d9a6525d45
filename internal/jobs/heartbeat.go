package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const heartbeatTimeFormat = "02/01/2006-15:04:05"

// Heartbeat appends an is-alive line on every run, then checks that the
// GraphQL endpoint answers a trivial query and records the outcome.
type Heartbeat struct {
	Client  *Client
	LogPath string
}

func (h *Heartbeat) Name() string { return "heartbeat" }

func (h *Heartbeat) Run(ctx context.Context) error {
	ts := time.Now().Format(heartbeatTimeFormat)

	if err := appendLine(h.LogPath, ts+" CRM is alive"); err != nil {
		return err
	}

	var data struct {
		Hello string `json:"hello"`
	}
	err := h.Client.Do(ctx, `query { hello }`, nil, &data)
	if err != nil {
		log.Warn().Err(err).Msg("heartbeat endpoint check failed")
		return appendLine(h.LogPath, fmt.Sprintf("%s GraphQL endpoint check failed: %v", ts, err))
	}

	return appendLine(h.LogPath, ts+" GraphQL endpoint is responsive")
}
