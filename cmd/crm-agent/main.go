package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/WuorBhang/alx-backend-graphql-crm/internal/config"
	"github.com/WuorBhang/alx-backend-graphql-crm/internal/jobs"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "crm-agent").Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	client := jobs.NewClient(cfg.Agent.GraphQLURL)

	schedule := []struct {
		job      jobs.Job
		interval time.Duration
	}{
		{&jobs.Heartbeat{Client: client, LogPath: cfg.Agent.HeartbeatLog}, cfg.Agent.HeartbeatInterval},
		{&jobs.LowStock{Client: client, LogPath: cfg.Agent.LowStockLog}, cfg.Agent.LowStockInterval},
		{&jobs.OrderReminders{Client: client, LogPath: cfg.Agent.RemindersLog}, cfg.Agent.RemindersInterval},
		{&jobs.Report{Client: client, LogPath: cfg.Agent.ReportLog}, cfg.Agent.ReportInterval},
	}

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	for _, entry := range schedule {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info().Str("job", entry.job.Name()).Dur("interval", entry.interval).Msg("job scheduled")
			jobs.RunEvery(ctx, entry.job, entry.interval)
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	cancel()
	wg.Wait()
	log.Info().Msg("Agent stopped")
}
