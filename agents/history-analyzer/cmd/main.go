package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	historyanalyzer "history-analyzer/agents/history-analyzer"
	"history-analyzer/shared/config"
	"history-analyzer/shared/logger"
	"history-analyzer/shared/scheduler"
	"history-analyzer/shared/session"
)

func main() {
	log := logger.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sess := session.New()
	agent := historyanalyzer.NewHistoryAgent(cfg, sess)
	s := scheduler.New(cfg, agent, sess)

	if len(os.Args) > 1 && os.Args[1] == "--once" {
		fmt.Println("Running once...")
		if err := agent.Initialize(); err != nil {
			log.Fatalf("Failed to initialize agent: %v", err)
		}

		if err := s.RunOnce(ctx); err != nil {
			log.Fatalf("Failed to run: %v", err)
		}
		return
	}

	fmt.Println("Starting scheduler...")
	if err := s.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}
