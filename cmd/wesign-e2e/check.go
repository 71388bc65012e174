package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesign-io/wesign-e2e/internal/logging"
	"github.com/wesign-io/wesign-e2e/internal/schedclient"
)

// checkCmd verifies that the deployment the suite would run against is up:
// web frontend reachable, login page served, scheduler healthy when set.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check reachability of the WeSign deployment and scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.L()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client := &http.Client{Timeout: 5 * time.Second}
		ok := true

		for _, path := range []string{"/health", "/login"} {
			url := cfg.BaseURL + path
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return fmt.Errorf("building request for %s: %w", url, err)
			}
			resp, err := client.Do(req)
			if err != nil {
				log.Warn("endpoint unreachable", zap.String("url", url), zap.Error(err))
				ok = false
				continue
			}
			resp.Body.Close()
			log.Info("endpoint reachable", zap.String("url", url), zap.Int("status", resp.StatusCode))
			if resp.StatusCode >= 500 {
				ok = false
			}
		}

		if cfg.SchedulerURL != "" {
			sched := schedclient.NewClient(cfg.SchedulerURL)
			if err := sched.Health(ctx); err != nil {
				log.Warn("scheduler health check failed", zap.Error(err))
				ok = false
			} else {
				log.Info("scheduler healthy", zap.String("url", cfg.SchedulerURL))
			}
		} else {
			log.Info("SCHEDULER_URL not set, skipping scheduler check")
		}

		if !ok {
			return fmt.Errorf("environment check failed for %s", cfg.BaseURL)
		}
		log.Info("environment ready", zap.String("base_url", cfg.BaseURL))
		return nil
	},
}
