// wesign-e2e is the operator tool for the WeSign E2E suite: it installs the
// Playwright driver, checks the target environment, materializes upload
// fixtures and renders run reports.
package main

import (
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesign-io/wesign-e2e/internal/config"
	"github.com/wesign-io/wesign-e2e/internal/logging"
)

var version = "dev" // overridden via -ldflags at build time

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "wesign-e2e",
	Short:         "Operator tooling for the WeSign end-to-end test suite",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logging.Init(cfg.Logging.Level)
		return nil
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the Playwright driver and browsers",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.L()
		log.Info("installing playwright driver and browsers", zap.String("browser", cfg.Browser))
		opts := &playwright.RunOptions{
			Browsers: []string{cfg.Browser},
		}
		if err := playwright.Install(opts); err != nil {
			return fmt.Errorf("playwright install: %w", err)
		}
		log.Info("playwright ready")
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./wesign-e2e.yaml)")
	rootCmd.AddCommand(installCmd, checkCmd, fixturesCmd, reportCmd)

	if err := rootCmd.Execute(); err != nil {
		logging.L().Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
