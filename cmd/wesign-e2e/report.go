package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesign-io/wesign-e2e/internal/logging"
	"github.com/wesign-io/wesign-e2e/internal/report"
)

var reportOut string

// reportCmd renders a JSON run report (written by the suite) as an Excel
// workbook for circulation.
var reportCmd = &cobra.Command{
	Use:   "report <run.json>",
	Short: "Render a suite run report as an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.L()
		run, err := report.LoadJSON(args[0])
		if err != nil {
			return err
		}

		out := reportOut
		if out == "" {
			out = strings.TrimSuffix(args[0], ".json") + ".xlsx"
		}
		if err := run.WriteXLSX(out); err != nil {
			return err
		}

		s := run.Summarize()
		log.Info("report written",
			zap.String("path", out),
			zap.Int("total", s.Total),
			zap.Int("passed", s.Passed),
			zap.Int("failed", s.Failed),
			zap.Int("skipped", s.Skipped))
		fmt.Printf("%d tests, %d passed, %d failed, %d skipped (pass rate %.1f%%)\n",
			s.Total, s.Passed, s.Failed, s.Skipped, s.PassRate*100)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output xlsx path (default: alongside input)")
}
