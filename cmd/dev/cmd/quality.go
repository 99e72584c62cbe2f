package cmd

import (
	"fmt"
	"log/slog"

	"github.com/gophertribe/devtool/test"
	"github.com/spf13/cobra"
)

func runner(use, short string, run func() error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Debug("running", "step", use)
			if err := run(); err != nil {
				return fmt.Errorf("%s failed: %w", use, err)
			}
			return nil
		},
	}
}

// TestCmd runs the unit tests; hardware is replaced by the mock bus and the
// simulated sensor.
func TestCmd() *cobra.Command {
	return runner("test", "Run unit tests", test.Test)
}

func LintCmd() *cobra.Command {
	return runner("lint", "Run linting", test.Lint)
}

// IntegrationTestCmd runs tests needing a sensor behind a real adapter.
func IntegrationTestCmd() *cobra.Command {
	return runner("integration-test", "Run integration tests against a connected sensor", test.Integ)
}
