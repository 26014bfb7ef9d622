package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "rental-assist",
	Short: "Rental-assistance need estimation from survey microdata",
	Long:  "Joins geography income thresholds and industry job-loss exposure onto ACS person records, derives rent burden and UI benefit eligibility, and aggregates to households.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
