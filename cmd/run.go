package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/output"
	"github.com/sells-group/rental-assist/internal/pipeline"
)

var (
	runInputs inputFlags
	runFormat string
	runOutput string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline and write enriched records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		runInputs.apply(&cfg.Input)
		if runFormat != "" {
			cfg.Output.Format = runFormat
		}
		if runOutput != "" {
			cfg.Output.Path = runOutput
		}

		opts, err := pipeline.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}
		p, err := pipeline.New(opts)
		if err != nil {
			return err
		}

		data, err := loadInputs(ctx, cfg)
		if err != nil {
			return eris.Wrap(err, "run: load inputs")
		}

		result, err := p.Run(ctx, pipeline.Inputs{
			Persons:    data.Persons,
			Crosswalk:  data.Crosswalk,
			Thresholds: data.Thresholds,
			JobLoss:    data.JobLoss,
			Industry:   data.Industry,
		})
		if err != nil {
			return eris.Wrap(err, "run: pipeline")
		}

		cols := output.RecordColumns(enhancementNames(p.Schedule()))
		w, err := output.Open(ctx, cfg.Output, cols)
		if err != nil {
			return err
		}
		defer w.Close() //nolint:errcheck

		if err := w.WriteRun(ctx, output.Run{
			ID:         result.RunID,
			StartedAt:  result.StartedAt,
			FinishedAt: result.FinishedAt,
			Stats:      result,
		}); err != nil {
			return eris.Wrap(err, "run: write run")
		}
		if err := w.WriteRecords(ctx, result.RunID, result.Records); err != nil {
			return eris.Wrap(err, "run: write records")
		}
		if err := w.WriteHouseholds(ctx, result.RunID, result.Households); err != nil {
			return eris.Wrap(err, "run: write households")
		}

		zap.L().Info("run written",
			zap.String("run_id", result.RunID),
			zap.String("format", cfg.Output.Format),
			zap.String("path", cfg.Output.Path),
			zap.Int("records", len(result.Records)),
		)

		formatSummary(os.Stdout, result)
		return nil
	},
}

func addInputFlags(cmd *cobra.Command, f *inputFlags) {
	cmd.Flags().StringVar(&f.persons, "persons", "", "person extract (path or URL; overrides input.persons)")
	cmd.Flags().StringVar(&f.crosswalk, "crosswalk", "", "sub-area to county crosswalk")
	cmd.Flags().StringVar(&f.thresholds, "thresholds", "", "income threshold table (CSV or XLSX)")
	cmd.Flags().StringVar(&f.jobLoss, "job-loss", "", "industry job-loss table")
	cmd.Flags().StringVar(&f.industryMap, "industry-map", "", "industry code to group map")
}

func init() {
	addInputFlags(runCmd, &runInputs)
	runCmd.Flags().StringVar(&runFormat, "format", "", "output format: csv, sqlite or postgres")
	runCmd.Flags().StringVar(&runOutput, "out", "", "output path for csv or sqlite")
	rootCmd.AddCommand(runCmd)
}
