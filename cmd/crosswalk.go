package main

import (
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/crosswalk"
	"github.com/sells-group/rental-assist/internal/output"
	"github.com/sells-group/rental-assist/internal/refdata"
)

var (
	crosswalkSource   string
	crosswalkTieBreak string
	crosswalkOut      string
)

var crosswalkCmd = &cobra.Command{
	Use:   "crosswalk",
	Short: "Resolve the sub-area crosswalk to one county per sub-area",
	Long:  "Reads a sub-area to county allocation file, keeps the county with the largest allocation factor for each sub-area and writes the mapping as CSV. Ties are listed in the tied_counties column.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		src := cfg.Input.Crosswalk
		if crosswalkSource != "" {
			src = crosswalkSource
		}
		if src == "" {
			return eris.New("crosswalk: no crosswalk source (set --crosswalk or input.crosswalk)")
		}
		policy := cfg.Pipeline.TieBreak
		if crosswalkTieBreak != "" {
			policy = crosswalkTieBreak
		}
		tie, err := crosswalk.PolicyByName(policy)
		if err != nil {
			return err
		}

		path, err := newResolver(cfg).Resolve(ctx, src)
		if err != nil {
			return eris.Wrap(err, "crosswalk: resolve source")
		}
		entries, err := refdata.LoadCrosswalk(ctx, path)
		if err != nil {
			return err
		}

		res := crosswalk.NewResolver(tie).Resolve(entries)
		zap.L().Info("crosswalk resolved",
			zap.Int("entries", len(entries)),
			zap.Int("sub_areas", len(res.Mapping)),
			zap.Int("ties", len(res.Ties)),
		)

		var out io.Writer = os.Stdout
		if crosswalkOut != "" {
			f, err := os.Create(crosswalkOut)
			if err != nil {
				return eris.Wrap(err, "crosswalk: create output")
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		return output.WriteResolutionCSV(out, res)
	},
}

func policyList() string {
	return strings.Join(crosswalk.PolicyNames(), ", ")
}

func init() {
	crosswalkCmd.Flags().StringVar(&crosswalkSource, "crosswalk", "", "crosswalk file or URL (overrides input.crosswalk)")
	crosswalkCmd.Flags().StringVar(&crosswalkTieBreak, "tie-break", "", "tie-break policy: "+policyList())
	crosswalkCmd.Flags().StringVar(&crosswalkOut, "out", "", "output CSV path (default stdout)")
	rootCmd.AddCommand(crosswalkCmd)
}
