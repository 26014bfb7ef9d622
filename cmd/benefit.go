package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/rental-assist/internal/benefit"
	"github.com/sells-group/rental-assist/internal/model"
)

var benefitSchedule string

var benefitCmd = &cobra.Command{
	Use:   "benefit <annual-wage>...",
	Short: "Evaluate the UI benefit schedule for annual wage amounts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule := benefit.NewYork2020()
		path := cfg.Benefit.SchedulePath
		if benefitSchedule != "" {
			path = benefitSchedule
		}
		if path != "" {
			s, err := benefit.LoadSchedule(path)
			if err != nil {
				return err
			}
			schedule = s
		}

		engine, err := benefit.NewEngine(schedule)
		if err != nil {
			return err
		}

		wages, err := parseWages(args)
		if err != nil {
			return err
		}
		formatBenefits(os.Stdout, engine, wages)
		return nil
	},
}

// parseWages parses annual wage arguments. "-" or "na" is a missing wage.
func parseWages(args []string) ([]*float64, error) {
	out := make([]*float64, len(args))
	for i, a := range args {
		a = strings.TrimSpace(a)
		if a == "-" || strings.EqualFold(a, "na") {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(a, ",", ""), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "benefit: parse wage %q", a)
		}
		out[i] = model.Float(v)
	}
	return out, nil
}

func formatBenefits(w io.Writer, engine *benefit.Engine, wages []*float64) {
	s := engine.Schedule()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"ANNUAL WAGE", "QUARTERLY", "TIER", "WEEKLY", "MONTHLY"}
	for _, e := range s.Enhancements {
		header = append(header, strings.ToUpper(e.Name))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, wage := range wages {
		b := engine.Evaluate(wage)
		annual := "-"
		if wage != nil {
			annual = fmt.Sprintf("%.2f", *wage)
		}
		tier := b.Tier
		if tier == "" {
			tier = "-"
		}
		cells := []string{
			annual,
			fmt.Sprintf("%.2f", b.QuarterlyWage),
			tier,
			fmt.Sprintf("%.2f", b.Weekly),
			fmt.Sprintf("%.2f", b.Monthly),
		}
		for _, e := range s.Enhancements {
			cells = append(cells, fmt.Sprintf("%.2f", b.Enhancement(e.Name)))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
}

func init() {
	benefitCmd.Flags().StringVar(&benefitSchedule, "schedule", "", "YAML schedule file (default: built-in NY 2020)")
	rootCmd.AddCommand(benefitCmd)
}
