package main

import (
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/rental-assist/internal/pipeline"
)

// formatSummary prints the run statistics as an aligned table with
// grouped thousands.
func formatSummary(w io.Writer, res *pipeline.Result) {
	p := message.NewPrinter(language.English)
	s := res.Stats

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	line := func(label, format string, args ...any) {
		p.Fprintf(tw, "%s\t"+format+"\n", append([]any{label}, args...)...)
	}

	line("Run", "%s", res.RunID)
	line("Input records", "%d", s.Join.Input)
	line("Group quarters dropped", "%d", s.Join.Filtered)
	line("Output records", "%d", s.Records)
	line("Households", "%d", s.Households)
	line("Sub-areas resolved", "%d (%d ties)", s.SubAreas, s.Ties)
	line("Geography matched", "%d", s.Join.GeographyMatched)
	line("Threshold matched", "%d", s.Join.ThresholdMatched)
	line("Industry mapped", "%d", s.Join.IndustryMapped)
	line("Job loss matched", "%d", s.Join.JobLossMatched)
	line("Renters", "%d (%.1f%%)", s.Renters, s.RenterShare*100)
	line("Rent burdened", "%.1f%%", s.BurdenedShare*100)
	line("Severely burdened", "%.1f%%", s.SevereShare*100)
	line("Income eligible", "%.1f%%", s.IncomeEligibleShare*100)
	line("Benefit recipients", "%d", s.Recipients)
	line("Mean monthly benefit", "$%.2f", s.MeanMonthlyBenefit)
	_ = tw.Flush()
}
