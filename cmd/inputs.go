package main

import (
	"context"
	"time"

	"github.com/sells-group/rental-assist/internal/benefit"
	"github.com/sells-group/rental-assist/internal/config"
	"github.com/sells-group/rental-assist/internal/fetcher"
	"github.com/sells-group/rental-assist/internal/refdata"
)

// inputFlags overrides config.InputConfig entries from the command line.
type inputFlags struct {
	persons     string
	crosswalk   string
	thresholds  string
	jobLoss     string
	industryMap string
}

func (f inputFlags) apply(in *config.InputConfig) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&in.Persons, f.persons)
	set(&in.Crosswalk, f.crosswalk)
	set(&in.Thresholds, f.thresholds)
	set(&in.JobLoss, f.jobLoss)
	set(&in.IndustryMap, f.industryMap)
}

func newResolver(c *config.Config) *fetcher.Resolver {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  c.Fetch.UserAgent,
		Timeout:    time.Duration(c.Fetch.TimeoutSecs) * time.Second,
		MaxRetries: c.Fetch.MaxRetries,
	})
	return fetcher.NewResolver(f, c.Input.TempDir)
}

func sources(in config.InputConfig) refdata.Sources {
	return refdata.Sources{
		Persons:     in.Persons,
		Crosswalk:   in.Crosswalk,
		Thresholds:  in.Thresholds,
		JobLoss:     in.JobLoss,
		IndustryMap: in.IndustryMap,
	}
}

func thresholdOptions(c *config.Config) refdata.ThresholdOptions {
	opts := refdata.DefaultThresholdOptions()
	if c.Input.ThresholdPrefix != "" {
		opts.Prefix = c.Input.ThresholdPrefix
	}
	opts.Sheet = c.Input.ThresholdSheet
	if c.Pipeline.HouseholdSizeCap > 0 {
		opts.MaxSize = c.Pipeline.HouseholdSizeCap
	}
	return opts
}

func loadInputs(ctx context.Context, c *config.Config) (*refdata.Data, error) {
	return refdata.LoadAll(ctx, newResolver(c), sources(c.Input), thresholdOptions(c))
}

// enhancementNames lists the schedule's add-ons in output column order.
func enhancementNames(s benefit.Schedule) []string {
	names := make([]string, len(s.Enhancements))
	for i, e := range s.Enhancements {
		names[i] = e.Name
	}
	return names
}
