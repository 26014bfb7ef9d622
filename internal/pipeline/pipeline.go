// Package pipeline runs the resolve, join, derive, benefit and aggregate
// stages over one snapshot of survey records.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/benefit"
	"github.com/sells-group/rental-assist/internal/crosswalk"
	"github.com/sells-group/rental-assist/internal/derive"
	"github.com/sells-group/rental-assist/internal/household"
	"github.com/sells-group/rental-assist/internal/join"
	"github.com/sells-group/rental-assist/internal/model"
	"github.com/sells-group/rental-assist/internal/transform"
)

// Inputs is one static snapshot: the person extract and every reference table.
type Inputs struct {
	Persons    []model.PersonRecord
	Crosswalk  []model.CrosswalkEntry
	Thresholds []model.ThresholdEntry
	JobLoss    []model.JobLossEntry
	Industry   transform.IndustryGrouper // keyed on IND codes; nil groups IndustryNAICS by sector
}

// Options configures every stage.
type Options struct {
	TieBreak crosswalk.TieBreak // nil = first in input order
	Join     join.Options
	Rules    derive.Rules
	Schedule benefit.Schedule
}

// DefaultOptions returns the IPUMS / HUD / New York 2020 configuration.
func DefaultOptions() Options {
	return Options{
		TieBreak: crosswalk.FirstInOrder,
		Join: join.Options{
			HouseholdSizeCap:   join.DefaultHouseholdSizeCap,
			ExcludedPopulation: []int{3, 4},
		},
		Rules:    derive.DefaultRules(),
		Schedule: benefit.NewYork2020(),
	}
}

// Phase records one stage's timing.
type Phase struct {
	Name       string `json:"name"`
	DurationMs int64  `json:"duration_ms"`
}

// Result is the output of one run.
type Result struct {
	RunID      string                     `json:"run_id"`
	StartedAt  time.Time                  `json:"started_at"`
	FinishedAt time.Time                  `json:"finished_at"`
	Records    []model.EnrichedRecord     `json:"-"`
	Households []model.HouseholdAggregate `json:"-"`
	Ties       []crosswalk.Tie            `json:"ties"`
	Phases     []Phase                    `json:"phases"`
	Stats      Stats                      `json:"stats"`
}

// Pipeline holds the configured stages. It is safe to Run repeatedly.
type Pipeline struct {
	opts     Options
	resolver *crosswalk.Resolver
	deriver  *derive.Deriver
	benefits *benefit.Engine
}

// New validates opts and builds the stages.
func New(opts Options) (*Pipeline, error) {
	engine, err := benefit.NewEngine(opts.Schedule)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: benefit schedule")
	}
	return &Pipeline{
		opts:     opts,
		resolver: crosswalk.NewResolver(opts.TieBreak),
		deriver:  derive.New(opts.Rules),
		benefits: engine,
	}, nil
}

// Schedule returns the benefit schedule in use.
func (p *Pipeline) Schedule() benefit.Schedule { return p.benefits.Schedule() }

// Run executes every stage in order. Structural violations (duplicate
// reference keys, duplicate person rows, records without a household id)
// fail the run with an error wrapping model.ErrStructural.
func (p *Pipeline) Run(ctx context.Context, in Inputs) (*Result, error) {
	result := &Result{RunID: uuid.NewString(), StartedAt: time.Now().UTC()}
	log := zap.L().With(zap.String("component", "pipeline"), zap.String("run_id", result.RunID))
	log.Info("pipeline: starting run", zap.Int("persons", len(in.Persons)))

	grouper, joinOpts := in.Industry, p.opts.Join
	if grouper == nil {
		grouper = transform.SectorGrouper
		joinOpts.IndustryCoding = join.CodingNAICS
		log.Info("pipeline: no industry map, grouping indnaics by sector")
	}

	phase := func(name string, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return eris.Wrapf(err, "pipeline: cancelled before %s", name)
		}
		start := time.Now()
		if err := fn(); err != nil {
			log.Error("pipeline: phase failed", zap.String("phase", name), zap.Error(err))
			return err
		}
		d := time.Since(start).Milliseconds()
		result.Phases = append(result.Phases, Phase{Name: name, DurationMs: d})
		log.Info("pipeline: phase complete", zap.String("phase", name), zap.Int64("duration_ms", d))
		return nil
	}

	var (
		resolution crosswalk.Resolution
		records    []model.EnrichedRecord
		joinStats  join.Stats
	)

	steps := []struct {
		name string
		fn   func() error
	}{
		{"validate", func() error { return CheckUniquePersons(in.Persons) }},
		{"resolve", func() error {
			resolution = p.resolver.Resolve(in.Crosswalk)
			result.Ties = resolution.Ties
			return nil
		}},
		{"join", func() error {
			engine, err := join.NewEngine(joinOpts, resolution.Mapping, in.Thresholds, in.JobLoss, grouper)
			if err != nil {
				return eris.Wrap(err, "pipeline: build join indexes")
			}
			records, joinStats = engine.Enrich(in.Persons)
			return nil
		}},
		{"derive", func() error {
			for i := range records {
				records[i].Derived = p.deriver.Derive(records[i])
			}
			return nil
		}},
		{"benefit", func() error {
			for i := range records {
				records[i].Benefit = p.benefits.Evaluate(records[i].Derived.WageIncome)
			}
			return nil
		}},
		{"aggregate", func() error {
			households, err := household.Aggregate(records)
			if err != nil {
				return eris.Wrap(err, "pipeline: aggregate households")
			}
			result.Households = households
			return nil
		}},
	}

	for _, s := range steps {
		if err := phase(s.name, s.fn); err != nil {
			return nil, err
		}
	}

	result.Records = records
	result.Stats = ComputeStats(records, result.Households, joinStats, resolution)
	result.FinishedAt = time.Now().UTC()

	log.Info("pipeline: run complete",
		zap.Int("records", len(records)),
		zap.Int("households", len(result.Households)),
		zap.Int("crosswalk_ties", len(result.Ties)),
		zap.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)),
	)
	return result, nil
}

// CheckUniquePersons fails when two input rows share a (household, person)
// identity, since the output could then no longer be traced to one row.
func CheckUniquePersons(persons []model.PersonRecord) error {
	seen := make(map[model.PersonKey]int, len(persons))
	for _, p := range persons {
		if first, ok := seen[p.Key()]; ok {
			return eris.Wrapf(model.ErrStructural,
				"pipeline: household %q person %d appears in rows %d and %d",
				p.HouseholdID, p.PersonNumber, first, p.Row)
		}
		seen[p.Key()] = p.Row
	}
	return nil
}
