// Package join attaches county, income threshold and industry job-loss
// reference data to person records with left-outer semantics.
package join

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/crosswalk"
	"github.com/sells-group/rental-assist/internal/model"
	"github.com/sells-group/rental-assist/internal/transform"
)

// DefaultHouseholdSizeCap is the largest household size the threshold
// schedule publishes.
const DefaultHouseholdSizeCap = 8

// Industry codings a grouper can be keyed on.
const (
	CodingCensus = "census" // PersonRecord.IndustryCode
	CodingNAICS  = "naics"  // PersonRecord.IndustryNAICS
)

// Options configures the engine.
type Options struct {
	HouseholdSizeCap   int    // sizes above this use the cap row; <= 0 means DefaultHouseholdSizeCap
	ExcludedPopulation []int  // population-type codes dropped before joining
	IndustryCoding     string // which code the grouper reads; "" means CodingCensus
}

// Stats counts join coverage for a run.
type Stats struct {
	Input            int `json:"input"`
	Filtered         int `json:"filtered"` // dropped by the population filter
	Output           int `json:"output"`
	GeographyMatched int `json:"geography_matched"`
	ThresholdMatched int `json:"threshold_matched"`
	IndustryMapped   int `json:"industry_mapped"`
	JobLossMatched   int `json:"job_loss_matched"`
}

// Engine holds the read-only reference indexes.
type Engine struct {
	sizeCap    int
	excluded   map[int]bool
	geo        crosswalk.Mapping
	thresholds map[model.ThresholdKey]float64
	jobLoss    map[string]JobLoss
	grouper    transform.IndustryGrouper
	coding     string
}

// NewEngine indexes the reference tables. Duplicate threshold keys or
// duplicate job-loss groups are structural errors.
func NewEngine(opts Options, geo crosswalk.Mapping, thresholds []model.ThresholdEntry, jobLoss []model.JobLossEntry, grouper transform.IndustryGrouper) (*Engine, error) {
	sizeCap := opts.HouseholdSizeCap
	if sizeCap <= 0 {
		sizeCap = DefaultHouseholdSizeCap
	}
	coding := opts.IndustryCoding
	switch coding {
	case "":
		coding = CodingCensus
	case CodingCensus, CodingNAICS:
	default:
		return nil, eris.Errorf("join: unknown industry coding %q", coding)
	}

	e := &Engine{
		sizeCap:    sizeCap,
		excluded:   make(map[int]bool, len(opts.ExcludedPopulation)),
		geo:        geo,
		thresholds: make(map[model.ThresholdKey]float64, len(thresholds)),
		jobLoss:    make(map[string]JobLoss, len(jobLoss)),
		grouper:    grouper,
		coding:     coding,
	}
	for _, code := range opts.ExcludedPopulation {
		e.excluded[code] = true
	}

	for _, t := range thresholds {
		key := t.Key()
		if _, dup := e.thresholds[key]; dup {
			return nil, eris.Wrapf(model.ErrStructural, "join: duplicate income threshold for state %s county %s size %d",
				key.State, key.County, key.HouseholdSize)
		}
		e.thresholds[key] = t.Threshold
	}

	for _, j := range jobLoss {
		if _, dup := e.jobLoss[j.IndustryGroup]; dup {
			return nil, eris.Wrapf(model.ErrStructural, "join: duplicate job-loss row for industry group %q", j.IndustryGroup)
		}
		e.jobLoss[j.IndustryGroup] = DeriveJobLoss(j)
	}

	return e, nil
}

// CapHouseholdSize returns the household size used in the threshold key.
// Sizes below 1 form no key and return 0.
func CapHouseholdSize(size, sizeCap int) int {
	if size < 1 {
		return 0
	}
	if size > sizeCap {
		return sizeCap
	}
	return size
}

// Filter removes records in the excluded population types. It returns the
// kept records and the number dropped.
func (e *Engine) Filter(records []model.PersonRecord) ([]model.PersonRecord, int) {
	if len(e.excluded) == 0 {
		return records, 0
	}
	kept := make([]model.PersonRecord, 0, len(records))
	for _, r := range records {
		if e.excluded[r.PopulationType] {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}

// Enrich filters the records and attaches every reference table. Each kept
// input record yields exactly one output record.
func (e *Engine) Enrich(records []model.PersonRecord) ([]model.EnrichedRecord, Stats) {
	stats := Stats{Input: len(records)}

	kept, dropped := e.Filter(records)
	stats.Filtered = dropped

	out := make([]model.EnrichedRecord, len(kept))
	for i, r := range kept {
		out[i] = model.EnrichedRecord{PersonRecord: r, Joined: e.join(r, &stats)}
	}
	stats.Output = len(out)

	zap.L().Info("reference join complete",
		zap.String("component", "join"),
		zap.Int("input", stats.Input),
		zap.Int("filtered", stats.Filtered),
		zap.Int("geography_matched", stats.GeographyMatched),
		zap.Int("threshold_matched", stats.ThresholdMatched),
		zap.Int("industry_mapped", stats.IndustryMapped),
		zap.Int("job_loss_matched", stats.JobLossMatched),
	)

	return out, stats
}

func (e *Engine) join(r model.PersonRecord, stats *Stats) model.Joined {
	var j model.Joined

	j.ThresholdSize = CapHouseholdSize(r.HouseholdSize, e.sizeCap)

	if a, ok := e.geo.Lookup(r.State, r.SubArea); ok {
		stats.GeographyMatched++
		j.County = model.String(a.County)
		j.AllocationFraction = model.Float(a.Fraction)

		if j.ThresholdSize > 0 {
			key := model.ThresholdKey{State: r.State, County: a.County, HouseholdSize: j.ThresholdSize}
			if v, ok := e.thresholds[key]; ok {
				stats.ThresholdMatched++
				j.IncomeThreshold = model.Float(v)
			}
		}
	}

	if e.grouper != nil {
		if group, ok := e.grouper.Group(e.industryCode(r)); ok {
			stats.IndustryMapped++
			j.IndustryGroup = model.String(group)
			if jl, ok := e.jobLoss[group]; ok {
				stats.JobLossMatched++
				j.JobLossPct = clone(jl.Pct)
				j.RenterJobLossPct = clone(jl.RenterPct)
			}
		}
	}

	return j
}

func (e *Engine) industryCode(r model.PersonRecord) string {
	if e.coding == CodingNAICS {
		return r.IndustryNAICS
	}
	return r.IndustryCode
}

func clone(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return model.Float(*p)
}
