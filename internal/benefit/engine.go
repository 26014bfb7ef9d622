package benefit

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/rental-assist/internal/model"
)

// Engine evaluates a validated Schedule.
type Engine struct {
	s Schedule
}

// NewEngine validates the schedule and returns an Engine for it.
func NewEngine(s Schedule) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, eris.Wrap(err, "benefit: new engine")
	}
	return &Engine{s: s}, nil
}

// Schedule returns the schedule being evaluated.
func (e *Engine) Schedule() Schedule { return e.s }

// QuarterlyWage approximates quarterly earnings from annual wage income.
// Missing and non-positive wages count as zero.
func (e *Engine) QuarterlyWage(annual *float64) float64 {
	if annual == nil || *annual <= 0 {
		return 0
	}
	return *annual / e.s.QuartersPerYear
}

// tierFor returns the highest tier whose lower boundary the wage exceeds.
func (e *Engine) tierFor(quarterly float64) (Tier, bool) {
	for i := len(e.s.Tiers) - 1; i >= 0; i-- {
		if quarterly > e.s.Tiers[i].Above {
			return e.s.Tiers[i], true
		}
	}
	return Tier{}, false
}

// Weekly returns the capped weekly benefit and the tier that produced it.
func (e *Engine) Weekly(quarterly float64) (float64, string) {
	t, ok := e.tierFor(quarterly)
	if !ok {
		return 0, ""
	}
	weekly := e.round(quarterly / t.Divisor)
	if weekly < t.Floor {
		weekly = t.Floor
	}
	if weekly > e.s.WeeklyCap {
		weekly = e.s.WeeklyCap
	}
	return weekly, t.Name
}

func (e *Engine) round(v float64) float64 {
	switch e.s.Rounding {
	case RoundFloor:
		return math.Floor(v)
	case RoundNearest:
		return math.Round(v)
	default:
		return v
	}
}

// Evaluate computes the regular and enhanced monthly benefit for an annual
// wage income. Enhancements are paid only when the regular benefit is
// positive.
func (e *Engine) Evaluate(annualWage *float64) model.Benefit {
	q := e.QuarterlyWage(annualWage)
	weekly, tier := e.Weekly(q)

	b := model.Benefit{
		QuarterlyWage: q,
		Tier:          tier,
		Weekly:        weekly,
		Monthly:       weekly * e.s.WeeksPerMonth,
		Enhancements:  make([]model.Enhancement, len(e.s.Enhancements)),
	}
	for i, enh := range e.s.Enhancements {
		b.Enhancements[i] = model.Enhancement{Name: enh.Name}
		if b.Monthly > 0 {
			b.Enhancements[i].Monthly = enh.Weekly * e.s.WeeksPerMonth
		}
	}
	return b
}
