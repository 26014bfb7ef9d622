package pipeline

import (
	"gonum.org/v1/gonum/stat"

	"github.com/sells-group/rental-assist/internal/crosswalk"
	"github.com/sells-group/rental-assist/internal/join"
	"github.com/sells-group/rental-assist/internal/model"
)

// Stats summarizes a run. Shares are person-weighted; a share over an empty
// population is 0.
type Stats struct {
	Join       join.Stats `json:"join"`
	SubAreas   int        `json:"sub_areas"`
	Ties       int        `json:"crosswalk_ties"`
	Records    int        `json:"records"`
	Households int        `json:"households"`

	Renters             int     `json:"renters"`
	RenterShare         float64 `json:"renter_share"`
	BurdenedShare       float64 `json:"burdened_share"`          // of renters with a burden
	SevereShare         float64 `json:"severely_burdened_share"` // of renters with a burden
	IncomeEligibleShare float64 `json:"income_eligible_share"`   // of renters with a known eligibility

	Recipients         int     `json:"benefit_recipients"`
	MeanMonthlyBenefit float64 `json:"mean_monthly_benefit"` // over recipients
}

// indicator is 1 when b is true.
func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// weightedShare returns the weighted mean of x, or 0 when there are no
// observations or the weights sum to zero.
func weightedShare(x, w []float64) float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	if len(x) == 0 || total == 0 {
		return 0
	}
	return stat.Mean(x, w)
}

// ComputeStats summarizes the run's records.
func ComputeStats(records []model.EnrichedRecord, households []model.HouseholdAggregate, js join.Stats, res crosswalk.Resolution) Stats {
	s := Stats{
		Join:       js,
		SubAreas:   len(res.Mapping),
		Ties:       len(res.Ties),
		Records:    len(records),
		Households: len(households),
	}

	var (
		renterX, allW        []float64
		burdenX, severeX     []float64
		burdenW              []float64
		eligibleX, eligibleW []float64
		benefitX, benefitW   []float64
	)

	for i := range records {
		r := &records[i]
		renterX = append(renterX, indicator(r.Derived.Renter))
		allW = append(allW, r.Weight)

		if r.Derived.Renter {
			s.Renters++
			if r.Derived.RentBurden != nil {
				burdenX = append(burdenX, indicator(r.Derived.Burdened))
				severeX = append(severeX, indicator(r.Derived.SeverelyBurdened))
				burdenW = append(burdenW, r.Weight)
			}
			if r.Derived.IncomeEligible != nil {
				eligibleX = append(eligibleX, indicator(*r.Derived.IncomeEligible))
				eligibleW = append(eligibleW, r.Weight)
			}
		}

		if r.Benefit.Monthly > 0 {
			s.Recipients++
			benefitX = append(benefitX, r.Benefit.Monthly)
			benefitW = append(benefitW, r.Weight)
		}
	}

	s.RenterShare = weightedShare(renterX, allW)
	s.BurdenedShare = weightedShare(burdenX, burdenW)
	s.SevereShare = weightedShare(severeX, burdenW)
	s.IncomeEligibleShare = weightedShare(eligibleX, eligibleW)
	s.MeanMonthlyBenefit = weightedShare(benefitX, benefitW)
	return s
}
