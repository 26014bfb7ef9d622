package model

// Joined carries the fields attached by the reference joins. Nil means the
// lookup found no row.
type Joined struct {
	County             *string  `json:"county"`
	AllocationFraction *float64 `json:"allocation_fraction"`
	ThresholdSize      int      `json:"threshold_size"` // household size after capping; 0 = no key
	IncomeThreshold    *float64 `json:"income_threshold"`
	IndustryGroup      *string  `json:"industry_group"`
	JobLossPct         *float64 `json:"job_loss_pct"`
	RenterJobLossPct   *float64 `json:"renter_job_loss_pct"`
}

// Derived carries the per-record recodes.
type Derived struct {
	WageIncome      *float64 `json:"wage_income_clean"`
	HouseholdIncome *float64 `json:"household_income_clean"`

	Renter    bool     `json:"renter"`
	GrossRent *float64 `json:"gross_rent"`

	RentBurden         *float64 `json:"rent_burden"`
	Burdened           bool     `json:"burdened"`
	SeverelyBurdened   bool     `json:"severely_burdened"`
	ModeratelyBurdened bool     `json:"moderately_burdened"`
	TargetBurden       float64  `json:"target_burden"`

	IncomeEligible *bool `json:"income_eligible"`

	MoverStatus  string `json:"mover_status"`
	RecentMover  bool   `json:"recent_mover"`
	BuildingSize string `json:"building_size"`
}

// Enhancement is one flat add-on granted on top of the regular benefit.
type Enhancement struct {
	Name    string  `json:"name"`
	Monthly float64 `json:"monthly"`
}

// Benefit carries the UI schedule evaluation.
type Benefit struct {
	QuarterlyWage float64       `json:"quarterly_wage"`
	Tier          string        `json:"tier"` // empty when below the first boundary
	Weekly        float64       `json:"weekly"`
	Monthly       float64       `json:"monthly"`
	Enhancements  []Enhancement `json:"enhancements"`
}

// Enhancement returns the monthly amount of the named add-on, or 0.
func (b Benefit) Enhancement(name string) float64 {
	for _, e := range b.Enhancements {
		if e.Name == name {
			return e.Monthly
		}
	}
	return 0
}

// EnrichedRecord is a PersonRecord widened by every pipeline stage.
type EnrichedRecord struct {
	PersonRecord

	Joined  Joined  `json:"joined"`
	Derived Derived `json:"derived"`
	Benefit Benefit `json:"benefit"`

	HouseholdWageIncome float64 `json:"household_wage_income"`
}

// HouseholdAggregate is the household roll-up broadcast to each member.
// Total is the sum of the aggregated field; the pipeline aggregates wage
// income.
type HouseholdAggregate struct {
	HouseholdID string  `json:"household_id"`
	Members     int     `json:"members"`
	Total       float64 `json:"total"`
}
