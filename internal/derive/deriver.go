// Package derive computes the per-person income, rent-burden and housing
// recodes from raw and joined fields.
package derive

import (
	"github.com/sells-group/rental-assist/internal/model"
)

// Rules holds the recode constants. The zero value is not usable; start
// from DefaultRules.
type Rules struct {
	WageSentinels          []float64 // wage codes meaning missing / not applicable
	HouseholdIncomeTopCode float64   // household income code meaning not applicable
	RenterTenureCodes      []int
	RentMonths             float64
	BurdenThreshold        float64 // burdened above this share of income
	SevereBurdenThreshold  float64 // severely burdened above this share
	DefaultTargetBurden    float64
}

// DefaultRules returns the IPUMS ACS coding with the HUD 30%/50% burden cutoffs.
func DefaultRules() Rules {
	return Rules{
		WageSentinels:          []float64{999998, 999999},
		HouseholdIncomeTopCode: 9999999,
		RenterTenureCodes:      []int{2},
		RentMonths:             12,
		BurdenThreshold:        0.30,
		SevereBurdenThreshold:  0.50,
		DefaultTargetBurden:    0.30,
	}
}

// Deriver applies Rules to enriched records.
type Deriver struct {
	rules     Rules
	sentinels map[float64]bool
	renter    map[int]bool
}

// New creates a Deriver.
func New(rules Rules) *Deriver {
	d := &Deriver{
		rules:     rules,
		sentinels: make(map[float64]bool, len(rules.WageSentinels)),
		renter:    make(map[int]bool, len(rules.RenterTenureCodes)),
	}
	for _, s := range rules.WageSentinels {
		d.sentinels[s] = true
	}
	for _, c := range rules.RenterTenureCodes {
		d.renter[c] = true
	}
	return d
}

// CleanWage converts wage sentinel codes to nil. Zero stays zero.
func (d *Deriver) CleanWage(v *float64) *float64 {
	if v == nil || d.sentinels[*v] {
		return nil
	}
	return model.Float(*v)
}

// CleanHouseholdIncome floors non-positive income at zero and nulls the
// top-code sentinel.
func (d *Deriver) CleanHouseholdIncome(v *float64) *float64 {
	if v == nil || *v == d.rules.HouseholdIncomeTopCode {
		return nil
	}
	if *v <= 0 {
		return model.Float(0)
	}
	return model.Float(*v)
}

// IsRenter reports whether a tenure code is a rental.
func (d *Deriver) IsRenter(tenure int) bool {
	return d.renter[tenure]
}

// RentBurden returns annual gross rent over annual household income. It is
// nil for non-renters, when rent or income is missing, and when income is zero.
func (d *Deriver) RentBurden(renter bool, grossRent, householdIncome *float64) *float64 {
	if !renter || grossRent == nil || householdIncome == nil || *householdIncome == 0 {
		return nil
	}
	return model.Float(*grossRent * d.rules.RentMonths / *householdIncome)
}

// Derive computes the Derived section for one record. It reads only the
// record itself.
func (d *Deriver) Derive(rec model.EnrichedRecord) model.Derived {
	out := model.Derived{
		WageIncome:      d.CleanWage(rec.WageIncome),
		HouseholdIncome: d.CleanHouseholdIncome(rec.HouseholdIncome),
		Renter:          d.IsRenter(rec.Tenure),
		MoverStatus:     MoverStatus(rec.Mobility),
		RecentMover:     IsRecentMover(rec.Mobility),
		BuildingSize:    BuildingSize(rec.BuildingType),
	}

	if out.Renter && rec.RentPaid != nil {
		out.GrossRent = model.Float(*rec.RentPaid)
	}

	out.RentBurden = d.RentBurden(out.Renter, out.GrossRent, out.HouseholdIncome)
	if out.RentBurden != nil {
		b := *out.RentBurden
		out.Burdened = b > d.rules.BurdenThreshold
		out.SeverelyBurdened = out.Burdened && b > d.rules.SevereBurdenThreshold
		out.ModeratelyBurdened = out.Burdened && !out.SeverelyBurdened
	}

	out.TargetBurden = d.rules.DefaultTargetBurden
	if out.Burdened {
		out.TargetBurden = *out.RentBurden
	}

	if out.HouseholdIncome != nil && rec.Joined.IncomeThreshold != nil {
		out.IncomeEligible = model.Bool(*out.HouseholdIncome <= *rec.Joined.IncomeThreshold)
	}

	return out
}
