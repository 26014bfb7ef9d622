package model

// GeoKey is the survey geography key that the crosswalk resolves.
type GeoKey struct {
	State   string `json:"state"`
	SubArea string `json:"sub_area"`
}

// CrosswalkEntry is one (sub-area, county) allocation row. Many rows share a
// GeoKey; Fraction is the share of the sub-area's housing units in County.
type CrosswalkEntry struct {
	State    string  `json:"state"`
	SubArea  string  `json:"sub_area"`
	County   string  `json:"county"` // 5-digit county FIPS
	Fraction float64 `json:"fraction"`
}

// Key returns the entry's sub-area key.
func (e CrosswalkEntry) Key() GeoKey {
	return GeoKey{State: e.State, SubArea: e.SubArea}
}

// ThresholdKey identifies an income-threshold row.
type ThresholdKey struct {
	State         string
	County        string
	HouseholdSize int
}

// ThresholdEntry is the assistance income cutoff for a county and household size.
type ThresholdEntry struct {
	State         string  `json:"state"`
	County        string  `json:"county"`
	HouseholdSize int     `json:"household_size"`
	Threshold     float64 `json:"threshold"`
}

// Key returns the entry's join key.
func (e ThresholdEntry) Key() ThresholdKey {
	return ThresholdKey{State: e.State, County: e.County, HouseholdSize: e.HouseholdSize}
}

// JobLossEntry holds industry-group employment change between two periods.
type JobLossEntry struct {
	IndustryGroup    string   `json:"industry_group"`
	EmploymentPre    *float64 `json:"employment_pre"`
	EmploymentPost   *float64 `json:"employment_post"`
	PctChange        *float64 `json:"pct_change"` // raw percentage change, negative = loss
	RenterAdjustment *float64 `json:"renter_adjustment"`
}
