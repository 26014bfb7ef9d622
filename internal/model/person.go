package model

// PersonRecord is one survey respondent as ingested. Fields are never
// rewritten after load; later stages carry their output alongside it in
// EnrichedRecord.
type PersonRecord struct {
	Row          int    `json:"row"` // zero-based position in the source extract
	HouseholdID  string `json:"household_id"`
	PersonNumber int    `json:"person_number"`

	State         string `json:"state"`    // 2-digit state FIPS
	SubArea       string `json:"sub_area"` // 5-digit PUMA
	HouseholdSize int    `json:"household_size"`
	Age           int    `json:"age"`
	IndustryCode  string `json:"industry_code"`  // IPUMS IND (census coding)
	IndustryNAICS string `json:"industry_naics"` // IPUMS INDNAICS, when the extract carries it

	// Income and rent are nullable. A blank source cell is nil, not zero.
	TotalIncome     *float64 `json:"total_income"`
	WageIncome      *float64 `json:"wage_income"`
	HouseholdIncome *float64 `json:"household_income"`
	RentPaid        *float64 `json:"rent_paid"` // monthly gross rent

	Tenure           int `json:"tenure"`
	EmploymentStatus int `json:"employment_status"`
	BuildingType     int `json:"building_type"`
	Mobility         int `json:"mobility"`
	PopulationType   int `json:"population_type"`

	Weight float64 `json:"weight"`
}

// PersonKey identifies a respondent within the extract.
type PersonKey struct {
	HouseholdID  string
	PersonNumber int
}

// Key returns the record's household/person identity.
func (p PersonRecord) Key() PersonKey {
	return PersonKey{HouseholdID: p.HouseholdID, PersonNumber: p.PersonNumber}
}
