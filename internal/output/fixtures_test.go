package output

import (
	"github.com/sells-group/rental-assist/internal/model"
)

var testEnhancements = []string{"fpuc", "lwa"}

func testRecords() []model.EnrichedRecord {
	full := model.EnrichedRecord{
		PersonRecord: model.PersonRecord{
			Row:              0,
			HouseholdID:      "100",
			PersonNumber:     1,
			State:            "36",
			SubArea:          "03701",
			HouseholdSize:    3,
			Age:              34,
			IndustryCode:     "8680",
			TotalIncome:      model.Float(42000),
			WageIncome:       model.Float(40000),
			HouseholdIncome:  model.Float(60000),
			Tenure:           2,
			RentPaid:         model.Float(1500),
			EmploymentStatus: 1,
			BuildingType:     7,
			Mobility:         1,
			PopulationType:   1,
			Weight:           95.5,
		},
		Joined: model.Joined{
			County:             model.String("36061"),
			AllocationFraction: model.Float(0.75),
			ThresholdSize:      3,
			IncomeThreshold:    model.Float(70000),
			IndustryGroup:      model.String("leisure_and_hospitality"),
			JobLossPct:         model.Float(40),
			RenterJobLossPct:   model.Float(48),
		},
		Derived: model.Derived{
			WageIncome:      model.Float(40000),
			HouseholdIncome: model.Float(60000),
			Renter:          true,
			GrossRent:       model.Float(1500),
			RentBurden:      model.Float(0.3),
			TargetBurden:    0.3,
			IncomeEligible:  model.Bool(true),
			MoverStatus:     "same_house",
			BuildingSize:    "five_to_nineteen_units",
		},
		Benefit: model.Benefit{
			QuarterlyWage: 10000,
			Tier:          "tier2",
			Weekly:        504,
			Monthly:       2016,
			Enhancements: []model.Enhancement{
				{Name: "fpuc", Monthly: 2400},
				{Name: "lwa", Monthly: 1200},
			},
		},
		HouseholdWageIncome: 40000,
	}

	sparse := model.EnrichedRecord{
		PersonRecord: model.PersonRecord{
			Row:              1,
			HouseholdID:      "200",
			PersonNumber:     1,
			State:            "06",
			SubArea:          "00101",
			HouseholdSize:    1,
			Age:              70,
			Tenure:           1,
			EmploymentStatus: 3,
			BuildingType:     3,
			Mobility:         2,
			PopulationType:   1,
			Weight:           1,
		},
		Derived: model.Derived{
			TargetBurden: 0.3,
			MoverStatus:  "moved_within_state",
			RecentMover:  true,
			BuildingSize: "single_family",
		},
	}

	return []model.EnrichedRecord{full, sparse}
}

func testHouseholds() []model.HouseholdAggregate {
	return []model.HouseholdAggregate{
		{HouseholdID: "100", Members: 3, Total: 40000},
		{HouseholdID: "200", Members: 1, Total: 0},
	}
}
