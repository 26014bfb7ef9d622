package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/rental-assist/internal/benefit"
	"github.com/sells-group/rental-assist/internal/config"
	"github.com/sells-group/rental-assist/internal/crosswalk"
	"github.com/sells-group/rental-assist/internal/derive"
	"github.com/sells-group/rental-assist/internal/join"
)

// OptionsFromConfig maps the loaded configuration onto stage options and
// loads the benefit schedule file when one is configured.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	tie, err := crosswalk.PolicyByName(cfg.Pipeline.TieBreak)
	if err != nil {
		return Options{}, eris.Wrap(err, "pipeline: tie-break policy")
	}

	schedule := benefit.NewYork2020()
	if cfg.Benefit.SchedulePath != "" {
		schedule, err = benefit.LoadSchedule(cfg.Benefit.SchedulePath)
		if err != nil {
			return Options{}, eris.Wrap(err, "pipeline: load benefit schedule")
		}
	}

	pc := cfg.Pipeline
	return Options{
		TieBreak: tie,
		Join: join.Options{
			HouseholdSizeCap:   pc.HouseholdSizeCap,
			ExcludedPopulation: pc.ExcludedPopulation,
		},
		Rules: derive.Rules{
			WageSentinels:          pc.WageSentinels,
			HouseholdIncomeTopCode: pc.HouseholdIncomeTopCode,
			RenterTenureCodes:      pc.RenterTenureCodes,
			RentMonths:             pc.RentMonths,
			BurdenThreshold:        pc.BurdenThreshold,
			SevereBurdenThreshold:  pc.SevereBurdenThreshold,
			DefaultTargetBurden:    pc.DefaultTargetBurden,
		},
		Schedule: schedule,
	}, nil
}
