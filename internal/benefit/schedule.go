// Package benefit evaluates tiered unemployment-insurance benefit schedules.
package benefit

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Rounding modes applied to the weekly amount before the tier floor.
const (
	RoundNone    = "none"
	RoundFloor   = "floor"
	RoundNearest = "nearest"
)

// Tier is one quarterly-wage band. It applies to quarterly wages strictly
// above Above and up to the next tier's Above.
type Tier struct {
	Name    string  `yaml:"name" mapstructure:"name"`
	Above   float64 `yaml:"above" mapstructure:"above"`
	Divisor float64 `yaml:"divisor" mapstructure:"divisor"` // weekly = quarterly wage / Divisor
	Floor   float64 `yaml:"floor" mapstructure:"floor"`     // minimum weekly amount within the tier
}

// Enhancement is a flat weekly add-on paid to anyone with a positive
// regular benefit.
type Enhancement struct {
	Name   string  `yaml:"name" mapstructure:"name"`
	Weekly float64 `yaml:"weekly" mapstructure:"weekly"`
}

// Schedule is a jurisdiction's complete benefit rule set.
type Schedule struct {
	Jurisdiction    string        `yaml:"jurisdiction" mapstructure:"jurisdiction"`
	QuartersPerYear float64       `yaml:"quarters_per_year" mapstructure:"quarters_per_year"`
	WeeksPerMonth   float64       `yaml:"weeks_per_month" mapstructure:"weeks_per_month"`
	WeeklyCap       float64       `yaml:"weekly_cap" mapstructure:"weekly_cap"`
	Rounding        string        `yaml:"rounding" mapstructure:"rounding"`
	Tiers           []Tier        `yaml:"tiers" mapstructure:"tiers"`
	Enhancements    []Enhancement `yaml:"enhancements" mapstructure:"enhancements"`
}

// Enhancement names in the default schedule.
const (
	EnhancementFPUC = "fpuc" // Federal Pandemic Unemployment Compensation
	EnhancementLWA  = "lwa"  // Lost Wages Assistance
)

// NewYork2020 returns the New York regular UI schedule in force during 2020
// with the FPUC and LWA federal add-ons.
func NewYork2020() Schedule {
	return Schedule{
		Jurisdiction:    "NY-2020",
		QuartersPerYear: 4,
		WeeksPerMonth:   4,
		WeeklyCap:       504,
		Rounding:        RoundNone,
		Tiers: []Tier{
			{Name: "tier1", Above: 2400, Divisor: 25, Floor: 104},
			{Name: "tier2", Above: 3575, Divisor: 26, Floor: 143},
		},
		Enhancements: []Enhancement{
			{Name: EnhancementFPUC, Weekly: 600},
			{Name: EnhancementLWA, Weekly: 300},
		},
	}
}

// Validate checks that the schedule is evaluable: ascending tier
// boundaries, positive divisors, non-negative floors and a positive cap.
func (s Schedule) Validate() error {
	if len(s.Tiers) == 0 {
		return eris.New("benefit: schedule has no tiers")
	}
	if s.QuartersPerYear <= 0 {
		return eris.Errorf("benefit: quarters_per_year must be positive, got %v", s.QuartersPerYear)
	}
	if s.WeeksPerMonth <= 0 {
		return eris.Errorf("benefit: weeks_per_month must be positive, got %v", s.WeeksPerMonth)
	}
	if s.WeeklyCap <= 0 {
		return eris.Errorf("benefit: weekly_cap must be positive, got %v", s.WeeklyCap)
	}
	switch s.Rounding {
	case "", RoundNone, RoundFloor, RoundNearest:
	default:
		return eris.Errorf("benefit: unknown rounding %q", s.Rounding)
	}
	for i, t := range s.Tiers {
		if t.Divisor <= 0 {
			return eris.Errorf("benefit: tier %d (%s) divisor must be positive", i, t.Name)
		}
		if t.Floor < 0 {
			return eris.Errorf("benefit: tier %d (%s) floor must not be negative", i, t.Name)
		}
		if i > 0 && t.Above <= s.Tiers[i-1].Above {
			return eris.Errorf("benefit: tier %d (%s) boundary %v not above previous %v", i, t.Name, t.Above, s.Tiers[i-1].Above)
		}
	}
	seen := make(map[string]bool, len(s.Enhancements))
	for _, e := range s.Enhancements {
		if e.Name == "" {
			return eris.New("benefit: enhancement without a name")
		}
		if seen[e.Name] {
			return eris.Errorf("benefit: duplicate enhancement %q", e.Name)
		}
		seen[e.Name] = true
		if e.Weekly <= 0 {
			return eris.Errorf("benefit: enhancement %q weekly amount must be positive", e.Name)
		}
	}
	return nil
}

// LoadSchedule reads and validates a YAML schedule file.
func LoadSchedule(path string) (Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schedule{}, eris.Wrapf(err, "benefit: read schedule %s", path)
	}
	return ParseSchedule(data)
}

// ParseSchedule decodes and validates a YAML schedule.
func ParseSchedule(data []byte) (Schedule, error) {
	var s Schedule
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schedule{}, eris.Wrap(err, "benefit: decode schedule")
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}
