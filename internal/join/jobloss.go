package join

import "github.com/sells-group/rental-assist/internal/model"

// JobLoss is a job-loss row with its derived percentages.
type JobLoss struct {
	Entry     model.JobLossEntry
	Pct       *float64 // non-negative; nil when no change can be determined
	RenterPct *float64 // Pct scaled by the renter adjustment factor
}

// RawChange returns the raw employment percentage change for the entry.
// When the table leaves it blank it is computed from the period counts.
func RawChange(e model.JobLossEntry) *float64 {
	if e.PctChange != nil {
		return e.PctChange
	}
	if e.EmploymentPre == nil || e.EmploymentPost == nil || *e.EmploymentPre == 0 {
		return nil
	}
	v := (*e.EmploymentPost - *e.EmploymentPre) / *e.EmploymentPre * 100
	return &v
}

// JobLossPct converts a raw change into a job-loss percentage. Flat or
// improving groups are defined as zero loss; declines are sign-inverted.
func JobLossPct(raw float64) float64 {
	if raw >= 0 {
		return 0
	}
	return -raw
}

// DeriveJobLoss computes the job-loss fields for a table row.
func DeriveJobLoss(e model.JobLossEntry) JobLoss {
	jl := JobLoss{Entry: e}
	raw := RawChange(e)
	if raw == nil {
		return jl
	}
	jl.Pct = model.Float(JobLossPct(*raw))
	if e.RenterAdjustment != nil {
		jl.RenterPct = model.Float(*jl.Pct * *e.RenterAdjustment)
	}
	return jl
}
