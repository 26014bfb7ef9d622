package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/rental-assist/internal/config"
)

const (
	personsCSV = `serial,pernum,statefip,puma,numprec,age,indnaics,inctot,incwage,hhincome,ownershp,rentgrs,empstat,unitsstr,migrate1,gq,perwt
1,1,36,3701,2,34,722511,12000,12000,45000,2,1500,1,7,1,1,10
1,2,36,3701,2,30,5413,16000,16000,45000,2,1500,1,7,1,1,10
2,1,36,3702,1,70,,0,999999,9999999,1,,3,3,1,1,5
3,1,36,3701,1,50,,,,,,,,,,3,1
`
	crosswalkCSV = `state,puma,county,afact
36,03701,061,0.7
36,03701,047,0.3
36,03702,081,0.5
36,03702,005,0.5
`
	thresholdsCSV = `state,county,l80_1,l80_2
36,061,60000,68000
36,081,55000,62000
`
	jobLossCSV = `industry_group,emp_pre,emp_post,pct_change,renter_adjustment
leisure_and_hospitality,100,60,,1.2
`
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// setTestConfig installs a configuration pointing at fixture inputs in a
// temp dir and returns that dir.
func setTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg = &config.Config{
		Input: config.InputConfig{
			Persons:         writeTestFile(t, dir, "persons.csv", personsCSV),
			Crosswalk:       writeTestFile(t, dir, "crosswalk.csv", crosswalkCSV),
			Thresholds:      writeTestFile(t, dir, "thresholds.csv", thresholdsCSV),
			JobLoss:         writeTestFile(t, dir, "jobloss.csv", jobLossCSV),
			ThresholdPrefix: "l80_",
			TempDir:         filepath.Join(dir, "tmp"),
		},
		Output: config.OutputConfig{
			Format: "csv",
			Path:   filepath.Join(dir, "enriched.csv"),
		},
		Pipeline: config.PipelineConfig{
			TieBreak:               "first_in_order",
			HouseholdSizeCap:       8,
			ExcludedPopulation:     []int{3, 4},
			WageSentinels:          []float64{999998, 999999},
			HouseholdIncomeTopCode: 9999999,
			RenterTenureCodes:      []int{2},
			RentMonths:             12,
			BurdenThreshold:        0.30,
			SevereBurdenThreshold:  0.50,
			DefaultTargetBurden:    0.30,
		},
		Fetch: config.FetchConfig{UserAgent: "test", TimeoutSecs: 5, MaxRetries: 1},
		Log:   config.LogConfig{Level: "error", Format: "json"},
	}
	return dir
}
