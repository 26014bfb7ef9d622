package refdata

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/fetcher"
	"github.com/sells-group/rental-assist/internal/model"
)

// LoadJobLoss reads the industry-group employment change table. Any of the
// numeric columns may be absent or blank.
func LoadJobLoss(ctx context.Context, path string) ([]model.JobLossEntry, error) {
	var out []model.JobLossEntry
	header := func(colIdx map[string]int) error {
		return requireColumns("job loss", colIdx, "industry_group")
	}

	err := eachRow(ctx, path, fetcher.XLSXOptions{}, header, func(colIdx map[string]int, row fetcher.Row) error {
		e := model.JobLossEntry{IndustryGroup: getCol(row.Fields, colIdx, "industry_group")}
		if e.IndustryGroup == "" {
			return eris.Errorf("refdata: job loss row %d has no industry group", row.Index)
		}

		cols := []struct {
			col string
			dst **float64
		}{
			{"emp_pre", &e.EmploymentPre},
			{"emp_post", &e.EmploymentPost},
			{"pct_change", &e.PctChange},
			{"renter_adjustment", &e.RenterAdjustment},
		}
		for _, c := range cols {
			v, err := parseFloatPtr(getCol(row.Fields, colIdx, c.col))
			if err != nil {
				return rowError(err, "job loss", row.Index, c.col)
			}
			*c.dst = v
		}

		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("loaded job loss table", zap.String("component", "refdata"), zap.Int("groups", len(out)))
	return out, nil
}
