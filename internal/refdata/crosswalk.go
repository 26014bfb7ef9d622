package refdata

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/fetcher"
	"github.com/sells-group/rental-assist/internal/model"
	"github.com/sells-group/rental-assist/internal/transform"
)

// LoadCrosswalk reads a sub-area to county allocation file (Geocorr layout:
// state, puma, county, afact). Counties may be 3-digit or full 5-digit FIPS.
func LoadCrosswalk(ctx context.Context, path string) ([]model.CrosswalkEntry, error) {
	var out []model.CrosswalkEntry
	header := func(colIdx map[string]int) error {
		return requireColumns("crosswalk", colIdx, "state", "puma", "county", "afact")
	}

	err := eachRow(ctx, path, fetcher.XLSXOptions{}, header, func(colIdx map[string]int, row fetcher.Row) error {
		rawState := getCol(row.Fields, colIdx, "state")
		if row.Index == 0 && !isNumeric(rawState) {
			// Geocorr exports carry a second header row of labels.
			return nil
		}
		state := transform.NormalizeFIPSState(rawState)
		county := transform.CountyKey(state, getCol(row.Fields, colIdx, "county"))
		if state == "" || county == "" {
			return eris.Errorf("refdata: crosswalk row %d has no state or county", row.Index)
		}
		afact, err := parseFloatPtr(getCol(row.Fields, colIdx, "afact"))
		if err != nil {
			return rowError(err, "crosswalk", row.Index, "afact")
		}
		if afact == nil {
			return eris.Errorf("refdata: crosswalk row %d has a blank allocation factor", row.Index)
		}
		if *afact < 0 {
			return eris.Errorf("refdata: crosswalk row %d has a negative allocation factor %v", row.Index, *afact)
		}
		out = append(out, model.CrosswalkEntry{
			State:    state,
			SubArea:  transform.NormalizePUMA(getCol(row.Fields, colIdx, "puma")),
			County:   county,
			Fraction: *afact,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("loaded crosswalk", zap.String("component", "refdata"), zap.Int("rows", len(out)))
	return out, nil
}
