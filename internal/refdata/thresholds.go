package refdata

import (
	"context"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/fetcher"
	"github.com/sells-group/rental-assist/internal/model"
	"github.com/sells-group/rental-assist/internal/transform"
)

// ThresholdOptions describes the income-threshold file layout.
type ThresholdOptions struct {
	// Prefix names wide-format size columns (<prefix>1 .. <prefix>N).
	Prefix string
	// MaxSize is the largest household size the file may carry.
	MaxSize int
	// Sheet selects the worksheet when the file is XLSX.
	Sheet string
}

// DefaultThresholdOptions matches the HUD 80% income-limit files.
func DefaultThresholdOptions() ThresholdOptions {
	return ThresholdOptions{Prefix: "l80_", MaxSize: 8}
}

// LoadThresholds reads income thresholds in either long layout
// (state, county, household_size, threshold) or wide layout
// (state, county, <prefix>1 .. <prefix>N). Blank threshold cells are skipped.
func LoadThresholds(ctx context.Context, path string, opts ThresholdOptions) ([]model.ThresholdEntry, error) {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultThresholdOptions().MaxSize
	}
	prefix := strings.ToLower(opts.Prefix)

	var (
		out     []model.ThresholdEntry
		wide    bool
		sizeCol = map[int]string{}
	)

	header := func(colIdx map[string]int) error {
		if err := requireColumns("thresholds", colIdx, "state", "county"); err != nil {
			return err
		}
		_, hasSize := colIdx["household_size"]
		_, hasValue := colIdx["threshold"]
		if hasSize && hasValue {
			return nil
		}

		for size := 1; size <= opts.MaxSize; size++ {
			col := prefix + strconv.Itoa(size)
			if _, ok := colIdx[col]; ok {
				sizeCol[size] = col
			}
		}
		if prefix == "" || len(sizeCol) == 0 {
			return eris.Errorf("refdata: thresholds has neither household_size/threshold columns nor %q size columns", opts.Prefix)
		}
		wide = true
		return nil
	}

	err := eachRow(ctx, path, fetcher.XLSXOptions{SheetName: opts.Sheet}, header, func(colIdx map[string]int, row fetcher.Row) error {
		state := transform.NormalizeFIPSState(getCol(row.Fields, colIdx, "state"))
		county := transform.CountyKey(state, getCol(row.Fields, colIdx, "county"))
		if state == "" || county == "" {
			return eris.Errorf("refdata: thresholds row %d has no state or county", row.Index)
		}

		if !wide {
			size, err := parseIntOr(getCol(row.Fields, colIdx, "household_size"), 0)
			if err != nil {
				return rowError(err, "thresholds", row.Index, "household_size")
			}
			if size < 1 || size > opts.MaxSize {
				return eris.Errorf("refdata: thresholds row %d household size %d outside 1..%d", row.Index, size, opts.MaxSize)
			}
			v, err := parseFloatPtr(getCol(row.Fields, colIdx, "threshold"))
			if err != nil {
				return rowError(err, "thresholds", row.Index, "threshold")
			}
			if v != nil {
				out = append(out, model.ThresholdEntry{State: state, County: county, HouseholdSize: size, Threshold: *v})
			}
			return nil
		}

		for size := 1; size <= opts.MaxSize; size++ {
			col, ok := sizeCol[size]
			if !ok {
				continue
			}
			v, err := parseFloatPtr(getCol(row.Fields, colIdx, col))
			if err != nil {
				return rowError(err, "thresholds", row.Index, col)
			}
			if v != nil {
				out = append(out, model.ThresholdEntry{State: state, County: county, HouseholdSize: size, Threshold: *v})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("loaded income thresholds",
		zap.String("component", "refdata"),
		zap.Bool("wide", wide),
		zap.Int("entries", len(out)),
	)
	return out, nil
}
