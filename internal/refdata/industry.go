package refdata

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/fetcher"
	"github.com/sells-group/rental-assist/internal/transform"
)

// LoadIndustryMap reads an industry_code → industry_group table keyed on the
// census IND codes of the persons extract. An empty path returns nil; callers
// then group INDNAICS codes by sector instead.
func LoadIndustryMap(ctx context.Context, path string) (transform.IndustryGrouper, error) {
	if path == "" {
		return nil, nil
	}

	var pairs [][2]string
	header := func(colIdx map[string]int) error {
		return requireColumns("industry map", colIdx, "industry_code", "industry_group")
	}
	err := eachRow(ctx, path, fetcher.XLSXOptions{}, header, func(colIdx map[string]int, row fetcher.Row) error {
		pairs = append(pairs, [2]string{
			getCol(row.Fields, colIdx, "industry_code"),
			getCol(row.Fields, colIdx, "industry_group"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	g, err := transform.NewTableGrouper(pairs)
	if err != nil {
		return nil, err
	}
	zap.L().Info("loaded industry map", zap.String("component", "refdata"), zap.Int("codes", g.Len()))
	return g, nil
}
