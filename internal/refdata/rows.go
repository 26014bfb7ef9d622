package refdata

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/rental-assist/internal/fetcher"
)

// rowFunc receives each data row together with the header's column index.
type rowFunc func(colIdx map[string]int, row fetcher.Row) error

// eachRow reads a local CSV or XLSX file and calls fn for every data row.
// headerFn, when set, validates the header before any row is delivered.
func eachRow(ctx context.Context, path string, sheet fetcher.XLSXOptions, headerFn func(map[string]int) error, fn rowFunc) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		header, rows, err := fetcher.ReadXLSX(path, sheet)
		if err != nil {
			return err
		}
		colIdx := mapColumns(header)
		if headerFn != nil {
			if err := headerFn(colIdx); err != nil {
				return err
			}
		}
		for _, row := range rows {
			if err := fn(colIdx, row); err != nil {
				return err
			}
		}
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return eris.Wrap(err, "refdata: open file")
	}
	defer f.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	headerCh := make(chan []string, 1)
	rowCh, errCh := fetcher.StreamCSV(ctx, f, fetcher.CSVOptions{
		HasHeader: true,
		HeaderCh:  headerCh,
		TrimSpace: true,
	})

	var colIdx map[string]int
	for row := range rowCh {
		if colIdx == nil {
			// The header is always sent before the first data row.
			colIdx = mapColumns(<-headerCh)
			if headerFn != nil {
				if err := headerFn(colIdx); err != nil {
					return err
				}
			}
		}
		if err := fn(colIdx, row); err != nil {
			return err
		}
	}
	if err := <-errCh; err != nil {
		return err
	}

	if colIdx == nil && headerFn != nil {
		select {
		case header := <-headerCh:
			return headerFn(mapColumns(header))
		default:
			return eris.Errorf("refdata: %s is empty", filepath.Base(path))
		}
	}
	return nil
}
