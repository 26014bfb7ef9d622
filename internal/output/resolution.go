package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/rental-assist/internal/crosswalk"
	"github.com/sells-group/rental-assist/internal/model"
)

// WriteResolutionCSV writes a resolved crosswalk, one line per sub-area in
// first-seen order. Tied keys list every tied county.
func WriteResolutionCSV(out io.Writer, res crosswalk.Resolution) error {
	tied := make(map[model.GeoKey][]string, len(res.Ties))
	for _, t := range res.Ties {
		tied[t.Key] = t.Counties
	}

	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"state", "puma", "county", "afact", "tied_counties"}); err != nil {
		return eris.Wrap(err, "output: write csv header")
	}
	for _, key := range res.Order {
		a := res.Mapping[key]
		line := []string{
			key.State,
			key.SubArea,
			a.County,
			strconv.FormatFloat(a.Fraction, 'f', -1, 64),
			strings.Join(tied[key], " "),
		}
		if err := cw.Write(line); err != nil {
			return eris.Wrapf(err, "output: write %s/%s", key.State, key.SubArea)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "output: flush csv")
}
