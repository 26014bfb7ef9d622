package refdata

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/fetcher"
	"github.com/sells-group/rental-assist/internal/model"
	"github.com/sells-group/rental-assist/internal/transform"
)

// IPUMS extract column names.
const (
	colSerial   = "serial"
	colPernum   = "pernum"
	colStatefip = "statefip"
	colPUMA     = "puma"
	colNumprec  = "numprec"
	colAge      = "age"
	colInd      = "ind"
	colIndnaics = "indnaics"
	colInctot   = "inctot"
	colIncwage  = "incwage"
	colHhincome = "hhincome"
	colOwnershp = "ownershp"
	colRentgrs  = "rentgrs"
	colEmpstat  = "empstat"
	colUnitsstr = "unitsstr"
	colMigrate1 = "migrate1"
	colGQ       = "gq"
	colPerwt    = "perwt"
)

var personRequired = []string{colSerial, colPernum, colStatefip, colPUMA, colNumprec}

var personOptional = []string{
	colAge, colInd, colIndnaics, colInctot, colIncwage, colHhincome, colOwnershp, colRentgrs,
	colEmpstat, colUnitsstr, colMigrate1, colGQ, colPerwt,
}

// LoadPersons reads the person-level survey extract. Income and rent cells
// that are blank stay nil; a missing weight defaults to 1.
func LoadPersons(ctx context.Context, path string) ([]model.PersonRecord, error) {
	log := zap.L().With(zap.String("component", "refdata"), zap.String("table", "persons"))

	var out []model.PersonRecord
	header := func(colIdx map[string]int) error {
		if err := requireColumns("persons", colIdx, personRequired...); err != nil {
			return err
		}
		for _, c := range personOptional {
			if _, ok := colIdx[c]; !ok {
				log.Warn("optional column absent, values treated as blank", zap.String("column", c))
			}
		}
		return nil
	}

	err := eachRow(ctx, path, fetcher.XLSXOptions{}, header, func(colIdx map[string]int, row fetcher.Row) error {
		rec, err := parsePerson(colIdx, row)
		if err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("loaded persons", zap.Int("rows", len(out)))
	return out, nil
}

func parsePerson(colIdx map[string]int, row fetcher.Row) (model.PersonRecord, error) {
	rec := model.PersonRecord{
		Row:          row.Index,
		HouseholdID:  getCol(row.Fields, colIdx, colSerial),
		State:        transform.NormalizeFIPSState(getCol(row.Fields, colIdx, colStatefip)),
		SubArea:      transform.NormalizePUMA(getCol(row.Fields, colIdx, colPUMA)),
		IndustryCode: getCol(row.Fields, colIdx, colInd),
	}
	rec.IndustryNAICS = getCol(row.Fields, colIdx, colIndnaics)

	ints := []struct {
		col string
		dst *int
	}{
		{colPernum, &rec.PersonNumber},
		{colNumprec, &rec.HouseholdSize},
		{colAge, &rec.Age},
		{colOwnershp, &rec.Tenure},
		{colEmpstat, &rec.EmploymentStatus},
		{colUnitsstr, &rec.BuildingType},
		{colMigrate1, &rec.Mobility},
		{colGQ, &rec.PopulationType},
	}
	for _, f := range ints {
		v, err := parseIntOr(getCol(row.Fields, colIdx, f.col), 0)
		if err != nil {
			return rec, rowError(err, "persons", row.Index, f.col)
		}
		*f.dst = v
	}

	floats := []struct {
		col string
		dst **float64
	}{
		{colInctot, &rec.TotalIncome},
		{colIncwage, &rec.WageIncome},
		{colHhincome, &rec.HouseholdIncome},
		{colRentgrs, &rec.RentPaid},
	}
	for _, f := range floats {
		v, err := parseFloatPtr(getCol(row.Fields, colIdx, f.col))
		if err != nil {
			return rec, rowError(err, "persons", row.Index, f.col)
		}
		*f.dst = v
	}

	w, err := parseFloatPtr(getCol(row.Fields, colIdx, colPerwt))
	if err != nil {
		return rec, rowError(err, "persons", row.Index, colPerwt)
	}
	rec.Weight = model.FloatOr(w, 1)

	return rec, nil
}
