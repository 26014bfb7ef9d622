// Package refdata loads the survey extract and the reference tables it is
// joined against from CSV or XLSX sources.
package refdata

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/rental-assist/internal/fetcher"
	"github.com/sells-group/rental-assist/internal/model"
	"github.com/sells-group/rental-assist/internal/transform"
)

// Sources locates each input. Values are local paths or http(s) URLs and may
// point at .zip archives. IndustryMap is optional.
type Sources struct {
	Persons     string
	Crosswalk   string
	Thresholds  string
	JobLoss     string
	IndustryMap string
}

// Data is every input a pipeline run needs, fully parsed. Industry is nil
// when no industry map was configured.
type Data struct {
	Persons    []model.PersonRecord
	Crosswalk  []model.CrosswalkEntry
	Thresholds []model.ThresholdEntry
	JobLoss    []model.JobLossEntry
	Industry   transform.IndustryGrouper
}

// Validate checks that all required sources are set.
func (s Sources) Validate() error {
	required := []struct{ name, value string }{
		{"persons", s.Persons},
		{"crosswalk", s.Crosswalk},
		{"thresholds", s.Thresholds},
		{"job loss", s.JobLoss},
	}
	for _, r := range required {
		if r.value == "" {
			return eris.Errorf("refdata: no %s source configured", r.name)
		}
	}
	return nil
}

// LoadAll resolves and parses all sources concurrently. The first failure
// cancels the rest.
func LoadAll(ctx context.Context, r *fetcher.Resolver, src Sources, thresholdOpts ThresholdOptions) (*Data, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	var data Data
	g, gctx := errgroup.WithContext(ctx)

	load := func(name, location string, fn func(path string) error) {
		g.Go(func() error {
			path, err := r.Resolve(gctx, location)
			if err != nil {
				return eris.Wrapf(err, "refdata: resolve %s", name)
			}
			if err := fn(path); err != nil {
				return eris.Wrapf(err, "refdata: load %s", name)
			}
			return nil
		})
	}

	load("persons", src.Persons, func(path string) (err error) {
		data.Persons, err = LoadPersons(gctx, path)
		return err
	})
	load("crosswalk", src.Crosswalk, func(path string) (err error) {
		data.Crosswalk, err = LoadCrosswalk(gctx, path)
		return err
	})
	load("thresholds", src.Thresholds, func(path string) (err error) {
		data.Thresholds, err = LoadThresholds(gctx, path, thresholdOpts)
		return err
	})
	load("job loss", src.JobLoss, func(path string) (err error) {
		data.JobLoss, err = LoadJobLoss(gctx, path)
		return err
	})
	if src.IndustryMap != "" {
		load("industry map", src.IndustryMap, func(path string) (err error) {
			data.Industry, err = LoadIndustryMap(gctx, path)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if data.Industry == nil {
		if err := checkSectorFallback(data.Persons); err != nil {
			return nil, err
		}
	}

	zap.L().Info("inputs loaded",
		zap.String("component", "refdata"),
		zap.Int("persons", len(data.Persons)),
		zap.Int("crosswalk_rows", len(data.Crosswalk)),
		zap.Int("thresholds", len(data.Thresholds)),
		zap.Int("job_loss_groups", len(data.JobLoss)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &data, nil
}

// checkSectorFallback rejects extracts that only carry census IND codes when
// no industry map is configured. Those codes are not NAICS, so sector
// grouping would silently assign wrong groups.
func checkSectorFallback(persons []model.PersonRecord) error {
	var census int
	for _, p := range persons {
		if p.IndustryNAICS != "" {
			return nil
		}
		if p.IndustryCode != "" && strings.TrimLeft(p.IndustryCode, "0") != "" {
			census++
		}
	}
	if census > 0 {
		return eris.Errorf("refdata: %d persons carry census IND codes but no indnaics values; set input.industry_map to group them", census)
	}
	return nil
}
