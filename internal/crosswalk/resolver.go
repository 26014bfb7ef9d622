// Package crosswalk resolves survey sub-areas to a single county by
// plurality of the crosswalk allocation fractions.
package crosswalk

import (
	"go.uber.org/zap"

	"github.com/sells-group/rental-assist/internal/model"
)

// Assignment is the county chosen for a sub-area.
type Assignment struct {
	County   string  `json:"county"`
	Fraction float64 `json:"fraction"`
}

// Tie records a sub-area whose maximum fraction was shared by more than one
// county.
type Tie struct {
	Key      model.GeoKey `json:"key"`
	Counties []string     `json:"counties"` // tied counties in input order
	Chosen   string       `json:"chosen"`
	Fraction float64      `json:"fraction"`
}

// Mapping is the resolved (state, sub-area) → county table.
type Mapping map[model.GeoKey]Assignment

// Lookup returns the assignment for a key.
func (m Mapping) Lookup(state, subArea string) (Assignment, bool) {
	a, ok := m[model.GeoKey{State: state, SubArea: subArea}]
	return a, ok
}

// Resolution is the output of Resolve.
type Resolution struct {
	Mapping Mapping
	Order   []model.GeoKey // keys in first-seen input order
	Ties    []Tie
}

// Resolver selects one county per sub-area.
type Resolver struct {
	tieBreak TieBreak
}

// NewResolver creates a Resolver. A nil policy means FirstInOrder.
func NewResolver(tieBreak TieBreak) *Resolver {
	if tieBreak == nil {
		tieBreak = FirstInOrder
	}
	return &Resolver{tieBreak: tieBreak}
}

type group struct {
	best model.CrosswalkEntry
	tied []string
}

// Resolve groups entries by (state, sub-area) and keeps the entry with the
// largest fraction. Exact ties go to the tie-break policy and are reported.
func (r *Resolver) Resolve(entries []model.CrosswalkEntry) Resolution {
	groups := make(map[model.GeoKey]*group)
	var order []model.GeoKey

	for _, e := range entries {
		key := e.Key()
		g, ok := groups[key]
		if !ok {
			groups[key] = &group{best: e, tied: []string{e.County}}
			order = append(order, key)
			continue
		}
		switch {
		case e.Fraction > g.best.Fraction:
			g.best = e
			g.tied = []string{e.County}
		case e.Fraction == g.best.Fraction:
			g.tied = append(g.tied, e.County)
			if r.tieBreak(g.best, e) {
				g.best = e
			}
		}
	}

	res := Resolution{
		Mapping: make(Mapping, len(groups)),
		Order:   order,
	}
	for _, key := range order {
		g := groups[key]
		res.Mapping[key] = Assignment{County: g.best.County, Fraction: g.best.Fraction}
		if len(g.tied) > 1 {
			res.Ties = append(res.Ties, Tie{
				Key:      key,
				Counties: g.tied,
				Chosen:   g.best.County,
				Fraction: g.best.Fraction,
			})
		}
	}

	log := zap.L().With(zap.String("component", "crosswalk"))
	for _, t := range res.Ties {
		log.Warn("plurality tie resolved by policy",
			zap.String("state", t.Key.State),
			zap.String("sub_area", t.Key.SubArea),
			zap.Strings("counties", t.Counties),
			zap.String("chosen", t.Chosen),
			zap.Float64("fraction", t.Fraction),
		)
	}
	log.Info("crosswalk resolved",
		zap.Int("entries", len(entries)),
		zap.Int("sub_areas", len(res.Mapping)),
		zap.Int("ties", len(res.Ties)),
	)

	return res
}
