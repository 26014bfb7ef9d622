package crosswalk

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/rental-assist/internal/model"
)

// TieBreak decides between two entries with exactly equal allocation
// fractions. It returns true when challenger should replace incumbent.
// incumbent always appears earlier in the input than challenger.
type TieBreak func(incumbent, challenger model.CrosswalkEntry) bool

// Policy names accepted by PolicyByName.
const (
	PolicyFirstInOrder = "first_in_order"
	PolicyLowestCounty = "lowest_county"
)

// FirstInOrder keeps the entry seen first in the input.
func FirstInOrder(_, _ model.CrosswalkEntry) bool { return false }

// LowestCounty keeps the entry with the numerically smallest county FIPS,
// independent of input order.
func LowestCounty(incumbent, challenger model.CrosswalkEntry) bool {
	return challenger.County < incumbent.County
}

var policies = map[string]TieBreak{
	PolicyFirstInOrder: FirstInOrder,
	PolicyLowestCounty: LowestCounty,
}

// PolicyByName returns the named tie-break policy. An empty name selects
// first_in_order.
func PolicyByName(name string) (TieBreak, error) {
	if name == "" {
		name = PolicyFirstInOrder
	}
	p, ok := policies[name]
	if !ok {
		return nil, eris.Errorf("crosswalk: unknown tie-break policy %q (valid: %v)", name, PolicyNames())
	}
	return p, nil
}

// PolicyNames lists the registered policies in sorted order.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for n := range policies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
