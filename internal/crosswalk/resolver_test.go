package crosswalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/rental-assist/internal/model"
)

func entry(state, puma, county string, frac float64) model.CrosswalkEntry {
	return model.CrosswalkEntry{State: state, SubArea: puma, County: county, Fraction: frac}
}

func TestResolve_PicksLargestFraction(t *testing.T) {
	t.Parallel()
	entries := []model.CrosswalkEntry{
		entry("36", "03701", "36005", 0.20),
		entry("36", "03701", "36061", 0.55),
		entry("36", "03701", "36047", 0.25),
		entry("06", "03701", "06037", 1.0),
	}

	res := NewResolver(nil).Resolve(entries)
	require.Len(t, res.Mapping, 2)
	assert.Empty(t, res.Ties)

	a, ok := res.Mapping.Lookup("36", "03701")
	require.True(t, ok)
	assert.Equal(t, "36061", a.County)
	assert.InDelta(t, 0.55, a.Fraction, 1e-12)

	a, ok = res.Mapping.Lookup("06", "03701")
	require.True(t, ok)
	assert.Equal(t, "06037", a.County)

	assert.Equal(t, []model.GeoKey{{State: "36", SubArea: "03701"}, {State: "06", SubArea: "03701"}}, res.Order)
}

func TestResolve_ChosenFractionDominatesGroup(t *testing.T) {
	t.Parallel()
	entries := []model.CrosswalkEntry{
		entry("17", "03501", "17031", 0.1),
		entry("17", "03501", "17043", 0.3),
		entry("17", "03501", "17097", 0.3),
		entry("17", "03502", "17031", 0.7),
		entry("17", "03502", "17197", 0.2),
		entry("17", "03501", "17089", 0.29),
		entry("17", "03503", "17031", 0),
	}

	res := NewResolver(FirstInOrder).Resolve(entries)

	// every input key appears exactly once
	seen := map[model.GeoKey]bool{}
	for _, e := range entries {
		seen[e.Key()] = true
	}
	assert.Len(t, res.Mapping, len(seen))

	for _, e := range entries {
		a, ok := res.Mapping[e.Key()]
		require.True(t, ok)
		assert.GreaterOrEqual(t, a.Fraction, e.Fraction)
	}
}

func TestResolve_TieFirstInOrder(t *testing.T) {
	t.Parallel()
	entries := []model.CrosswalkEntry{
		entry("06", "00101", "06075", 0.5),
		entry("06", "00101", "06001", 0.5),
	}

	res := NewResolver(FirstInOrder).Resolve(entries)
	a, ok := res.Mapping.Lookup("06", "00101")
	require.True(t, ok)
	assert.Equal(t, "06075", a.County)

	require.Len(t, res.Ties, 1)
	assert.Equal(t, []string{"06075", "06001"}, res.Ties[0].Counties)
	assert.Equal(t, "06075", res.Ties[0].Chosen)
}

func TestResolve_TieLowestCounty(t *testing.T) {
	t.Parallel()
	entries := []model.CrosswalkEntry{
		entry("06", "00101", "06075", 0.5),
		entry("06", "00101", "06001", 0.5),
		entry("06", "00101", "06013", 0.5),
	}

	res := NewResolver(LowestCounty).Resolve(entries)
	a, _ := res.Mapping.Lookup("06", "00101")
	assert.Equal(t, "06001", a.County)
	require.Len(t, res.Ties, 1)
	assert.Equal(t, "06001", res.Ties[0].Chosen)
	assert.Len(t, res.Ties[0].Counties, 3)
}

func TestResolve_TieSupersededByLargerFraction(t *testing.T) {
	t.Parallel()
	entries := []model.CrosswalkEntry{
		entry("06", "00101", "06075", 0.3),
		entry("06", "00101", "06001", 0.3),
		entry("06", "00101", "06013", 0.4),
	}

	res := NewResolver(nil).Resolve(entries)
	a, _ := res.Mapping.Lookup("06", "00101")
	assert.Equal(t, "06013", a.County)
	assert.Empty(t, res.Ties)
}

func TestResolve_MissingSubArea(t *testing.T) {
	t.Parallel()
	res := NewResolver(nil).Resolve([]model.CrosswalkEntry{entry("06", "00101", "06075", 1)})
	_, ok := res.Mapping.Lookup("06", "00102")
	assert.False(t, ok)
}

func TestResolve_Empty(t *testing.T) {
	t.Parallel()
	res := NewResolver(nil).Resolve(nil)
	assert.Empty(t, res.Mapping)
	assert.Empty(t, res.Ties)
}

func TestPolicyByName(t *testing.T) {
	t.Parallel()
	p, err := PolicyByName("")
	require.NoError(t, err)
	assert.False(t, p(entry("1", "1", "01003", 1), entry("1", "1", "01001", 1)))

	p, err = PolicyByName(PolicyLowestCounty)
	require.NoError(t, err)
	assert.True(t, p(entry("1", "1", "01003", 1), entry("1", "1", "01001", 1)))

	_, err = PolicyByName("coin_flip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tie-break policy")
	assert.Equal(t, []string{PolicyFirstInOrder, PolicyLowestCounty}, PolicyNames())
}
