package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloatPtr(t *testing.T) {
	tests := []struct {
		in      string
		want    *float64
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"0", ptr(0), false},
		{"42500", ptr(42500), false},
		{"85,000", ptr(85000), false},
		{"$1,200.50", ptr(1200.5), false},
		{"-12.5", ptr(-12.5), false},
		{"abc", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFloatPtr(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntOr(t *testing.T) {
	v, err := parseIntOr("", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = parseIntOr(" 3 ", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = parseIntOr("4.0", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = parseIntOr("4.5", 0)
	require.Error(t, err)

	_, err = parseIntOr("x", 0)
	require.Error(t, err)
}

func TestColumns(t *testing.T) {
	colIdx := mapColumns([]string{" SERIAL ", "PerNum"})
	assert.Equal(t, "12", getCol([]string{" 12 ", "1"}, colIdx, "serial"))
	assert.Equal(t, "1", getCol([]string{"12", "1"}, colIdx, "PERNUM"))
	assert.Equal(t, "", getCol([]string{"12"}, colIdx, "pernum"))
	assert.Equal(t, "", getCol([]string{"12", "1"}, colIdx, "missing"))

	require.NoError(t, requireColumns("x", colIdx, "serial", "pernum"))
	err := requireColumns("persons", colIdx, "serial", "puma", "gq")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "puma, gq")
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, isNumeric("36"))
	assert.False(t, isNumeric(""))
	assert.False(t, isNumeric("State code"))
	assert.False(t, isNumeric("3.6"))
}

func ptr(v float64) *float64 { return &v }
