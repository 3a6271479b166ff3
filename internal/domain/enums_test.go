package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"0":      PriorityNormal,
		"normal": PriorityNormal,
		"Medium": PriorityMedium,
		"1":      PriorityMedium,
		" high ": PriorityHigh,
		"2":      PriorityHigh,
	}
	for in, want := range cases {
		got, err := ParsePriority(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePriority("urgent")
	assert.Error(t, err)
}

func TestPriority_LabelAndRank(t *testing.T) {
	assert.Equal(t, "high", PriorityHigh.Label())
	assert.Equal(t, 2, PriorityHigh.Rank())
	assert.Equal(t, 0, PriorityNormal.Rank())
	assert.Equal(t, -1, Priority("9").Rank())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("BLOCKED")
	require.NoError(t, err)
	assert.Equal(t, StatusBlocked, s)
	assert.Equal(t, "Special Handling", s.Label())

	_, err = ParseStatus("stuck")
	assert.Error(t, err)
}

func TestValueType_Valid(t *testing.T) {
	for _, vt := range ValueTypes {
		assert.True(t, vt.Valid(), vt)
	}
	assert.False(t, ValueType("reference").Valid())
	assert.False(t, ValueType("").Valid())
}
