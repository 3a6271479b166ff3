package cli

import (
	"testing"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityFlag(t *testing.T) {
	var f priorityFlag
	require.NoError(t, f.Set("HIGH"))
	assert.Equal(t, domain.PriorityHigh, f.v)
	require.NoError(t, f.Set("1"))
	assert.Equal(t, "medium", f.String())
	assert.Error(t, f.Set("urgent"))
}

func TestStageOrderFlag(t *testing.T) {
	var f stageOrderFlag
	assert.Equal(t, "sequence", f.String())
	require.NoError(t, f.Set("Name  DESC"))
	assert.Equal(t, repository.StageOrderNameDesc, f.v)
	assert.Error(t, f.Set("id"))
}

func TestValueTypeFlag(t *testing.T) {
	var f valueTypeFlag
	require.NoError(t, f.Set(" JSON "))
	assert.Equal(t, domain.TypeJSON, f.v)

	err := f.Set("decimal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string, integer, float, boolean, date, json")
}

func TestNextInCycle(t *testing.T) {
	assert.Equal(t, domain.StatusDone, nextInCycle(statusCycle, domain.StatusNormal))
	assert.Equal(t, domain.StatusNormal, nextInCycle(statusCycle, domain.StatusBlocked))
	assert.Equal(t, domain.PriorityNormal, nextInCycle(priorityCycle, domain.Priority("9")))
}

func TestMatchID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}

	id, err := matchID("card", "xyz", ids)
	require.NoError(t, err)
	assert.Equal(t, "xyz789", id)

	_, err = matchID("card", "ab", ids)
	assert.ErrorContains(t, err, "ambiguous")

	_, err = matchID("card", "zzz", ids)
	assert.ErrorContains(t, err, "card not found")

	_, err = matchID("card", "", ids)
	assert.ErrorContains(t, err, "card ID is required")
}
