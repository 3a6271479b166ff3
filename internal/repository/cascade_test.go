package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_ParameterToVersions verifies time_parameters -> time_parameter_versions cascade.
func TestCascadeDelete_ParameterToVersions(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	params := NewSQLiteParameterRepo(db)
	versions := NewSQLiteVersionRepo(db)

	p := testutil.NewTestParameter("VAT", domain.TypeFloat)
	require.NoError(t, params.Create(ctx, p))
	v1 := testutil.NewTestVersion(p, "2024-01-01", "0.2")
	v2 := testutil.NewTestVersion(p, "2025-01-01", "0.21")
	require.NoError(t, versions.Create(ctx, v1))
	require.NoError(t, versions.Create(ctx, v2))

	require.NoError(t, params.Delete(ctx, p.ID))

	_, err := versions.GetByID(ctx, v1.ID)
	assert.ErrorIs(t, err, ErrNotFound, "version should be cascade-deleted with its parameter")
	remaining, err := versions.ListByParameter(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

// TestCascadeDelete_CompanyToParameters verifies companies -> time_parameters cascade.
func TestCascadeDelete_CompanyToParameters(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	companies := NewSQLiteCompanyRepo(db)
	params := NewSQLiteParameterRepo(db)

	company := testutil.NewTestCompany("Acme", "")
	require.NoError(t, companies.Create(ctx, company))
	p := testutil.NewTestParameter("BONUS", domain.TypeInteger, testutil.WithCompany(company.ID))
	require.NoError(t, params.Create(ctx, p))

	require.NoError(t, companies.Delete(ctx, company.ID))

	_, err := params.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestCascadeDelete_EntityTypeToStagesAndCards verifies models -> stages and cards cascade.
func TestCascadeDelete_EntityTypeToStagesAndCards(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	types := NewSQLiteEntityTypeRepo(db)
	stages := NewSQLiteStageRepo(db)
	cards := NewSQLiteCardRepo(db)

	et := testutil.NewTestEntityType("")
	require.NoError(t, types.Create(ctx, et))
	s := testutil.NewTestStage(et.Model, "New")
	require.NoError(t, stages.Create(ctx, s))
	c := testutil.NewTestCard(et.Model, "Card", testutil.WithStage(s))
	require.NoError(t, cards.Create(ctx, c))

	require.NoError(t, types.Delete(ctx, et.Model))

	_, err := stages.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cards.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestStageDelete_UnsetsCardStage verifies that deleting a stage leaves its cards unstaged.
func TestStageDelete_UnsetsCardStage(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	types := NewSQLiteEntityTypeRepo(db)
	stages := NewSQLiteStageRepo(db)
	cards := NewSQLiteCardRepo(db)

	et := testutil.NewTestEntityType("")
	require.NoError(t, types.Create(ctx, et))
	s := testutil.NewTestStage(et.Model, "New")
	require.NoError(t, stages.Create(ctx, s))
	c := testutil.NewTestCard(et.Model, "Card", testutil.WithStage(s))
	require.NoError(t, cards.Create(ctx, c))

	require.NoError(t, stages.Delete(ctx, s.ID))

	got, err := cards.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StageID)
}
