package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createParameter(t *testing.T, db *sql.DB, p *domain.TimeParameter) {
	t.Helper()
	require.NoError(t, NewSQLiteParameterRepo(db).Create(context.Background(), p))
}

func TestParameterRepo_GetByCode_ExactScope(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteParameterRepo(db)

	global := testutil.NewTestParameter("VAT", domain.TypeFloat)
	french := testutil.NewTestParameter("VAT", domain.TypeFloat, testutil.WithCountry("FR"))
	createParameter(t, db, global)
	createParameter(t, db, french)

	got, err := repo.GetByCode(ctx, "VAT", domain.Scope{})
	require.NoError(t, err)
	assert.Equal(t, global.ID, got.ID)

	fr := "FR"
	got, err = repo.GetByCode(ctx, "VAT", domain.Scope{Country: &fr})
	require.NoError(t, err)
	assert.Equal(t, french.ID, got.ID)

	de := "DE"
	_, err = repo.GetByCode(ctx, "VAT", domain.Scope{Country: &de})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParameterRepo_Create_DuplicateScope(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteParameterRepo(db)

	createParameter(t, db, testutil.NewTestParameter("VAT", domain.TypeFloat))
	err := repo.Create(context.Background(), testutil.NewTestParameter("VAT", domain.TypeFloat))
	assert.ErrorIs(t, err, ErrDuplicateParameter)
}

func TestParameterRepo_UpdateRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteParameterRepo(db)

	p := testutil.NewTestParameter("LIMITS", domain.TypeJSON)
	createParameter(t, db, p)

	p.Name = "Limits"
	p.Description = "Per-order limits"
	p.JSONSchema = `{"type":"object"}`
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Limits", got.Name)
	assert.Equal(t, "Per-order limits", got.Description)
	assert.Equal(t, `{"type":"object"}`, got.JSONSchema)
	assert.Equal(t, domain.TypeJSON, got.Type)
	assert.Nil(t, got.Country)
}

func TestVersionRepo_DuplicateEffectiveDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteVersionRepo(db)

	p := testutil.NewTestParameter("VAT", domain.TypeFloat)
	createParameter(t, db, p)

	require.NoError(t, repo.Create(ctx, testutil.NewTestVersion(p, "2024-01-01", "0.2")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestVersion(p, "2024-07-01", "0.21")))

	err := repo.Create(ctx, testutil.NewTestVersion(p, "2024-01-01", "0.19"))
	require.ErrorIs(t, err, ErrDuplicateVersion)
	assert.Contains(t, err.Error(), "A parameter cannot have two versions starting the same day.")
}

func TestVersionRepo_SameDateOnDifferentParameters(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteVersionRepo(db)

	a := testutil.NewTestParameter("A", domain.TypeInteger)
	b := testutil.NewTestParameter("B", domain.TypeInteger)
	createParameter(t, db, a)
	createParameter(t, db, b)

	require.NoError(t, repo.Create(ctx, testutil.NewTestVersion(a, "2024-01-01", "1")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestVersion(b, "2024-01-01", "2")))
}

func TestVersionRepo_CopiesParentAttributes(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	company := testutil.NewTestCompany("Acme", "FR")
	require.NoError(t, NewSQLiteCompanyRepo(db).Create(ctx, company))
	p := testutil.NewTestParameter("VAT", domain.TypeFloat, testutil.WithCountry("FR"), testutil.WithCompany(company.ID))
	createParameter(t, db, p)

	repo := NewSQLiteVersionRepo(db)
	v := testutil.NewTestVersion(p, "2024-01-01", "0.2")
	v.Code = "stale"
	require.NoError(t, repo.Create(ctx, v))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "VAT", got.Code)
	require.NotNil(t, got.CompanyID)
	assert.Equal(t, company.ID, *got.CompanyID)
	require.NotNil(t, got.Country)
	assert.Equal(t, "FR", *got.Country)
	assert.Equal(t, domain.TypeFloat, got.Type)
	assert.Equal(t, testutil.Date(2024, 1, 1), got.EffectiveDate)
}

func TestVersionRepo_CreateForMissingParameter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteVersionRepo(db)

	p := testutil.NewTestParameter("GHOST", domain.TypeString)
	err := repo.Create(context.Background(), testutil.NewTestVersion(p, "2024-01-01", "x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVersionRepo_ListByParameter_MostRecentFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteVersionRepo(db)

	p := testutil.NewTestParameter("RATE", domain.TypeFloat)
	createParameter(t, db, p)
	for _, d := range []string{"2023-01-01", "2025-01-01", "2024-01-01"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestVersion(p, d, "1.0")))
	}

	versions, err := repo.ListByParameter(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, 2025, versions[0].EffectiveDate.Year())
	assert.Equal(t, 2024, versions[1].EffectiveDate.Year())
	assert.Equal(t, 2023, versions[2].EffectiveDate.Year())
}

func TestVersionRepo_EffectiveAt(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteVersionRepo(db)

	p := testutil.NewTestParameter("RATE", domain.TypeFloat)
	createParameter(t, db, p)
	require.NoError(t, repo.Create(ctx, testutil.NewTestVersion(p, "2024-01-01", "1.0")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestVersion(p, "2024-07-01", "2.0")))

	got, err := repo.EffectiveAt(ctx, p.ID, testutil.Date(2024, 6, 30))
	require.NoError(t, err)
	assert.Equal(t, "1.0", got.Value)

	got, err = repo.EffectiveAt(ctx, p.ID, testutil.Date(2024, 7, 1))
	require.NoError(t, err)
	assert.Equal(t, "2.0", got.Value)

	_, err = repo.EffectiveAt(ctx, p.ID, testutil.Date(2023, 12, 31))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVersionRepo_EmptyValueStoredAsNull(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteVersionRepo(db)

	p := testutil.NewTestParameter("FLAG", domain.TypeBoolean)
	createParameter(t, db, p)
	v := testutil.NewTestVersion(p, "2024-01-01", "True")
	require.NoError(t, repo.Create(ctx, v))

	require.NoError(t, repo.UpdateValue(ctx, v.ID, ""))

	var raw sql.NullString
	require.NoError(t, db.QueryRow(`SELECT value FROM time_parameter_versions WHERE id = ?`, v.ID).Scan(&raw))
	assert.False(t, raw.Valid)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Value)
}

func TestVersionRepo_RefreshCopies(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	params := NewSQLiteParameterRepo(db)
	repo := NewSQLiteVersionRepo(db)

	p := testutil.NewTestParameter("OLD", domain.TypeString)
	createParameter(t, db, p)
	v := testutil.NewTestVersion(p, "2024-01-01", "x")
	require.NoError(t, repo.Create(ctx, v))

	p.Code = "NEW"
	require.NoError(t, params.Update(ctx, p))
	require.NoError(t, repo.RefreshCopies(ctx, p))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "NEW", got.Code)
}
