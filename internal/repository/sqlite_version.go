package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/domain"
)

// versionSelect reads versions with the attributes related through the
// parent parameter (value type and country).
const versionSelect = `SELECT v.id, v.parameter_id, v.effective_date, v.value,
		v.code, v.company_id, p.type, p.country, v.created_at, v.updated_at
	FROM time_parameter_versions v
	JOIN time_parameters p ON p.id = v.parameter_id`

// SQLiteVersionRepo implements VersionRepo using a SQLite database.
type SQLiteVersionRepo struct {
	db db.DBTX
}

// NewSQLiteVersionRepo creates a new SQLiteVersionRepo.
func NewSQLiteVersionRepo(conn db.DBTX) *SQLiteVersionRepo {
	return &SQLiteVersionRepo{db: conn}
}

// Create inserts the version. Code and company are copied from the parent
// parameter inside the statement so they cannot drift from it.
func (r *SQLiteVersionRepo) Create(ctx context.Context, v *domain.TimeParameterVersion) error {
	query := `INSERT INTO time_parameter_versions
		(id, parameter_id, effective_date, value, code, company_id, created_at, updated_at)
		SELECT ?, p.id, ?, ?, p.code, p.company_id, ?, ?
		FROM time_parameters p WHERE p.id = ?`
	res, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.EffectiveDate.Format(dateLayout),
		emptyToNull(v.Value),
		v.CreatedAt.Format(time.RFC3339),
		v.UpdatedAt.Format(time.RFC3339),
		v.ParameterID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("version %s: %w", v.EffectiveDate.Format(dateLayout), ErrDuplicateVersion)
		}
		return fmt.Errorf("inserting version: %w", err)
	}
	return requireAffected(res, "parameter")
}

func (r *SQLiteVersionRepo) GetByID(ctx context.Context, id string) (*domain.TimeParameterVersion, error) {
	return r.get(ctx, versionSelect+` WHERE v.id = ?`, id)
}

func (r *SQLiteVersionRepo) EffectiveAt(ctx context.Context, parameterID string, date time.Time) (*domain.TimeParameterVersion, error) {
	query := versionSelect + ` WHERE v.parameter_id = ? AND v.effective_date <= ?
		ORDER BY v.effective_date DESC LIMIT 1`
	return r.get(ctx, query, parameterID, date.Format(dateLayout))
}

func (r *SQLiteVersionRepo) get(ctx context.Context, query string, args ...any) (*domain.TimeParameterVersion, error) {
	v, err := scanVersion(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("version: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning version: %w", err)
	}
	return v, nil
}

func (r *SQLiteVersionRepo) ListByParameter(ctx context.Context, parameterID string) ([]*domain.TimeParameterVersion, error) {
	return r.list(ctx, versionSelect+` WHERE v.parameter_id = ? ORDER BY v.effective_date DESC`, parameterID)
}

func (r *SQLiteVersionRepo) ListAll(ctx context.Context) ([]*domain.TimeParameterVersion, error) {
	return r.list(ctx, versionSelect+` ORDER BY v.code, v.parameter_id, v.effective_date DESC`)
}

func (r *SQLiteVersionRepo) list(ctx context.Context, query string, args ...any) ([]*domain.TimeParameterVersion, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.TimeParameterVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning version row: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating versions: %w", err)
	}
	return versions, nil
}

func (r *SQLiteVersionRepo) UpdateValue(ctx context.Context, id, value string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_parameter_versions SET value = ?, updated_at = ? WHERE id = ?`,
		emptyToNull(value), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating version value: %w", err)
	}
	return requireAffected(res, "version")
}

func (r *SQLiteVersionRepo) RefreshCopies(ctx context.Context, p *domain.TimeParameter) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE time_parameter_versions SET code = ?, company_id = ? WHERE parameter_id = ?`,
		p.Code, nullableString(p.CompanyID), p.ID)
	if err != nil {
		return fmt.Errorf("refreshing version copies: %w", err)
	}
	return nil
}

func (r *SQLiteVersionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM time_parameter_versions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting version: %w", err)
	}
	return nil
}

func scanVersion(row rowScanner) (*domain.TimeParameterVersion, error) {
	var v domain.TimeParameterVersion
	var effectiveStr, typ string
	var value, companyID, country sql.NullString
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&v.ID, &v.ParameterID, &effectiveStr, &value,
		&v.Code, &companyID, &typ, &country, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}
	if v.EffectiveDate, err = time.Parse(dateLayout, effectiveStr); err != nil {
		return nil, fmt.Errorf("parsing effective_date: %w", err)
	}
	v.Value = value.String
	v.CompanyID = stringPtr(companyID)
	v.Type = domain.ValueType(typ)
	v.Country = stringPtr(country)
	if v.CreatedAt, v.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing version timestamps: %w", err)
	}
	return &v, nil
}
