package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/domain"
)

const parameterColumns = `id, code, name, description, type, country, company_id, json_schema,
		created_at, updated_at`

// SQLiteParameterRepo implements ParameterRepo using a SQLite database.
type SQLiteParameterRepo struct {
	db db.DBTX
}

// NewSQLiteParameterRepo creates a new SQLiteParameterRepo.
func NewSQLiteParameterRepo(conn db.DBTX) *SQLiteParameterRepo {
	return &SQLiteParameterRepo{db: conn}
}

func (r *SQLiteParameterRepo) Create(ctx context.Context, p *domain.TimeParameter) error {
	query := `INSERT INTO time_parameters (` + parameterColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Code,
		p.Name,
		p.Description,
		string(p.Type),
		nullableString(p.Country),
		nullableString(p.CompanyID),
		p.JSONSchema,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("parameter %s: %w", p.Code, ErrDuplicateParameter)
		}
		return fmt.Errorf("inserting parameter: %w", err)
	}
	return nil
}

func (r *SQLiteParameterRepo) GetByID(ctx context.Context, id string) (*domain.TimeParameter, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+parameterColumns+` FROM time_parameters WHERE id = ?`, id)
	p, err := scanParameter(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("parameter: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning parameter: %w", err)
	}
	return p, nil
}

func (r *SQLiteParameterRepo) GetByCode(ctx context.Context, code string, scope domain.Scope) (*domain.TimeParameter, error) {
	query := `SELECT ` + parameterColumns + ` FROM time_parameters
		WHERE code = ? AND country IS ? AND company_id IS ?`
	row := r.db.QueryRowContext(ctx, query, code, nullableString(scope.Country), nullableString(scope.CompanyID))
	p, err := scanParameter(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("parameter %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning parameter: %w", err)
	}
	return p, nil
}

func (r *SQLiteParameterRepo) List(ctx context.Context) ([]*domain.TimeParameter, error) {
	query := `SELECT ` + parameterColumns + ` FROM time_parameters
		ORDER BY code, COALESCE(country, ''), COALESCE(company_id, '')`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing parameters: %w", err)
	}
	defer rows.Close()

	var params []*domain.TimeParameter
	for rows.Next() {
		p, err := scanParameter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning parameter row: %w", err)
		}
		params = append(params, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parameters: %w", err)
	}
	return params, nil
}

// Update rewrites every attribute except the value type, which is fixed
// once versions exist.
func (r *SQLiteParameterRepo) Update(ctx context.Context, p *domain.TimeParameter) error {
	query := `UPDATE time_parameters SET code = ?, name = ?, description = ?,
		country = ?, company_id = ?, json_schema = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Code,
		p.Name,
		p.Description,
		nullableString(p.Country),
		nullableString(p.CompanyID),
		p.JSONSchema,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("parameter %s: %w", p.Code, ErrDuplicateParameter)
		}
		return fmt.Errorf("updating parameter: %w", err)
	}
	return requireAffected(res, "parameter")
}

// Delete removes the parameter; its versions go with it.
func (r *SQLiteParameterRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM time_parameters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting parameter: %w", err)
	}
	return nil
}

func scanParameter(row rowScanner) (*domain.TimeParameter, error) {
	var p domain.TimeParameter
	var typ string
	var country, companyID sql.NullString
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &typ, &country, &companyID, &p.JSONSchema,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}
	p.Type = domain.ValueType(typ)
	p.Country = stringPtr(country)
	p.CompanyID = stringPtr(companyID)
	if p.CreatedAt, p.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing parameter timestamps: %w", err)
	}
	return &p, nil
}
