package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/domain"
)

const companyColumns = `id, name, country, created_at, updated_at`

// SQLiteCompanyRepo implements CompanyRepo using a SQLite database.
type SQLiteCompanyRepo struct {
	db db.DBTX
}

// NewSQLiteCompanyRepo creates a new SQLiteCompanyRepo.
func NewSQLiteCompanyRepo(conn db.DBTX) *SQLiteCompanyRepo {
	return &SQLiteCompanyRepo{db: conn}
}

func (r *SQLiteCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	query := `INSERT INTO companies (` + companyColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, nullableString(c.Country),
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	return nil
}

func (r *SQLiteCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return r.get(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
}

// GetByName returns the first company with the given name.
func (r *SQLiteCompanyRepo) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	return r.get(ctx, `SELECT `+companyColumns+` FROM companies WHERE name = ? ORDER BY created_at, id LIMIT 1`, name)
}

func (r *SQLiteCompanyRepo) get(ctx context.Context, query, arg string) (*domain.Company, error) {
	c, err := scanCompany(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company %s: %w", arg, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning company: %w", err)
	}
	return c, nil
}

func (r *SQLiteCompanyRepo) List(ctx context.Context) ([]*domain.Company, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning company row: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}
	return companies, nil
}

// Delete removes the company and, by cascade, its parameters and their versions.
func (r *SQLiteCompanyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}
	return nil
}

func scanCompany(row rowScanner) (*domain.Company, error) {
	var c domain.Company
	var country sql.NullString
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&c.ID, &c.Name, &country, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}
	c.Country = stringPtr(country)
	var err error
	if c.CreatedAt, c.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing company timestamps: %w", err)
	}
	return &c, nil
}
