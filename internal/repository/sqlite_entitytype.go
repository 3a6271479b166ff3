package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/domain"
)

// SQLiteEntityTypeRepo implements EntityTypeRepo using a SQLite database.
type SQLiteEntityTypeRepo struct {
	db db.DBTX
}

// NewSQLiteEntityTypeRepo creates a new SQLiteEntityTypeRepo.
func NewSQLiteEntityTypeRepo(conn db.DBTX) *SQLiteEntityTypeRepo {
	return &SQLiteEntityTypeRepo{db: conn}
}

func (r *SQLiteEntityTypeRepo) Create(ctx context.Context, e *domain.EntityType) error {
	query := `INSERT INTO models (model, name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.Model, e.Name, e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("entity type %s: %w", e.Model, ErrDuplicate)
		}
		return fmt.Errorf("inserting entity type: %w", err)
	}
	return nil
}

func (r *SQLiteEntityTypeRepo) Get(ctx context.Context, model string) (*domain.EntityType, error) {
	row := r.db.QueryRowContext(ctx, `SELECT model, name, created_at FROM models WHERE model = ?`, model)

	var e domain.EntityType
	var createdAtStr string
	if err := row.Scan(&e.Model, &e.Name, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("entity type %s: %w", model, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning entity type: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.CreatedAt = createdAt
	return &e, nil
}

func (r *SQLiteEntityTypeRepo) List(ctx context.Context) ([]*domain.EntityType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT model, name, created_at FROM models ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("listing entity types: %w", err)
	}
	defer rows.Close()

	var types []*domain.EntityType
	for rows.Next() {
		var e domain.EntityType
		var createdAtStr string
		if err := rows.Scan(&e.Model, &e.Name, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning entity type row: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		types = append(types, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity types: %w", err)
	}
	return types, nil
}

// Delete removes the entity type together with its stages and cards.
func (r *SQLiteEntityTypeRepo) Delete(ctx context.Context, model string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM models WHERE model = ?`, model)
	if err != nil {
		return fmt.Errorf("deleting entity type: %w", err)
	}
	return nil
}
