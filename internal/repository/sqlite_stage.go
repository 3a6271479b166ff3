package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/domain"
)

// StageOrder selects the ORDER BY used when listing stages. Only the
// whitelisted orders below are accepted.
type StageOrder string

const (
	// StageOrderNatural is sequence, then name, then id.
	StageOrderNatural      StageOrder = ""
	StageOrderSequenceDesc StageOrder = "sequence desc"
	StageOrderName         StageOrder = "name"
	StageOrderNameDesc     StageOrder = "name desc"
)

var stageOrderClauses = map[StageOrder]string{
	StageOrderNatural:      "sequence, name, id",
	StageOrderSequenceDesc: "sequence DESC, name, id",
	StageOrderName:         "name, sequence, id",
	StageOrderNameDesc:     "name DESC, sequence, id",
}

// ParseStageOrder accepts "", "sequence", "sequence desc", "name" and
// "name desc" in any case.
func ParseStageOrder(s string) (StageOrder, error) {
	v := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	switch v {
	case "", "sequence", "sequence asc":
		return StageOrderNatural, nil
	case "name asc":
		return StageOrderName, nil
	}
	if _, ok := stageOrderClauses[StageOrder(v)]; ok {
		return StageOrder(v), nil
	}
	return "", fmt.Errorf("invalid stage order %q", s)
}

const stageColumns = `id, name, model, sequence, fold,
		legend_priority, legend_blocked, legend_done, legend_normal,
		created_at, updated_at`

// SQLiteStageRepo implements StageRepo using a SQLite database.
type SQLiteStageRepo struct {
	db db.DBTX
}

// NewSQLiteStageRepo creates a new SQLiteStageRepo.
func NewSQLiteStageRepo(conn db.DBTX) *SQLiteStageRepo {
	return &SQLiteStageRepo{db: conn}
}

func (r *SQLiteStageRepo) Create(ctx context.Context, s *domain.Stage) error {
	query := `INSERT INTO stages (` + stageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Model,
		s.Sequence,
		boolToInt(s.Fold),
		s.LegendPriority,
		s.LegendBlocked,
		s.LegendDone,
		s.LegendNormal,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting stage: %w", err)
	}
	return nil
}

func (r *SQLiteStageRepo) GetByID(ctx context.Context, id string) (*domain.Stage, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+stageColumns+` FROM stages WHERE id = ?`, id)
	s, err := scanStage(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("stage: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning stage: %w", err)
	}
	return s, nil
}

func (r *SQLiteStageRepo) ListByModel(ctx context.Context, model string, order StageOrder) ([]*domain.Stage, error) {
	clause, ok := stageOrderClauses[order]
	if !ok {
		return nil, fmt.Errorf("listing stages: unsupported order %q", order)
	}
	query := `SELECT ` + stageColumns + ` FROM stages WHERE model = ? ORDER BY ` + clause
	rows, err := r.db.QueryContext(ctx, query, model)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	defer rows.Close()

	var stages []*domain.Stage
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning stage row: %w", err)
		}
		stages = append(stages, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stages: %w", err)
	}
	return stages, nil
}

// Update rewrites the stage's attributes. The model is fixed at creation.
func (r *SQLiteStageRepo) Update(ctx context.Context, s *domain.Stage) error {
	query := `UPDATE stages SET name = ?, sequence = ?, fold = ?,
		legend_priority = ?, legend_blocked = ?, legend_done = ?, legend_normal = ?,
		updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Sequence,
		boolToInt(s.Fold),
		s.LegendPriority,
		s.LegendBlocked,
		s.LegendDone,
		s.LegendNormal,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating stage: %w", err)
	}
	return requireAffected(res, "stage")
}

func (r *SQLiteStageRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting stage: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStage(row rowScanner) (*domain.Stage, error) {
	var s domain.Stage
	var fold int
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&s.ID, &s.Name, &s.Model, &s.Sequence, &fold,
		&s.LegendPriority, &s.LegendBlocked, &s.LegendDone, &s.LegendNormal,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}
	s.Fold = intToBool(fold)
	if s.CreatedAt, s.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing stage timestamps: %w", err)
	}
	return &s, nil
}

func requireAffected(res sql.Result, noun string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", noun, ErrNotFound)
	}
	return nil
}
