package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/domain"
)

// cardSelect reads cards together with the legends of their stage.
const cardSelect = `SELECT c.id, c.model, c.name, c.description,
		c.kanban_sequence, c.kanban_priority, c.kanban_stage_id, c.kanban_user_id,
		c.kanban_color, c.kanban_status,
		COALESCE(s.legend_priority, ''), COALESCE(s.legend_blocked, ''),
		COALESCE(s.legend_done, ''), COALESCE(s.legend_normal, ''),
		c.created_at, c.updated_at
	FROM cards c
	LEFT JOIN stages s ON s.id = c.kanban_stage_id`

// kanbanOrder is the mixin ordering contract.
const kanbanOrder = `ORDER BY c.kanban_priority DESC, c.kanban_sequence, c.id`

// SQLiteCardRepo implements CardRepo using a SQLite database.
type SQLiteCardRepo struct {
	db db.DBTX
}

// NewSQLiteCardRepo creates a new SQLiteCardRepo.
func NewSQLiteCardRepo(conn db.DBTX) *SQLiteCardRepo {
	return &SQLiteCardRepo{db: conn}
}

func (r *SQLiteCardRepo) Create(ctx context.Context, c *domain.Card) error {
	query := `INSERT INTO cards (id, model, name, description,
		kanban_sequence, kanban_priority, kanban_stage_id, kanban_user_id,
		kanban_color, kanban_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Model,
		c.Name,
		c.Description,
		c.Sequence,
		string(c.Priority),
		nullableString(c.StageID),
		nullableString(c.UserID),
		c.Color,
		string(c.Status),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting card: %w", err)
	}
	return nil
}

func (r *SQLiteCardRepo) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	row := r.db.QueryRowContext(ctx, cardSelect+` WHERE c.id = ?`, id)
	c, err := scanCard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("card: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning card: %w", err)
	}
	return c, nil
}

func (r *SQLiteCardRepo) ListByModel(ctx context.Context, model string) ([]*domain.Card, error) {
	return r.list(ctx, cardSelect+` WHERE c.model = ? `+kanbanOrder, model)
}

func (r *SQLiteCardRepo) ListByStage(ctx context.Context, stageID string) ([]*domain.Card, error) {
	return r.list(ctx, cardSelect+` WHERE c.kanban_stage_id = ? `+kanbanOrder, stageID)
}

func (r *SQLiteCardRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}

func (r *SQLiteCardRepo) Update(ctx context.Context, c *domain.Card) error {
	query := `UPDATE cards SET name = ?, description = ?,
		kanban_sequence = ?, kanban_priority = ?, kanban_stage_id = ?, kanban_user_id = ?,
		kanban_color = ?, kanban_status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.Description,
		c.Sequence,
		string(c.Priority),
		nullableString(c.StageID),
		nullableString(c.UserID),
		c.Color,
		string(c.Status),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}
	return requireAffected(res, "card")
}

func (r *SQLiteCardRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return nil
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var c domain.Card
	var priority, status string
	var stageID, userID sql.NullString
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&c.ID, &c.Model, &c.Name, &c.Description,
		&c.Sequence, &priority, &stageID, &userID,
		&c.Color, &status,
		&c.LegendPriority, &c.LegendBlocked, &c.LegendDone, &c.LegendNormal,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}
	c.Priority = domain.Priority(priority)
	c.Status = domain.Status(status)
	c.StageID = stringPtr(stageID)
	c.UserID = stringPtr(userID)
	if c.CreatedAt, c.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing card timestamps: %w", err)
	}
	return &c, nil
}
