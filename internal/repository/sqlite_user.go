package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/domain"
)

// SQLiteLanguageRepo implements LanguageRepo using a SQLite database.
type SQLiteLanguageRepo struct {
	db db.DBTX
}

// NewSQLiteLanguageRepo creates a new SQLiteLanguageRepo.
func NewSQLiteLanguageRepo(conn db.DBTX) *SQLiteLanguageRepo {
	return &SQLiteLanguageRepo{db: conn}
}

func (r *SQLiteLanguageRepo) Get(ctx context.Context, code string) (*domain.Language, error) {
	row := r.db.QueryRowContext(ctx, `SELECT code, name, date_format FROM languages WHERE code = ?`, code)
	var l domain.Language
	if err := row.Scan(&l.Code, &l.Name, &l.DateFormat); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("language %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning language: %w", err)
	}
	return &l, nil
}

func (r *SQLiteLanguageRepo) List(ctx context.Context) ([]*domain.Language, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code, name, date_format FROM languages ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	defer rows.Close()

	var langs []*domain.Language
	for rows.Next() {
		var l domain.Language
		if err := rows.Scan(&l.Code, &l.Name, &l.DateFormat); err != nil {
			return nil, fmt.Errorf("scanning language row: %w", err)
		}
		langs = append(langs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating languages: %w", err)
	}
	return langs, nil
}

const userColumns = `id, login, name, lang, created_at, updated_at`

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Login, u.Name, u.Lang,
		u.CreatedAt.Format(time.RFC3339), u.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", u.Login, ErrDuplicate)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *SQLiteUserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE login = ?`, login)
}

func (r *SQLiteUserRepo) get(ctx context.Context, query string, arg string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", arg, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY login`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (r *SQLiteUserRepo) Update(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, lang = ?, updated_at = ? WHERE id = ?`,
		u.Name, u.Lang, u.UpdatedAt.Format(time.RFC3339), u.ID)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return requireAffected(res, "user")
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&u.ID, &u.Login, &u.Name, &u.Lang, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}
	var err error
	if u.CreatedAt, u.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing user timestamps: %w", err)
	}
	return &u, nil
}
