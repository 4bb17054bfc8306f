package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	sharedSQL "github.com/davicafu/hexaplaces/internal/shared/infra/platform/db/sqlstore"
	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
	"github.com/davicafu/hexaplaces/internal/user/domain"
)

// UserRepoSQL implementa UserRepository sobre SQLite o PostgreSQL según el dialecto.
type UserRepoSQL struct {
	db      *sql.DB
	dialect sharedSQL.Dialect
}

var _ domain.UserRepository = (*UserRepoSQL)(nil)

// Lista blanca de filtros/orden -> columna.
var userColumns = sharedSQL.Columns{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"isAdmin":   "is_admin",
	"createdAt": "created_at",
}

const selectColumns = `id, name, email, is_admin, image_url, created_at, updated_at`

func NewUserRepoSQL(db *sql.DB, dialect sharedSQL.Dialect) *UserRepoSQL {
	return &UserRepoSQL{db: db, dialect: dialect}
}

// ------------------ Inicialización de DB ------------------

// InitSchema crea la tabla users si no existe.
// En SQLite las fechas son TEXT de ancho fijo para que se comparen bien como texto.
func (r *UserRepoSQL) InitSchema(ctx context.Context) error {
	timeType := "TIMESTAMPTZ"
	if r.dialect == sharedSQL.SQLite {
		timeType = "TEXT"
	}

	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            image_url TEXT NOT NULL DEFAULT '',
            created_at %[1]s NOT NULL,
            updated_at %[1]s NOT NULL
        )
    `, timeType))
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}
	return nil
}

// ------------------ Métodos ------------------

func (r *UserRepoSQL) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+selectColumns+`) VALUES (`+r.dialect.Placeholders(7)+`)`,
		u.ID.Hex(), u.Name, u.Email, u.IsAdmin, u.ImageURL,
		r.dialect.TimeValue(u.CreatedAt), r.dialect.TimeValue(u.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *UserRepoSQL) Update(ctx context.Context, u *domain.User) error {
	p := r.dialect.Placeholder
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE users SET name=%s, email=%s, is_admin=%s, image_url=%s, updated_at=%s WHERE id=%s`,
			p(1), p(2), p(3), p(4), p(5), p(6)),
		u.Name, u.Email, u.IsAdmin, u.ImageURL, r.dialect.TimeValue(u.UpdatedAt), u.ID.Hex(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepoSQL) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=`+r.dialect.Placeholder(1), id.Hex())
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepoSQL) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM users WHERE id = `+r.dialect.Placeholder(1), id.Hex())

	u, err := r.scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Find traduce los criterios a SQL con columnas de la lista blanca y argumentos posicionales.
func (r *UserRepoSQL) Find(ctx context.Context, q *query.FindQuery) ([]*domain.User, int64, error) {
	where, args, err := sharedSQL.BuildWhere(r.dialect, q.Filters, userColumns)
	if err != nil {
		return nil, 0, err
	}
	orderBy, err := sharedSQL.BuildOrderBy(q.Sort, userColumns)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}
	if total == 0 {
		return []*domain.User{}, 0, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM users`+where+orderBy+sharedSQL.BuildLimitOffset(q), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("finding users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, q.Limit())
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ------------------ Helpers ------------------

type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *UserRepoSQL) scanUser(s scanner) (*domain.User, error) {
	var (
		u                    domain.User
		idStr                string
		createdAt, updatedAt interface{}
	)
	if err := s.Scan(&idStr, &u.Name, &u.Email, &u.IsAdmin, &u.ImageURL, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ObjectID in DB: %w", err)
	}
	u.ID = id

	if u.CreatedAt, err = r.dialect.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = r.dialect.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
