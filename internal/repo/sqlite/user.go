package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/BuzzLyutic/todo-api/internal/model"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	u.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, password_hash, created_at)
VALUES (?, ?, ?)`,
		u.Username, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return u, fmt.Errorf("insert user: %w", mapError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return u, fmt.Errorf("user last insert id: %w", err)
	}
	u.ID = id
	return u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at
FROM users
WHERE username = ?`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, mapError(err)
}
