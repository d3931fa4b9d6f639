package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/BuzzLyutic/todo-api/internal/model"
	"github.com/BuzzLyutic/todo-api/internal/repo"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (title, description, created_at, updated_at)
VALUES (?, ?, ?, ?)`,
		t.Title, t.Description, now, now,
	)
	if err != nil {
		return t, fmt.Errorf("insert task: %w", mapError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return t, fmt.Errorf("task last insert id: %w", err)
	}
	t.ID = id
	return t, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, description
FROM tasks
WHERE id = ?`, id).Scan(&t.ID, &t.Title, &t.Description)
	return t, mapError(err)
}

func (r *TaskRepo) List(ctx context.Context, offset, limit int) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description
FROM tasks
ORDER BY id
LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0, limit)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM tasks`).Scan(&n)
	return n, err
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE tasks
SET title = ?, description = ?, updated_at = ?
WHERE id = ?`,
		t.Title, t.Description, time.Now().UTC(), t.ID,
	)
	if err != nil {
		return t, fmt.Errorf("update task: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return t, err
	}
	return t, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(res)
}

// DeleteAll keeps the AUTOINCREMENT counter, so ids are not reused afterwards.
func (r *TaskRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks`)
	if err != nil {
		return 0, fmt.Errorf("delete tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, repo.ErrorNotFound
	}
	return n, nil
}

func (r *TaskRepo) SaveIdempotencyKey(ctx context.Context, key string, resourceID int64) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO idempotency_keys (key, resource_id, created_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET resource_id = excluded.resource_id`,
		key, resourceID, time.Now().UTC(),
	)
	return err
}

func (r *TaskRepo) GetIdempotencyKey(ctx context.Context, key string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
SELECT resource_id FROM idempotency_keys WHERE key = ?`, key).Scan(&id)
	return id, mapError(err)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repo.ErrorNotFound
	}
	return nil
}
