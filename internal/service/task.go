package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-api/internal/model"
	"github.com/BuzzLyutic/todo-api/internal/repo"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type TaskService struct {
	repo   repo.TaskRepository
	logger *zap.Logger
}

func NewTaskService(repo repo.TaskRepository, logger *zap.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, in model.TaskInput, idempKey string) (model.Task, error) {
	if err := s.validate(in); err != nil { // Валидация входных данных
		return model.Task{}, err
	}

	if idempKey != "" { // Идемпотентность: если по ключу уже есть задача, возвращаем ее
		existingID, err := s.repo.GetIdempotencyKey(ctx, idempKey)
		switch {
		case err == nil:
			task, err := s.repo.Get(ctx, existingID)
			if err == nil {
				return task, nil
			}
			if !errors.Is(err, repo.ErrorNotFound) {
				return model.Task{}, err
			}
			// задача по ключу удалена, создаем новую и перепривязываем ключ
		case !errors.Is(err, repo.ErrorNotFound):
			return model.Task{}, err
		}
	}

	task, err := s.repo.Create(ctx, model.Task{
		Title:       in.Title,
		Description: in.Description,
	})
	if err != nil {
		return task, err
	}

	if idempKey != "" {
		// задача уже создана: ошибку ключа только логируем, иначе клиент повторит запрос и получит дубликат
		if err := s.repo.SaveIdempotencyKey(ctx, idempKey, task.ID); err != nil {
			s.logger.Error("failed to save idempotency key",
				zap.String("key", idempKey),
				zap.Int64("task_id", task.ID),
				zap.Error(err),
			)
		}
	}

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

// List returns one page of tasks ordered by id. An empty store yields an empty page.
func (s *TaskService) List(ctx context.Context, page, limit int) (model.TaskPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return model.TaskPage{}, err
	}

	// page-1 сравнивается до умножения, чтобы огромный page не переполнил offset
	tasks := []model.Task{}
	if total > 0 && page-1 <= (total-1)/limit {
		tasks, err = s.repo.List(ctx, (page-1)*limit, limit)
		if err != nil {
			return model.TaskPage{}, err
		}
	}

	return model.TaskPage{
		Data:  tasks,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

// Update overwrites only the fields that are present and non-empty in the patch.
func (s *TaskService) Update(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	title := trimmed(patch.Title)
	description := trimmed(patch.Description)
	if title == "" && description == "" {
		return model.Task{}, fmt.Errorf("%w: title or description is required", ErrValidation)
	}

	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return task, err
	}

	if title != "" {
		task.Title = *patch.Title
	}
	if description != "" {
		task.Description = *patch.Description
	}
	return s.repo.Update(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) DeleteAll(ctx context.Context) error {
	_, err := s.repo.DeleteAll(ctx)
	return err
}

func (s *TaskService) validate(in model.TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
