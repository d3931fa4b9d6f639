package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/BuzzLyutic/todo-api/internal/model"
	"github.com/BuzzLyutic/todo-api/internal/service"
)

const maxBodyBytes = 1 << 20

type credentialsRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (req taskRequest) input() model.TaskInput {
	return model.TaskInput{
		Title:       deref(req.Title),
		Description: deref(req.Description),
	}
}

func (req taskRequest) patch() model.TaskPatch {
	return model.TaskPatch{Title: req.Title, Description: req.Description}
}

type taskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func newTaskResponse(t model.Task) taskResponse {
	return taskResponse{ID: t.ID, Title: t.Title, Description: t.Description}
}

type pageResponse struct {
	Data  []taskResponse `json:"data"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
}

func newPageResponse(p model.TaskPage) pageResponse {
	data := make([]taskResponse, 0, len(p.Data))
	for _, t := range p.Data {
		data = append(data, newTaskResponse(t))
	}
	return pageResponse{Data: data, Page: p.Page, Limit: p.Limit, Total: p.Total}
}

// decodeJSON разбирает тело запроса. Ошибки оборачиваются в ErrValidation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty request body", service.ErrValidation)
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: empty request body", service.ErrValidation)
	default:
		return fmt.Errorf("%w: invalid json: %v", service.ErrValidation, err)
	}
}

func taskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// queryInt returns def when the parameter is absent or not an integer.
func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
