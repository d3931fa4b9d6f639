package model

type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskInput carries the fields required to create a task.
type TaskInput struct {
	Title       string
	Description string
}

// TaskPatch holds an optional overwrite per field. Nil or empty leaves the stored value as is.
type TaskPatch struct {
	Title       *string
	Description *string
}

type TaskPage struct {
	Data  []Task `json:"data"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int    `json:"total"`
}
