package domain

import "time"

// Task represents a user-owned activity item. Owner references a User by id;
// the reference is validated at creation time only.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskPatch carries a partial field replacement for an existing task.
// Nil fields are left untouched by the merge.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}
