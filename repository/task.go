package repository

import (
	"context"

	"github.com/taskloop/backend/domain"
)

type TaskFilter struct {
	Owner string
	Limit int
}

// TaskRepository translates between domain tasks and the document store.
// Reads return (nil, nil) when the record does not exist; errors are
// reserved for transport failures.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Update merges the patch into the stored record and reads back the
	// post-merge state. A missing id yields (nil, nil), never an insert.
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
