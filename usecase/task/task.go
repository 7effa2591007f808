package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

// UseCase enforces cross-entity existence rules before delegating to the store.
type UseCase struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		users:  users,
		logger: logger,
	}
}

// TasksByOwner returns all tasks owned by the user, failing if the user is unknown.
func (uc *UseCase) TasksByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	user, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.tasks.List(ctx, repository.TaskFilter{Owner: ownerID})
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// CreateTask stores a new task after confirming the owner exists. A missing
// owner fails before anything is written.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	owner, err := uc.users.GetByID(ctx, task.Owner)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.tasks.Create(ctx, task)
}

// UpdateTask merges the patch into the stored task and returns the post-merge
// state. Updating a nonexistent id fails without creating a record.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	updated, err := uc.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrTaskNotFound
	}
	return updated, nil
}

// DeleteTask removes a task, failing if it does not exist.
func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.ErrTaskNotFound
	}
	return uc.tasks.Delete(ctx, id)
}
