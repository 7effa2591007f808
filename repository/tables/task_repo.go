package tables

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/google/uuid"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

type taskEntity struct {
	aztables.Entity
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Owner       string `json:"Owner"`
	Completed   bool   `json:"Completed"`
	CreatedAt   string `json:"CreatedAt"`
}

type taskRepository struct {
	table *aztables.Client
}

// NewTaskRepository returns a table-storage-backed implementation of TaskRepository.
func NewTaskRepository(table *aztables.Client) repository.TaskRepository {
	return &taskRepository{table: table}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	resp, err := r.table.GetEntity(ctx, taskPartition, id, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeTask(resp.Value)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := fmt.Sprintf("PartitionKey eq '%s'", taskPartition)
	if filter.Owner != "" {
		query += fmt.Sprintf(" and Owner eq '%s'", escapeFilterValue(filter.Owner))
	}

	opts := &aztables.ListEntitiesOptions{Filter: &query}
	if filter.Limit > 0 {
		top := int32(filter.Limit)
		opts.Top = &top
	}

	tasks := []domain.Task{}
	pager := r.table.NewListEntitiesPager(opts)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Entities {
			task, err := decodeTask(raw)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, *task)
			if filter.Limit > 0 && len(tasks) >= filter.Limit {
				return tasks, nil
			}
		}
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	created := *task
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(taskEntity{
		Entity: aztables.Entity{
			PartitionKey: taskPartition,
			RowKey:       created.ID,
		},
		Title:       created.Title,
		Description: created.Description,
		Owner:       created.Owner,
		Completed:   created.Completed,
		CreatedAt:   formatTimestamp(created.CreatedAt),
	})
	if err != nil {
		return nil, err
	}

	if _, err := r.table.AddEntity(ctx, payload, nil); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *taskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	merge := map[string]any{
		"PartitionKey": taskPartition,
		"RowKey":       id,
	}
	if patch.Title != nil {
		merge["Title"] = *patch.Title
	}
	if patch.Description != nil {
		merge["Description"] = *patch.Description
	}
	if patch.Completed != nil {
		merge["Completed"] = *patch.Completed
	}

	payload, err := json.Marshal(merge)
	if err != nil {
		return nil, err
	}

	etag := azcore.ETagAny
	_, err = r.table.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{
		IfMatch:    &etag,
		UpdateMode: aztables.UpdateModeMerge,
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	// Read back the post-merge state so callers observe exactly what was stored.
	return r.GetByID(ctx, id)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.table.DeleteEntity(ctx, taskPartition, id, nil); err != nil {
		if isNotFound(err) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func decodeTask(raw []byte) (*domain.Task, error) {
	var ent taskEntity
	if err := json.Unmarshal(raw, &ent); err != nil {
		return nil, err
	}
	return &domain.Task{
		ID:          ent.RowKey,
		Title:       ent.Title,
		Description: ent.Description,
		Owner:       ent.Owner,
		Completed:   ent.Completed,
		CreatedAt:   parseTimestamp(ent.CreatedAt),
	}, nil
}
