package tables

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

type userEntity struct {
	aztables.Entity
	Email     string `json:"Email"`
	CreatedAt string `json:"CreatedAt"`
}

type userRepository struct {
	table *aztables.Client
}

// NewUserRepository returns a table-storage-backed implementation of UserRepository.
func NewUserRepository(table *aztables.Client) repository.UserRepository {
	return &userRepository{table: table}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	resp, err := r.table.GetEntity(ctx, userPartition, id, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeUser(resp.Value)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf("PartitionKey eq '%s' and Email eq '%s'", userPartition, escapeFilterValue(email))
	top := int32(1)
	pager := r.table.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &query, Top: &top})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if len(page.Entities) > 0 {
			return decodeUser(page.Entities[0])
		}
	}
	return nil, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(userEntity{
		Entity: aztables.Entity{
			PartitionKey: userPartition,
			RowKey:       user.ID,
		},
		Email:     user.Email,
		CreatedAt: formatTimestamp(user.CreatedAt),
	})
	if err != nil {
		return err
	}

	if _, err := r.table.AddEntity(ctx, payload, nil); err != nil {
		if isConflict(err) {
			return domain.ErrUserExists
		}
		return err
	}
	return nil
}

func decodeUser(raw []byte) (*domain.User, error) {
	var ent userEntity
	if err := json.Unmarshal(raw, &ent); err != nil {
		return nil, err
	}
	// CreatedAt is intentionally not surfaced on reads.
	return &domain.User{
		ID:    ent.RowKey,
		Email: ent.Email,
	}, nil
}
