// Package tables builds the Azure Table Storage clients used by the
// repositories and the identity account registry.
package tables

import (
	"context"
	"errors"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

// Config carries connection parameters for the table service.
type Config struct {
	ConnectionString string
	TasksTable       string
	UsersTable       string
	AccountsTable    string
}

// Clients groups the per-table clients handed to the repositories.
type Clients struct {
	Service  *aztables.ServiceClient
	Tasks    *aztables.Client
	Users    *aztables.Client
	Accounts *aztables.Client
}

// NewClients connects to the table service and ensures the configured
// tables exist.
func NewClients(ctx context.Context, cfg Config) (*Clients, error) {
	opts := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute,
				RetryDelay:    time.Second,
				MaxRetryDelay: 15 * time.Second,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(cfg.ConnectionString, &opts)
	if err != nil {
		return nil, err
	}

	for _, name := range []string{cfg.TasksTable, cfg.UsersTable, cfg.AccountsTable} {
		if err := ensureTable(ctx, svc, name); err != nil {
			return nil, err
		}
	}

	return &Clients{
		Service:  svc,
		Tasks:    svc.NewClient(cfg.TasksTable),
		Users:    svc.NewClient(cfg.UsersTable),
		Accounts: svc.NewClient(cfg.AccountsTable),
	}, nil
}

func ensureTable(ctx context.Context, svc *aztables.ServiceClient, name string) error {
	_, err := svc.CreateTable(ctx, name, nil)
	if err == nil {
		return nil
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) && respErr.StatusCode == 409 {
		return nil
	}
	return err
}
