package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/identity"
	"github.com/taskloop/backend/repository"
	authUC "github.com/taskloop/backend/usecase/auth"
	taskUC "github.com/taskloop/backend/usecase/task"
)

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (r *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Task{}
	for _, task := range r.tasks {
		if filter.Owner == "" || task.Owner == filter.Owner {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := *task
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()
	r.tasks[created.ID] = created
	return &created, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	r.tasks[id] = task
	return &task, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = *user
	return nil
}

type fakeProvider struct {
	accounts    map[string]identity.Account
	createCalls int
	lookupCalls int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{accounts: make(map[string]identity.Account)}
}

func (p *fakeProvider) CreateAccount(_ context.Context, email string) (*identity.Account, error) {
	p.createCalls++
	if _, ok := p.accounts[email]; ok {
		return nil, domain.ErrUserExists
	}
	account := identity.Account{ID: fmt.Sprintf("acct-%d", len(p.accounts)+1), Email: email}
	p.accounts[email] = account
	return &account, nil
}

func (p *fakeProvider) AccountByEmail(_ context.Context, email string) (*identity.Account, error) {
	p.lookupCalls++
	account, ok := p.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (p *fakeProvider) IssueToken(_ context.Context, accountID string) (string, error) {
	return "token-for-" + accountID, nil
}

func (p *fakeProvider) VerifyToken(_ context.Context, _ string) (string, error) {
	return "", errors.New("not implemented")
}

type testEnv struct {
	auth     *AuthHandler
	task     *TaskHandler
	tasks    *fakeTaskRepo
	users    *fakeUserRepo
	provider *fakeProvider
}

func newTestEnv() *testEnv {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	provider := newFakeProvider()
	return &testEnv{
		auth:     NewAuthHandler(authUC.New(users, provider, nil), nil, nil),
		task:     NewTaskHandler(taskUC.New(tasks, users, nil), nil, nil),
		tasks:    tasks,
		users:    users,
		provider: provider,
	}
}

func (e *testEnv) addUser(id, email string) {
	e.users.users[id] = domain.User{ID: id, Email: email}
}

func postCtx(body string) *fasthttp.RequestCtx {
	ctx := new(fasthttp.RequestCtx)
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetBody([]byte(body))
	return ctx
}

func decodeBody(t *testing.T, ctx *fasthttp.RequestCtx, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), dst))
}

func errorBody(t *testing.T, ctx *fasthttp.RequestCtx) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	decodeBody(t, ctx, &body)
	return body
}
