package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskloop/backend/domain"
)

func TestGetTaskRejectsMalformedID(t *testing.T) {
	env := newTestEnv()
	ctx := new(fasthttp.RequestCtx)
	ctx.SetUserValue("id", "bad!id")

	env.task.GetTask(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "Valid task id is required", errorBody(t, ctx)["error"])
}

func TestGetUserTasksRejectsMalformedID(t *testing.T) {
	env := newTestEnv()
	ctx := new(fasthttp.RequestCtx)
	ctx.SetUserValue("id", "no spaces allowed")

	env.task.GetUserTasks(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "Valid user id is required", errorBody(t, ctx)["error"])
}

func TestCreateTaskRejectsIncompleteBody(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice@example.com")

	for _, body := range []string{
		`{}`,
		`{"title":"T","description":"D","owner":"alice"}`,
		`{"title":"T","owner":"alice","completed":false}`,
	} {
		ctx := postCtx(body)
		env.task.CreateTask(ctx)
		assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode(), "body %q", body)
	}
	assert.Empty(t, env.tasks.tasks)
}

func TestCreateTaskAcceptsExplicitFalseCompleted(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice@example.com")

	ctx := postCtx(`{"title":"T","description":"D","owner":"alice","completed":false}`)
	env.task.CreateTask(ctx)

	assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
}

func TestCreateTaskUnknownOwnerAnswers404(t *testing.T) {
	env := newTestEnv()

	ctx := postCtx(`{"title":"T","description":"D","owner":"ghost","completed":false}`)
	env.task.CreateTask(ctx)

	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Empty(t, env.tasks.tasks)
}

func TestCreateThenGetTask(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice@example.com")

	ctx := postCtx(`{"title":"T","description":"D","owner":"alice","completed":false}`)
	env.task.CreateTask(ctx)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	var created domain.Task
	decodeBody(t, ctx, &created)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	ctx = new(fasthttp.RequestCtx)
	ctx.SetUserValue("id", created.ID)
	env.task.GetTask(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var fetched domain.Task
	decodeBody(t, ctx, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "T", fetched.Title)
	assert.Equal(t, "D", fetched.Description)
	assert.Equal(t, "alice", fetched.Owner)
	assert.False(t, fetched.Completed)
}

func TestGetUserTasksReturnsArray(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice@example.com")

	ctx := postCtx(`{"title":"T","description":"D","owner":"alice","completed":true}`)
	env.task.CreateTask(ctx)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	ctx = new(fasthttp.RequestCtx)
	ctx.SetUserValue("id", "alice")
	env.task.GetUserTasks(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var tasks []domain.Task
	decodeBody(t, ctx, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, "alice", tasks[0].Owner)
}

func TestUpdateTaskMissingAnswers404(t *testing.T) {
	env := newTestEnv()

	ctx := postCtx(`{"completed":true}`)
	ctx.SetUserValue("id", "nope")
	env.task.UpdateTask(ctx)

	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Empty(t, env.tasks.tasks)
}

func TestUpdateTaskMergesFields(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice@example.com")

	ctx := postCtx(`{"title":"T","description":"D","owner":"alice","completed":false}`)
	env.task.CreateTask(ctx)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	var created domain.Task
	decodeBody(t, ctx, &created)

	ctx = postCtx(`{"completed":true}`)
	ctx.SetUserValue("id", created.ID)
	env.task.UpdateTask(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var updated domain.Task
	decodeBody(t, ctx, &updated)
	assert.True(t, updated.Completed)
	assert.Equal(t, "T", updated.Title)
}

func TestDeleteTask(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "alice@example.com")

	ctx := postCtx(`{"title":"T","description":"D","owner":"alice","completed":false}`)
	env.task.CreateTask(ctx)
	var created domain.Task
	decodeBody(t, ctx, &created)

	ctx = new(fasthttp.RequestCtx)
	ctx.SetUserValue("id", created.ID)
	env.task.DeleteTask(ctx)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())
	assert.Empty(t, env.tasks.tasks)

	// Deleting again answers 404 and leaves the store untouched.
	ctx = new(fasthttp.RequestCtx)
	ctx.SetUserValue("id", created.ID)
	env.task.DeleteTask(ctx)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}
