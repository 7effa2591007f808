package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateRejectsMalformedEmailBeforeProvider(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"email":"not-an-email"}`,
		`{"email":42}`,
		`not json`,
	} {
		env := newTestEnv()
		ctx := postCtx(body)

		env.auth.Authenticate(ctx)

		assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode(), "body %q", body)
		assert.Equal(t, "Valid email is required", errorBody(t, ctx)["error"])
		assert.Equal(t, 0, env.provider.lookupCalls, "provider must not be invoked for %q", body)
		assert.Equal(t, 0, env.provider.createCalls)
	}
}

func TestAuthenticateUnknownEmailAnswers401(t *testing.T) {
	env := newTestEnv()
	ctx := postCtx(`{"email":"ghost@example.com"}`)

	env.auth.Authenticate(ctx)

	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestRegisterThenAuthenticate(t *testing.T) {
	env := newTestEnv()

	ctx := postCtx(`{"email":"a@example.com"}`)
	env.auth.Register(ctx)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	var created struct {
		Token string `json:"token"`
	}
	decodeBody(t, ctx, &created)
	assert.NotEmpty(t, created.Token)

	ctx = postCtx(`{"email":"a@example.com"}`)
	env.auth.Authenticate(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var authed struct {
		Token string `json:"token"`
	}
	decodeBody(t, ctx, &authed)
	assert.NotEmpty(t, authed.Token)
}

func TestRegisterDuplicateAnswers409(t *testing.T) {
	env := newTestEnv()

	ctx := postCtx(`{"email":"a@example.com"}`)
	env.auth.Register(ctx)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	ctx = postCtx(`{"email":"a@example.com"}`)
	env.auth.Register(ctx)
	assert.Equal(t, http.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "user already exists", errorBody(t, ctx)["error"])
}
