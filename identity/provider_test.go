package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskloop/backend/domain"
)

func newTokenProvider(secret string, ttl time.Duration) Provider {
	return NewProvider(nil, Config{Secret: secret, Issuer: "test", TokenTTL: ttl}, nil)
}

func TestIssueAndVerifyToken(t *testing.T) {
	p := newTokenProvider("s3cret", time.Hour)

	token, err := p.IssueToken(context.Background(), "acct-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := p.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", subject)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := newTokenProvider("s3cret", time.Hour)
	verifier := newTokenProvider("different", time.Hour)

	token, err := issuer.IssueToken(context.Background(), "acct-1")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(context.Background(), token)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnauthorized))
}

func TestVerifyTokenExpired(t *testing.T) {
	p := newTokenProvider("s3cret", -time.Minute)

	token, err := p.IssueToken(context.Background(), "acct-1")
	require.NoError(t, err)

	_, err = p.VerifyToken(context.Background(), token)
	require.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	p := newTokenProvider("s3cret", time.Hour)

	_, err := p.VerifyToken(context.Background(), "not-a-jwt")
	require.Error(t, err)
}
