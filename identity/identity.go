// Package identity abstracts the external identity provider: the canonical
// account-by-email registry plus signed token issuance and verification.
package identity

import "context"

// Account is the provider's view of a registered identity.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenVerifier is the subset of Provider needed by the HTTP middleware.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Provider manages accounts and signed access tokens.
type Provider interface {
	TokenVerifier

	// CreateAccount registers a new account for the email. A duplicate
	// email fails with domain.ErrUserExists.
	CreateAccount(ctx context.Context, email string) (*Account, error)
	// AccountByEmail resolves an account or fails with domain.ErrAccountNotFound.
	AccountByEmail(ctx context.Context, email string) (*Account, error)
	// IssueToken signs a fresh short-lived token bound to the account id.
	IssueToken(ctx context.Context, accountID string) (string, error)
}
