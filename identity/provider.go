package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskloop/backend/domain"
)

const accountPartition = "account"

// Config carries token signing parameters.
type Config struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

type provider struct {
	accounts *aztables.Client
	secret   []byte
	issuer   string
	ttl      time.Duration
	logger   *zap.Logger
}

type accountEntity struct {
	aztables.Entity
	Email     string `json:"Email"`
	CreatedAt string `json:"CreatedAt"`
}

// NewProvider builds a Provider backed by a table-storage account registry
// and HS256-signed tokens.
func NewProvider(accounts *aztables.Client, cfg Config, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &provider{
		accounts: accounts,
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		ttl:      ttl,
		logger:   logger,
	}
}

func (p *provider) CreateAccount(ctx context.Context, email string) (*Account, error) {
	// The registry is the source of truth for email uniqueness.
	existing, err := p.lookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	account := &Account{
		ID:    uuid.NewString(),
		Email: email,
	}

	payload, err := json.Marshal(accountEntity{
		Entity: aztables.Entity{
			PartitionKey: accountPartition,
			RowKey:       account.ID,
		},
		Email:     email,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}

	if _, err := p.accounts.AddEntity(ctx, payload, nil); err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == 409 {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	p.logger.Info("account created", zap.String("account_id", account.ID))
	return account, nil
}

func (p *provider) AccountByEmail(ctx context.Context, email string) (*Account, error) {
	account, err := p.lookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (p *provider) IssueToken(_ context.Context, accountID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		Issuer:    p.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *provider) VerifyToken(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.WrapError(domain.ErrCodeUnauthorized, "invalid or expired token", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.NewError(domain.ErrCodeUnauthorized, "token subject missing")
	}
	return claims.Subject, nil
}

func (p *provider) lookupByEmail(ctx context.Context, email string) (*Account, error) {
	query := fmt.Sprintf("PartitionKey eq '%s' and Email eq '%s'",
		accountPartition, strings.ReplaceAll(email, "'", "''"))
	top := int32(1)
	pager := p.accounts.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &query, Top: &top})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if len(page.Entities) > 0 {
			var ent accountEntity
			if err := json.Unmarshal(page.Entities[0], &ent); err != nil {
				return nil, err
			}
			return &Account{ID: ent.RowKey, Email: ent.Email}, nil
		}
	}
	return nil, nil
}
