package cuentica

import (
	"context"
	"errors"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// ErrNoAccounts is returned by Default when the company has no accounts.
var ErrNoAccounts = errors.New("no payment accounts found")

// BankAccount is a payment account of the company.
type BankAccount struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	AccountNumber string  `json:"account_number,omitempty"`
	BankName      string  `json:"bank_name,omitempty"`
	Balance       *Amount `json:"balance,omitempty"`
	IsDefault     bool    `json:"is_default,omitempty"`
	Active        bool    `json:"active,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// AccountListParams filters the account list.
type AccountListParams struct {
	ListOptions
	// Active filters by state when set
	Active *bool
}

func (p AccountListParams) query() client.Query {
	q := p.ListOptions.query()
	if p.Active != nil {
		q["active"] = *p.Active
	}
	return q
}

// AccountService reads /account.
type AccountService struct {
	service
}

// List returns one page of accounts.
func (s *AccountService) List(ctx context.Context, params AccountListParams) (client.PaginatedResponse[BankAccount], error) {
	return client.Paginated[BankAccount](ctx, s.client, client.RequestOptions{
		Path:  collectionPath(cache.PrefixAccount),
		Query: params.query(),
	})
}

// Get returns an account by ID.
func (s *AccountService) Get(ctx context.Context, id int64) (*BankAccount, error) {
	a, err := client.Do[BankAccount](ctx, s.client, client.RequestOptions{
		Path: entityPath(cache.PrefixAccount, id),
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Default returns the account flagged as default, else the first one.
func (s *AccountService) Default(ctx context.Context) (*BankAccount, error) {
	page, err := s.List(ctx, AccountListParams{})
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, ErrNoAccounts
	}
	for i := range page.Data {
		if page.Data[i].IsDefault {
			return &page.Data[i], nil
		}
	}
	return &page.Data[0], nil
}
