package cuentica

import (
	"context"
	"net/http"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// Transfer moves money between two of the company's accounts.
type Transfer struct {
	ID                     int64         `json:"id"`
	Date                   string        `json:"date"`
	CreatedOn              string        `json:"created_on"`
	Amount                 Amount        `json:"amount"`
	OriginAccount          int64         `json:"origin_account"`
	DestinationAccount     int64         `json:"destination_account"`
	OriginAccountName      string        `json:"origin_account_name,omitempty"`
	DestinationAccountName string        `json:"destination_account_name,omitempty"`
	PaymentMethod          PaymentMethod `json:"payment_method"`
	Concept                string        `json:"concept,omitempty"`
	Notes                  string        `json:"notes,omitempty"`
	Conciliated            bool          `json:"conciliated,omitempty"`
}

// CreateTransfer is the body of a transfer creation.
type CreateTransfer struct {
	Date               string        `json:"date"`
	Amount             Amount        `json:"amount"`
	OriginAccount      int64         `json:"origin_account"`
	DestinationAccount int64         `json:"destination_account"`
	PaymentMethod      PaymentMethod `json:"payment_method"`
	Concept            string        `json:"concept,omitempty"`
	Notes              string        `json:"notes,omitempty"`
}

// UpdateTransfer changes the amount or notes of a transfer.
type UpdateTransfer struct {
	Amount *Amount `json:"amount,omitempty"`
	Notes  string  `json:"notes,omitempty"`
}

// TransferListParams filters the transfer list.
type TransferListParams struct {
	ListOptions
	OriginAccount      int64
	DestinationAccount int64
	PaymentMethod      PaymentMethod
	Dates              DateRange
}

func (p TransferListParams) query() client.Query {
	q := p.ListOptions.query()
	setInt(q, "origin_account", p.OriginAccount)
	setInt(q, "destination_account", p.DestinationAccount)
	setString(q, "payment_method", p.PaymentMethod)
	p.Dates.apply(q, "initial_date", "end_date")
	return q
}

// TransferService manages /transfer.
type TransferService struct {
	service
}

// List returns one page of transfers.
func (s *TransferService) List(ctx context.Context, params TransferListParams) (client.PaginatedResponse[Transfer], error) {
	return client.Paginated[Transfer](ctx, s.client, client.RequestOptions{
		Path:  collectionPath(cache.PrefixTransfer),
		Query: params.query(),
	})
}

// Get returns a transfer by ID through the cache.
func (s *TransferService) Get(ctx context.Context, id int64) (*Transfer, error) {
	res, err := client.Cached[Transfer](ctx, s.client, client.RequestOptions{
		Path: entityPath(cache.PrefixTransfer, id),
	})
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// Create records a transfer.
func (s *TransferService) Create(ctx context.Context, in CreateTransfer) (*Transfer, error) {
	t, err := client.Do[Transfer](ctx, s.client, client.RequestOptions{
		Method: http.MethodPost,
		Path:   collectionPath(cache.PrefixTransfer),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixTransfer, 0)
	return &t, nil
}

// Update changes a transfer.
func (s *TransferService) Update(ctx context.Context, id int64, in UpdateTransfer) (*Transfer, error) {
	t, err := client.Do[Transfer](ctx, s.client, client.RequestOptions{
		Method: http.MethodPut,
		Path:   entityPath(cache.PrefixTransfer, id),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixTransfer, id)
	return &t, nil
}

// Delete removes a transfer.
func (s *TransferService) Delete(ctx context.Context, id int64) error {
	err := s.client.Request(ctx, client.RequestOptions{
		Method: http.MethodDelete,
		Path:   entityPath(cache.PrefixTransfer, id),
	}, nil)
	if err != nil {
		return err
	}
	s.invalidate(cache.PrefixTransfer, id)
	return nil
}
