package cuentica

import (
	"context"
	"net/http"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// Customer is a client of the company.
type Customer struct {
	ID           int64        `json:"id"`
	CIF          string       `json:"cif"`
	BusinessName string       `json:"business_name"`
	TradeName    string       `json:"trade_name,omitempty"`
	BusinessType BusinessType `json:"business_type,omitempty"`
	Address      string       `json:"address,omitempty"`
	City         string       `json:"city,omitempty"`
	PostalCode   string       `json:"postal_code,omitempty"`
	Region       string       `json:"region,omitempty"`
	Country      string       `json:"country,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Web          string       `json:"web,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    string       `json:"created_at,omitempty"`
	UpdatedAt    string       `json:"updated_at,omitempty"`
}

// CreateCustomer is the body of a customer creation.
type CreateCustomer struct {
	CIF          string       `json:"cif"`
	BusinessName string       `json:"business_name"`
	TradeName    string       `json:"trade_name,omitempty"`
	BusinessType BusinessType `json:"business_type,omitempty"`
	Address      string       `json:"address,omitempty"`
	City         string       `json:"city,omitempty"`
	PostalCode   string       `json:"postal_code,omitempty"`
	Region       string       `json:"region,omitempty"`
	Country      string       `json:"country,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Web          string       `json:"web,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// UpdateCustomer carries the fields to change; empty fields are not sent.
type UpdateCustomer struct {
	CIF          string       `json:"cif,omitempty"`
	BusinessName string       `json:"business_name,omitempty"`
	TradeName    string       `json:"trade_name,omitempty"`
	BusinessType BusinessType `json:"business_type,omitempty"`
	Address      string       `json:"address,omitempty"`
	City         string       `json:"city,omitempty"`
	Town         string       `json:"town,omitempty"`
	PostalCode   string       `json:"postal_code,omitempty"`
	Region       string       `json:"region,omitempty"`
	Country      string       `json:"country,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Web          string       `json:"web,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// CustomerListParams filters the customer list.
type CustomerListParams struct {
	ListOptions
	Q string
}

func (p CustomerListParams) query() client.Query {
	q := p.ListOptions.query()
	setString(q, "q", p.Q)
	return q
}

// CustomerService manages /customer.
type CustomerService struct {
	service
}

// List returns one page of customers.
func (s *CustomerService) List(ctx context.Context, params CustomerListParams) (client.PaginatedResponse[Customer], error) {
	return client.Paginated[Customer](ctx, s.client, client.RequestOptions{
		Path:  collectionPath(cache.PrefixCustomer),
		Query: params.query(),
	})
}

// SearchByCIF returns the customer whose tax ID matches cif, ignoring case,
// else the first search result, else nil.
func (s *CustomerService) SearchByCIF(ctx context.Context, cif string) (*Customer, error) {
	page, err := s.List(ctx, CustomerListParams{Q: cif})
	if err != nil {
		return nil, err
	}
	return matchByCIF(page.Data, cif, func(c Customer) string { return c.CIF }), nil
}

// Get returns a customer by ID through the cache.
func (s *CustomerService) Get(ctx context.Context, id int64) (*Customer, error) {
	res, err := client.Cached[Customer](ctx, s.client, client.RequestOptions{
		Path: entityPath(cache.PrefixCustomer, id),
	})
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// Create adds a customer.
func (s *CustomerService) Create(ctx context.Context, in CreateCustomer) (*Customer, error) {
	c, err := client.Do[Customer](ctx, s.client, client.RequestOptions{
		Method: http.MethodPost,
		Path:   collectionPath(cache.PrefixCustomer),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixCustomer, 0)
	return &c, nil
}

// Update changes a customer.
func (s *CustomerService) Update(ctx context.Context, id int64, in UpdateCustomer) (*Customer, error) {
	c, err := client.Do[Customer](ctx, s.client, client.RequestOptions{
		Method: http.MethodPut,
		Path:   entityPath(cache.PrefixCustomer, id),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixCustomer, id)
	return &c, nil
}

// Delete removes a customer.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	err := s.client.Request(ctx, client.RequestOptions{
		Method: http.MethodDelete,
		Path:   entityPath(cache.PrefixCustomer, id),
	}, nil)
	if err != nil {
		return err
	}
	s.invalidate(cache.PrefixCustomer, id)
	return nil
}
