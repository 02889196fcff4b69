package cuentica

import (
	"context"
	"net/http"
	"strings"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// DefaultCountry is sent for providers created by FindOrCreate.
const DefaultCountry = "ES"

// companyTaxPrefixes are the first letters of Spanish company tax IDs.
const companyTaxPrefixes = "ABCDEFGHJNPQRSUVW"

// Provider is a supplier.
type Provider struct {
	ID           int64        `json:"id"`
	CIF          string       `json:"cif"`
	BusinessName string       `json:"business_name"`
	Tradename    string       `json:"tradename,omitempty"`
	BusinessType BusinessType `json:"business_type"`
	Address      string       `json:"address,omitempty"`
	Town         string       `json:"town,omitempty"`
	PostalCode   string       `json:"postal_code,omitempty"`
	Region       string       `json:"region,omitempty"`
	CountryCode  string       `json:"country_code,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Web          string       `json:"web,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    string       `json:"created_at,omitempty"`
	UpdatedAt    string       `json:"updated_at,omitempty"`
}

// CreateProvider is the body of a provider creation. The API requires the
// name twice ("nombre" and "business_name") and the country as "pais".
type CreateProvider struct {
	CIF          string       `json:"cif"`
	Nombre       string       `json:"nombre"`
	BusinessName string       `json:"business_name"`
	BusinessType BusinessType `json:"business_type"`
	Pais         string       `json:"pais"`
	Address      string       `json:"address,omitempty"`
	Town         string       `json:"town,omitempty"`
	PostalCode   string       `json:"postal_code,omitempty"`
	Region       string       `json:"region,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Web          string       `json:"web,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// UpdateProvider carries the fields to change; empty fields are not sent.
type UpdateProvider struct {
	CIF          string       `json:"cif,omitempty"`
	Nombre       string       `json:"nombre,omitempty"`
	BusinessName string       `json:"business_name,omitempty"`
	BusinessType BusinessType `json:"business_type,omitempty"`
	Pais         string       `json:"pais,omitempty"`
	Address      string       `json:"address,omitempty"`
	Town         string       `json:"town,omitempty"`
	PostalCode   string       `json:"postal_code,omitempty"`
	Region       string       `json:"region,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Web          string       `json:"web,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// ProviderListParams filters the provider list.
type ProviderListParams struct {
	ListOptions
	// Q is a free-text search (name or tax ID)
	Q string
}

func (p ProviderListParams) query() client.Query {
	q := p.ListOptions.query()
	setString(q, "q", p.Q)
	return q
}

// ProviderLookup identifies a provider for FindOrCreate.
type ProviderLookup struct {
	TaxID        string
	BusinessName string
}

// InferBusinessType classifies a Spanish tax ID by its first letter.
func InferBusinessType(taxID string) BusinessType {
	if taxID == "" {
		return BusinessIndividual
	}
	first := strings.ToUpper(taxID[:1])
	if strings.Contains(companyTaxPrefixes, first) {
		return BusinessCompany
	}
	return BusinessIndividual
}

// ProviderService manages /provider.
type ProviderService struct {
	service
}

// List returns one page of providers.
func (s *ProviderService) List(ctx context.Context, params ProviderListParams) (client.PaginatedResponse[Provider], error) {
	return client.Paginated[Provider](ctx, s.client, client.RequestOptions{
		Path:  collectionPath(cache.PrefixProvider),
		Query: params.query(),
	})
}

// SearchByCIF returns the provider whose tax ID matches cif, ignoring case.
// Without an exact match the first search result is returned, and nil when
// the search is empty.
func (s *ProviderService) SearchByCIF(ctx context.Context, cif string) (*Provider, error) {
	page, err := s.List(ctx, ProviderListParams{Q: cif})
	if err != nil {
		return nil, err
	}
	return matchByCIF(page.Data, cif, func(p Provider) string { return p.CIF }), nil
}

// Get returns a provider by ID.
func (s *ProviderService) Get(ctx context.Context, id int64) (*Provider, error) {
	p, err := client.Do[Provider](ctx, s.client, client.RequestOptions{
		Path: entityPath(cache.PrefixProvider, id),
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create adds a provider.
func (s *ProviderService) Create(ctx context.Context, in CreateProvider) (*Provider, error) {
	p, err := client.Do[Provider](ctx, s.client, client.RequestOptions{
		Method: http.MethodPost,
		Path:   collectionPath(cache.PrefixProvider),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixProvider, 0)
	return &p, nil
}

// Update changes a provider.
func (s *ProviderService) Update(ctx context.Context, id int64, in UpdateProvider) (*Provider, error) {
	p, err := client.Do[Provider](ctx, s.client, client.RequestOptions{
		Method: http.MethodPut,
		Path:   entityPath(cache.PrefixProvider, id),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixProvider, id)
	return &p, nil
}

// Delete removes a provider.
func (s *ProviderService) Delete(ctx context.Context, id int64) error {
	err := s.client.Request(ctx, client.RequestOptions{
		Method: http.MethodDelete,
		Path:   entityPath(cache.PrefixProvider, id),
	}, nil)
	if err != nil {
		return err
	}
	s.invalidate(cache.PrefixProvider, id)
	return nil
}

// FindOrCreate returns the provider with the lookup's tax ID, creating it
// when the search finds nothing.
func (s *ProviderService) FindOrCreate(ctx context.Context, lookup ProviderLookup) (*Provider, error) {
	existing, err := s.SearchByCIF(ctx, lookup.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return s.Create(ctx, CreateProvider{
		CIF:          strings.ToUpper(lookup.TaxID),
		Nombre:       lookup.BusinessName,
		BusinessName: lookup.BusinessName,
		BusinessType: InferBusinessType(lookup.TaxID),
		Pais:         DefaultCountry,
	})
}

// matchByCIF picks the exact (case-insensitive) match, else the first item.
func matchByCIF[T any](items []T, cif string, taxID func(T) string) *T {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if strings.EqualFold(taxID(items[i]), cif) {
			return &items[i]
		}
	}
	return &items[0]
}
