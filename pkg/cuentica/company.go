package cuentica

import (
	"context"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// Company is the account holder's own fiscal data.
type Company struct {
	ID              int64  `json:"id"`
	CIF             string `json:"cif"`
	BusinessName    string `json:"business_name"`
	TradeName       string `json:"trade_name,omitempty"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
	Region          string `json:"region,omitempty"`
	Country         string `json:"country,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
	Web             string `json:"web,omitempty"`
	FiscalYearStart string `json:"fiscal_year_start,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// CompanyService reads /company.
type CompanyService struct {
	service
}

// Get returns the company through the cache.
func (s *CompanyService) Get(ctx context.Context) (*Company, error) {
	res, err := client.Cached[Company](ctx, s.client, client.RequestOptions{
		Path: collectionPath(cache.PrefixCompany),
	})
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}
