// Package cuentica exposes the Cuentica resources as typed services on top
// of the request engine in pkg/client.
//
// Example:
//
//	api, err := cuentica.NewFromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer api.Close()
//
//	page, err := api.Invoices.List(ctx, cuentica.InvoiceListParams{Status: cuentica.InvoicePaid})
package cuentica

import (
	"fmt"
	"strconv"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// API groups the resource services around one client.
type API struct {
	Providers *ProviderService
	Customers *CustomerService
	Invoices  *InvoiceService
	Expenses  *ExpenseService
	Incomes   *IncomeService
	Transfers *TransferService
	Documents *DocumentService
	Tags      *TagService
	Accounts  *AccountService
	Company   *CompanyService

	client *client.Client
}

// New creates a client from cfg and wires every service to it.
func New(cfg client.Config) (*API, error) {
	c, err := client.New(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithClient(c), nil
}

// NewFromEnv creates an API configured from CUENTICA_API_TOKEN and
// CUENTICA_API_URL.
func NewFromEnv() (*API, error) {
	cfg, err := client.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// NewWithClient wires the services to an existing client.
func NewWithClient(c *client.Client) *API {
	base := service{client: c}
	return &API{
		Providers: &ProviderService{base},
		Customers: &CustomerService{base},
		Invoices:  &InvoiceService{base},
		Expenses:  &ExpenseService{base},
		Incomes:   &IncomeService{base},
		Transfers: &TransferService{base},
		Documents: &DocumentService{base},
		Tags:      &TagService{base},
		Accounts:  &AccountService{base},
		Company:   &CompanyService{base},
		client:    c,
	}
}

// Client returns the underlying request engine.
func (a *API) Client() *client.Client {
	return a.client
}

// Close releases the client's cache and idle connections.
func (a *API) Close() error {
	return a.client.Close()
}

// service is embedded by every resource service.
type service struct {
	client *client.Client
}

// invalidate drops every cached list of the resource and, when id is set,
// the cached entity.
func (s service) invalidate(prefix cache.Prefix, id int64) {
	s.client.InvalidateCache(prefix)
	if id != 0 {
		s.client.DeleteFromCache(entityKey(prefix, id))
	}
}

func collectionPath(prefix cache.Prefix) string {
	return "/" + string(prefix)
}

func entityPath(prefix cache.Prefix, id int64) string {
	return fmt.Sprintf("/%s/%d", prefix, id)
}

func entityKey(prefix cache.Prefix, id int64) string {
	return string(prefix) + "/" + strconv.FormatInt(id, 10)
}
