package cuentica

import (
	"context"
	"net/http"
	"strings"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// InvoiceStatus is the lifecycle state of an issued invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// InvoiceLine is one concept of an invoice.
type InvoiceLine struct {
	ID                 int64   `json:"id,omitempty"`
	Concept            string  `json:"concept"`
	Quantity           Amount  `json:"quantity"`
	UnitPrice          Amount  `json:"unit_price"`
	DiscountPercentage *Amount `json:"discount_percentage,omitempty"`
	TaxRate            VATRate `json:"tax_rate"`
	TaxAmount          *Amount `json:"tax_amount,omitempty"`
	Subtotal           *Amount `json:"subtotal,omitempty"`
	Total              *Amount `json:"total,omitempty"`
}

// Invoice is an issued invoice.
type Invoice struct {
	ID         int64         `json:"id"`
	Number     string        `json:"number"`
	Date       string        `json:"date"`
	DueDate    string        `json:"due_date,omitempty"`
	CustomerID int64         `json:"customer_id"`
	Customer   *Customer     `json:"customer,omitempty"`
	Status     InvoiceStatus `json:"status"`
	Subtotal   Amount        `json:"subtotal"`
	TaxAmount  Amount        `json:"tax_amount"`
	Total      Amount        `json:"total"`
	Notes      string        `json:"notes,omitempty"`
	Lines      []InvoiceLine `json:"lines"`
	CreatedAt  string        `json:"created_at,omitempty"`
	UpdatedAt  string        `json:"updated_at,omitempty"`
}

// NewInvoiceLine is a line of an invoice being created or updated.
type NewInvoiceLine struct {
	Concept            string  `json:"concept"`
	Quantity           Amount  `json:"quantity"`
	UnitPrice          Amount  `json:"unit_price"`
	DiscountPercentage *Amount `json:"discount_percentage,omitempty"`
	TaxRate            VATRate `json:"tax_rate"`
}

// CreateInvoice is the body of an invoice creation. An empty Number lets
// the API assign the next one of the series.
type CreateInvoice struct {
	Number     string           `json:"number,omitempty"`
	Date       string           `json:"date"`
	DueDate    string           `json:"due_date,omitempty"`
	CustomerID int64            `json:"customer_id"`
	Notes      string           `json:"notes,omitempty"`
	Lines      []NewInvoiceLine `json:"lines"`
}

// UpdateInvoice carries the fields to change; empty fields are not sent.
type UpdateInvoice struct {
	Number     string           `json:"number,omitempty"`
	Date       string           `json:"date,omitempty"`
	DueDate    string           `json:"due_date,omitempty"`
	CustomerID int64            `json:"customer_id,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Lines      []NewInvoiceLine `json:"lines,omitempty"`
}

// InvoiceListParams filters the invoice list.
type InvoiceListParams struct {
	ListOptions
	CustomerID     int64
	Status         InvoiceStatus
	Dates          DateRange
	Serie          string
	Tags           []string
	OrderField     OrderField
	OrderDirection OrderDirection
}

func (p InvoiceListParams) query() client.Query {
	q := p.ListOptions.query()
	setInt(q, "customer_id", p.CustomerID)
	setString(q, "status", p.Status)
	p.Dates.apply(q, "initial_date", "end_date")
	setString(q, "serie", p.Serie)
	if len(p.Tags) > 0 {
		q["tags"] = strings.Join(p.Tags, ",")
	}
	setString(q, "order_field", p.OrderField)
	setString(q, "order_direction", p.OrderDirection)
	return q
}

// InvoicePublicLink is a shareable URL for an invoice.
type InvoicePublicLink struct {
	URL string `json:"url"`
}

// InvoiceService manages /invoice.
type InvoiceService struct {
	service
}

// List returns one page of invoices.
func (s *InvoiceService) List(ctx context.Context, params InvoiceListParams) (client.PaginatedResponse[Invoice], error) {
	return client.Paginated[Invoice](ctx, s.client, client.RequestOptions{
		Path:  collectionPath(cache.PrefixInvoice),
		Query: params.query(),
	})
}

// Get returns an invoice by ID.
func (s *InvoiceService) Get(ctx context.Context, id int64) (*Invoice, error) {
	return s.call(ctx, http.MethodGet, entityPath(cache.PrefixInvoice, id), nil)
}

// Create issues an invoice.
func (s *InvoiceService) Create(ctx context.Context, in CreateInvoice) (*Invoice, error) {
	inv, err := s.call(ctx, http.MethodPost, collectionPath(cache.PrefixInvoice), in)
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixInvoice, 0)
	return inv, nil
}

// Update changes an invoice.
func (s *InvoiceService) Update(ctx context.Context, id int64, in UpdateInvoice) (*Invoice, error) {
	return s.mutate(ctx, http.MethodPut, id, "", in)
}

// Delete removes an invoice.
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	err := s.client.Request(ctx, client.RequestOptions{
		Method: http.MethodDelete,
		Path:   entityPath(cache.PrefixInvoice, id),
	}, nil)
	if err != nil {
		return err
	}
	s.invalidate(cache.PrefixInvoice, id)
	return nil
}

// DownloadPDF returns the rendered invoice.
func (s *InvoiceService) DownloadPDF(ctx context.Context, id int64) (*client.File, error) {
	return s.client.Download(ctx, entityPath(cache.PrefixInvoice, id)+"/pdf")
}

// SendByEmail mails the invoice to email, or to the customer's address
// when email is empty.
func (s *InvoiceService) SendByEmail(ctx context.Context, id int64, email string) error {
	var body any
	if email != "" {
		body = map[string]string{"email": email}
	}
	return s.client.Request(ctx, client.RequestOptions{
		Method: http.MethodPost,
		Path:   entityPath(cache.PrefixInvoice, id) + "/email",
		Body:   body,
	}, nil)
}

// Void cancels an issued invoice.
func (s *InvoiceService) Void(ctx context.Context, id int64) (*Invoice, error) {
	return s.mutate(ctx, http.MethodPost, id, "/void", nil)
}

// PublicLink returns the shareable URL of an invoice.
func (s *InvoiceService) PublicLink(ctx context.Context, id int64) (*InvoicePublicLink, error) {
	link, err := client.Do[InvoicePublicLink](ctx, s.client, client.RequestOptions{
		Path: entityPath(cache.PrefixInvoice, id) + "/public",
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// UpdateCharges replaces the charges of an invoice.
func (s *InvoiceService) UpdateCharges(ctx context.Context, id int64, in ChargesUpdate) (*Invoice, error) {
	return s.mutate(ctx, http.MethodPut, id, "/charges", in)
}

func (s *InvoiceService) mutate(ctx context.Context, method string, id int64, suffix string, body any) (*Invoice, error) {
	inv, err := s.call(ctx, method, entityPath(cache.PrefixInvoice, id)+suffix, body)
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixInvoice, id)
	return inv, nil
}

func (s *InvoiceService) call(ctx context.Context, method, path string, body any) (*Invoice, error) {
	inv, err := client.Do[Invoice](ctx, s.client, client.RequestOptions{
		Method: method,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
