package cuentica

import (
	"context"
	"net/http"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// IncomeLine is one taxed line of an income.
type IncomeLine struct {
	ID              int64   `json:"id,omitempty"`
	Description     string  `json:"description"`
	Base            Amount  `json:"base"`
	Tax             VATRate `json:"tax"`
	TaxAmount       *Amount `json:"tax_amount,omitempty"`
	Retention       *Amount `json:"retention,omitempty"`
	RetentionAmount *Amount `json:"retention_amount,omitempty"`
	IncomeType      string  `json:"income_type"`
}

// IncomeCharge is a collection recorded against an income.
type IncomeCharge struct {
	ID                       int64         `json:"id,omitempty"`
	Date                     string        `json:"date"`
	Amount                   Amount        `json:"amount"`
	PaymentMethod            PaymentMethod `json:"payment_method"`
	DestinationAccount       int64         `json:"destination_account,omitempty"`
	Charged                  bool          `json:"charged"`
	ExpectedDate             string        `json:"expected_date,omitempty"`
	DestinationAccountName   string        `json:"destination_account_name,omitempty"`
	DestinationAccountNumber string        `json:"destination_account_number,omitempty"`
	Conciliated              bool          `json:"conciliated,omitempty"`
}

// IncomeDetails are the totals computed by the API.
type IncomeDetails struct {
	Base        Amount `json:"base"`
	Tax         Amount `json:"tax"`
	Retention   Amount `json:"retention"`
	TotalIncome Amount `json:"total_income"`
	Charged     Amount `json:"charged"`
	Left        Amount `json:"left"`
}

// Income is a recorded sale not issued as an invoice.
type Income struct {
	ID             int64          `json:"id"`
	Date           string         `json:"date"`
	AccountingDate string         `json:"accounting_date"`
	CreatedOn      string         `json:"created_on"`
	Draft          bool           `json:"draft"`
	DocumentNumber string         `json:"document_number,omitempty"`
	Customer       *Customer      `json:"customer,omitempty"`
	Annotations    string         `json:"annotations,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	Details        IncomeDetails  `json:"income_details"`
	Lines          []IncomeLine   `json:"income_lines"`
	Charges        []IncomeCharge `json:"charges"`
	HasAttachment  bool           `json:"has_attachment,omitempty"`
}

// NewIncomeLine is a line of an income being created.
type NewIncomeLine struct {
	Concept    string  `json:"concept"`
	Amount     Amount  `json:"amount"`
	Tax        VATRate `json:"tax"`
	Retention  Amount  `json:"retention"`
	IncomeType string  `json:"income_type"`
	Imputation Amount  `json:"imputation"`
}

// CreateIncome is the body of an income creation.
type CreateIncome struct {
	Date     string          `json:"date"`
	Customer int64           `json:"customer"`
	Lines    []NewIncomeLine `json:"income_lines"`
	Charges  []Charge        `json:"charges"`
}

// UpdateIncome carries the fields to change; empty fields are not sent.
type UpdateIncome struct {
	Date     string          `json:"date,omitempty"`
	Customer int64           `json:"customer,omitempty"`
	Lines    []NewIncomeLine `json:"income_lines,omitempty"`
	Charges  []Charge        `json:"charges,omitempty"`
}

// IncomeListParams filters the income list.
type IncomeListParams struct {
	ListOptions
	CustomerID     int64
	Dates          DateRange
	OrderField     OrderField
	OrderDirection OrderDirection
}

func (p IncomeListParams) query() client.Query {
	q := p.ListOptions.query()
	setInt(q, "customer_id", p.CustomerID)
	p.Dates.apply(q, "initial_date", "end_date")
	setString(q, "order_field", p.OrderField)
	setString(q, "order_direction", p.OrderDirection)
	return q
}

// IncomeService manages /income.
type IncomeService struct {
	service
}

// List returns one page of incomes.
func (s *IncomeService) List(ctx context.Context, params IncomeListParams) (client.PaginatedResponse[Income], error) {
	return client.Paginated[Income](ctx, s.client, client.RequestOptions{
		Path:  collectionPath(cache.PrefixIncome),
		Query: params.query(),
	})
}

// Get returns an income by ID through the cache.
func (s *IncomeService) Get(ctx context.Context, id int64) (*Income, error) {
	res, err := client.Cached[Income](ctx, s.client, client.RequestOptions{
		Path: entityPath(cache.PrefixIncome, id),
	})
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// Create records an income.
func (s *IncomeService) Create(ctx context.Context, in CreateIncome) (*Income, error) {
	inc, err := client.Do[Income](ctx, s.client, client.RequestOptions{
		Method: http.MethodPost,
		Path:   collectionPath(cache.PrefixIncome),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixIncome, 0)
	return &inc, nil
}

// Update changes an income.
func (s *IncomeService) Update(ctx context.Context, id int64, in UpdateIncome) (*Income, error) {
	return s.mutate(ctx, id, "", in)
}

// UpdateCharges replaces the charges of an income.
func (s *IncomeService) UpdateCharges(ctx context.Context, id int64, in ChargesUpdate) (*Income, error) {
	return s.mutate(ctx, id, "/charges", in)
}

// Delete removes an income.
func (s *IncomeService) Delete(ctx context.Context, id int64) error {
	return s.remove(ctx, entityPath(cache.PrefixIncome, id), id)
}

// Attachment downloads the supporting document of an income.
func (s *IncomeService) Attachment(ctx context.Context, id int64) (*client.File, error) {
	return s.client.Download(ctx, entityPath(cache.PrefixIncome, id)+"/attachment")
}

// AttachFile uploads the supporting document of an income.
func (s *IncomeService) AttachFile(ctx context.Context, id int64, content []byte, filename, mimeType string) (*client.UploadResult, error) {
	res, err := s.client.Upload(ctx, entityPath(cache.PrefixIncome, id)+"/attachment", content, filename, mimeType)
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixIncome, id)
	return res, nil
}

// DeleteAttachment removes the supporting document of an income.
func (s *IncomeService) DeleteAttachment(ctx context.Context, id int64) error {
	return s.remove(ctx, entityPath(cache.PrefixIncome, id)+"/attachment", id)
}

func (s *IncomeService) mutate(ctx context.Context, id int64, suffix string, body any) (*Income, error) {
	inc, err := client.Do[Income](ctx, s.client, client.RequestOptions{
		Method: http.MethodPut,
		Path:   entityPath(cache.PrefixIncome, id) + suffix,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixIncome, id)
	return &inc, nil
}

func (s *IncomeService) remove(ctx context.Context, path string, id int64) error {
	err := s.client.Request(ctx, client.RequestOptions{Method: http.MethodDelete, Path: path}, nil)
	if err != nil {
		return err
	}
	s.invalidate(cache.PrefixIncome, id)
	return nil
}
