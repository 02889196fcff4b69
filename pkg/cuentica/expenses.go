package cuentica

import (
	"context"
	"net/http"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// ExpenseLine is one taxed line of an expense.
type ExpenseLine struct {
	ID              int64   `json:"id,omitempty"`
	Description     string  `json:"description"`
	Base            Amount  `json:"base"`
	Tax             VATRate `json:"tax"`
	TaxAmount       *Amount `json:"tax_amount,omitempty"`
	Retention       *Amount `json:"retention,omitempty"`
	RetentionAmount *Amount `json:"retention_amount,omitempty"`
	Surcharge       *Amount `json:"surcharge,omitempty"`
	SurchargeAmount *Amount `json:"surcharge_amount,omitempty"`
	Imputation      Amount  `json:"imputation"`
	ExpenseType     string  `json:"expense_type"`
	Draft           bool    `json:"draft,omitempty"`
	Investment      bool    `json:"investment,omitempty"`
	ISP             bool    `json:"isp,omitempty"`
}

// ExpensePayment is a payment made against an expense.
type ExpensePayment struct {
	ID                  int64         `json:"id,omitempty"`
	Date                string        `json:"date"`
	Amount              Amount        `json:"amount"`
	PaymentMethod       PaymentMethod `json:"payment_method"`
	OriginAccount       int64         `json:"origin_account,omitempty"`
	Paid                bool          `json:"paid"`
	ExpectedDate        string        `json:"expected_date,omitempty"`
	OriginAccountName   string        `json:"origin_account_name,omitempty"`
	OriginAccountNumber string        `json:"origin_account_number,omitempty"`
	Conciliated         bool          `json:"conciliated,omitempty"`
}

// ExpenseDetails are the totals computed by the API.
type ExpenseDetails struct {
	Base         Amount `json:"base"`
	Tax          Amount `json:"tax"`
	Retention    Amount `json:"retention"`
	Surcharge    Amount `json:"surcharge"`
	TotalExpense Amount `json:"total_expense"`
	Paid         Amount `json:"paid"`
	Left         Amount `json:"left"`
}

// Expense is a recorded purchase.
type Expense struct {
	ID             int64            `json:"id"`
	Date           string           `json:"date"`
	AccountingDate string           `json:"accounting_date"`
	CreatedOn      string           `json:"created_on"`
	Draft          bool             `json:"draft"`
	DocumentType   DocumentType     `json:"document_type"`
	DocumentNumber string           `json:"document_number"`
	Provider       *Provider        `json:"provider,omitempty"`
	Annotations    string           `json:"annotations,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	CashCriteria   bool             `json:"cash_criteria,omitempty"`
	VATEU          bool             `json:"vat_eu,omitempty"`
	Details        ExpenseDetails   `json:"expense_details"`
	Lines          []ExpenseLine    `json:"expense_lines"`
	Payments       []ExpensePayment `json:"payments"`
	Recurrent      bool             `json:"recurrent,omitempty"`
	HasAttachment  bool             `json:"has_attachment,omitempty"`
}

// NewExpenseLine is a line of an expense being created.
type NewExpenseLine struct {
	Description string  `json:"description"`
	Base        Amount  `json:"base"`
	Tax         VATRate `json:"tax"`
	Retention   Amount  `json:"retention"`
	Imputation  Amount  `json:"imputation"`
	ExpenseType string  `json:"expense_type"`
}

// Payment is a payment of an expense being created.
type Payment struct {
	Date          string        `json:"date"`
	Amount        Amount        `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	OriginAccount int64         `json:"origin_account"`
	Paid          bool          `json:"paid"`
}

// CreateExpense is the body of an expense creation.
type CreateExpense struct {
	Date           string           `json:"date"`
	DocumentNumber string           `json:"document_number,omitempty"`
	DocumentType   DocumentType     `json:"document_type"`
	Provider       int64            `json:"provider"`
	Draft          bool             `json:"draft"`
	Annotations    string           `json:"annotations,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	CashCriteria   bool             `json:"cash_criteria,omitempty"`
	VATEU          bool             `json:"vat_eu,omitempty"`
	Lines          []NewExpenseLine `json:"expense_lines"`
	Payments       []Payment        `json:"payments"`
}

// UpdateExpense carries the fields to change; empty fields are not sent.
type UpdateExpense struct {
	Date           string           `json:"date,omitempty"`
	DocumentNumber string           `json:"document_number,omitempty"`
	DocumentType   DocumentType     `json:"document_type,omitempty"`
	Provider       int64            `json:"provider,omitempty"`
	Draft          *bool            `json:"draft,omitempty"`
	Annotations    string           `json:"annotations,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	Lines          []NewExpenseLine `json:"expense_lines,omitempty"`
	Payments       []Payment        `json:"payments,omitempty"`
}

// ExpenseListParams filters the expense list. The expense endpoint takes
// date_from/date_to as named.
type ExpenseListParams struct {
	ListOptions
	ProviderID     int64
	Dates          DateRange
	ExpenseType    string
	OrderField     OrderField
	OrderDirection OrderDirection
}

func (p ExpenseListParams) query() client.Query {
	q := p.ListOptions.query()
	setInt(q, "provider_id", p.ProviderID)
	p.Dates.apply(q, "date_from", "date_to")
	setString(q, "expense_type", p.ExpenseType)
	setString(q, "order_field", p.OrderField)
	setString(q, "order_direction", p.OrderDirection)
	return q
}

// ExpenseService manages /expense.
type ExpenseService struct {
	service
}

// List returns one page of expenses.
func (s *ExpenseService) List(ctx context.Context, params ExpenseListParams) (client.PaginatedResponse[Expense], error) {
	return client.Paginated[Expense](ctx, s.client, client.RequestOptions{
		Path:  collectionPath(cache.PrefixExpense),
		Query: params.query(),
	})
}

// Get returns an expense by ID.
func (s *ExpenseService) Get(ctx context.Context, id int64) (*Expense, error) {
	e, err := client.Do[Expense](ctx, s.client, client.RequestOptions{
		Path: entityPath(cache.PrefixExpense, id),
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create records an expense.
func (s *ExpenseService) Create(ctx context.Context, in CreateExpense) (*Expense, error) {
	e, err := client.Do[Expense](ctx, s.client, client.RequestOptions{
		Method: http.MethodPost,
		Path:   collectionPath(cache.PrefixExpense),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixExpense, 0)
	return &e, nil
}

// Update changes an expense.
func (s *ExpenseService) Update(ctx context.Context, id int64, in UpdateExpense) (*Expense, error) {
	e, err := client.Do[Expense](ctx, s.client, client.RequestOptions{
		Method: http.MethodPut,
		Path:   entityPath(cache.PrefixExpense, id),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixExpense, id)
	return &e, nil
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	err := s.client.Request(ctx, client.RequestOptions{
		Method: http.MethodDelete,
		Path:   entityPath(cache.PrefixExpense, id),
	}, nil)
	if err != nil {
		return err
	}
	s.invalidate(cache.PrefixExpense, id)
	return nil
}

// AttachFile uploads the supporting document of an expense.
func (s *ExpenseService) AttachFile(ctx context.Context, id int64, content []byte, filename, mimeType string) (*client.UploadResult, error) {
	res, err := s.client.Upload(ctx, entityPath(cache.PrefixExpense, id)+"/attachment", content, filename, mimeType)
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixExpense, id)
	return res, nil
}

// Attachment downloads the supporting document of an expense.
func (s *ExpenseService) Attachment(ctx context.Context, id int64) (*client.File, error) {
	return s.client.Download(ctx, entityPath(cache.PrefixExpense, id)+"/attachment")
}
