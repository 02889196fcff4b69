package cuentica

import (
	"github.com/shopspring/decimal"

	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// Amount is a monetary value. It is sent as a JSON number and accepts both
// numbers and numeric strings on decode.
type Amount struct {
	decimal.Decimal
}

// NewAmount parses a decimal string such as "1210.50".
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d}, nil
}

// MustAmount is like NewAmount but panics on malformed input.
func MustAmount(s string) Amount {
	return Amount{decimal.RequireFromString(s)}
}

// AmountFromCents builds an amount from an integer number of cents.
func AmountFromCents(cents int64) Amount {
	return Amount{decimal.New(cents, -2)}
}

// MarshalJSON encodes the amount as an unquoted number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON accepts 12.5, "12.5" and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

// TaxOn returns the tax for this base at rate, rounded to cents.
func (a Amount) TaxOn(rate VATRate) Amount {
	return Amount{a.Mul(decimal.NewFromInt(int64(rate))).Div(decimal.NewFromInt(100)).Round(2)}
}

// Plus returns a + b.
func (a Amount) Plus(b Amount) Amount {
	return Amount{a.Add(b.Decimal)}
}

// BusinessType distinguishes legal entities from natural persons.
type BusinessType string

const (
	BusinessCompany    BusinessType = "company"
	BusinessIndividual BusinessType = "individual"
)

// DocumentType is the kind of supporting document of an expense.
type DocumentType string

const (
	DocumentInvoice DocumentType = "invoice"
	DocumentTicket  DocumentType = "ticket"
)

// VATRate is a Spanish VAT percentage.
type VATRate int

const (
	VATExempt       VATRate = 0
	VATSuperReduced VATRate = 4
	VATReduced      VATRate = 10
	VATIntermediate VATRate = 12
	VATGeneral      VATRate = 21
)

// PaymentMethod is how money moved.
type PaymentMethod string

const (
	PaymentCash           PaymentMethod = "cash"
	PaymentWireTransfer   PaymentMethod = "wire_transfer"
	PaymentDirectDebit    PaymentMethod = "direct_debit"
	PaymentCheck          PaymentMethod = "check"
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentPromissoryNote PaymentMethod = "promissory_note"
	PaymentOther          PaymentMethod = "other"
)

// OrderField selects the sort column of a list.
type OrderField string

const (
	OrderByDate      OrderField = "date"
	OrderByCreatedOn OrderField = "created_on"
)

// OrderDirection selects the sort direction of a list.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// ListOptions selects a page of a list. Zero values are not sent.
type ListOptions struct {
	Page     int
	PageSize int
}

func (o ListOptions) query() client.Query {
	q := client.Query{}
	setInt(q, "page", int64(o.Page))
	setInt(q, "page_size", int64(o.PageSize))
	return q
}

// DateRange filters a list by date (YYYY-MM-DD). Zero values are not sent.
type DateRange struct {
	From string
	To   string
}

// apply sets the range under the given parameter names.
func (r DateRange) apply(q client.Query, fromKey, toKey string) {
	setString(q, fromKey, r.From)
	setString(q, toKey, r.To)
}

// Charge is a collection against an income or invoice.
type Charge struct {
	Date               string        `json:"date"`
	Amount             Amount        `json:"amount"`
	PaymentMethod      PaymentMethod `json:"payment_method"`
	DestinationAccount int64         `json:"destination_account"`
	Charged            bool          `json:"charged"`
}

// ChargesUpdate replaces the charges of an income or invoice.
type ChargesUpdate struct {
	Charges []Charge `json:"charges"`
}

func setString[S ~string](q client.Query, key string, v S) {
	if v != "" {
		q[key] = string(v)
	}
}

func setInt(q client.Query, key string, v int64) {
	if v != 0 {
		q[key] = v
	}
}
