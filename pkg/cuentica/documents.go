package cuentica

import (
	"context"
	"net/http"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
)

// DocumentAssignment tells what a stored document is attached to.
type DocumentAssignment string

const (
	AssignmentNone    DocumentAssignment = "unassigned"
	AssignmentExpense DocumentAssignment = "expense"
	AssignmentIncome  DocumentAssignment = "income"
)

// Document is a stored file.
type Document struct {
	ID         int64              `json:"id"`
	Filename   string             `json:"filename"`
	Extension  string             `json:"extension"`
	MimeType   string             `json:"mime_type"`
	Size       int64              `json:"size"`
	Date       string             `json:"date"`
	CreatedOn  string             `json:"created_on"`
	Assignment DocumentAssignment `json:"assignment"`
	ExpenseID  int64              `json:"expense_id,omitempty"`
	IncomeID   int64              `json:"income_id,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	Tags       []string           `json:"tags,omitempty"`
}

// DocumentFile is an inline file upload. Data is sent base64-encoded.
type DocumentFile struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// CreateDocument is the body of a document creation.
type CreateDocument struct {
	Date       string       `json:"date,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	Tags       []string     `json:"tags,omitempty"`
	ExpenseID  int64        `json:"expense_id,omitempty"`
	Attachment DocumentFile `json:"attachment"`
}

// UpdateDocument carries the fields to change; empty fields are not sent.
type UpdateDocument struct {
	Date       string             `json:"date,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	Tags       []string           `json:"tags,omitempty"`
	Assignment DocumentAssignment `json:"assignment,omitempty"`
	ExpenseID  int64              `json:"expense_id,omitempty"`
	IncomeID   int64              `json:"income_id,omitempty"`
}

// DocumentListParams filters the document list.
type DocumentListParams struct {
	ListOptions
	Dates      DateRange
	Extension  string
	Assignment DocumentAssignment
}

func (p DocumentListParams) query() client.Query {
	q := p.ListOptions.query()
	p.Dates.apply(q, "initial_date", "end_date")
	setString(q, "extension", p.Extension)
	setString(q, "assignment", p.Assignment)
	return q
}

// DocumentService manages /document.
type DocumentService struct {
	service
}

// List returns one page of documents.
func (s *DocumentService) List(ctx context.Context, params DocumentListParams) (client.PaginatedResponse[Document], error) {
	return client.Paginated[Document](ctx, s.client, client.RequestOptions{
		Path:  collectionPath(cache.PrefixDocument),
		Query: params.query(),
	})
}

// Get returns a document by ID through the cache.
func (s *DocumentService) Get(ctx context.Context, id int64) (*Document, error) {
	res, err := client.Cached[Document](ctx, s.client, client.RequestOptions{
		Path: entityPath(cache.PrefixDocument, id),
	})
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// Create stores a document.
func (s *DocumentService) Create(ctx context.Context, in CreateDocument) (*Document, error) {
	d, err := client.Do[Document](ctx, s.client, client.RequestOptions{
		Method: http.MethodPost,
		Path:   collectionPath(cache.PrefixDocument),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixDocument, 0)
	return &d, nil
}

// Update changes a document.
func (s *DocumentService) Update(ctx context.Context, id int64, in UpdateDocument) (*Document, error) {
	d, err := client.Do[Document](ctx, s.client, client.RequestOptions{
		Method: http.MethodPut,
		Path:   entityPath(cache.PrefixDocument, id),
		Body:   in,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(cache.PrefixDocument, id)
	return &d, nil
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	err := s.client.Request(ctx, client.RequestOptions{
		Method: http.MethodDelete,
		Path:   entityPath(cache.PrefixDocument, id),
	}, nil)
	if err != nil {
		return err
	}
	s.invalidate(cache.PrefixDocument, id)
	return nil
}

// Attachment downloads the stored file.
func (s *DocumentService) Attachment(ctx context.Context, id int64) (*client.File, error) {
	return s.client.Download(ctx, entityPath(cache.PrefixDocument, id)+"/attachment")
}
