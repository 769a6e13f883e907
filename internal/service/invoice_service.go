package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"lawdesk/internal/apperr"
	"lawdesk/internal/auth"
	"lawdesk/internal/model"
	"lawdesk/internal/repository"
)

type CreateInvoiceRequest struct {
	InvoiceNumber int             `json:"invoice_number" binding:"required,gt=0"`
	ClientID      uint            `json:"client_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	DueOnDate     string          `json:"due_on_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateInvoiceRequest struct {
	ClientID  *uint            `json:"client_id"`
	Amount    *decimal.Decimal `json:"amount"`
	DueOnDate *string          `json:"due_on_date" binding:"omitempty,datetime=2006-01-02"`
}

type InvoiceResponse struct {
	ID            uint            `json:"id"`
	InvoiceNumber int             `json:"invoice_number"`
	ClientID      uint            `json:"client_id"`
	ClientName    string          `json:"client_name"`
	CreatedBy     uint            `json:"created_by"`
	CreatorName   string          `json:"creator_name"`
	Amount        decimal.Decimal `json:"amount"`
	DueOnDate     string          `json:"due_on_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvoiceService manages client invoices. Invoice numbers are unique across
// every row ever written.
type InvoiceService interface {
	ListInvoices(ctx context.Context, page, limit int) ([]InvoiceResponse, int64, error)
	GetInvoice(ctx context.Context, id uint) (*InvoiceResponse, error)
	CreateInvoice(ctx context.Context, p auth.Principal, req CreateInvoiceRequest) (*InvoiceResponse, error)
	UpdateInvoice(ctx context.Context, id uint, req UpdateInvoiceRequest) (*InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id uint) error
}

type invoiceService struct {
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	tx       repository.TransactionManager
}

func NewInvoiceService(
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	tx repository.TransactionManager,
) InvoiceService {
	return &invoiceService{invoices: invoices, clients: clients, tx: tx}
}

func mapInvoiceResponse(inv *model.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		ClientName:    inv.Client.Name,
		CreatedBy:     inv.CreatedBy,
		CreatorName:   inv.Creator.Name,
		Amount:        inv.Amount,
		DueOnDate:     inv.DueOnDate.Format(dateLayout),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func (s *invoiceService) ListInvoices(ctx context.Context, page, limit int) ([]InvoiceResponse, int64, error) {
	invoices, total, err := s.invoices.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *mapInvoiceResponse(&invoices[i]))
	}
	return responses, total, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uint) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "INVOICE_NOT_FOUND")
	}
	return mapInvoiceResponse(invoice), nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, p auth.Principal, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.New(apperr.Validation, "INVALID_AMOUNT")
	}

	var createdID uint
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.invoices.FindByNumber(txCtx, req.InvoiceNumber)
		if err := duplicateOr(err, "INVOICE_NUM_EXISTS"); err != nil {
			return err
		}
		if _, err := s.clients.FindActiveByID(txCtx, req.ClientID); err != nil {
			return notFoundOr(err, clientKeys.notFound)
		}

		invoice := &model.Invoice{
			InvoiceNumber: req.InvoiceNumber,
			ClientID:      req.ClientID,
			CreatedBy:     p.ID,
			Amount:        req.Amount,
			DueOnDate:     parseDate(req.DueOnDate),
		}
		if err := s.invoices.Create(txCtx, invoice); err != nil {
			return err
		}
		createdID = invoice.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.invoices.FindByID(ctx, createdID)
	if err != nil {
		return nil, err
	}
	return mapInvoiceResponse(created), nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id uint, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		invoice, err := s.invoices.FindByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, "INVOICE_NOT_FOUND")
		}

		if req.ClientID != nil {
			if _, err := s.clients.FindActiveByID(txCtx, *req.ClientID); err != nil {
				return notFoundOr(err, clientKeys.notFound)
			}
			invoice.ClientID = *req.ClientID
		}
		if req.Amount != nil {
			if req.Amount.LessThanOrEqual(decimal.Zero) {
				return apperr.New(apperr.Validation, "INVALID_AMOUNT")
			}
			invoice.Amount = *req.Amount
		}
		if req.DueOnDate != nil {
			invoice.DueOnDate = parseDate(*req.DueOnDate)
		}

		return s.invoices.Update(txCtx, invoice)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapInvoiceResponse(updated), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id uint) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.invoices.FindByID(txCtx, id); err != nil {
			return notFoundOr(err, "INVOICE_NOT_FOUND")
		}
		return s.invoices.Delete(txCtx, id)
	})
}
