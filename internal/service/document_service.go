package service

import (
	"context"
	"time"

	"lawdesk/internal/auth"
	"lawdesk/internal/model"
	"lawdesk/internal/repository"
)

type CreateDocumentRequest struct {
	DocumentName string `json:"document_name" binding:"required,min=3,max=255"`
	UploadDate   string `json:"upload_date" binding:"omitempty,datetime=2006-01-02"`
	CaseID       uint   `json:"case_id" binding:"required"`
}

type UpdateDocumentRequest struct {
	DocumentName *string `json:"document_name" binding:"omitempty,min=3,max=255"`
}

type DocumentResponse struct {
	ID           uint      `json:"id"`
	DocumentName string    `json:"document_name"`
	UploadDate   string    `json:"upload_date"`
	UploaderID   uint      `json:"uploader_id"`
	CaseID       uint      `json:"case_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DocumentService tracks document records attached to cases. Only the name
// is kept here; file storage is out of scope.
type DocumentService interface {
	ListDocuments(ctx context.Context, page, limit int) ([]DocumentResponse, int64, error)
	GetDocument(ctx context.Context, id uint) (*DocumentResponse, error)
	CreateDocument(ctx context.Context, p auth.Principal, req CreateDocumentRequest) (*DocumentResponse, error)
	UpdateDocument(ctx context.Context, id uint, req UpdateDocumentRequest) (*DocumentResponse, error)
	DeleteDocument(ctx context.Context, id uint) error
}

type documentService struct {
	documents repository.DocumentRepository
	cases     repository.CaseRepository
	tx        repository.TransactionManager
}

func NewDocumentService(
	documents repository.DocumentRepository,
	cases repository.CaseRepository,
	tx repository.TransactionManager,
) DocumentService {
	return &documentService{documents: documents, cases: cases, tx: tx}
}

func mapDocumentResponse(d *model.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:           d.ID,
		DocumentName: d.DocumentName,
		UploadDate:   d.UploadDate.Format(dateLayout),
		UploaderID:   d.UploaderID,
		CaseID:       d.CaseID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (s *documentService) ListDocuments(ctx context.Context, page, limit int) ([]DocumentResponse, int64, error) {
	documents, total, err := s.documents.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]DocumentResponse, 0, len(documents))
	for i := range documents {
		responses = append(responses, *mapDocumentResponse(&documents[i]))
	}
	return responses, total, nil
}

func (s *documentService) GetDocument(ctx context.Context, id uint) (*DocumentResponse, error) {
	document, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "DOCUMENT_NOT_FOUND")
	}
	return mapDocumentResponse(document), nil
}

func (s *documentService) CreateDocument(ctx context.Context, p auth.Principal, req CreateDocumentRequest) (*DocumentResponse, error) {
	var created *model.Document
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.cases.FindActiveByID(txCtx, req.CaseID); err != nil {
			return notFoundOr(err, caseKeys.notFound)
		}

		document := &model.Document{
			DocumentName: req.DocumentName,
			UploadDate:   parseDate(req.UploadDate),
			UploaderID:   p.ID,
			CaseID:       req.CaseID,
		}
		if err := s.documents.Create(txCtx, document); err != nil {
			return err
		}
		created = document
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapDocumentResponse(created), nil
}

func (s *documentService) UpdateDocument(ctx context.Context, id uint, req UpdateDocumentRequest) (*DocumentResponse, error) {
	var updated *model.Document
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		document, err := s.documents.FindByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, "DOCUMENT_NOT_FOUND")
		}
		if req.DocumentName != nil {
			document.DocumentName = *req.DocumentName
		}
		if err := s.documents.Update(txCtx, document); err != nil {
			return err
		}
		updated = document
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapDocumentResponse(updated), nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id uint) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.documents.FindByID(txCtx, id); err != nil {
			return notFoundOr(err, "DOCUMENT_NOT_FOUND")
		}
		return s.documents.Delete(txCtx, id)
	})
}
