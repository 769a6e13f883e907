package service

import (
	"context"
	"time"

	"lawdesk/internal/model"
	"lawdesk/internal/repository"
)

type CreateClientRequest struct {
	Username      string `json:"username" binding:"required,min=3,max=50"`
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name" binding:"required,min=3,max=255"`
	MobileNumber  string `json:"mobile_number" binding:"required,mobile"`
	Address       string `json:"address" binding:"omitempty,min=3,max=255"`
	VATPercentage string `json:"vat_percentage"`
	VATNumber     string `json:"vat_number"`
	CRNumber      string `json:"cr_number"`
}

type UpdateClientRequest struct {
	Email         *string `json:"email" binding:"omitempty,email"`
	Name          *string `json:"name" binding:"omitempty,min=3,max=255"`
	MobileNumber  *string `json:"mobile_number" binding:"omitempty,mobile"`
	Address       *string `json:"address" binding:"omitempty,min=3,max=255"`
	VATPercentage *string `json:"vat_percentage"`
	VATNumber     *string `json:"vat_number"`
	CRNumber      *string `json:"cr_number"`
}

type ClientResponse struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	MobileNumber  string    `json:"mobile_number"`
	Address       string    `json:"address"`
	VATPercentage string    `json:"vat_percentage"`
	VATNumber     string    `json:"vat_number"`
	CRNumber      string    `json:"cr_number"`
	IsBlocked     bool      `json:"is_blocked"`
	IsDeleted     bool      `json:"is_deleted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ClientService manages firm clients: CRUD, block toggling and the
// soft-delete lifecycle.
type ClientService interface {
	ListClients(ctx context.Context, page, limit int) ([]ClientResponse, int64, error)
	GetClient(ctx context.Context, id uint) (*ClientResponse, error)
	CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error)
	UpdateClient(ctx context.Context, id uint, req UpdateClientRequest) (*ClientResponse, error)
	BlockUnblockClient(ctx context.Context, id uint) (*ClientResponse, error)
	SoftDeleteClient(ctx context.Context, id uint) error
	RestoreClient(ctx context.Context, id uint) error
	DeleteClient(ctx context.Context, id uint) error
}

type clientService struct {
	repo repository.ClientRepository
	tx   repository.TransactionManager
}

func NewClientService(repo repository.ClientRepository, tx repository.TransactionManager) ClientService {
	return &clientService{repo: repo, tx: tx}
}

var clientKeys = lifecycleKeys{
	notFound:       "CLIENT_NOT_FOUND",
	alreadyDeleted: "CLIENT_ALREADY_DELETED",
	notDeleted:     "CLIENT_NOT_DELETED",
}

func mapClientResponse(c *model.Client) *ClientResponse {
	return &ClientResponse{
		ID:            c.ID,
		Username:      c.Username,
		Email:         c.Email,
		Name:          c.Name,
		MobileNumber:  c.MobileNumber,
		Address:       c.Address,
		VATPercentage: c.VATPercentage,
		VATNumber:     c.VATNumber,
		CRNumber:      c.CRNumber,
		IsBlocked:     c.IsBlocked,
		IsDeleted:     c.IsDeleted,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (s *clientService) ListClients(ctx context.Context, page, limit int) ([]ClientResponse, int64, error) {
	clients, total, err := s.repo.ListActive(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, *mapClientResponse(&clients[i]))
	}
	return responses, total, nil
}

func (s *clientService) GetClient(ctx context.Context, id uint) (*ClientResponse, error) {
	client, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, clientKeys.notFound)
	}
	return mapClientResponse(client), nil
}

func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	var created *model.Client
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.repo.FindByUsername(txCtx, req.Username)
		if err := duplicateOr(err, "USERNAME_EXISTS"); err != nil {
			return err
		}
		_, err = s.repo.FindByEmail(txCtx, req.Email)
		if err := duplicateOr(err, "EMAIL_EXISTS"); err != nil {
			return err
		}

		client := &model.Client{
			Username:      req.Username,
			Email:         req.Email,
			Name:          req.Name,
			MobileNumber:  req.MobileNumber,
			Address:       req.Address,
			VATPercentage: req.VATPercentage,
			VATNumber:     req.VATNumber,
			CRNumber:      req.CRNumber,
		}
		if err := s.repo.Create(txCtx, client); err != nil {
			return err
		}
		created = client
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapClientResponse(created), nil
}

func (s *clientService) UpdateClient(ctx context.Context, id uint, req UpdateClientRequest) (*ClientResponse, error) {
	var updated *model.Client
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		client, err := s.repo.FindActiveByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, clientKeys.notFound)
		}

		if req.Email != nil && *req.Email != client.Email {
			_, err := s.repo.FindByEmail(txCtx, *req.Email)
			if err := duplicateOr(err, "EMAIL_EXISTS"); err != nil {
				return err
			}
			client.Email = *req.Email
		}
		if req.Name != nil {
			client.Name = *req.Name
		}
		if req.MobileNumber != nil {
			client.MobileNumber = *req.MobileNumber
		}
		if req.Address != nil {
			client.Address = *req.Address
		}
		if req.VATPercentage != nil {
			client.VATPercentage = *req.VATPercentage
		}
		if req.VATNumber != nil {
			client.VATNumber = *req.VATNumber
		}
		if req.CRNumber != nil {
			client.CRNumber = *req.CRNumber
		}

		if err := s.repo.Update(txCtx, client); err != nil {
			return err
		}
		updated = client
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapClientResponse(updated), nil
}

func (s *clientService) BlockUnblockClient(ctx context.Context, id uint) (*ClientResponse, error) {
	var toggled *model.Client
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		client, err := s.repo.FindActiveByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, clientKeys.notFound)
		}
		client.IsBlocked = !client.IsBlocked
		if err := s.repo.Update(txCtx, client); err != nil {
			return err
		}
		toggled = client
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapClientResponse(toggled), nil
}

func (s *clientService) SoftDeleteClient(ctx context.Context, id uint) error {
	return runSoftDelete(ctx, s.tx, s.repo.FindByID, s.repo.SetDeleted, id, clientKeys)
}

func (s *clientService) RestoreClient(ctx context.Context, id uint) error {
	return runRestore(ctx, s.tx, s.repo.FindByID, s.repo.SetDeleted, id, clientKeys)
}

func (s *clientService) DeleteClient(ctx context.Context, id uint) error {
	return runHardDelete(ctx, s.tx, s.repo.FindByID, s.repo.Delete, id, clientKeys)
}
