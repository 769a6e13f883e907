package service

import (
	"context"
	"time"

	"lawdesk/internal/auth"
	"lawdesk/internal/model"
	"lawdesk/internal/repository"
)

type CreateLawyerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=3,max=255"`
	Address  string `json:"address" binding:"omitempty,min=2,max=255"`
	Mobile   string `json:"mobile" binding:"omitempty,mobile"`
	Password string `json:"password" binding:"required,userpassword"`
}

type UpdateLawyerRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name" binding:"omitempty,min=3,max=255"`
	Address  *string `json:"address" binding:"omitempty,min=2,max=255"`
	Mobile   *string `json:"mobile" binding:"omitempty,mobile"`
	Password *string `json:"password" binding:"omitempty,userpassword"`
}

type LawyerResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Mobile    string    `json:"mobile"`
	Role      string    `json:"role"`
	IsBlocked bool      `json:"is_blocked"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LawyerService manages lawyer-role users. Admin-only at the route level.
type LawyerService interface {
	ListLawyers(ctx context.Context, page, limit int) ([]LawyerResponse, int64, error)
	GetLawyer(ctx context.Context, id uint) (*LawyerResponse, error)
	CreateLawyer(ctx context.Context, req CreateLawyerRequest) (*LawyerResponse, error)
	UpdateLawyer(ctx context.Context, id uint, req UpdateLawyerRequest) (*LawyerResponse, error)
	BlockUnblockLawyer(ctx context.Context, id uint) (*LawyerResponse, error)
	SoftDeleteLawyer(ctx context.Context, id uint) error
	RestoreLawyer(ctx context.Context, id uint) error
	DeleteLawyer(ctx context.Context, id uint) error
}

type lawyerService struct {
	repo repository.UserRepository
	tx   repository.TransactionManager
}

func NewLawyerService(repo repository.UserRepository, tx repository.TransactionManager) LawyerService {
	return &lawyerService{repo: repo, tx: tx}
}

var lawyerKeys = lifecycleKeys{
	notFound:       "LAWYER_NOT_FOUND",
	alreadyDeleted: "LAWYER_ALREADY_DELETED",
	notDeleted:     "LAWYER_NOT_DELETED",
}

func mapLawyerResponse(u *model.User) *LawyerResponse {
	return &LawyerResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Address:   u.Address,
		Mobile:    u.Mobile,
		Role:      string(u.Role),
		IsBlocked: u.IsBlocked,
		IsDeleted: u.IsDeleted,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (s *lawyerService) ListLawyers(ctx context.Context, page, limit int) ([]LawyerResponse, int64, error) {
	users, total, err := s.repo.ListActiveByRole(ctx, model.RoleLawyer, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]LawyerResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapLawyerResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *lawyerService) GetLawyer(ctx context.Context, id uint) (*LawyerResponse, error) {
	user, err := s.repo.FindActiveByRole(ctx, id, model.RoleLawyer)
	if err != nil {
		return nil, notFoundOr(err, lawyerKeys.notFound)
	}
	return mapLawyerResponse(user), nil
}

func (s *lawyerService) CreateLawyer(ctx context.Context, req CreateLawyerRequest) (*LawyerResponse, error) {
	var created *model.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.repo.FindByUsername(txCtx, req.Username)
		if err := duplicateOr(err, "USERNAME_EXISTS"); err != nil {
			return err
		}
		_, err = s.repo.FindByEmail(txCtx, req.Email)
		if err := duplicateOr(err, "EMAIL_EXISTS"); err != nil {
			return err
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return err
		}

		user := &model.User{
			Username:       req.Username,
			Email:          req.Email,
			Name:           req.Name,
			Address:        req.Address,
			Mobile:         req.Mobile,
			HashedPassword: hashed,
			Role:           model.RoleLawyer,
		}
		if err := s.repo.Create(txCtx, user); err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapLawyerResponse(created), nil
}

func (s *lawyerService) UpdateLawyer(ctx context.Context, id uint, req UpdateLawyerRequest) (*LawyerResponse, error) {
	var updated *model.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.FindAnyByRole(txCtx, id, model.RoleLawyer)
		if err != nil {
			return notFoundOr(err, lawyerKeys.notFound)
		}

		if req.Email != nil && *req.Email != user.Email {
			_, err := s.repo.FindByEmail(txCtx, *req.Email)
			if err := duplicateOr(err, "EMAIL_EXISTS"); err != nil {
				return err
			}
			user.Email = *req.Email
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Address != nil {
			user.Address = *req.Address
		}
		if req.Mobile != nil {
			user.Mobile = *req.Mobile
		}
		if req.Password != nil {
			hashed, err := auth.HashPassword(*req.Password)
			if err != nil {
				return err
			}
			user.HashedPassword = hashed
		}

		if err := s.repo.Update(txCtx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapLawyerResponse(updated), nil
}

func (s *lawyerService) BlockUnblockLawyer(ctx context.Context, id uint) (*LawyerResponse, error) {
	var toggled *model.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.FindAnyByRole(txCtx, id, model.RoleLawyer)
		if err != nil {
			return notFoundOr(err, lawyerKeys.notFound)
		}
		user.IsBlocked = !user.IsBlocked
		if err := s.repo.Update(txCtx, user); err != nil {
			return err
		}
		toggled = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapLawyerResponse(toggled), nil
}

func (s *lawyerService) SoftDeleteLawyer(ctx context.Context, id uint) error {
	return runSoftDelete(ctx, s.tx, s.findLawyerAny, s.repo.SetDeleted, id, lawyerKeys)
}

func (s *lawyerService) RestoreLawyer(ctx context.Context, id uint) error {
	return runRestore(ctx, s.tx, s.findLawyerAny, s.repo.SetDeleted, id, lawyerKeys)
}

func (s *lawyerService) DeleteLawyer(ctx context.Context, id uint) error {
	return runHardDelete(ctx, s.tx, s.findLawyerAny, s.repo.Delete, id, lawyerKeys)
}

func (s *lawyerService) findLawyerAny(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.FindAnyByRole(ctx, id, model.RoleLawyer)
}
