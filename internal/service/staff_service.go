package service

import (
	"context"
	"time"

	"lawdesk/internal/auth"
	"lawdesk/internal/model"
	"lawdesk/internal/repository"
)

type CreateStaffRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=3,max=255"`
	Address  string `json:"address" binding:"omitempty,min=2,max=255"`
	Mobile   string `json:"mobile" binding:"omitempty,mobile"`
	Password string `json:"password" binding:"required,userpassword"`
}

type UpdateStaffRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name" binding:"omitempty,min=3,max=255"`
	Address  *string `json:"address" binding:"omitempty,min=2,max=255"`
	Mobile   *string `json:"mobile" binding:"omitempty,mobile"`
	Password *string `json:"password" binding:"omitempty,userpassword"`
}

type StaffResponse struct {
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

// StaffService manages staff-role users: CRUD, block toggling and the
// soft-delete lifecycle.
type StaffService interface {
	ListStaff(ctx context.Context, page, limit int) ([]StaffResponse, int64, error)
	GetStaff(ctx context.Context, id uint) (*StaffResponse, error)
	CreateStaff(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error)
	UpdateStaff(ctx context.Context, id uint, req UpdateStaffRequest) (*StaffResponse, error)
	BlockUnblockStaff(ctx context.Context, id uint) (*StaffResponse, error)
	SoftDeleteStaff(ctx context.Context, id uint) error
	RestoreStaff(ctx context.Context, id uint) error
	DeleteStaff(ctx context.Context, id uint) error
}

type staffService struct {
	repo repository.UserRepository
	tx   repository.TransactionManager
}

func NewStaffService(repo repository.UserRepository, tx repository.TransactionManager) StaffService {
	return &staffService{repo: repo, tx: tx}
}

var staffKeys = lifecycleKeys{
	notFound:       "STAFF_NOT_FOUND",
	alreadyDeleted: "STAFF_ALREADY_DELETED",
	notDeleted:     "STAFF_NOT_DELETED",
}

func mapStaffResponse(u *model.User) *StaffResponse {
	return &StaffResponse{
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

func (s *staffService) ListStaff(ctx context.Context, page, limit int) ([]StaffResponse, int64, error) {
	users, total, err := s.repo.ListActiveByRole(ctx, model.RoleStaff, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]StaffResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapStaffResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *staffService) GetStaff(ctx context.Context, id uint) (*StaffResponse, error) {
	user, err := s.repo.FindActiveByRole(ctx, id, model.RoleStaff)
	if err != nil {
		return nil, notFoundOr(err, staffKeys.notFound)
	}
	return mapStaffResponse(user), nil
}

func (s *staffService) CreateStaff(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error) {
	var created *model.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Uniqueness runs against every row, soft-deleted included: a deleted
		// user's username stays reserved.
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
			Role:           model.RoleStaff,
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
	return mapStaffResponse(created), nil
}

func (s *staffService) UpdateStaff(ctx context.Context, id uint, req UpdateStaffRequest) (*StaffResponse, error) {
	var updated *model.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.FindActiveByRole(txCtx, id, model.RoleStaff)
		if err != nil {
			return notFoundOr(err, staffKeys.notFound)
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
	return mapStaffResponse(updated), nil
}

func (s *staffService) BlockUnblockStaff(ctx context.Context, id uint) (*StaffResponse, error) {
	var toggled *model.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.FindActiveByRole(txCtx, id, model.RoleStaff)
		if err != nil {
			return notFoundOr(err, staffKeys.notFound)
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
	return mapStaffResponse(toggled), nil
}

func (s *staffService) SoftDeleteStaff(ctx context.Context, id uint) error {
	return runSoftDelete(ctx, s.tx, s.findStaffAny, s.repo.SetDeleted, id, staffKeys)
}

func (s *staffService) RestoreStaff(ctx context.Context, id uint) error {
	return runRestore(ctx, s.tx, s.findStaffAny, s.repo.SetDeleted, id, staffKeys)
}

func (s *staffService) DeleteStaff(ctx context.Context, id uint) error {
	return runHardDelete(ctx, s.tx, s.findStaffAny, s.repo.Delete, id, staffKeys)
}

func (s *staffService) findStaffAny(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.FindAnyByRole(ctx, id, model.RoleStaff)
}
