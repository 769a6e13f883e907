package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"lawdesk/internal/apperr"
	"lawdesk/internal/auth"
	"lawdesk/internal/model"
	"lawdesk/internal/repository"
)

type CreateCaseRequest struct {
	CaseNumber   string `json:"case_number" binding:"required,min=3,max=50"`
	CaseName     string `json:"case_name" binding:"required,min=3,max=255"`
	CaseCategory string `json:"case_category" binding:"required,oneof=theft fraud divorce"`
	CaseStage    string `json:"case_stage" binding:"required,oneof='appeal' 'first degree'"`
	CityName     string `json:"city_name" binding:"omitempty,min=3,max=255"`
	ClientID     uint   `json:"client_id" binding:"required"`
	Remarks      string `json:"remarks"`
	StaffIDs     []uint `json:"staff_ids"`
}

type UpdateCaseRequest struct {
	CaseName     *string `json:"case_name" binding:"omitempty,min=3,max=255"`
	CaseCategory *string `json:"case_category" binding:"omitempty,oneof=theft fraud divorce"`
	CaseStage    *string `json:"case_stage" binding:"omitempty,oneof='appeal' 'first degree'"`
	CaseStatus   *string `json:"case_status" binding:"omitempty,oneof=open closed"`
	CityName     *string `json:"city_name" binding:"omitempty,min=3,max=255"`
	ClientID     *uint   `json:"client_id"`
	Remarks      *string `json:"remarks"`
	// StaffIDs present (even empty) replaces the whole assignment set.
	StaffIDs *[]uint `json:"staff_ids"`
}

type CasePartyResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CaseResponse struct {
	ID           uint                `json:"id"`
	CaseNumber   string              `json:"case_number"`
	CaseName     string              `json:"case_name"`
	CaseCategory string              `json:"case_category"`
	CaseStage    string              `json:"case_stage"`
	CaseStatus   string              `json:"case_status"`
	IssueDate    *time.Time          `json:"issue_date"`
	CityName     string              `json:"city_name"`
	Remarks      string              `json:"remarks"`
	IsDeleted    bool                `json:"is_deleted"`
	Lawyer       CasePartyResponse   `json:"lawyer"`
	Client       CasePartyResponse   `json:"client"`
	StaffMembers []CasePartyResponse `json:"staff_members"`
}

// Notifier pushes an event to connected clients. Nil-safe through notify.
type Notifier interface {
	Notify(event string, payload any)
}

// CaseService manages cases, including the case↔staff assignment and the
// soft-delete lifecycle. Reads are scoped: staff principals only see cases
// they are assigned to, and an unassigned case is indistinguishable from a
// missing one.
type CaseService interface {
	ListCases(ctx context.Context, p auth.Principal, page, limit int) ([]CaseResponse, int64, error)
	GetCase(ctx context.Context, p auth.Principal, id uint) (*CaseResponse, error)
	CreateCase(ctx context.Context, p auth.Principal, req CreateCaseRequest) (*CaseResponse, error)
	UpdateCase(ctx context.Context, id uint, req UpdateCaseRequest) (*CaseResponse, error)
	SoftDeleteCase(ctx context.Context, id uint) error
	RestoreCase(ctx context.Context, id uint) error
	DeleteCase(ctx context.Context, id uint) error
}

type caseService struct {
	cases    repository.CaseRepository
	clients  repository.ClientRepository
	users    repository.UserRepository
	tx       repository.TransactionManager
	notifier Notifier
}

func NewCaseService(
	cases repository.CaseRepository,
	clients repository.ClientRepository,
	users repository.UserRepository,
	tx repository.TransactionManager,
	notifier Notifier,
) CaseService {
	return &caseService{cases: cases, clients: clients, users: users, tx: tx, notifier: notifier}
}

var caseKeys = lifecycleKeys{
	notFound:       "CASE_NOT_FOUND",
	alreadyDeleted: "CASE_ALREADY_DELETED",
	notDeleted:     "CASE_NOT_DELETED",
}

func mapCaseResponse(c *model.Case) *CaseResponse {
	staff := make([]CasePartyResponse, 0, len(c.StaffMembers))
	for i := range c.StaffMembers {
		staff = append(staff, CasePartyResponse{ID: c.StaffMembers[i].ID, Name: c.StaffMembers[i].Name})
	}
	return &CaseResponse{
		ID:           c.ID,
		CaseNumber:   c.CaseNumber,
		CaseName:     c.CaseName,
		CaseCategory: c.CaseCategory,
		CaseStage:    c.CaseStage,
		CaseStatus:   c.CaseStatus,
		IssueDate:    c.IssueDate,
		CityName:     c.CityName,
		Remarks:      c.Remarks,
		IsDeleted:    c.IsDeleted,
		Lawyer:       CasePartyResponse{ID: c.Lawyer.ID, Name: c.Lawyer.Name},
		Client:       CasePartyResponse{ID: c.Client.ID, Name: c.Client.Name},
		StaffMembers: staff,
	}
}

func (s *caseService) notify(event string, payload any) {
	if s.notifier != nil {
		s.notifier.Notify(event, payload)
	}
}

func (s *caseService) ListCases(ctx context.Context, p auth.Principal, page, limit int) ([]CaseResponse, int64, error) {
	var (
		cases []model.Case
		total int64
		err   error
	)
	if p.Role == model.RoleStaff {
		cases, total, err = s.cases.ListActiveForStaff(ctx, p.ID, page, limit)
	} else {
		cases, total, err = s.cases.ListActive(ctx, page, limit)
	}
	if err != nil {
		return nil, 0, err
	}
	responses := make([]CaseResponse, 0, len(cases))
	for i := range cases {
		responses = append(responses, *mapCaseResponse(&cases[i]))
	}
	return responses, total, nil
}

func (s *caseService) GetCase(ctx context.Context, p auth.Principal, id uint) (*CaseResponse, error) {
	var (
		c   *model.Case
		err error
	)
	if p.Role == model.RoleStaff {
		// NotFound on purpose, never Forbidden: staff must not be able to
		// probe for the existence of cases outside their assignment.
		c, err = s.cases.FindActiveByIDForStaff(ctx, id, p.ID)
	} else {
		c, err = s.cases.FindActiveByID(ctx, id)
	}
	if err != nil {
		return nil, notFoundOr(err, caseKeys.notFound)
	}
	return mapCaseResponse(c), nil
}

// resolveStaff validates the whole staff batch before anything is linked.
// Each id must resolve to an existing, non-deleted, role=staff user; the
// first failure aborts the batch and names the offending id.
func (s *caseService) resolveStaff(ctx context.Context, staffIDs []uint) ([]model.User, error) {
	staff := make([]model.User, 0, len(staffIDs))
	seen := make(map[uint]bool, len(staffIDs))
	for _, id := range staffIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		user, err := s.users.FindActiveByRole(ctx, id, model.RoleStaff)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Newf(apperr.NotFound, "STAFF_NOT_FOUND", "staff id %d", id)
			}
			return nil, err
		}
		staff = append(staff, *user)
	}
	return staff, nil
}

func (s *caseService) CreateCase(ctx context.Context, p auth.Principal, req CreateCaseRequest) (*CaseResponse, error) {
	var createdID uint
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.cases.FindByNumber(txCtx, req.CaseNumber)
		if err := duplicateOr(err, "CASE_NUM_EXISTS"); err != nil {
			return err
		}
		if _, err := s.clients.FindActiveByID(txCtx, req.ClientID); err != nil {
			return notFoundOr(err, clientKeys.notFound)
		}
		staff, err := s.resolveStaff(txCtx, req.StaffIDs)
		if err != nil {
			return err
		}

		c := &model.Case{
			CaseNumber:   req.CaseNumber,
			CaseName:     req.CaseName,
			CaseCategory: req.CaseCategory,
			CaseStage:    req.CaseStage,
			CaseStatus:   model.CaseStatusOpen,
			CityName:     req.CityName,
			Remarks:      req.Remarks,
			ClientID:     req.ClientID,
			LawyerID:     p.ID,
			StaffMembers: staff,
		}
		if err := s.cases.Create(txCtx, c); err != nil {
			return err
		}
		createdID = c.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.cases.FindActiveByID(ctx, createdID)
	if err != nil {
		return nil, err
	}
	s.notify("case.created", map[string]any{"case_id": created.ID, "case_number": created.CaseNumber})
	return mapCaseResponse(created), nil
}

func (s *caseService) UpdateCase(ctx context.Context, id uint, req UpdateCaseRequest) (*CaseResponse, error) {
	staffReplaced := false
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.cases.FindActiveByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, caseKeys.notFound)
		}

		if req.CaseName != nil {
			c.CaseName = *req.CaseName
		}
		if req.CaseCategory != nil {
			c.CaseCategory = *req.CaseCategory
		}
		if req.CaseStage != nil {
			c.CaseStage = *req.CaseStage
		}
		if req.CaseStatus != nil {
			c.CaseStatus = *req.CaseStatus
		}
		if req.CityName != nil {
			c.CityName = *req.CityName
		}
		if req.Remarks != nil {
			c.Remarks = *req.Remarks
		}
		if req.ClientID != nil {
			if _, err := s.clients.FindActiveByID(txCtx, *req.ClientID); err != nil {
				return notFoundOr(err, clientKeys.notFound)
			}
			c.ClientID = *req.ClientID
		}

		if err := s.cases.Update(txCtx, c); err != nil {
			return err
		}

		if req.StaffIDs != nil {
			// Destructive replace: the previous assignment set is discarded,
			// the new batch is validated in full, all inside this transaction.
			staff, err := s.resolveStaff(txCtx, *req.StaffIDs)
			if err != nil {
				return err
			}
			if err := s.cases.ReplaceStaff(txCtx, c, staff); err != nil {
				return err
			}
			staffReplaced = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.cases.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staffReplaced {
		s.notify("case.staff_updated", map[string]any{"case_id": updated.ID, "staff_ids": *req.StaffIDs})
	}
	return mapCaseResponse(updated), nil
}

func (s *caseService) SoftDeleteCase(ctx context.Context, id uint) error {
	return runSoftDelete(ctx, s.tx, s.cases.FindByID, s.cases.SetDeleted, id, caseKeys)
}

func (s *caseService) RestoreCase(ctx context.Context, id uint) error {
	return runRestore(ctx, s.tx, s.cases.FindByID, s.cases.SetDeleted, id, caseKeys)
}

func (s *caseService) DeleteCase(ctx context.Context, id uint) error {
	return runHardDelete(ctx, s.tx, s.cases.FindByID, s.cases.Delete, id, caseKeys)
}
