package service

import (
	"context"
	"time"

	"lawdesk/internal/model"
	"lawdesk/internal/repository"
)

type CreateSessionRequest struct {
	CaseID      uint   `json:"case_id" binding:"required"`
	Result      string `json:"result" binding:"required,min=3,max=100"`
	SessionDate string `json:"session_date" binding:"omitempty,datetime=2006-01-02"`
	CourtType   string `json:"court_type" binding:"required,min=3,max=100"`
}

type SessionResponse struct {
	ID          uint      `json:"id"`
	CaseID      uint      `json:"case_id"`
	CaseNumber  string    `json:"case_number"`
	Result      string    `json:"result"`
	SessionDate string    `json:"session_date"`
	CourtType   string    `json:"court_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionService records court session outcomes against cases. Sessions are
// append-only except for hard delete.
type SessionService interface {
	ListSessions(ctx context.Context, page, limit int) ([]SessionResponse, int64, error)
	GetSession(ctx context.Context, id uint) (*SessionResponse, error)
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionResponse, error)
	DeleteSession(ctx context.Context, id uint) error
}

type sessionService struct {
	sessions repository.SessionRepository
	cases    repository.CaseRepository
	tx       repository.TransactionManager
}

func NewSessionService(
	sessions repository.SessionRepository,
	cases repository.CaseRepository,
	tx repository.TransactionManager,
) SessionService {
	return &sessionService{sessions: sessions, cases: cases, tx: tx}
}

func mapSessionResponse(cs *model.CourtSession) *SessionResponse {
	return &SessionResponse{
		ID:          cs.ID,
		CaseID:      cs.CaseID,
		CaseNumber:  cs.Case.CaseNumber,
		Result:      cs.Result,
		SessionDate: cs.SessionDate.Format(dateLayout),
		CourtType:   cs.CourtType,
		CreatedAt:   cs.CreatedAt,
	}
}

func (s *sessionService) ListSessions(ctx context.Context, page, limit int) ([]SessionResponse, int64, error) {
	sessions, total, err := s.sessions.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, *mapSessionResponse(&sessions[i]))
	}
	return responses, total, nil
}

func (s *sessionService) GetSession(ctx context.Context, id uint) (*SessionResponse, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "SESSION_NOT_FOUND")
	}
	return mapSessionResponse(session), nil
}

func (s *sessionService) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionResponse, error) {
	var createdID uint
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.cases.FindActiveByID(txCtx, req.CaseID); err != nil {
			return notFoundOr(err, caseKeys.notFound)
		}

		session := &model.CourtSession{
			CaseID:      req.CaseID,
			Result:      req.Result,
			SessionDate: parseDate(req.SessionDate),
			CourtType:   req.CourtType,
		}
		if err := s.sessions.Create(txCtx, session); err != nil {
			return err
		}
		createdID = session.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.sessions.FindByID(ctx, createdID)
	if err != nil {
		return nil, err
	}
	return mapSessionResponse(created), nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id uint) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.sessions.FindByID(txCtx, id); err != nil {
			return notFoundOr(err, "SESSION_NOT_FOUND")
		}
		return s.sessions.Delete(txCtx, id)
	})
}
