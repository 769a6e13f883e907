package service

import (
	"context"
	"time"

	"lawdesk/internal/apperr"
	"lawdesk/internal/auth"
	"lawdesk/internal/model"
	"lawdesk/internal/repository"
)

type CreateTaskRequest struct {
	TaskName      string `json:"task_name" binding:"required,min=3,max=255"`
	DueDate       string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Priority      string `json:"priority" binding:"required,oneof=high medium low"`
	Status        string `json:"status" binding:"omitempty,oneof=complete 'need review' incomplete"`
	AssignToStaff *uint  `json:"assign_to_staff"`
	CaseID        uint   `json:"case_id" binding:"required"`
}

type UpdateTaskRequest struct {
	TaskName      *string `json:"task_name" binding:"omitempty,min=3,max=255"`
	DueDate       *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Priority      *string `json:"priority" binding:"omitempty,oneof=high medium low"`
	Status        *string `json:"status" binding:"omitempty,oneof=complete 'need review' incomplete"`
	AssignToStaff *uint   `json:"assign_to_staff"`
}

type TaskResponse struct {
	ID            uint      `json:"id"`
	TaskName      string    `json:"task_name"`
	DueDate       string    `json:"due_date"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
	AssignToStaff *uint     `json:"assign_to_staff"`
	CaseID        uint      `json:"case_id"`
	CreatedBy     uint      `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TaskService manages case tasks. Staff only see tasks assigned to them.
type TaskService interface {
	ListTasks(ctx context.Context, p auth.Principal, page, limit int) ([]TaskResponse, int64, error)
	GetTask(ctx context.Context, p auth.Principal, id uint) (*TaskResponse, error)
	CreateTask(ctx context.Context, p auth.Principal, req CreateTaskRequest) (*TaskResponse, error)
	UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, id uint) error
}

type taskService struct {
	tasks    repository.TaskRepository
	cases    repository.CaseRepository
	users    repository.UserRepository
	tx       repository.TransactionManager
	notifier Notifier
}

func NewTaskService(
	tasks repository.TaskRepository,
	cases repository.CaseRepository,
	users repository.UserRepository,
	tx repository.TransactionManager,
	notifier Notifier,
) TaskService {
	return &taskService{tasks: tasks, cases: cases, users: users, tx: tx, notifier: notifier}
}

const dateLayout = "2006-01-02"

func mapTaskResponse(t *model.Task) *TaskResponse {
	return &TaskResponse{
		ID:            t.ID,
		TaskName:      t.TaskName,
		DueDate:       t.DueDate.Format(dateLayout),
		Priority:      t.Priority,
		Status:        t.Status,
		AssignToStaff: t.AssignToStaff,
		CaseID:        t.CaseID,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// parseDate accepts YYYY-MM-DD; an empty value falls back to today.
func parseDate(value string) time.Time {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	parsed, _ := time.Parse(dateLayout, value)
	return parsed
}

func (s *taskService) notify(event string, payload any) {
	if s.notifier != nil {
		s.notifier.Notify(event, payload)
	}
}

func (s *taskService) ListTasks(ctx context.Context, p auth.Principal, page, limit int) ([]TaskResponse, int64, error) {
	var (
		tasks []model.Task
		total int64
		err   error
	)
	if p.Role == model.RoleStaff {
		tasks, total, err = s.tasks.ListForStaff(ctx, p.ID, page, limit)
	} else {
		tasks, total, err = s.tasks.List(ctx, page, limit)
	}
	if err != nil {
		return nil, 0, err
	}
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *mapTaskResponse(&tasks[i]))
	}
	return responses, total, nil
}

func (s *taskService) GetTask(ctx context.Context, p auth.Principal, id uint) (*TaskResponse, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "TASK_NOT_FOUND")
	}
	if p.Role == model.RoleStaff {
		if task.AssignToStaff == nil || *task.AssignToStaff != p.ID {
			return nil, apperr.New(apperr.NotFound, "TASK_NOT_FOUND")
		}
	}
	return mapTaskResponse(task), nil
}

func (s *taskService) CreateTask(ctx context.Context, p auth.Principal, req CreateTaskRequest) (*TaskResponse, error) {
	var created *model.Task
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.cases.FindActiveByID(txCtx, req.CaseID); err != nil {
			return notFoundOr(err, caseKeys.notFound)
		}
		if req.AssignToStaff != nil {
			if _, err := s.users.FindActiveByRole(txCtx, *req.AssignToStaff, model.RoleStaff); err != nil {
				return notFoundOr(err, staffKeys.notFound)
			}
		}

		status := req.Status
		if status == "" {
			status = model.TaskStatusIncomplete
		}
		task := &model.Task{
			TaskName:      req.TaskName,
			DueDate:       parseDate(req.DueDate),
			Priority:      req.Priority,
			Status:        status,
			AssignToStaff: req.AssignToStaff,
			CaseID:        req.CaseID,
			CreatedBy:     p.ID,
		}
		if err := s.tasks.Create(txCtx, task); err != nil {
			return err
		}
		created = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	if created.AssignToStaff != nil {
		s.notify("task.assigned", map[string]any{"task_id": created.ID, "staff_id": *created.AssignToStaff})
	}
	return mapTaskResponse(created), nil
}

func (s *taskService) UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*TaskResponse, error) {
	assigned := false
	var updated *model.Task
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		task, err := s.tasks.FindByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, "TASK_NOT_FOUND")
		}

		if req.TaskName != nil {
			task.TaskName = *req.TaskName
		}
		if req.DueDate != nil {
			task.DueDate = parseDate(*req.DueDate)
		}
		if req.Priority != nil {
			task.Priority = *req.Priority
		}
		if req.Status != nil {
			task.Status = *req.Status
		}
		if req.AssignToStaff != nil {
			if _, err := s.users.FindActiveByRole(txCtx, *req.AssignToStaff, model.RoleStaff); err != nil {
				return notFoundOr(err, staffKeys.notFound)
			}
			task.AssignToStaff = req.AssignToStaff
			assigned = true
		}

		if err := s.tasks.Update(txCtx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	if assigned {
		s.notify("task.assigned", map[string]any{"task_id": updated.ID, "staff_id": *updated.AssignToStaff})
	}
	return mapTaskResponse(updated), nil
}

func (s *taskService) DeleteTask(ctx context.Context, id uint) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.tasks.FindByID(txCtx, id); err != nil {
			return notFoundOr(err, "TASK_NOT_FOUND")
		}
		return s.tasks.Delete(txCtx, id)
	})
}
