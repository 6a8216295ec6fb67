package vacation

import (
	"context"
	"log/slog"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	vacationDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/vacation"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/core/uow"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*vacationDatamodel.WithEmployee, error)
	GetByID(ctx context.Context, id int64) (*vacationDatamodel.WithEmployee, error)
	GetByEmployee(ctx context.Context, employeeID int64) ([]*vacationDatamodel.WithEmployee, error)
	Create(ctx context.Context, v *vacationDatamodel.Vacation) error
	// UpdateStatus moves the row from one status to another and returns
	// ErrInvalidTransition when the row no longer holds from.
	UpdateStatus(ctx context.Context, id int64, from, to string) error
}

// EmployeeChecker returns a 400 when the referenced employee does not exist.
type EmployeeChecker interface {
	Exists(ctx context.Context, id int64) error
}

type Service struct {
	repo      RepositoryAPI
	employees EmployeeChecker
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeChecker, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Vacation, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list vacations", "error", err)
		return nil, err
	}
	return fromRows(rows), nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID int64) ([]*Vacation, error) {
	rows, err := s.repo.GetByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("failed to list vacations for employee", "employee_id", employeeID, "error", err)
		return nil, err
	}
	return fromRows(rows), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Vacation, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// OwnerOf resolves the employee a vacation belongs to; the access gate uses
// it for self-or-hr reads.
func (s *Service) OwnerOf(ctx context.Context, id int64) (int64, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return row.EmployeeID, nil
}

func (s *Service) Create(ctx context.Context, dto CreateVacationDTO) (*Vacation, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}
	if dto.EndDate.Before(dto.StartDate.Time) {
		return nil, apperrors.NewValidationError("end_date must not be before start_date", apperrors.ErrCodeValidationFailed)
	}
	if err := s.employees.Exists(ctx, *dto.EmployeeID); err != nil {
		return nil, err
	}

	row := &vacationDatamodel.Vacation{
		EmployeeID: *dto.EmployeeID,
		StartDate:  dto.StartDate.Time,
		EndDate:    dto.EndDate.Time,
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create vacation", "error", err)
		return nil, err
	}

	s.logger.Info("vacation requested", "vacation_id", row.ID, "employee_id", row.EmployeeID)
	return s.Get(ctx, row.ID)
}

// UpdateStatus applies an hr decision to a pending request.
func (s *Service) UpdateStatus(ctx context.Context, id int64, dto UpdateVacationDTO) (*Vacation, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}
	to := *dto.Status
	if !validStatus(to) {
		return nil, apperrors.ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := current.Status
	if !canTransition(from, to) {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, from, to); err != nil {
		return nil, err
	}

	changedBy := apperrors.EmployeeIDFromContext(ctx)
	s.logger.Info("vacation status changed", "vacation_id", id, "from", from, "to", to, "by", changedBy)
	if s.publisher != nil {
		event := events.NewVacationStatusChangedEvent(id, current.EmployeeID, from, to, changedBy)
		uow.AfterCommit(ctx, func() {
			if err := s.publisher.Publish(ctx, event); err != nil {
				s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
			}
		})
	}
	return s.Get(ctx, id)
}

func fromRows(rows []*vacationDatamodel.WithEmployee) []*Vacation {
	out := make([]*Vacation, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}
