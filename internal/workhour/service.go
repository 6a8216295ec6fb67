package workhour

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	workhourDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/workhour"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*workhourDatamodel.WorkHour, error)
	GetByID(ctx context.Context, id int64) (*workhourDatamodel.WorkHour, error)
	GetByEmployee(ctx context.Context, employeeID int64) ([]*workhourDatamodel.WorkHour, error)
	Create(ctx context.Context, w *workhourDatamodel.WorkHour) error
	Delete(ctx context.Context, id int64) error
}

type EmployeeChecker interface {
	Exists(ctx context.Context, id int64) error
}

type Service struct {
	repo      RepositoryAPI
	employees EmployeeChecker
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		logger:    logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*WorkHour, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list work hours", "error", err)
		return nil, err
	}
	return fromRows(rows), nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID int64) ([]*WorkHour, error) {
	rows, err := s.repo.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*WorkHour, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) OwnerOf(ctx context.Context, id int64) (int64, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return row.EmployeeID, nil
}

func (s *Service) Create(ctx context.Context, dto CreateWorkHourDTO) (*WorkHour, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}
	if err := s.employees.Exists(ctx, *dto.EmployeeID); err != nil {
		return nil, err
	}

	row := &workhourDatamodel.WorkHour{
		EmployeeID:  *dto.EmployeeID,
		WorkDate:    dto.WorkDate.Time,
		HoursWorked: *dto.HoursWorked,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to record work hours", "error", err)
		return nil, err
	}

	s.logger.Info("work hours recorded", "entry_id", row.ID, "employee_id", row.EmployeeID, "hours", row.HoursWorked)
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("work hour entry deleted", "entry_id", id)
	return nil
}

func fromRows(rows []*workhourDatamodel.WorkHour) []*WorkHour {
	out := make([]*WorkHour, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}
