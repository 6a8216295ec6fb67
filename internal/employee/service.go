package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/core/uow"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error)
	GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
	GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error)
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	Update(ctx context.Context, e *employeeDatamodel.Employee) error
	Delete(ctx context.Context, id int64) error
}

// DepartmentChecker validates fk_department references.
type DepartmentChecker interface {
	Exists(ctx context.Context, id int64) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo        RepositoryAPI
	departments DepartmentChecker
	hasher      PasswordHasher
	publisher   events.Publisher
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, departments DepartmentChecker, hasher PasswordHasher, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		hasher:      hasher,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}

	out := make([]*Employee, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// Exists turns a missing employee into a 400 naming the id. Resources that
// carry fk_employee use it before writing.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrEmployeeNotFound) {
		return apperrors.NewValidationError(fmt.Sprintf("employee %d not found", id), apperrors.ErrCodeUnknownReference)
	}
	return err
}

func (s *Service) Create(ctx context.Context, dto EmployeeDTO) (*Employee, error) {
	dto.normalize()
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}
	if err := s.checkEmail(ctx, dto.Email, 0); err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, dto.departmentRef()); err != nil {
		return nil, err
	}

	row := &employeeDatamodel.Employee{
		Active: employeeDatamodel.ActiveYes,
		Role:   employeeDatamodel.RoleEmployee,
	}
	dto.apply(row)
	if err := s.setPassword(row, dto.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create employee", "error", err)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", row.ID, "role", row.Role)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto EmployeeDTO) (*Employee, error) {
	dto.normalize()
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Email != row.Email {
		if err := s.checkEmail(ctx, dto.Email, id); err != nil {
			return nil, err
		}
	}
	if err := s.checkDepartment(ctx, dto.departmentRef()); err != nil {
		return nil, err
	}

	wasActive := row.Active != employeeDatamodel.ActiveNo
	dto.apply(row)
	if err := s.setPassword(row, dto.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update employee", "employee_id", id, "error", err)
		return nil, err
	}

	if wasActive && row.Active == employeeDatamodel.ActiveNo {
		s.publish(ctx, events.NewEmployeeDeactivatedEvent(row.ID, row.Email))
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

func (s *Service) checkEmail(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, apperrors.ErrEmployeeNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return apperrors.ErrEmailTaken
	default:
		return nil
	}
}

func (s *Service) checkDepartment(ctx context.Context, id *int64) error {
	if id == nil || s.departments == nil {
		return nil
	}
	err := s.departments.Exists(ctx, *id)
	if errors.Is(err, apperrors.ErrDepartmentNotFound) {
		return apperrors.NewValidationError(fmt.Sprintf("department %d not found", *id), apperrors.ErrCodeUnknownReference)
	}
	return err
}

func (s *Service) setPassword(row *employeeDatamodel.Employee, password *string) error {
	if password == nil || *password == "" {
		return nil
	}
	if s.hasher == nil {
		return apperrors.NewInternalError("password hashing is not configured", nil)
	}
	hash, err := s.hasher.HashPassword(*password)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}
	row.PasswordHash = &hash
	return nil
}

// publish hands event to the publisher once the surrounding unit of work
// commits. A rolled back request publishes nothing.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	uow.AfterCommit(ctx, func() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
		}
	})
}
