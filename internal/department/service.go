package department

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	departmentDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*departmentDatamodel.Department, error)
	GetByID(ctx context.Context, id int64) (*departmentDatamodel.Department, error)
	Create(ctx context.Context, d *departmentDatamodel.Department) error
	Update(ctx context.Context, d *departmentDatamodel.Department) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Department, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, err
	}

	out := make([]*Department, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Department, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// Exists is used by other services to validate fk_department references.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

func (s *Service) Create(ctx context.Context, dto DepartmentDTO) (*Department, error) {
	dto.normalize()
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}

	row := &departmentDatamodel.Department{Name: dto.Name}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create department", "error", err)
		return nil, err
	}

	s.logger.Info("department created", "department_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto DepartmentDTO) (*Department, error) {
	dto.normalize()
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	row.Name = dto.Name
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update department", "department_id", id, "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("department deleted", "department_id", id)
	return nil
}
