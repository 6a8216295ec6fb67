package contract

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/date"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	contractDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/contract"
	"github.com/frahmantamala/hr-management/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*contractDatamodel.WithEmployee, error)
	GetByID(ctx context.Context, id int64) (*contractDatamodel.WithEmployee, error)
	Create(ctx context.Context, c *contractDatamodel.Contract) error
	Update(ctx context.Context, c *contractDatamodel.Contract) error
	Delete(ctx context.Context, id int64) error
	// DueForRenewal returns contracts whose notification date lies in [from, to].
	DueForRenewal(ctx context.Context, from, to time.Time) ([]*contractDatamodel.WithEmployee, error)
}

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

func (s *Service) List(ctx context.Context) ([]*Contract, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list contracts", "error", err)
		return nil, err
	}
	out := make([]*Contract, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Contract, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateContractDTO) (*Contract, error) {
	if verr := validation.Struct(dto); verr != nil {
		return nil, verr
	}
	if err := checkPeriod(dto.StartDate.Time, dto.EndDate.Time); err != nil {
		return nil, err
	}
	if err := s.employees.Exists(ctx, *dto.EmployeeID); err != nil {
		return nil, err
	}

	row := &contractDatamodel.Contract{
		EmployeeID:              *dto.EmployeeID,
		StartDate:               dto.StartDate.Time,
		EndDate:                 dto.EndDate.Time,
		RenewalNotificationDate: dto.RenewalNotificationDate.Ptr(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create contract", "error", err)
		return nil, err
	}

	s.logger.Info("contract created", "contract_id", row.ID, "employee_id", row.EmployeeID)
	return s.Get(ctx, row.ID)
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateContractDTO) (*Contract, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	row := current.Contract
	if dto.EmployeeID != nil && *dto.EmployeeID != row.EmployeeID {
		if err := s.employees.Exists(ctx, *dto.EmployeeID); err != nil {
			return nil, err
		}
		row.EmployeeID = *dto.EmployeeID
	}
	if dto.StartDate != nil {
		row.StartDate = dto.StartDate.Time
	}
	if dto.EndDate != nil {
		row.EndDate = dto.EndDate.Time
	}
	if dto.RenewalNotificationDate.IsSpecified() {
		row.RenewalNotificationDate = nil
		if d, err := dto.RenewalNotificationDate.Get(); err == nil {
			row.RenewalNotificationDate = d.Ptr()
		}
	}
	if err := checkPeriod(row.StartDate, row.EndDate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &row); err != nil {
		s.logger.Error("failed to update contract", "contract_id", id, "error", err)
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("contract deleted", "contract_id", id)
	return nil
}

// NotifyRenewals publishes contract.renewal_due for every contract whose
// notification date falls within lookaheadDays of asOf, and returns how many
// were found.
func (s *Service) NotifyRenewals(ctx context.Context, asOf time.Time, lookaheadDays int) (int, error) {
	from := date.Of(asOf).Time
	to := from.AddDate(0, 0, lookaheadDays)

	rows, err := s.repo.DueForRenewal(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to scan contracts for renewal", "error", err)
		return 0, err
	}

	for _, row := range rows {
		event := events.NewContractRenewalDueEvent(row.ID, row.EmployeeID, employeeName(row), *row.RenewalNotificationDate, row.EndDate)
		if s.publisher == nil {
			continue
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event", "event_type", event.EventType(), "contract_id", row.ID, "error", err)
		}
	}

	s.logger.Info("renewal scan finished",
		"as_of", date.Of(asOf).String(),
		"lookahead_days", lookaheadDays,
		"due", len(rows))
	return len(rows), nil
}

func checkPeriod(start, end time.Time) error {
	if end.Before(start) {
		return apperrors.NewValidationError("end_date must not be before start_date", apperrors.ErrCodeValidationFailed)
	}
	return nil
}
