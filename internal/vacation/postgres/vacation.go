package postgres

import (
	"context"
	"errors"

	apperrors "github.com/frahmantamala/hr-management/internal"
	vacationDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/vacation"
	"github.com/frahmantamala/hr-management/internal/core/uow"
	"github.com/frahmantamala/hr-management/internal/vacation"
	"gorm.io/gorm"
)

type VacationRepository struct {
	db *gorm.DB
}

func NewVacationRepository(db *gorm.DB) vacation.RepositoryAPI {
	return &VacationRepository{db: db}
}

func (r *VacationRepository) joined(ctx context.Context) *gorm.DB {
	return uow.Conn(ctx, r.db).
		Table("vacations AS v").
		Select("v.*, e.first_name, e.last_name, e.email").
		Joins("LEFT JOIN employees AS e ON e.employee_id = v.fk_employee")
}

func (r *VacationRepository) GetAll(ctx context.Context) ([]*vacationDatamodel.WithEmployee, error) {
	var rows []*vacationDatamodel.WithEmployee
	err := r.joined(ctx).Order("v.vacation_id ASC").Scan(&rows).Error
	return rows, err
}

func (r *VacationRepository) GetByEmployee(ctx context.Context, employeeID int64) ([]*vacationDatamodel.WithEmployee, error) {
	var rows []*vacationDatamodel.WithEmployee
	err := r.joined(ctx).
		Where("v.fk_employee = ?", employeeID).
		Order("v.start_date DESC, v.vacation_id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *VacationRepository) GetByID(ctx context.Context, id int64) (*vacationDatamodel.WithEmployee, error) {
	var row vacationDatamodel.WithEmployee
	res := r.joined(ctx).Where("v.vacation_id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrVacationNotFound
	}
	return &row, nil
}

func (r *VacationRepository) Create(ctx context.Context, v *vacationDatamodel.Vacation) error {
	return uow.Conn(ctx, r.db).Create(v).Error
}

func (r *VacationRepository) UpdateStatus(ctx context.Context, id int64, from, to string) error {
	res := uow.Conn(ctx, r.db).
		Model(&vacationDatamodel.Vacation{}).
		Where("vacation_id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); errors.Is(err, apperrors.ErrVacationNotFound) {
			return err
		}
		return apperrors.ErrInvalidTransition
	}
	return nil
}
