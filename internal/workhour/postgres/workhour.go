package postgres

import (
	"context"
	"errors"

	apperrors "github.com/frahmantamala/hr-management/internal"
	workhourDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/workhour"
	"github.com/frahmantamala/hr-management/internal/core/uow"
	"github.com/frahmantamala/hr-management/internal/workhour"
	"gorm.io/gorm"
)

type WorkHourRepository struct {
	db *gorm.DB
}

func NewWorkHourRepository(db *gorm.DB) workhour.RepositoryAPI {
	return &WorkHourRepository{db: db}
}

func (r *WorkHourRepository) GetAll(ctx context.Context) ([]*workhourDatamodel.WorkHour, error) {
	var rows []*workhourDatamodel.WorkHour
	err := uow.Conn(ctx, r.db).Order("entry_id ASC").Find(&rows).Error
	return rows, err
}

func (r *WorkHourRepository) GetByEmployee(ctx context.Context, employeeID int64) ([]*workhourDatamodel.WorkHour, error) {
	var rows []*workhourDatamodel.WorkHour
	err := uow.Conn(ctx, r.db).
		Where("fk_employee = ?", employeeID).
		Order("work_date DESC, entry_id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *WorkHourRepository) GetByID(ctx context.Context, id int64) (*workhourDatamodel.WorkHour, error) {
	var row workhourDatamodel.WorkHour
	err := uow.Conn(ctx, r.db).Where("entry_id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkHourNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *WorkHourRepository) Create(ctx context.Context, w *workhourDatamodel.WorkHour) error {
	return uow.Conn(ctx, r.db).Create(w).Error
}

func (r *WorkHourRepository) Delete(ctx context.Context, id int64) error {
	res := uow.Conn(ctx, r.db).Where("entry_id = ?", id).Delete(&workhourDatamodel.WorkHour{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrWorkHourNotFound
	}
	return nil
}
