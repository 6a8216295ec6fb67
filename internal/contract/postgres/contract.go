package postgres

import (
	"context"
	"time"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/contract"
	contractDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/contract"
	"github.com/frahmantamala/hr-management/internal/core/uow"
	"gorm.io/gorm"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) contract.RepositoryAPI {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) joined(ctx context.Context) *gorm.DB {
	return uow.Conn(ctx, r.db).
		Table("contracts AS c").
		Select("c.*, e.first_name, e.last_name").
		Joins("LEFT JOIN employees AS e ON e.employee_id = c.fk_employee")
}

func (r *ContractRepository) GetAll(ctx context.Context) ([]*contractDatamodel.WithEmployee, error) {
	var rows []*contractDatamodel.WithEmployee
	err := r.joined(ctx).Order("c.contract_id ASC").Scan(&rows).Error
	return rows, err
}

func (r *ContractRepository) GetByID(ctx context.Context, id int64) (*contractDatamodel.WithEmployee, error) {
	var row contractDatamodel.WithEmployee
	res := r.joined(ctx).Where("c.contract_id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrContractNotFound
	}
	return &row, nil
}

func (r *ContractRepository) Create(ctx context.Context, c *contractDatamodel.Contract) error {
	return uow.Conn(ctx, r.db).Create(c).Error
}

func (r *ContractRepository) Update(ctx context.Context, c *contractDatamodel.Contract) error {
	return uow.Conn(ctx, r.db).Save(c).Error
}

func (r *ContractRepository) Delete(ctx context.Context, id int64) error {
	res := uow.Conn(ctx, r.db).Where("contract_id = ?", id).Delete(&contractDatamodel.Contract{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrContractNotFound
	}
	return nil
}

func (r *ContractRepository) DueForRenewal(ctx context.Context, from, to time.Time) ([]*contractDatamodel.WithEmployee, error) {
	var rows []*contractDatamodel.WithEmployee
	err := r.joined(ctx).
		Where("c.renewal_notification_date IS NOT NULL").
		Where("c.renewal_notification_date >= ? AND c.renewal_notification_date <= ?", from, to).
		Order("c.renewal_notification_date ASC, c.contract_id ASC").
		Scan(&rows).Error
	return rows, err
}
