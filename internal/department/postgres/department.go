package postgres

import (
	"context"
	"errors"

	apperrors "github.com/frahmantamala/hr-management/internal"
	departmentDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/core/uow"
	"github.com/frahmantamala/hr-management/internal/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := uow.Conn(ctx, r.db).Order("department_id ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*departmentDatamodel.Department, error) {
	var d departmentDatamodel.Department
	err := uow.Conn(ctx, r.db).Where("department_id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, d *departmentDatamodel.Department) error {
	return uow.Conn(ctx, r.db).Create(d).Error
}

func (r *DepartmentRepository) Update(ctx context.Context, d *departmentDatamodel.Department) error {
	return uow.Conn(ctx, r.db).Save(d).Error
}

// Delete removes the department and detaches its employees. The schema's
// ON DELETE SET NULL does the same; the explicit update keeps stores without
// enforced foreign keys consistent.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	return uow.Run(ctx, r.db, func(ctx context.Context) error {
		conn := uow.Conn(ctx, r.db)
		if err := conn.Model(&employeeDatamodel.Employee{}).
			Where("fk_department = ?", id).
			Update("fk_department", nil).Error; err != nil {
			return err
		}

		res := conn.Where("department_id = ?", id).Delete(&departmentDatamodel.Department{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrDepartmentNotFound
		}
		return nil
	})
}
