package postgres

import (
	"context"
	"errors"

	apperrors "github.com/frahmantamala/hr-management/internal"
	contractDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/contract"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	vacationDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/vacation"
	workhourDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/workhour"
	"github.com/frahmantamala/hr-management/internal/core/uow"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := uow.Conn(ctx, r.db).Order("employee_id ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "employee_id = ?", id)
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *EmployeeRepository) first(ctx context.Context, query string, arg interface{}) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := uow.Conn(ctx, r.db).Where(query, arg).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	return translate(uow.Conn(ctx, r.db).Create(e).Error)
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employeeDatamodel.Employee) error {
	return translate(uow.Conn(ctx, r.db).Save(e).Error)
}

// Delete removes the employee with their vacations, contracts and work hours.
// Postgres cascades through the foreign keys; the explicit deletes cover
// stores where they are not enforced.
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	return uow.Run(ctx, r.db, func(ctx context.Context) error {
		conn := uow.Conn(ctx, r.db)
		for _, child := range []interface{}{
			&vacationDatamodel.Vacation{},
			&contractDatamodel.Contract{},
			&workhourDatamodel.WorkHour{},
		} {
			if err := conn.Where("fk_employee = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		res := conn.Where("employee_id = ?", id).Delete(&employeeDatamodel.Employee{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrEmployeeNotFound
		}
		return nil
	})
}

// translate maps a unique violation on email to the same error the
// service-level check returns.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.ErrEmailTaken.WithCause(err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmailTaken.WithCause(err)
	}
	return err
}
