package postgres

import (
	"context"
	"errors"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/core/uow"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) find(ctx context.Context, query string, arg interface{}) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := uow.Conn(ctx, r.db).Where(query, arg).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *Repository) GetCredentialsByEmail(ctx context.Context, email string) (*auth.Credentials, error) {
	emp, err := r.find(ctx, "email = ?", email)
	if err != nil {
		return nil, err
	}

	creds := &auth.Credentials{
		EmployeeID: emp.ID,
		Email:      emp.Email,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Active:     emp.Active,
		Role:       emp.Role,
	}
	if emp.PasswordHash != nil {
		creds.PasswordHash = *emp.PasswordHash
	}
	return creds, nil
}

func (r *Repository) GetProfile(ctx context.Context, employeeID int64) (*auth.Profile, error) {
	emp, err := r.find(ctx, "employee_id = ?", employeeID)
	if err != nil {
		return nil, err
	}
	return &auth.Profile{
		ID:           emp.ID,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		Email:        emp.Email,
		JobName:      emp.JobName,
		DepartmentID: emp.DepartmentID,
		Role:         emp.Role,
	}, nil
}

func (r *Repository) UpdatePasswordHash(ctx context.Context, employeeID int64, hash string) error {
	res := uow.Conn(ctx, r.db).
		Model(&employeeDatamodel.Employee{}).
		Where("employee_id = ?", employeeID).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrEmployeeNotFound
	}
	return nil
}
