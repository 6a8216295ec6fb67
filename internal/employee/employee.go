package employee

import (
	"github.com/frahmantamala/hr-management/internal/core/common/date"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
)

// Employee is the wire representation. The password hash never leaves the service.
type Employee struct {
	ID             int64      `json:"employee_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	DateOfBirth    *date.Date `json:"date_of_birth"`
	EmploymentDate *date.Date `json:"employment_date"`
	Gender         *string    `json:"gender"`
	Email          string     `json:"email"`
	Phone          *string    `json:"phone"`
	Salary         *float64   `json:"salary"`
	INN            *string    `json:"inn"`
	SNILS          *string    `json:"snils"`
	DepartmentID   *int64     `json:"fk_department"`
	JobName        string     `json:"job_name"`
	Active         string     `json:"active"`
	Role           string     `json:"role"`
}

func FromDataModel(m *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		DateOfBirth:    date.FromPtr(m.DateOfBirth),
		EmploymentDate: date.FromPtr(m.EmploymentDate),
		Gender:         m.Gender,
		Email:          m.Email,
		Phone:          m.Phone,
		Salary:         m.Salary,
		INN:            m.INN,
		SNILS:          m.SNILS,
		DepartmentID:   m.DepartmentID,
		JobName:        m.JobName,
		Active:         m.Active,
		Role:           m.Role,
	}
}
