package employee

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/frahmantamala/hr-management/internal/core/common/date"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/oapi-codegen/nullable"
)

// Salary accepts a JSON number or a numeric string.
type Salary float64

func (s *Salary) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*s = Salary(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("salary must be a number")
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return fmt.Errorf("salary must be a number, got %q", str)
	}
	*s = Salary(n)
	return nil
}

func init() {
	validation.RegisterNullable[Salary]()
}

// EmployeeDTO is the allow-list for create and update. Required fields must
// be present on both. For optional fields an absent key leaves the column
// unchanged and an explicit null (or blank string) clears it.
type EmployeeDTO struct {
	FirstName      string                       `json:"first_name" validate:"required,max=20"`
	LastName       string                       `json:"last_name" validate:"required,max=25"`
	Email          string                       `json:"email" validate:"required,email,max=50"`
	JobName        string                       `json:"job_name" validate:"required,max=50"`
	DateOfBirth    nullable.Nullable[date.Date] `json:"date_of_birth"`
	EmploymentDate nullable.Nullable[date.Date] `json:"employment_date"`
	Gender         nullable.Nullable[string]    `json:"gender" validate:"omitempty,oneof=male female"`
	Phone          nullable.Nullable[string]    `json:"phone" validate:"omitempty,max=20"`
	Salary         nullable.Nullable[Salary]    `json:"salary" validate:"omitempty,gte=0"`
	INN            nullable.Nullable[string]    `json:"inn" validate:"omitempty,max=12"`
	SNILS          nullable.Nullable[string]    `json:"snils" validate:"omitempty,max=11"`
	DepartmentID   nullable.Nullable[int64]     `json:"fk_department"`
	Active         *string                      `json:"active" validate:"omitempty,oneof=Yes No"`
	Role           *string                      `json:"role" validate:"omitempty,oneof=hr employee"`
	Password       *string                      `json:"password"`
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// trimNullable trims a present string and turns a blank one into null.
func trimNullable(n *nullable.Nullable[string]) {
	v, err := n.Get()
	if err != nil {
		return
	}
	if v = strings.TrimSpace(v); v == "" {
		n.SetNull()
		return
	}
	n.Set(v)
}

// valueOf returns nil for null, otherwise a pointer to the carried value.
func valueOf[T any](n nullable.Nullable[T]) *T {
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return &v
}

func (d *EmployeeDTO) normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.TrimSpace(d.Email)
	d.JobName = strings.TrimSpace(d.JobName)
	trimNullable(&d.Gender)
	trimNullable(&d.Phone)
	trimNullable(&d.INN)
	trimNullable(&d.SNILS)
	d.Active = blankToNil(d.Active)
	d.Role = blankToNil(d.Role)
}

// departmentRef is the department the payload points at, nil when it does
// not name one.
func (d *EmployeeDTO) departmentRef() *int64 {
	return valueOf(d.DepartmentID)
}

// apply copies the DTO onto m. Optional fields only change when their key
// was sent.
func (d *EmployeeDTO) apply(m *employeeDatamodel.Employee) {
	m.FirstName = d.FirstName
	m.LastName = d.LastName
	m.Email = d.Email
	m.JobName = d.JobName
	if d.DateOfBirth.IsSpecified() {
		m.DateOfBirth = valueOf(d.DateOfBirth).Ptr()
	}
	if d.EmploymentDate.IsSpecified() {
		m.EmploymentDate = valueOf(d.EmploymentDate).Ptr()
	}
	if d.Gender.IsSpecified() {
		m.Gender = valueOf(d.Gender)
	}
	if d.Phone.IsSpecified() {
		m.Phone = valueOf(d.Phone)
	}
	if d.Salary.IsSpecified() {
		m.Salary = nil
		if s := valueOf(d.Salary); s != nil {
			v := float64(*s)
			m.Salary = &v
		}
	}
	if d.INN.IsSpecified() {
		m.INN = valueOf(d.INN)
	}
	if d.SNILS.IsSpecified() {
		m.SNILS = valueOf(d.SNILS)
	}
	if d.DepartmentID.IsSpecified() {
		m.DepartmentID = d.departmentRef()
	}
	if d.Active != nil {
		m.Active = *d.Active
	}
	if d.Role != nil {
		m.Role = *d.Role
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}
