package employee

import "time"

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"

	ActiveYes = "Yes"
	ActiveNo  = "No"
)

type Employee struct {
	ID             int64      `gorm:"column:employee_id;primaryKey;autoIncrement"`
	FirstName      string     `gorm:"column:first_name;size:20;not null"`
	LastName       string     `gorm:"column:last_name;size:25;not null"`
	DateOfBirth    *time.Time `gorm:"column:date_of_birth;type:date"`
	EmploymentDate *time.Time `gorm:"column:employment_date;type:date"`
	Gender         *string    `gorm:"column:gender;size:6"`
	Email          string     `gorm:"column:email;size:50;uniqueIndex;not null"`
	Phone          *string    `gorm:"column:phone;size:20"`
	Salary         *float64   `gorm:"column:salary"`
	INN            *string    `gorm:"column:inn;size:12"`
	SNILS          *string    `gorm:"column:snils;size:11"`
	DepartmentID   *int64     `gorm:"column:fk_department"`
	JobName        string     `gorm:"column:job_name;size:50;not null"`
	Active         string     `gorm:"column:active;size:3;not null"`
	PasswordHash   *string    `gorm:"column:password_hash;size:128"`
	Role           string     `gorm:"column:role;size:10;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
