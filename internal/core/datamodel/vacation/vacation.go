package vacation

import "time"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Vacation struct {
	ID         int64     `gorm:"column:vacation_id;primaryKey;autoIncrement"`
	EmployeeID int64     `gorm:"column:fk_employee;not null;index"`
	StartDate  time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate    time.Time `gorm:"column:end_date;type:date;not null"`
	Status     string    `gorm:"column:status;size:10;not null"`
}

func (Vacation) TableName() string {
	return "vacations"
}

// WithEmployee is a vacation row joined with the owning employee's contact fields.
type WithEmployee struct {
	Vacation
	FirstName *string `gorm:"column:first_name"`
	LastName  *string `gorm:"column:last_name"`
	Email     *string `gorm:"column:email"`
}
