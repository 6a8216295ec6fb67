package contract

import "time"

type Contract struct {
	ID                      int64      `gorm:"column:contract_id;primaryKey;autoIncrement"`
	EmployeeID              int64      `gorm:"column:fk_employee;not null;index"`
	StartDate               time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate                 time.Time  `gorm:"column:end_date;type:date;not null"`
	RenewalNotificationDate *time.Time `gorm:"column:renewal_notification_date;type:date"`
}

func (Contract) TableName() string {
	return "contracts"
}

// WithEmployee is a contract row joined with the owning employee's name.
type WithEmployee struct {
	Contract
	FirstName *string `gorm:"column:first_name"`
	LastName  *string `gorm:"column:last_name"`
}
