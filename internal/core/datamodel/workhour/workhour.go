package workhour

import "time"

type WorkHour struct {
	ID          int64     `gorm:"column:entry_id;primaryKey;autoIncrement"`
	EmployeeID  int64     `gorm:"column:fk_employee;not null;index"`
	WorkDate    time.Time `gorm:"column:work_date;type:date;not null"`
	HoursWorked float64   `gorm:"column:hours_worked;not null"`
}

func (WorkHour) TableName() string {
	return "work_hours"
}
