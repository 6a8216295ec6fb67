package workhour

import "github.com/frahmantamala/hr-management/internal/core/common/date"

type CreateWorkHourDTO struct {
	EmployeeID  *int64     `json:"fk_employee" validate:"required"`
	WorkDate    *date.Date `json:"work_date" validate:"required"`
	HoursWorked *float64   `json:"hours_worked" validate:"required,gt=0,lte=24"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
