package vacation

import "github.com/frahmantamala/hr-management/internal/core/common/date"

type CreateVacationDTO struct {
	EmployeeID *int64     `json:"fk_employee" validate:"required"`
	StartDate  *date.Date `json:"start_date" validate:"required"`
	EndDate    *date.Date `json:"end_date" validate:"required"`
}

// UpdateVacationDTO carries the only field a vacation may change after creation.
type UpdateVacationDTO struct {
	Status *string `json:"status" validate:"required"`
}
