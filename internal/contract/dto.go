package contract

import (
	"github.com/frahmantamala/hr-management/internal/core/common/date"
	"github.com/oapi-codegen/nullable"
)

type CreateContractDTO struct {
	EmployeeID              *int64     `json:"fk_employee" validate:"required"`
	StartDate               *date.Date `json:"start_date" validate:"required"`
	EndDate                 *date.Date `json:"end_date" validate:"required"`
	RenewalNotificationDate *date.Date `json:"renewal_notification_date"`
}

// UpdateContractDTO is a partial update; absent fields keep their value.
// An explicit null renewal_notification_date clears the reminder.
type UpdateContractDTO struct {
	EmployeeID              *int64                       `json:"fk_employee"`
	StartDate               *date.Date                   `json:"start_date"`
	EndDate                 *date.Date                   `json:"end_date"`
	RenewalNotificationDate nullable.Nullable[date.Date] `json:"renewal_notification_date"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
