package contract

import (
	"github.com/frahmantamala/hr-management/internal/core/common/date"
	contractDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/contract"
)

// RemovedEmployeeName stands in for the owner when the employee row is gone.
const RemovedEmployeeName = "Employee removed"

type Contract struct {
	ID                      int64      `json:"contract_id"`
	EmployeeID              int64      `json:"fk_employee"`
	StartDate               date.Date  `json:"start_date"`
	EndDate                 date.Date  `json:"end_date"`
	RenewalNotificationDate *date.Date `json:"renewal_notification_date"`
	EmployeeName            string     `json:"employee_name"`
}

func FromDataModel(m *contractDatamodel.WithEmployee) *Contract {
	return &Contract{
		ID:                      m.ID,
		EmployeeID:              m.EmployeeID,
		StartDate:               date.Of(m.StartDate),
		EndDate:                 date.Of(m.EndDate),
		RenewalNotificationDate: date.FromPtr(m.RenewalNotificationDate),
		EmployeeName:            employeeName(m),
	}
}

func employeeName(m *contractDatamodel.WithEmployee) string {
	if m.FirstName == nil || m.LastName == nil {
		return RemovedEmployeeName
	}
	return *m.FirstName + " " + *m.LastName
}
