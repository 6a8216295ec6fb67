package workhour

import (
	"github.com/frahmantamala/hr-management/internal/core/common/date"
	workhourDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/workhour"
)

type WorkHour struct {
	ID          int64     `json:"entry_id"`
	EmployeeID  int64     `json:"fk_employee"`
	WorkDate    date.Date `json:"work_date"`
	HoursWorked float64   `json:"hours_worked"`
}

func FromDataModel(m *workhourDatamodel.WorkHour) *WorkHour {
	return &WorkHour{
		ID:          m.ID,
		EmployeeID:  m.EmployeeID,
		WorkDate:    date.Of(m.WorkDate),
		HoursWorked: m.HoursWorked,
	}
}
