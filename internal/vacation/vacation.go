package vacation

import (
	"github.com/frahmantamala/hr-management/internal/core/common/date"
	vacationDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/vacation"
)

const (
	StatusPending  = vacationDatamodel.StatusPending
	StatusApproved = vacationDatamodel.StatusApproved
	StatusRejected = vacationDatamodel.StatusRejected
)

// EmployeeRef is the owner's contact block nested in every vacation.
type EmployeeRef struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Vacation struct {
	ID         int64        `json:"vacation_id"`
	EmployeeID int64        `json:"fk_employee"`
	StartDate  date.Date    `json:"start_date"`
	EndDate    date.Date    `json:"end_date"`
	Status     string       `json:"status"`
	Employee   *EmployeeRef `json:"employee"`
}

func FromDataModel(m *vacationDatamodel.WithEmployee) *Vacation {
	v := &Vacation{
		ID:         m.ID,
		EmployeeID: m.EmployeeID,
		StartDate:  date.Of(m.StartDate),
		EndDate:    date.Of(m.EndDate),
		Status:     m.Status,
	}
	if m.FirstName != nil {
		v.Employee = &EmployeeRef{
			FirstName: deref(m.FirstName),
			LastName:  deref(m.LastName),
			Email:     deref(m.Email),
		}
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// validStatus reports whether s is one of the three known states.
func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// canTransition allows only the two decisions on a pending request.
func canTransition(from, to string) bool {
	return from == StatusPending && (to == StatusApproved || to == StatusRejected)
}
