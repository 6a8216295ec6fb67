package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeVacationStatusChanged = "vacation.status_changed"
	EventTypeEmployeeDeactivated   = "employee.deactivated"
	EventTypeContractRenewalDue    = "contract.renewal_due"
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type VacationStatusChangedEvent struct {
	BaseEvent
	VacationID int64  `json:"vacation_id"`
	EmployeeID int64  `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	ChangedBy  int64  `json:"changed_by"`
}

func NewVacationStatusChangedEvent(vacationID, employeeID int64, from, to string, changedBy int64) *VacationStatusChangedEvent {
	return &VacationStatusChangedEvent{
		BaseEvent: newBase(EventTypeVacationStatusChanged, map[string]interface{}{
			"vacation_id": vacationID,
			"employee_id": employeeID,
			"from":        from,
			"to":          to,
			"changed_by":  changedBy,
		}),
		VacationID: vacationID,
		EmployeeID: employeeID,
		From:       from,
		To:         to,
		ChangedBy:  changedBy,
	}
}

type EmployeeDeactivatedEvent struct {
	BaseEvent
	EmployeeID int64  `json:"employee_id"`
	Email      string `json:"email"`
}

func NewEmployeeDeactivatedEvent(employeeID int64, email string) *EmployeeDeactivatedEvent {
	return &EmployeeDeactivatedEvent{
		BaseEvent: newBase(EventTypeEmployeeDeactivated, map[string]interface{}{
			"employee_id": employeeID,
			"email":       email,
		}),
		EmployeeID: employeeID,
		Email:      email,
	}
}

type ContractRenewalDueEvent struct {
	BaseEvent
	ContractID   int64     `json:"contract_id"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	NotifyOn     time.Time `json:"notify_on"`
	EndDate      time.Time `json:"end_date"`
}

func NewContractRenewalDueEvent(contractID, employeeID int64, employeeName string, notifyOn, endDate time.Time) *ContractRenewalDueEvent {
	return &ContractRenewalDueEvent{
		BaseEvent: newBase(EventTypeContractRenewalDue, map[string]interface{}{
			"contract_id":   contractID,
			"employee_id":   employeeID,
			"employee_name": employeeName,
			"notify_on":     notifyOn.Format("2006-01-02"),
			"end_date":      endDate.Format("2006-01-02"),
		}),
		ContractID:   contractID,
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		NotifyOn:     notifyOn,
		EndDate:      endDate,
	}
}
