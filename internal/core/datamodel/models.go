// Package datamodel lists the persisted GORM models.
package datamodel

import (
	"github.com/frahmantamala/hr-management/internal/core/datamodel/contract"
	"github.com/frahmantamala/hr-management/internal/core/datamodel/department"
	"github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/core/datamodel/vacation"
	"github.com/frahmantamala/hr-management/internal/core/datamodel/workhour"
)

// All returns every table model in dependency order. The production schema
// comes from db/migrations; this list feeds AutoMigrate in sqlite-backed tests.
func All() []interface{} {
	return []interface{}{
		&department.Department{},
		&employee.Employee{},
		&vacation.Vacation{},
		&contract.Contract{},
		&workhour.WorkHour{},
	}
}
