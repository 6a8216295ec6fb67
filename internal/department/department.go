package department

import (
	departmentDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/department"
)

type Department struct {
	ID   int64  `json:"department_id"`
	Name string `json:"name"`
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:   d.ID,
		Name: d.Name,
	}
}

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		ID:   d.ID,
		Name: d.Name,
	}
}
