package department

import "strings"

// DepartmentDTO is the full allow-list for create and update.
type DepartmentDTO struct {
	Name string `json:"name" validate:"required,max=30"`
}

func (d *DepartmentDTO) normalize() {
	d.Name = strings.TrimSpace(d.Name)
}

type MessageResponse struct {
	Message string `json:"message"`
}
