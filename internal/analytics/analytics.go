// Package analytics serves the read-only HR aggregates.
package analytics

import "time"

type DepartmentCount struct {
	Department string `json:"department" db:"department"`
	Count      int64  `json:"count" db:"count"`
}

type DepartmentHours struct {
	Department   string  `json:"department" db:"department"`
	AverageHours float64 `json:"average_hours" db:"average_hours"`
}

type Headcount struct {
	Total    int64 `db:"total"`
	Inactive int64 `db:"inactive"`
}

type AverageAge struct {
	AverageAge float64 `json:"average_age"`
}

type ChurnRate struct {
	ChurnRate float64 `json:"churn_rate"`
}

type AverageTenure struct {
	AverageTenure float64 `json:"average_tenure"`
}

// Clock lets tests pin "now" for the year-based averages.
type Clock func() time.Time
