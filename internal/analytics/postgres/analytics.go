package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/frahmantamala/hr-management/internal/analytics"
	"github.com/jmoiron/sqlx"
)

const (
	departmentCountQuery = `
		SELECT d.name AS department, COUNT(e.employee_id) AS count
		FROM departments d
		LEFT JOIN employees e ON e.fk_department = d.department_id
		GROUP BY d.department_id, d.name
		ORDER BY d.department_id`

	headcountQuery = `
		SELECT COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN active = 'No' THEN 1 ELSE 0 END), 0) AS inactive
		FROM employees`

	averageHoursQuery = `
		SELECT d.name AS department, CAST(AVG(w.hours_worked) AS DOUBLE PRECISION) AS average_hours
		FROM departments d
		JOIN employees e ON e.fk_department = d.department_id
		JOIN work_hours w ON w.fk_employee = e.employee_id
		GROUP BY d.department_id, d.name
		ORDER BY d.department_id`
)

// AnalyticsRepository runs the aggregate queries directly through sqlx.
type AnalyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) analytics.RepositoryAPI {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) DepartmentCounts(ctx context.Context) ([]analytics.DepartmentCount, error) {
	var rows []analytics.DepartmentCount
	err := r.db.SelectContext(ctx, &rows, departmentCountQuery)
	return rows, err
}

func (r *AnalyticsRepository) BirthDates(ctx context.Context) ([]time.Time, error) {
	return r.dates(ctx, "SELECT date_of_birth FROM employees WHERE date_of_birth IS NOT NULL")
}

func (r *AnalyticsRepository) EmploymentDates(ctx context.Context) ([]time.Time, error) {
	return r.dates(ctx, "SELECT employment_date FROM employees WHERE employment_date IS NOT NULL")
}

func (r *AnalyticsRepository) dates(ctx context.Context, query string) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.SelectContext(ctx, &dates, query)
	return dates, err
}

func (r *AnalyticsRepository) Headcount(ctx context.Context) (analytics.Headcount, error) {
	var hc analytics.Headcount
	err := r.db.GetContext(ctx, &hc, headcountQuery)
	return hc, err
}

func (r *AnalyticsRepository) AverageHoursPerDepartment(ctx context.Context) ([]analytics.DepartmentHours, error) {
	var raw []struct {
		Department   string          `db:"department"`
		AverageHours sql.NullFloat64 `db:"average_hours"`
	}
	if err := r.db.SelectContext(ctx, &raw, averageHoursQuery); err != nil {
		return nil, err
	}

	rows := make([]analytics.DepartmentHours, 0, len(raw))
	for _, row := range raw {
		rows = append(rows, analytics.DepartmentHours{
			Department:   row.Department,
			AverageHours: row.AverageHours.Float64,
		})
	}
	return rows, nil
}
