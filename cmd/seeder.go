package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/frahmantamala/hr-management/internal/app"
	"github.com/frahmantamala/hr-management/internal/department"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/oapi-codegen/nullable"
	"github.com/spf13/cobra"
)

var defaultDepartments = []string{
	"Human Resources",
	"IT",
	"Finance",
	"Sales",
	"Operations",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with departments and an HR account",
	Long:  `Seed the database with default departments and an HR account for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initializeDependencies()
		if err != nil {
			log.Fatalf("failed to init dependencies: %v", err)
		}
		defer deps.DB.Close()

		ctx := context.Background()
		db := deps.Gorm

		if clearData {
			if err := db.Exec("TRUNCATE work_hours, contracts, vacations, employees, departments RESTART IDENTITY CASCADE").Error; err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing HR data")
		}

		services := app.NewServices(app.Options{Config: deps.Config, Gorm: db, Logger: logger.L()})

		var hrDepartmentID int64
		for _, name := range defaultDepartments {
			var id int64
			if err := db.Raw("SELECT department_id FROM departments WHERE name = ?", name).Row().Scan(&id); err == nil {
				if hrDepartmentID == 0 {
					hrDepartmentID = id
				}
				continue
			}

			dept, err := services.Departments.Create(ctx, department.DepartmentDTO{Name: name})
			if err != nil {
				log.Fatalf("failed to insert department %s: %v", name, err)
			}
			if hrDepartmentID == 0 {
				hrDepartmentID = dept.ID
			}
			fmt.Printf("Seeded department: %s\n", name)
		}

		hrEmail := envOr("SEED_HR_EMAIL", "hr@company.com")
		var exists int
		if err := db.Raw("SELECT 1 FROM employees WHERE email = ?", hrEmail).Row().Scan(&exists); err == nil {
			fmt.Println("hr account already exists:", hrEmail)
			return
		}

		role := "hr"
		password := envOr("SEED_HR_PASSWORD", "password")
		_, err = services.Employees.Create(ctx, employee.EmployeeDTO{
			FirstName:    "Helen",
			LastName:     "Rivers",
			Email:        hrEmail,
			JobName:      "HR Manager",
			DepartmentID: nullable.NewNullableWithValue(hrDepartmentID),
			Role:         &role,
			Password:     &password,
		})
		if err != nil {
			log.Fatalf("failed to insert hr account: %v", err)
		}
		fmt.Println("Seeded hr account:", hrEmail)
	},
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
