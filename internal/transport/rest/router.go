package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/analytics"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/contract"
	"github.com/frahmantamala/hr-management/internal/department"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
	"github.com/frahmantamala/hr-management/internal/vacation"
	"github.com/frahmantamala/hr-management/internal/workhour"
	"github.com/go-chi/chi"
	"gorm.io/gorm"
)

// Dependencies is everything the route table needs. Nil handlers leave
// their routes unregistered.
type Dependencies struct {
	SQL            *sql.DB
	Gorm           *gorm.DB
	Gate           *auth.Gate
	Docs           *swagger.Docs
	AllowedOrigins []string

	Auth        *auth.Handler
	Employees   *employee.Handler
	Departments *department.Handler
	Vacations   *vacation.Handler
	Contracts   *contract.Handler
	WorkHours   *workhour.Handler
	Analytics   *analytics.Handler

	// VacationOwner and WorkHourOwner resolve the employee behind a record id
	// for self-or-hr reads.
	VacationOwner auth.OwnerResolver
	WorkHourOwner auth.OwnerResolver
}

func RegisterAllRoutes(router *chi.Mux, deps Dependencies, logger *slog.Logger) {
	healthHandler := NewHealthHandler(deps.SQL, transport.NewBaseHandler(logger))
	gate := deps.Gate

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORS(deps.AllowedOrigins))
	if deps.Gorm != nil {
		router.Use(middleware.UnitOfWork(deps.Gorm, logger))
	}

	if deps.Docs != nil {
		router.Get(swagger.SpecPath, deps.Docs.ServeSpec)
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/ping", healthHandler.Ping)
	})

	if h := deps.Auth; h != nil {
		router.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.With(gate.Require(auth.Authenticated())).Post("/set-password/{employee_id}", h.SetPassword)
			r.With(gate.Require(auth.Authenticated())).Get("/profile", h.Profile)
		})
	}

	hrOnly := gate.Require(auth.HROnly())
	selfByPath := gate.Require(auth.SelfOrHR(auth.PathParam("employee_id")))
	selfByBody := gate.Require(auth.SelfOrHR(auth.BodyField("fk_employee")))

	if h := deps.Employees; h != nil {
		router.Route("/employees", func(r chi.Router) {
			r.With(hrOnly).Get("/", h.ListEmployees)
			r.With(hrOnly).Post("/", h.CreateEmployee)
			r.With(selfByPath).Get("/{employee_id}", h.GetEmployee)
			r.With(hrOnly).Put("/{employee_id}", h.UpdateEmployee)
			r.With(hrOnly).Delete("/{employee_id}", h.DeleteEmployee)
		})
	}

	if h := deps.Departments; h != nil {
		router.Route("/departments", func(r chi.Router) {
			r.Use(hrOnly)
			r.Get("/", h.ListDepartments)
			r.Post("/", h.CreateDepartment)
			r.Get("/{id}", h.GetDepartment)
			r.Put("/{id}", h.UpdateDepartment)
			r.Delete("/{id}", h.DeleteDepartment)
		})
	}

	if h := deps.Vacations; h != nil {
		router.Route("/vacations", func(r chi.Router) {
			r.With(hrOnly).Get("/", h.ListVacations)
			r.With(selfByBody).Post("/", h.CreateVacation)
			r.With(gate.Require(auth.SelfOrHR(deps.VacationOwner))).Get("/{id}", h.GetVacation)
			r.With(hrOnly).Put("/{id}", h.UpdateVacation)
		})
		router.With(selfByPath).Get("/employee-vacations/{employee_id}", h.ListEmployeeVacations)
	}

	if h := deps.Contracts; h != nil {
		router.Route("/contracts", func(r chi.Router) {
			r.Use(hrOnly)
			r.Get("/", h.ListContracts)
			r.Post("/", h.CreateContract)
			r.Get("/{id}", h.GetContract)
			r.Put("/{id}", h.UpdateContract)
			r.Delete("/{id}", h.DeleteContract)
		})
	}

	if h := deps.WorkHours; h != nil {
		router.Route("/work-hours", func(r chi.Router) {
			r.With(hrOnly).Get("/", h.ListWorkHours)
			r.With(selfByBody).Post("/", h.CreateWorkHour)
			r.With(gate.Require(auth.SelfOrHR(deps.WorkHourOwner))).Get("/{id}", h.GetWorkHour)
			r.With(hrOnly).Delete("/{id}", h.DeleteWorkHour)
		})
		router.With(selfByPath).Get("/employee-work-hours/{employee_id}", h.ListEmployeeWorkHours)
	}

	if h := deps.Analytics; h != nil {
		router.Route("/analytics", func(r chi.Router) {
			r.Use(hrOnly)
			r.Get("/department-count", h.DepartmentCount)
			r.Get("/average-age", h.AverageAge)
			r.Get("/churn-rate", h.ChurnRate)
			r.Get("/average-tenure", h.AverageTenure)
			r.Get("/average-hours-per-department", h.AverageHoursPerDepartment)
		})
	}
}
