// Package app wires repositories, services and handlers into one router.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/analytics"
	analyticsPostgres "github.com/frahmantamala/hr-management/internal/analytics/postgres"
	"github.com/frahmantamala/hr-management/internal/auth"
	authPostgres "github.com/frahmantamala/hr-management/internal/auth/postgres"
	"github.com/frahmantamala/hr-management/internal/contract"
	contractPostgres "github.com/frahmantamala/hr-management/internal/contract/postgres"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/department"
	departmentPostgres "github.com/frahmantamala/hr-management/internal/department/postgres"
	"github.com/frahmantamala/hr-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-management/internal/transport/rest"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
	"github.com/frahmantamala/hr-management/internal/vacation"
	vacationPostgres "github.com/frahmantamala/hr-management/internal/vacation/postgres"
	"github.com/frahmantamala/hr-management/internal/workhour"
	workhourPostgres "github.com/frahmantamala/hr-management/internal/workhour/postgres"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Options struct {
	Config *internal.Config
	Gorm   *gorm.DB
	SQL    *sqlx.DB
	Logger *slog.Logger
	// Bus defaults to a fresh bus with the audit log subscribed.
	Bus *events.EventBus
	// Now pins the analytics clock; nil means time.Now.
	Now analytics.Clock
}

type App struct {
	Router *chi.Mux
	Bus    *events.EventBus
	Tokens *auth.JWTTokenGenerator

	Auth        *auth.Service
	Employees   *employee.Service
	Departments *department.Service
	Vacations   *vacation.Service
	Contracts   *contract.Service
	WorkHours   *workhour.Service
	Analytics   *analytics.Service
}

// NewServices builds the service layer without any HTTP surface. The CLI
// workers use it directly.
func NewServices(opts Options) *App {
	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}
	bus := opts.Bus
	if bus == nil {
		bus = events.NewEventBus(lg)
		events.RegisterAuditLog(bus, lg)
	}

	sec := opts.Config.Security
	tokens := auth.NewJWTTokenGenerator(sec.JWTSecret, sec.TokenTTL)

	a := &App{Bus: bus, Tokens: tokens}
	a.Auth = auth.NewService(authPostgres.NewRepository(opts.Gorm), tokens, sec.BCryptCost, lg)
	a.Departments = department.NewService(departmentPostgres.NewDepartmentRepository(opts.Gorm), lg)
	a.Employees = employee.NewService(employeePostgres.NewEmployeeRepository(opts.Gorm), a.Departments, a.Auth, bus, lg)
	a.Vacations = vacation.NewService(vacationPostgres.NewVacationRepository(opts.Gorm), a.Employees, bus, lg)
	a.Contracts = contract.NewService(contractPostgres.NewContractRepository(opts.Gorm), a.Employees, bus, lg)
	a.WorkHours = workhour.NewService(workhourPostgres.NewWorkHourRepository(opts.Gorm), a.Employees, lg)
	if opts.SQL != nil {
		a.Analytics = analytics.NewService(analyticsPostgres.NewAnalyticsRepository(opts.SQL), opts.Now, lg)
	}
	return a
}

// New builds the services and the full route table.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	a := NewServices(opts)
	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}

	docs, err := swagger.Load(ctx)
	if err != nil {
		return nil, err
	}

	deps := rest.Dependencies{
		Gorm:           opts.Gorm,
		Gate:           auth.NewGate(a.Tokens, lg),
		Docs:           docs,
		AllowedOrigins: opts.Config.Server.Origins(),
		Auth:           auth.NewHandler(a.Auth, lg),
		Employees:      employee.NewHandler(a.Employees, lg),
		Departments:    department.NewHandler(a.Departments, lg),
		Vacations:      vacation.NewHandler(a.Vacations, lg),
		Contracts:      contract.NewHandler(a.Contracts, lg),
		WorkHours:      workhour.NewHandler(a.WorkHours, lg),
		VacationOwner:  auth.Lookup("id", a.Vacations.OwnerOf),
		WorkHourOwner:  auth.Lookup("id", a.WorkHours.OwnerOf),
	}
	if opts.SQL != nil {
		deps.SQL = opts.SQL.DB
		deps.Analytics = analytics.NewHandler(a.Analytics, lg)
	}

	a.Router = chi.NewRouter()
	rest.RegisterAllRoutes(a.Router, deps, lg)
	return a, nil
}
