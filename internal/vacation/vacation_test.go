package vacation_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/datamodel"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/core/uow"
	"github.com/frahmantamala/hr-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-management/internal/vacation"
	vacationPostgres "github.com/frahmantamala/hr-management/internal/vacation/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type capture struct {
	events []events.Event
}

func (c *capture) Publish(_ context.Context, e events.Event) error {
	c.events = append(c.events, e)
	return nil
}

var _ = Describe("Vacations", func() {
	var (
		db        *gorm.DB
		router    *chi.Mux
		svc       *vacation.Service
		published *capture
		ownerID   int64
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(datamodel.All()...)).To(Succeed())

		owner := &employeeDatamodel.Employee{
			FirstName: "Ann", LastName: "Lee", Email: "ann@corp.io", JobName: "Engineer",
			Active: employeeDatamodel.ActiveYes, Role: employeeDatamodel.RoleEmployee,
		}
		Expect(db.Create(owner).Error).To(Succeed())
		ownerID = owner.ID

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		employees := employee.NewService(employeePostgres.NewEmployeeRepository(db), nil, nil, nil, lg)
		published = &capture{}
		svc = vacation.NewService(vacationPostgres.NewVacationRepository(db), employees, published, lg)
		handler := vacation.NewHandler(svc, lg)

		router = chi.NewRouter()
		router.Get("/vacations", handler.ListVacations)
		router.Post("/vacations", handler.CreateVacation)
		router.Get("/vacations/{id}", handler.GetVacation)
		router.Put("/vacations/{id}", handler.UpdateVacation)
		router.Get("/employee-vacations/{employee_id}", handler.ListEmployeeVacations)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var rdr io.Reader
		if body != "" {
			rdr = strings.NewReader(body)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, rdr))
		return rec
	}

	create := func() {
		rec := do(http.MethodPost, "/vacations", `{"fk_employee":1,"start_date":"2024-07-01","end_date":"2024-07-14"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
	}

	It("creates a pending request with the owner nested", func() {
		rec := do(http.MethodPost, "/vacations", `{"fk_employee":1,"start_date":"2024-07-01","end_date":"2024-07-14"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		var v vacation.Vacation
		Expect(json.Unmarshal(rec.Body.Bytes(), &v)).To(Succeed())
		Expect(v.Status).To(Equal(vacation.StatusPending))
		Expect(v.EmployeeID).To(Equal(ownerID))
		Expect(v.Employee).NotTo(BeNil())
		Expect(v.Employee.Email).To(Equal("ann@corp.io"))
		Expect(rec.Body.String()).To(ContainSubstring(`"start_date":"2024-07-01"`))
	})

	It("rejects an unknown employee", func() {
		rec := do(http.MethodPost, "/vacations", `{"fk_employee":42,"start_date":"2024-07-01","end_date":"2024-07-02"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring(`{"error":"employee 42 not found"}`))
	})

	It("rejects an end date before the start date", func() {
		rec := do(http.MethodPost, "/vacations", `{"fk_employee":1,"start_date":"2024-07-10","end_date":"2024-07-01"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("lists missing fields", func() {
		rec := do(http.MethodPost, "/vacations", `{"fk_employee":1}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("Missing required fields: start_date, end_date"))
	})

	It("refuses to set fields other than status", func() {
		create()
		rec := do(http.MethodPut, "/vacations/1", `{"status":"Approved","end_date":"2025-01-01"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("approves a pending request exactly once", func() {
		create()
		rec := do(http.MethodPut, "/vacations/1", `{"status":"Approved"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"status":"Approved"`))
		Expect(published.events).To(HaveLen(1))
		Expect(published.events[0].EventType()).To(Equal(events.EventTypeVacationStatusChanged))

		rec = do(http.MethodPut, "/vacations/1", `{"status":"Rejected"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring(`{"error":"invalid status transition"}`))
	})

	It("announces a decision only once its unit of work commits", func() {
		create()
		approved := vacation.StatusApproved

		ctx, unit := uow.Begin(context.Background(), db)
		_, err := svc.UpdateStatus(ctx, 1, vacation.UpdateVacationDTO{Status: &approved})
		Expect(err).NotTo(HaveOccurred())
		Expect(published.events).To(BeEmpty())
		Expect(unit.Commit()).To(Succeed())
		Expect(published.events).To(HaveLen(1))
	})

	It("announces nothing when the decision is rolled back", func() {
		create()
		approved := vacation.StatusApproved

		ctx, unit := uow.Begin(context.Background(), db)
		_, err := svc.UpdateStatus(ctx, 1, vacation.UpdateVacationDTO{Status: &approved})
		Expect(err).NotTo(HaveOccurred())
		unit.Rollback()

		Expect(published.events).To(BeEmpty())
		v, err := svc.Get(context.Background(), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Status).To(Equal(vacation.StatusPending))
	})

	It("rejects unknown status values", func() {
		create()
		rec := do(http.MethodPut, "/vacations/1", `{"status":"Cancelled"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring(`{"error":"invalid status"}`))
	})

	It("answers 404 for unknown vacations", func() {
		rec := do(http.MethodGet, "/vacations/9", "")
		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(ContainSubstring(`{"error":"vacation not found"}`))
	})

	It("lists an employee's vacations", func() {
		create()
		create()
		rec := do(http.MethodGet, "/employee-vacations/1", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var list []vacation.Vacation
		Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
		Expect(list).To(HaveLen(2))

		rec = do(http.MethodGet, "/employee-vacations/2", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(strings.TrimSpace(rec.Body.String())).To(Equal("[]"))
	})

	It("resolves the owner for access checks", func() {
		create()
		owner, err := svc.OwnerOf(context.Background(), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(owner).To(Equal(ownerID))

		_, err = svc.OwnerOf(context.Background(), 5)
		Expect(err).To(MatchError(apperrors.ErrVacationNotFound))
	})
})
