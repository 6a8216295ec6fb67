package workhour_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/hr-management/internal/core/datamodel"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-management/internal/workhour"
	workhourPostgres "github.com/frahmantamala/hr-management/internal/workhour/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Work hours", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(datamodel.All()...)).To(Succeed())

		Expect(db.Create(&employeeDatamodel.Employee{
			FirstName: "Ann", LastName: "Lee", Email: "ann@corp.io", JobName: "Engineer",
			Active: employeeDatamodel.ActiveYes, Role: employeeDatamodel.RoleEmployee,
		}).Error).To(Succeed())

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		employees := employee.NewService(employeePostgres.NewEmployeeRepository(db), nil, nil, nil, lg)
		handler := workhour.NewHandler(workhour.NewService(workhourPostgres.NewWorkHourRepository(db), employees, lg), lg)

		router = chi.NewRouter()
		router.Get("/work-hours", handler.ListWorkHours)
		router.Post("/work-hours", handler.CreateWorkHour)
		router.Get("/work-hours/{id}", handler.GetWorkHour)
		router.Delete("/work-hours/{id}", handler.DeleteWorkHour)
		router.Get("/employee-work-hours/{employee_id}", handler.ListEmployeeWorkHours)
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

	It("records an entry", func() {
		rec := do(http.MethodPost, "/work-hours", `{"fk_employee":1,"work_date":"2024-03-04","hours_worked":7.5}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		var entry workhour.WorkHour
		Expect(json.Unmarshal(rec.Body.Bytes(), &entry)).To(Succeed())
		Expect(entry.HoursWorked).To(BeNumerically("==", 7.5))
		Expect(entry.WorkDate.String()).To(Equal("2024-03-04"))
	})

	DescribeTable("bounds hours to (0, 24]",
		func(hours string, status int) {
			rec := do(http.MethodPost, "/work-hours", `{"fk_employee":1,"work_date":"2024-03-04","hours_worked":`+hours+`}`)
			Expect(rec.Code).To(Equal(status))
		},
		Entry("zero", "0", http.StatusBadRequest),
		Entry("negative", "-2", http.StatusBadRequest),
		Entry("a full day", "24", http.StatusCreated),
		Entry("more than a day", "24.5", http.StatusBadRequest),
	)

	It("rejects an unknown employee", func() {
		rec := do(http.MethodPost, "/work-hours", `{"fk_employee":8,"work_date":"2024-03-04","hours_worked":4}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("employee 8 not found"))
	})

	It("lists per employee and deletes by id", func() {
		Expect(do(http.MethodPost, "/work-hours", `{"fk_employee":1,"work_date":"2024-03-04","hours_worked":4}`).Code).To(Equal(http.StatusCreated))
		Expect(do(http.MethodPost, "/work-hours", `{"fk_employee":1,"work_date":"2024-03-05","hours_worked":6}`).Code).To(Equal(http.StatusCreated))

		rec := do(http.MethodGet, "/employee-work-hours/1", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var list []workhour.WorkHour
		Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
		Expect(list).To(HaveLen(2))
		Expect(list[0].WorkDate.String()).To(Equal("2024-03-05"))

		Expect(do(http.MethodDelete, "/work-hours/1", "").Code).To(Equal(http.StatusOK))
		rec = do(http.MethodDelete, "/work-hours/1", "")
		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(ContainSubstring(`{"error":"work hour entry not found"}`))
	})
})
