package analytics_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal/analytics"
	analyticsPostgres "github.com/frahmantamala/hr-management/internal/analytics/postgres"
	"github.com/frahmantamala/hr-management/internal/core/datamodel"
	departmentDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	workhourDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/workhour"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var _ = Describe("Analytics", func() {
	var (
		db  *gorm.DB
		svc *analytics.Service
		ctx context.Context
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

		repo := analyticsPostgres.NewAnalyticsRepository(sqlx.NewDb(sqlDB, "sqlite3"))
		now := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
		svc = analytics.NewService(repo, now, slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx = context.Background()
	})

	Context("with no data", func() {
		It("returns zeros and empty lists", func() {
			age, err := svc.AverageAge(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(age.AverageAge).To(BeZero())

			churn, err := svc.ChurnRate(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(churn.ChurnRate).To(BeZero())

			tenure, err := svc.AverageTenure(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(tenure.AverageTenure).To(BeZero())

			counts, err := svc.DepartmentCount(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(counts).NotTo(BeNil())
			Expect(counts).To(BeEmpty())

			hours, err := svc.AverageHoursPerDepartment(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(hours).To(BeEmpty())
		})
	})

	Context("with a small organisation", func() {
		BeforeEach(func() {
			it := &departmentDatamodel.Department{Name: "IT"}
			sales := &departmentDatamodel.Department{Name: "Sales"}
			empty := &departmentDatamodel.Department{Name: "Legal"}
			for _, d := range []*departmentDatamodel.Department{it, sales, empty} {
				Expect(db.Create(d).Error).To(Succeed())
			}

			people := []*employeeDatamodel.Employee{
				{FirstName: "A", LastName: "A", Email: "a@x.io", JobName: "dev", Active: "Yes", Role: "employee",
					DepartmentID: &it.ID, DateOfBirth: day(1990, 3, 1), EmploymentDate: day(2020, 1, 1)},
				{FirstName: "B", LastName: "B", Email: "b@x.io", JobName: "dev", Active: "No", Role: "employee",
					DepartmentID: &it.ID, DateOfBirth: day(1985, 7, 1), EmploymentDate: day(2015, 1, 1)},
				{FirstName: "C", LastName: "C", Email: "c@x.io", JobName: "rep", Active: "Yes", Role: "employee",
					DepartmentID: &sales.ID},
			}
			for _, p := range people {
				Expect(db.Create(p).Error).To(Succeed())
			}

			for _, h := range []float64{8, 6, 7} {
				Expect(db.Create(&workhourDatamodel.WorkHour{
					EmployeeID: people[0].ID, WorkDate: *day(2025, 5, 1), HoursWorked: h,
				}).Error).To(Succeed())
			}
		})

		It("counts employees per department including empty ones", func() {
			counts, err := svc.DepartmentCount(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(counts).To(Equal([]analytics.DepartmentCount{
				{Department: "IT", Count: 2},
				{Department: "Sales", Count: 1},
				{Department: "Legal", Count: 0},
			}))
		})

		It("averages age over employees with a birth date", func() {
			age, err := svc.AverageAge(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(age.AverageAge).To(BeNumerically("==", 37.5))
		})

		It("computes churn as a rounded percentage", func() {
			churn, err := svc.ChurnRate(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(churn.ChurnRate).To(BeNumerically("==", 33.3))
		})

		It("measures tenure from the employment date", func() {
			tenure, err := svc.AverageTenure(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(tenure.AverageTenure).To(BeNumerically("==", 7.5))
		})

		It("averages hours only for departments that logged any", func() {
			hours, err := svc.AverageHoursPerDepartment(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(hours).To(Equal([]analytics.DepartmentHours{{Department: "IT", AverageHours: 7}}))
		})

		It("rounds a half to the even neighbour", func() {
			var sales employeeDatamodel.Employee
			Expect(db.Where("email = ?", "c@x.io").First(&sales).Error).To(Succeed())
			for _, h := range []float64{2, 2.5} {
				Expect(db.Create(&workhourDatamodel.WorkHour{
					EmployeeID: sales.ID, WorkDate: *day(2025, 5, 2), HoursWorked: h,
				}).Error).To(Succeed())
			}

			hours, err := svc.AverageHoursPerDepartment(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(hours).To(ContainElement(analytics.DepartmentHours{Department: "Sales", AverageHours: 2.2}))
		})
	})
})
