package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/app"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/core/datamodel"
	vacationDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/vacation"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func str(s string) *string { return &s }

var _ = Describe("HR API", func() {
	var (
		db      *gorm.DB
		a       *app.App
		hrID    int64
		bobID   int64
		catID   int64
		hrToken string
	)

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		var rdr io.Reader
		if body != "" {
			rdr = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, rdr)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		a.Router.ServeHTTP(rec, req)
		return rec
	}

	login := func(email, password string) string {
		rec := do(http.MethodPost, "/auth/login", "", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
		Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
		var out auth.LoginResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
		return out.AccessToken
	}

	countEmployees := func() int64 {
		var n int64
		Expect(db.Table("employees").Count(&n).Error).To(Succeed())
		return n
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(datamodel.All()...)).To(Succeed())

		cfg := &internal.Config{
			Server:   internal.ServerConfig{AllowedOrigins: "http://localhost:3000"},
			Security: internal.SecurityConfig{JWTSecret: "test-secret-0123456789", TokenTTL: time.Hour, BCryptCost: 4},
		}
		a, err = app.New(context.Background(), app.Options{
			Config: cfg,
			Gorm:   db,
			SQL:    sqlx.NewDb(sqlDB, "sqlite3"),
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		Expect(err).NotTo(HaveOccurred())

		ctx := context.Background()
		seed := func(first, email, role, password string) int64 {
			e, err := a.Employees.Create(ctx, employee.EmployeeDTO{
				FirstName: first, LastName: "Test", Email: email, JobName: "Staff",
				Role: str(role), Password: str(password),
			})
			Expect(err).NotTo(HaveOccurred())
			return e.ID
		}
		hrID = seed("Hana", "hr@corp.io", "hr", "hr-pass")
		bobID = seed("Bob", "bob@corp.io", "employee", "bob-pass")
		catID = seed("Cat", "cat@corp.io", "employee", "cat-pass")
		hrToken = login("hr@corp.io", "hr-pass")
	})

	AfterEach(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(a.Bus.Drain(ctx)).To(Succeed())
	})

	Describe("employee creation", func() {
		DescribeTable("rejects payloads missing a required field without persisting",
			func(body string) {
				before := countEmployees()
				rec := do(http.MethodPost, "/employees", hrToken, body)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(rec.Body.String()).To(ContainSubstring("Missing required fields"))
				Expect(countEmployees()).To(Equal(before))
			},
			Entry("first_name", `{"last_name":"L","email":"n@corp.io","job_name":"j"}`),
			Entry("last_name", `{"first_name":"F","email":"n@corp.io","job_name":"j"}`),
			Entry("email", `{"first_name":"F","last_name":"L","job_name":"j"}`),
			Entry("job_name", `{"first_name":"F","last_name":"L","email":"n@corp.io"}`),
		)

		It("rejects a second employee with the same email", func() {
			body := `{"first_name":"F","last_name":"L","email":"dup@corp.io","job_name":"j"}`
			Expect(do(http.MethodPost, "/employees", hrToken, body).Code).To(Equal(http.StatusCreated))
			rec := do(http.MethodPost, "/employees", hrToken, body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring(`{"error":"email already exists"}`))
		})

		It("round-trips the birth date", func() {
			rec := do(http.MethodPost, "/employees", hrToken,
				`{"first_name":"F","last_name":"L","email":"dob@corp.io","job_name":"j","date_of_birth":"1990-05-01"}`)
			Expect(rec.Code).To(Equal(http.StatusCreated))
			var created employee.Employee
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())

			rec = do(http.MethodGet, fmt.Sprintf("/employees/%d", created.ID), hrToken, "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"date_of_birth":"1990-05-01"`))
		})
	})

	Describe("login", func() {
		It("answers wrong password and unknown email identically", func() {
			wrong := do(http.MethodPost, "/auth/login", "", `{"email":"bob@corp.io","password":"nope"}`)
			unknown := do(http.MethodPost, "/auth/login", "", `{"email":"ghost@corp.io","password":"nope"}`)
			Expect(wrong.Code).To(Equal(http.StatusUnauthorized))
			Expect(unknown.Code).To(Equal(http.StatusUnauthorized))
			Expect(wrong.Body.String()).To(Equal(unknown.Body.String()))
		})

		It("refuses a deactivated account with 403", func() {
			rec := do(http.MethodPut, fmt.Sprintf("/employees/%d", bobID), hrToken,
				`{"first_name":"Bob","last_name":"Test","email":"bob@corp.io","job_name":"Staff","active":"No"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			rec = do(http.MethodPost, "/auth/login", "", `{"email":"bob@corp.io","password":"bob-pass"}`)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("returns the caller's profile", func() {
			rec := do(http.MethodGet, "/auth/profile", login("bob@corp.io", "bob-pass"), "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"email":"bob@corp.io"`))
		})
	})

	Describe("access gate", func() {
		var bobToken string

		BeforeEach(func() {
			bobToken = login("bob@corp.io", "bob-pass")
		})

		It("requires a token", func() {
			rec := do(http.MethodGet, "/employees", "", "")
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring(`"error"`))
		})

		It("rejects writes at the gate without waiting on the database", func() {
			held := db.Begin()
			Expect(held.Error).NotTo(HaveOccurred())
			defer held.Rollback()

			send := func(token string) int {
				ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
				defer cancel()
				req := httptest.NewRequest(http.MethodPost, "/employees",
					strings.NewReader(`{"first_name":"Eve","last_name":"Test","email":"eve@corp.io","job_name":"Staff"}`)).WithContext(ctx)
				if token != "" {
					req.Header.Set("Authorization", "Bearer "+token)
				}
				rec := httptest.NewRecorder()
				a.Router.ServeHTTP(rec, req)
				return rec.Code
			}

			Expect(send("")).To(Equal(http.StatusUnauthorized))
			Expect(send(bobToken)).To(Equal(http.StatusForbidden))
		})

		It("keeps employees out of hr-only routes", func() {
			Expect(do(http.MethodGet, "/employees", bobToken, "").Code).To(Equal(http.StatusForbidden))
			Expect(do(http.MethodGet, "/analytics/churn-rate", bobToken, "").Code).To(Equal(http.StatusForbidden))
		})

		It("lets an employee read only their own record", func() {
			Expect(do(http.MethodGet, fmt.Sprintf("/employees/%d", bobID), bobToken, "").Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, fmt.Sprintf("/employees/%d", catID), bobToken, "").Code).To(Equal(http.StatusForbidden))
		})

		It("lets an employee file vacations only for themselves", func() {
			own := fmt.Sprintf(`{"fk_employee":%d,"start_date":"2024-07-01","end_date":"2024-07-05"}`, bobID)
			Expect(do(http.MethodPost, "/vacations", bobToken, own).Code).To(Equal(http.StatusCreated))

			other := fmt.Sprintf(`{"fk_employee":%d,"start_date":"2024-07-01","end_date":"2024-07-05"}`, catID)
			Expect(do(http.MethodPost, "/vacations", bobToken, other).Code).To(Equal(http.StatusForbidden))
		})

		It("resolves vacation ownership for reads", func() {
			own := fmt.Sprintf(`{"fk_employee":%d,"start_date":"2024-07-01","end_date":"2024-07-05"}`, catID)
			Expect(do(http.MethodPost, "/vacations", hrToken, own).Code).To(Equal(http.StatusCreated))

			Expect(do(http.MethodGet, "/vacations/1", bobToken, "").Code).To(Equal(http.StatusForbidden))
			Expect(do(http.MethodGet, "/vacations/1", login("cat@corp.io", "cat-pass"), "").Code).To(Equal(http.StatusOK))
		})

		It("rejects a token with an unknown role as unauthenticated", func() {
			token, err := a.Tokens.GenerateAccessToken(auth.Principal{EmployeeID: bobID, Role: "admin"})
			Expect(err).NotTo(HaveOccurred())
			Expect(do(http.MethodGet, fmt.Sprintf("/employees/%d", bobID), token, "").Code).To(Equal(http.StatusUnauthorized))
		})

		It("reports a token without a usable identity as 422", func() {
			token, err := a.Tokens.GenerateAccessToken(auth.Principal{EmployeeID: 0, Role: auth.RoleEmployee})
			Expect(err).NotTo(HaveOccurred())
			Expect(do(http.MethodGet, "/auth/profile", token, "").Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("keeps set-password hr-only", func() {
			rec := do(http.MethodPost, fmt.Sprintf("/auth/set-password/%d", catID), bobToken, `{"password":"x"}`)
			Expect(rec.Code).To(Equal(http.StatusForbidden))

			rec = do(http.MethodPost, fmt.Sprintf("/auth/set-password/%d", catID), hrToken, `{"password":"fresh"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			login("cat@corp.io", "fresh")
		})
	})

	Describe("vacations", func() {
		It("rejects an unknown employee without persisting", func() {
			rec := do(http.MethodPost, "/vacations", hrToken, `{"fk_employee":999,"start_date":"2024-07-01","end_date":"2024-07-02"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("employee 999 not found"))

			var n int64
			Expect(db.Model(&vacationDatamodel.Vacation{}).Count(&n).Error).To(Succeed())
			Expect(n).To(BeZero())
		})

		It("leaves the stored status unchanged on an unknown status", func() {
			body := fmt.Sprintf(`{"fk_employee":%d,"start_date":"2024-07-01","end_date":"2024-07-02"}`, bobID)
			Expect(do(http.MethodPost, "/vacations", hrToken, body).Code).To(Equal(http.StatusCreated))

			rec := do(http.MethodPut, "/vacations/1", hrToken, `{"status":"Cancelled"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var v vacationDatamodel.Vacation
			Expect(db.First(&v, "vacation_id = ?", 1).Error).To(Succeed())
			Expect(v.Status).To(Equal(vacationDatamodel.StatusPending))
		})
	})

	Describe("analytics", func() {
		It("returns zero averages when no birth or employment dates exist", func() {
			rec := do(http.MethodGet, "/analytics/average-age", hrToken, "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(strings.TrimSpace(rec.Body.String())).To(Equal(`{"average_age":0}`))

			rec = do(http.MethodGet, "/analytics/churn-rate", hrToken, "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(strings.TrimSpace(rec.Body.String())).To(Equal(`{"churn_rate":0}`))
		})
	})

	Describe("public surface", func() {
		It("serves health and the API description", func() {
			Expect(do(http.MethodGet, "/api/v1/ping", "", "").Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, "/api/v1/health", "", "").Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, "/openapi.json", "", "").Code).To(Equal(http.StatusOK))
		})

		It("answers CORS preflight for the frontend origin", func() {
			req := httptest.NewRequest(http.MethodOptions, "/employees", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			a.Router.ServeHTTP(rec, req)
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
		})
	})

	It("seeded the hr account", func() {
		Expect(hrID).To(BeNumerically(">", 0))
	})
})
