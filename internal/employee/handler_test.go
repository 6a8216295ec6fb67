package employee_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/hr-management/internal/department"
	departmentPostgres "github.com/frahmantamala/hr-management/internal/department/postgres"
	"github.com/frahmantamala/hr-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-management/internal/employee/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Employee Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db := openDB()
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		depts := department.NewService(departmentPostgres.NewDepartmentRepository(db), lg)
		svc := employee.NewService(employeePostgres.NewEmployeeRepository(db), depts, prefixHasher{}, nil, lg)
		handler := employee.NewHandler(svc, lg)

		router = chi.NewRouter()
		router.Get("/employees", handler.ListEmployees)
		router.Post("/employees", handler.CreateEmployee)
		router.Get("/employees/{employee_id}", handler.GetEmployee)
		router.Put("/employees/{employee_id}", handler.UpdateEmployee)
		router.Delete("/employees/{employee_id}", handler.DeleteEmployee)
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

	const ann = `{"first_name":"Ann","last_name":"Lee","email":"ann@corp.io","job_name":"Engineer",
		"date_of_birth":"1990-04-02","salary":"1500.50","gender":"female","password":"pw"}`

	It("creates an employee and renders dates without the password hash", func() {
		rec := do(http.MethodPost, "/employees", ann)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(rec.Body.String()).To(ContainSubstring(`"date_of_birth":"1990-04-02"`))
		Expect(rec.Body.String()).NotTo(ContainSubstring("password"))

		var created employee.Employee
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(created.ID).To(BeNumerically(">", 0))
		Expect(*created.Salary).To(BeNumerically("==", 1500.5))
	})

	It("lists missing required fields", func() {
		rec := do(http.MethodPost, "/employees", `{"first_name":"Ann"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("Missing required fields: last_name, email, job_name"))
	})

	It("rejects fields outside the allow-list", func() {
		rec := do(http.MethodPost, "/employees",
			`{"first_name":"A","last_name":"B","email":"a@b.io","job_name":"x","password_hash":"h"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("password_hash"))
	})

	It("rejects malformed dates and enums", func() {
		rec := do(http.MethodPost, "/employees",
			`{"first_name":"A","last_name":"B","email":"a@b.io","job_name":"x","date_of_birth":"02.04.1990"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))

		rec = do(http.MethodPost, "/employees",
			`{"first_name":"A","last_name":"B","email":"a@b.io","job_name":"x","gender":"other"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("gender"))
	})

	It("rejects a non-numeric salary", func() {
		rec := do(http.MethodPost, "/employees",
			`{"first_name":"A","last_name":"B","email":"a@b.io","job_name":"x","salary":"lots"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("answers 400 on a duplicate email", func() {
		Expect(do(http.MethodPost, "/employees", ann).Code).To(Equal(http.StatusCreated))
		rec := do(http.MethodPost, "/employees", ann)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring(`{"error":"email already exists"}`))
	})

	It("updates and deletes by id", func() {
		Expect(do(http.MethodPost, "/employees", ann).Code).To(Equal(http.StatusCreated))

		rec := do(http.MethodPut, "/employees/1",
			`{"first_name":"Ann","last_name":"Lee","email":"ann@corp.io","job_name":"Lead","active":"No"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"active":"No"`))
		Expect(rec.Body.String()).To(ContainSubstring(`"job_name":"Lead"`))

		rec = do(http.MethodDelete, "/employees/1", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"message":"Employee deleted"`))

		rec = do(http.MethodGet, "/employees/1", "")
		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(ContainSubstring(`{"error":"employee not found"}`))
	})

	It("clears optional fields sent as null and keeps absent ones", func() {
		Expect(do(http.MethodPost, "/employees", ann).Code).To(Equal(http.StatusCreated))

		rec := do(http.MethodPut, "/employees/1",
			`{"first_name":"Ann","last_name":"Lee","email":"ann@corp.io","job_name":"Engineer",
			"date_of_birth":null,"salary":null,"fk_department":null}`)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var updated employee.Employee
		Expect(json.Unmarshal(rec.Body.Bytes(), &updated)).To(Succeed())
		Expect(updated.DateOfBirth).To(BeNil())
		Expect(updated.Salary).To(BeNil())
		Expect(updated.DepartmentID).To(BeNil())
		Expect(updated.Gender).To(HaveValue(Equal("female")))
	})

	It("rejects a non-numeric id", func() {
		Expect(do(http.MethodGet, "/employees/abc", "").Code).To(Equal(http.StatusBadRequest))
	})
})
