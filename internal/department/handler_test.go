package department_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	departmentDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/department"
	departmentPostgres "github.com/frahmantamala/employee-management/internal/department/postgres"
	employeePostgres "github.com/frahmantamala/employee-management/internal/employee/postgres"
	"github.com/frahmantamala/employee-management/internal/transport"
)

var _ = Describe("Department Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *department.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&departmentDatamodel.Department{}, &employeeDatamodel.Employee{})
		Expect(err).NotTo(HaveOccurred())

		repo := departmentPostgres.NewDepartmentRepository(db)
		members := employeePostgres.NewEmployeeRepository(db)
		service := department.NewService(repo, members, slogger)
		handler = department.NewHandler(service)
		handler.BaseHandler = &transport.BaseHandler{Logger: slogger}

		router = chi.NewRouter()
		router.Get("/departments", handler.GetDepartments)
		router.Post("/departments", handler.CreateDepartment)
		router.Get("/departments/{id}", handler.GetDepartment)
		router.Put("/departments/{id}", handler.UpdateDepartment)
		router.Delete("/departments/{id}", handler.DeleteDepartment)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	createDepartment := func(name string) department.DepartmentResponse {
		body := strings.NewReader(`{"name": "` + name + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/departments", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var resp department.DepartmentResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp
	}

	It("should create a department and return 201", func() {
		resp := createDepartment("Engineering")
		Expect(resp.ID).To(BeNumerically(">", 0))
		Expect(resp.Name).To(Equal("Engineering"))
	})

	It("should list departments", func() {
		createDepartment("Engineering")
		createDepartment("Finance")

		req := httptest.NewRequest(http.MethodGet, "/departments", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var resp []department.DepartmentResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp).To(HaveLen(2))
	})

	It("should return 204 on delete", func() {
		created := createDepartment("Engineering")

		req := httptest.NewRequest(http.MethodDelete, "/departments/"+strconv.FormatInt(created.ID, 10), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
	})

	It("should return the uniform error payload for a missing department", func() {
		req := httptest.NewRequest(http.MethodGet, "/departments/99999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))

		var payload transport.ErrorResponse
		Expect(json.NewDecoder(w.Body).Decode(&payload)).To(Succeed())
		Expect(payload.Status).To(Equal(http.StatusNotFound))
		Expect(payload.Error).To(Equal("Not Found"))
		Expect(payload.Message).NotTo(BeEmpty())
		Expect(payload.Path).To(Equal("/departments/99999"))
		Expect(payload.Timestamp).NotTo(BeEmpty())
	})

	It("should return 409 on a duplicate name", func() {
		createDepartment("Engineering")

		body := strings.NewReader(`{"name": "Engineering"}`)
		req := httptest.NewRequest(http.MethodPost, "/departments", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusConflict))

		var payload transport.ErrorResponse
		Expect(json.NewDecoder(w.Body).Decode(&payload)).To(Succeed())
		Expect(payload.Error).To(Equal("Conflict"))
	})

	It("should return 400 for a non-numeric id", func() {
		req := httptest.NewRequest(http.MethodGet, "/departments/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 400 for a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader("{"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
