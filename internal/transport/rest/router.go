package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/department"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/frahmantamala/employee-management/internal/transport/middleware"
	"github.com/frahmantamala/employee-management/internal/transport/swagger"
)

// RegisterAllRoutes wires every route. Each domain route sits behind the auth
// middleware and its policy-table entry; nothing in the domain surface is
// reachable without both.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	authorizer *auth.Authorizer,
	departmentHandler *department.Handler,
	employeeHandler *employee.Handler,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/departments", func(dr chi.Router) {
				dr.With(authorizer.Require(auth.OpDepartmentList)).Get("/", departmentHandler.GetDepartments)
				dr.With(authorizer.Require(auth.OpDepartmentCreate)).Post("/", departmentHandler.CreateDepartment)
				dr.With(authorizer.Require(auth.OpDepartmentGet)).Get("/{id}", departmentHandler.GetDepartment)
				dr.With(authorizer.Require(auth.OpDepartmentUpdate)).Put("/{id}", departmentHandler.UpdateDepartment)
				dr.With(authorizer.Require(auth.OpDepartmentDelete)).Delete("/{id}", departmentHandler.DeleteDepartment)
			})

			pr.Route("/employees", func(er chi.Router) {
				er.With(authorizer.Require(auth.OpEmployeeList)).Get("/", employeeHandler.GetEmployees)
				er.With(authorizer.Require(auth.OpEmployeeCreate)).Post("/", employeeHandler.CreateEmployee)
				er.With(authorizer.Require(auth.OpEmployeeGet)).Get("/{id}", employeeHandler.GetEmployee)
				er.With(authorizer.Require(auth.OpEmployeeUpdate)).Put("/{id}", employeeHandler.UpdateEmployee)
				er.With(authorizer.Require(auth.OpEmployeeDelete)).Delete("/{id}", employeeHandler.DeleteEmployee)
			})
		})
	})
}
