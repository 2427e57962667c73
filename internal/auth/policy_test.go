package auth

import (
	"log/slog"
	"os"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/employee-management/internal"
)

var _ = ginkgo.Describe("Authorizer", func() {
	var (
		authorizer *Authorizer
		admin      *Identity
		user       *Identity
	)

	ginkgo.BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		authorizer = NewAuthorizer(logger)
		admin = &Identity{Username: "admin", Role: RoleAdmin}
		user = &Identity{Username: "jdoe", Role: RoleUser}
	})

	ginkgo.Context("with an admin identity", func() {
		ginkgo.It("should allow every operation", func() {
			ops := []Operation{
				OpDepartmentCreate, OpDepartmentList, OpDepartmentGet,
				OpDepartmentUpdate, OpDepartmentDelete,
				OpEmployeeCreate, OpEmployeeList, OpEmployeeGet,
				OpEmployeeUpdate, OpEmployeeDelete,
			}
			for _, op := range ops {
				gomega.Expect(authorizer.Authorize(admin, op)).To(gomega.Succeed())
			}
		})
	})

	ginkgo.Context("with a regular user identity", func() {
		ginkgo.It("should allow read operations", func() {
			ops := []Operation{
				OpDepartmentList, OpDepartmentGet,
				OpEmployeeList, OpEmployeeGet,
			}
			for _, op := range ops {
				gomega.Expect(authorizer.Authorize(user, op)).To(gomega.Succeed())
			}
		})

		ginkgo.It("should forbid every mutation", func() {
			ops := []Operation{
				OpDepartmentCreate, OpDepartmentUpdate, OpDepartmentDelete,
				OpEmployeeCreate, OpEmployeeUpdate, OpEmployeeDelete,
			}
			for _, op := range ops {
				gomega.Expect(authorizer.Authorize(user, op)).To(gomega.Equal(apperrors.ErrForbidden))
			}
		})
	})

	ginkgo.Context("without an identity", func() {
		ginkgo.It("should report unauthenticated, not forbidden", func() {
			err := authorizer.Authorize(nil, OpEmployeeList)
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrUnauthenticated))
		})
	})

	ginkgo.Context("with an operation missing from the policy table", func() {
		ginkgo.It("should deny even an admin", func() {
			err := authorizer.Authorize(admin, Operation("employee.export"))
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrForbidden))
		})
	})
})
