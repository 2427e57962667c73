package auth

import (
	"context"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/employee-management/internal"
)

// Operation names every gated action in the system. The policy table below
// is the single source of truth for which roles may invoke which operation.
type Operation string

const (
	OpDepartmentCreate Operation = "department.create"
	OpDepartmentList   Operation = "department.list"
	OpDepartmentGet    Operation = "department.get"
	OpDepartmentUpdate Operation = "department.update"
	OpDepartmentDelete Operation = "department.delete"

	OpEmployeeCreate Operation = "employee.create"
	OpEmployeeList   Operation = "employee.list"
	OpEmployeeGet    Operation = "employee.get"
	OpEmployeeUpdate Operation = "employee.update"
	OpEmployeeDelete Operation = "employee.delete"
)

// policy is fixed at compile time; it is data, not code, so it can be tested
// independently of any handler.
var policy = map[Operation][]Role{
	OpDepartmentCreate: {RoleAdmin},
	OpDepartmentList:   {RoleAdmin, RoleUser},
	OpDepartmentGet:    {RoleAdmin, RoleUser},
	OpDepartmentUpdate: {RoleAdmin},
	OpDepartmentDelete: {RoleAdmin},

	OpEmployeeCreate: {RoleAdmin},
	OpEmployeeList:   {RoleAdmin, RoleUser},
	OpEmployeeGet:    {RoleAdmin, RoleUser},
	OpEmployeeUpdate: {RoleAdmin},
	OpEmployeeDelete: {RoleAdmin},
}

type ctxKey string

const ContextIdentityKey ctxKey = "identity"

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ContextIdentityKey).(*Identity)
	return id, ok
}

// Authorizer checks an identity against the policy table.
type Authorizer struct {
	logger *slog.Logger
}

func NewAuthorizer(logger *slog.Logger) *Authorizer {
	return &Authorizer{logger: logger}
}

// Authorize returns nil when the identity's role may invoke op. An absent
// identity is unauthenticated; a known identity with the wrong role is
// forbidden.
func (a *Authorizer) Authorize(identity *Identity, op Operation) error {
	if identity == nil {
		return errors.ErrUnauthenticated
	}

	allowed, ok := policy[op]
	if !ok {
		// Unknown operations are never reachable.
		return errors.ErrForbidden
	}

	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}

	a.logger.Warn("access denied",
		"username", identity.Username,
		"role", identity.Role,
		"operation", op)
	return errors.ErrForbidden
}

// Require builds chi middleware gating a route on the policy entry for op.
// It assumes AuthMiddleware already placed the identity in the context.
func (a *Authorizer) Require(op Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := IdentityFromContext(r.Context())
			if err := a.Authorize(identity, op); err != nil {
				writeAuthError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
