package department

import (
	"strings"

	errors "github.com/frahmantamala/employee-management/internal"
)

const maxNameLength = 100

// DepartmentDTO is the request payload for creating or updating a department.
type DepartmentDTO struct {
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
}

func (d DepartmentDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.NewValidationError("name must not be blank", errors.ErrCodeInvalidName)
	}
	if len(d.Name) > maxNameLength {
		return errors.NewValidationError("name must not exceed 100 characters", errors.ErrCodeInvalidName)
	}
	return nil
}

// EmployeeSummary is the denormalized employee view attached to department
// responses.
type EmployeeSummary struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Salary    float64 `json:"salary"`
}

// DepartmentResponse is the API shape, with member employees attached.
type DepartmentResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Location  *string           `json:"location,omitempty"`
	Employees []EmployeeSummary `json:"employees,omitempty"`
}

func (d *Department) ToResponse(employees []EmployeeSummary) DepartmentResponse {
	return DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		Location:  d.Location,
		Employees: employees,
	}
}
