package employee

import (
	"regexp"
	"strings"

	errors "github.com/frahmantamala/employee-management/internal"
)

const maxNameLength = 50

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// EmployeeDTO is the request payload for creating or updating an employee.
type EmployeeDTO struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone,omitempty"`
	Salary       float64 `json:"salary"`
	DepartmentID *int64  `json:"department_id,omitempty"`
}

func (d EmployeeDTO) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" {
		return errors.NewValidationError("first_name must not be blank", errors.ErrCodeInvalidName)
	}
	if len(d.FirstName) > maxNameLength {
		return errors.NewValidationError("first_name must not exceed 50 characters", errors.ErrCodeInvalidName)
	}
	if strings.TrimSpace(d.LastName) == "" {
		return errors.NewValidationError("last_name must not be blank", errors.ErrCodeInvalidName)
	}
	if len(d.LastName) > maxNameLength {
		return errors.NewValidationError("last_name must not exceed 50 characters", errors.ErrCodeInvalidName)
	}
	if d.Email == "" {
		return errors.NewValidationError("email is required", errors.ErrCodeInvalidEmail)
	}
	if !emailPattern.MatchString(d.Email) {
		return errors.NewValidationError("email is not a valid address", errors.ErrCodeInvalidEmail)
	}
	if d.Phone != nil && *d.Phone != "" && !phonePattern.MatchString(*d.Phone) {
		return errors.NewValidationError("phone must be exactly 10 digits", errors.ErrCodeInvalidPhone)
	}
	if d.Salary <= 0 {
		return errors.NewValidationError("salary must be greater than zero", errors.ErrCodeInvalidSalary)
	}
	return nil
}

// normalizedPhone treats an empty string the same as an omitted phone, so the
// stored value is NULL either way.
func (d EmployeeDTO) normalizedPhone() *string {
	if d.Phone == nil || *d.Phone == "" {
		return nil
	}
	return d.Phone
}

// sortColumns whitelists the sortable fields; API names map to columns.
// Columns are table-qualified so the department join never makes the
// ORDER BY ambiguous. Anything else is a validation failure, never a
// silent fallback.
var sortColumns = map[string]string{
	"id":        "employees.id",
	"firstName": "employees.first_name",
	"lastName":  "employees.last_name",
	"email":     "employees.email",
	"phone":     "employees.phone",
	"salary":    "employees.salary",
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery carries the employee listing parameters: optional exact
// department-name filter, zero-indexed pagination and whitelisted sorting.
type ListQuery struct {
	DepartmentName string
	Page           int
	PageSize       int
	SortBy         string
	SortDir        string
}

// Normalize applies defaults and validates paging and sorting. It returns the
// ORDER BY clause derived from the whitelist.
func (q *ListQuery) Normalize() (orderBy string, err error) {
	if q.Page < 0 {
		return "", errors.NewValidationError("page must not be negative", errors.ErrCodeInvalidPaging)
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		return "", errors.NewValidationError("page_size must not exceed 100", errors.ErrCodeInvalidPaging)
	}

	if q.SortBy == "" {
		q.SortBy = "id"
	}
	column, ok := sortColumns[q.SortBy]
	if !ok {
		return "", errors.NewValidationError("unknown sort field: "+q.SortBy, errors.ErrCodeInvalidSortField)
	}

	if q.SortDir == "" {
		q.SortDir = SortAsc
	}
	dir := strings.ToLower(q.SortDir)
	if dir != SortAsc && dir != SortDesc {
		return "", errors.NewValidationError("sort direction must be asc or desc", errors.ErrCodeInvalidSortField)
	}
	q.SortDir = dir

	return column + " " + strings.ToUpper(dir), nil
}

// EmployeeResponse is the API shape with the denormalized department name.
type EmployeeResponse struct {
	ID             int64   `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	Salary         float64 `json:"salary"`
	DepartmentID   *int64  `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
}

// PagedEmployees is a single page plus the totals for the full filtered set.
type PagedEmployees struct {
	Items         []EmployeeResponse `json:"items"`
	Page          int                `json:"page"`
	PageSize      int                `json:"page_size"`
	TotalElements int64              `json:"total_elements"`
	TotalPages    int64              `json:"total_pages"`
}

func (e *Employee) ToResponse(departmentName *string) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Phone:          e.Phone,
		Salary:         e.Salary,
		DepartmentID:   e.DepartmentID,
		DepartmentName: departmentName,
	}
}
