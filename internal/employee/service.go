package employee

import (
	"log/slog"

	errors "github.com/frahmantamala/employee-management/internal"
	departmentDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
)

// RepositoryAPI is the persistence contract for employees. List applies the
// department-name filter, sorting and pagination in SQL and reports the total
// count of the filtered set.
type RepositoryAPI interface {
	Create(row *employeeDatamodel.Employee) error
	GetByID(id int64) (*employeeDatamodel.Employee, error)
	GetByEmail(email string) (*employeeDatamodel.Employee, error)
	GetByDepartmentID(departmentID int64) ([]*employeeDatamodel.Employee, error)
	List(departmentName string, orderBy string, limit, offset int) ([]*employeeDatamodel.Employee, int64, error)
	Update(row *employeeDatamodel.Employee) error
	Delete(id int64) error
}

// DepartmentReader resolves department references: existence checks at write
// time and names for denormalized responses.
type DepartmentReader interface {
	GetByID(id int64) (*departmentDatamodel.Department, error)
}

type Service struct {
	repo        RepositoryAPI
	departments DepartmentReader
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, departments DepartmentReader, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		logger:      logger,
	}
}

func (s *Service) Create(dto EmployeeDTO) (*EmployeeResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	deptName, err := s.resolveDepartment(dto.DepartmentID)
	if err != nil {
		return nil, err
	}

	if existing, emailErr := s.repo.GetByEmail(dto.Email); emailErr == nil && existing != nil {
		return nil, errors.ErrDuplicateEmail
	}

	emp := NewEmployee(dto)
	row := ToDataModel(emp)
	if err := s.repo.Create(row); err != nil {
		return nil, s.storeError("create employee", err)
	}
	emp.ID = row.ID

	s.logger.Info("employee created", "employee_id", emp.ID, "email", dto.Email)

	resp := emp.ToResponse(deptName)
	return &resp, nil
}

func (s *Service) GetAll(query ListQuery) (*PagedEmployees, error) {
	orderBy, err := query.Normalize()
	if err != nil {
		return nil, err
	}

	offset := query.Page * query.PageSize
	rows, total, err := s.repo.List(query.DepartmentName, orderBy, query.PageSize, offset)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, errors.NewInternalError("failed to list employees", err)
	}

	items := make([]EmployeeResponse, 0, len(rows))
	names := map[int64]*string{}
	for _, emp := range FromDataModelSlice(rows) {
		var deptName *string
		if emp.DepartmentID != nil {
			cached, ok := names[*emp.DepartmentID]
			if !ok {
				cached, err = s.departmentName(*emp.DepartmentID)
				if err != nil {
					return nil, err
				}
				names[*emp.DepartmentID] = cached
			}
			deptName = cached
		}
		items = append(items, emp.ToResponse(deptName))
	}

	totalPages := total / int64(query.PageSize)
	if total%int64(query.PageSize) != 0 {
		totalPages++
	}

	return &PagedEmployees{
		Items:         items,
		Page:          query.Page,
		PageSize:      query.PageSize,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (s *Service) GetByID(id int64) (*EmployeeResponse, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	emp := FromDataModel(row)
	var deptName *string
	if emp.DepartmentID != nil {
		deptName, err = s.departmentName(*emp.DepartmentID)
		if err != nil {
			return nil, err
		}
	}

	resp := emp.ToResponse(deptName)
	return &resp, nil
}

func (s *Service) Update(id int64, dto EmployeeDTO) (*EmployeeResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	deptName, err := s.resolveDepartment(dto.DepartmentID)
	if err != nil {
		return nil, err
	}

	if existing, emailErr := s.repo.GetByEmail(dto.Email); emailErr == nil && existing != nil && existing.ID != id {
		return nil, errors.ErrDuplicateEmail
	}

	emp := FromDataModel(row)
	emp.ApplyUpdate(dto)

	if err := s.repo.Update(ToDataModel(emp)); err != nil {
		return nil, s.storeError("update employee", err)
	}

	s.logger.Info("employee updated", "employee_id", id)

	resp := emp.ToResponse(deptName)
	return &resp, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return errors.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// resolveDepartment checks the reference exists and returns its name for the
// denormalized response. A nil reference is valid.
func (s *Service) resolveDepartment(departmentID *int64) (*string, error) {
	if departmentID == nil {
		return nil, nil
	}
	dept, err := s.departments.GetByID(*departmentID)
	if err != nil {
		return nil, err
	}
	return &dept.Name, nil
}

func (s *Service) departmentName(departmentID int64) (*string, error) {
	dept, err := s.departments.GetByID(departmentID)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Type == errors.ErrorTypeNotFound {
			// Reference already cleared by a concurrent department delete.
			return nil, nil
		}
		return nil, errors.NewInternalError("failed to resolve department name", err)
	}
	return &dept.Name, nil
}

func (s *Service) storeError(op string, err error) error {
	if appErr, ok := errors.IsAppError(err); ok {
		return appErr
	}
	s.logger.Error("store operation failed", "op", op, "error", err)
	return errors.NewInternalError(op+" failed", err)
}
