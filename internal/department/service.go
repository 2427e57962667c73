package department

import (
	"log/slog"

	errors "github.com/frahmantamala/employee-management/internal"
	departmentDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
)

// RepositoryAPI is the persistence contract for departments. DeleteWithUnlink
// must clear the department reference on member employees and remove the
// department inside one transaction.
type RepositoryAPI interface {
	GetAll() ([]*departmentDatamodel.Department, error)
	GetByID(id int64) (*departmentDatamodel.Department, error)
	GetByName(name string) (*departmentDatamodel.Department, error)
	Create(department *departmentDatamodel.Department) error
	Update(department *departmentDatamodel.Department) error
	DeleteWithUnlink(id int64) error
}

// MemberReader resolves the employees belonging to a department, for the
// summaries attached to responses.
type MemberReader interface {
	GetByDepartmentID(departmentID int64) ([]*employeeDatamodel.Employee, error)
}

type Service struct {
	repo    RepositoryAPI
	members MemberReader
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, members MemberReader, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		members: members,
		logger:  logger,
	}
}

func (s *Service) Create(dto DepartmentDTO) (*DepartmentResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, errors.ErrDuplicateName
	}

	dept := NewDepartment(dto.Name, dto.Location)
	row := ToDataModel(dept)
	if err := s.repo.Create(row); err != nil {
		return nil, s.storeError("create department", err)
	}
	dept.ID = row.ID

	s.logger.Info("department created", "department_id", dept.ID, "name", dto.Name)
	return s.respond(dept)
}

func (s *Service) GetAll() ([]DepartmentResponse, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, errors.NewInternalError("failed to list departments", err)
	}

	responses := make([]DepartmentResponse, 0, len(rows))
	for _, dept := range FromDataModelSlice(rows) {
		resp, err := s.respond(dept)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *Service) GetByID(id int64) (*DepartmentResponse, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.respond(FromDataModel(row))
}

func (s *Service) Update(id int64, dto DepartmentDTO) (*DepartmentResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if existing, nameErr := s.repo.GetByName(dto.Name); nameErr == nil && existing != nil && existing.ID != id {
		return nil, errors.ErrDuplicateName
	}

	dept := FromDataModel(row)
	dept.Rename(dto.Name, dto.Location)

	if err := s.repo.Update(ToDataModel(dept)); err != nil {
		return nil, s.storeError("update department", err)
	}

	s.logger.Info("department updated", "department_id", id)
	return s.respond(dept)
}

// Delete removes the department and clears the reference on every member
// employee. References are cleared, never cascaded.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.DeleteWithUnlink(id); err != nil {
		s.logger.Error("failed to delete department", "error", err, "department_id", id)
		return errors.NewInternalError("failed to delete department", err)
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}

func (s *Service) respond(dept *Department) (*DepartmentResponse, error) {
	members, err := s.members.GetByDepartmentID(dept.ID)
	if err != nil {
		s.logger.Error("failed to load department members", "error", err, "department_id", dept.ID)
		return nil, errors.NewInternalError("failed to load department members", err)
	}

	summaries := make([]EmployeeSummary, 0, len(members))
	for _, m := range members {
		summaries = append(summaries, EmployeeSummary{
			ID:        m.ID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Email:     m.Email,
			Salary:    m.Salary,
		})
	}

	resp := dept.ToResponse(summaries)
	return &resp, nil
}

func (s *Service) storeError(op string, err error) error {
	if appErr, ok := errors.IsAppError(err); ok {
		return appErr
	}
	s.logger.Error("store operation failed", "op", op, "error", err)
	return errors.NewInternalError(op+" failed", err)
}
