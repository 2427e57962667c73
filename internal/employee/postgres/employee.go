package postgres

import (
	stderrors "errors"
	"strings"
	"time"

	"gorm.io/gorm"

	errors "github.com/frahmantamala/employee-management/internal"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/employee"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(row *employeeDatamodel.Employee) error {
	if err := r.db.Create(row).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *EmployeeRepository) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	var row employeeDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*employeeDatamodel.Employee, error) {
	var row employeeDatamodel.Employee
	err := r.db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *EmployeeRepository) GetByDepartmentID(departmentID int64) ([]*employeeDatamodel.Employee, error) {
	var rows []*employeeDatamodel.Employee
	err := r.db.Where("department_id = ?", departmentID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// List applies the optional department-name filter (exact, case-sensitive,
// in SQL), the whitelisted ORDER BY and limit/offset, and counts the full
// filtered set.
func (r *EmployeeRepository) List(departmentName string, orderBy string, limit, offset int) ([]*employeeDatamodel.Employee, int64, error) {
	base := r.db.Model(&employeeDatamodel.Employee{})
	if departmentName != "" {
		base = base.Joins("JOIN departments ON departments.id = employees.department_id").
			Where("departments.name = ?", departmentName)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*employeeDatamodel.Employee
	err := base.Order(orderBy).
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *EmployeeRepository) Update(row *employeeDatamodel.Employee) error {
	row.UpdatedAt = time.Now()
	// Save skips nil fields on Updates; use Select to persist a cleared
	// department reference as well.
	err := r.db.Model(&employeeDatamodel.Employee{ID: row.ID}).
		Select("first_name", "last_name", "email", "phone", "salary", "department_id", "updated_at").
		Updates(map[string]interface{}{
			"first_name":    row.FirstName,
			"last_name":     row.LastName,
			"email":         row.Email,
			"phone":         row.Phone,
			"salary":        row.Salary,
			"department_id": row.DepartmentID,
			"updated_at":    row.UpdatedAt,
		}).Error
	if err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *EmployeeRepository) Delete(id int64) error {
	res := r.db.Where("id = ?", id).Delete(&employeeDatamodel.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrEmployeeNotFound
	}
	return nil
}

// translateDuplicate maps unique-index violations to the conflict error so a
// losing concurrent writer surfaces a 409, not a 500.
func translateDuplicate(err error) error {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.ErrDuplicateEmail
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed") {
		return errors.ErrDuplicateEmail
	}
	return err
}
