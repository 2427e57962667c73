package postgres

import (
	stderrors "errors"
	"strings"
	"time"

	"gorm.io/gorm"

	errors "github.com/frahmantamala/employee-management/internal"
	departmentDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/department"
	"github.com/frahmantamala/employee-management/internal/department"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
)

// DepartmentRepository implements department.RepositoryAPI using GORM
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*departmentDatamodel.Department, error) {
	var rows []*departmentDatamodel.Department
	err := r.db.Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *DepartmentRepository) GetByID(id int64) (*departmentDatamodel.Department, error) {
	var row departmentDatamodel.Department
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *DepartmentRepository) GetByName(name string) (*departmentDatamodel.Department, error) {
	var row departmentDatamodel.Department
	err := r.db.Where("name = ?", name).First(&row).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *DepartmentRepository) Create(row *departmentDatamodel.Department) error {
	if err := r.db.Create(row).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *DepartmentRepository) Update(row *departmentDatamodel.Department) error {
	row.UpdatedAt = time.Now()
	// Save would re-insert a row that vanished between the service's read
	// and this write; an explicit update keeps RowsAffected meaningful.
	res := r.db.Model(&departmentDatamodel.Department{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"name":       row.Name,
			"location":   row.Location,
			"updated_at": row.UpdatedAt,
		})
	if res.Error != nil {
		return translateDuplicate(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrDepartmentNotFound
	}
	return nil
}

// DeleteWithUnlink clears the department reference on member employees and
// removes the department row in one transaction. Either both writes apply or
// neither does.
func (r *DepartmentRepository) DeleteWithUnlink(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&employeeDatamodel.Employee{}).
			Where("department_id = ?", id).
			Updates(map[string]interface{}{
				"department_id": nil,
				"updated_at":    time.Now(),
			}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&departmentDatamodel.Department{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.ErrDepartmentNotFound
		}
		return nil
	})
}

// translateDuplicate maps unique-index violations to the conflict error so a
// losing concurrent writer surfaces a 409, not a 500.
func translateDuplicate(err error) error {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.ErrDuplicateName
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed") {
		return errors.ErrDuplicateName
	}
	return err
}
