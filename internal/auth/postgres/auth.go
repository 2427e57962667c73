package postgres

import (
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/employee-management/internal/auth"
	userDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/user"
)

// Repository reads credential records. The auth service only ever needs the
// stored hash and role for a username.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredential(username string) (string, auth.Role, error) {
	var row userDatamodel.AppUser
	if err := r.db.Where("username = ?", username).First(&row).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", stderrors.New("user not found")
		}
		return "", "", err
	}
	return row.PasswordHash, auth.Role(row.Role), nil
}
