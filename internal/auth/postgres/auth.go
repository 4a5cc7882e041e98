package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vyrtus/helpdesk/internal"
	"github.com/vyrtus/helpdesk/internal/auth"
)

// Repository implements auth.Repository using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(email string) (*auth.User, error) {
	var user auth.User
	err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewExternalError("user lookup failed", err)
	}
	return &user, nil
}

func (r *Repository) GetByID(id string) (*auth.User, error) {
	var user auth.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewExternalError("user lookup failed", err)
	}
	return &user, nil
}
