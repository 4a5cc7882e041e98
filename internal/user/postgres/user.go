package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vyrtus/helpdesk/internal"
	"github.com/vyrtus/helpdesk/internal/auth"
	"github.com/vyrtus/helpdesk/internal/user"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List() ([]*auth.User, error) {
	var users []*auth.User
	if err := r.db.Order("nome ASC").Find(&users).Error; err != nil {
		return nil, internal.NewExternalError("failed to list users", err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(id string) (*auth.User, error) {
	var u auth.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewExternalError("user lookup failed", err)
	}
	return &u, nil
}

func (r *UserRepository) UpdatePermissions(id string, perms auth.Permissions) error {
	res := r.db.Model(&auth.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"pode_editar_campos":      perms.CanEditAllFields,
			"pode_excluir_chamados":   perms.CanDeleteTickets,
			"pode_gerenciar_usuarios": perms.CanManageUsers,
			"pode_ver_dashboard":      perms.CanViewDashboard,
			"pode_ver_chamados":       perms.CanViewTickets,
			"pode_ver_ativos":         perms.CanViewAssets,
			"pode_ver_admin":          perms.CanViewAdmin,
			"data_atualizacao":        time.Now(),
		})
	if res.Error != nil {
		return internal.NewExternalError("failed to update permissions", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}
