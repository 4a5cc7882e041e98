package user

import (
	"log/slog"

	"github.com/vyrtus/helpdesk/internal"
	"github.com/vyrtus/helpdesk/internal/auth"
)

// Repository is the data access surface for user management.
type Repository interface {
	List() ([]*auth.User, error)
	GetByID(id string) (*auth.User, error)
	UpdatePermissions(id string, perms auth.Permissions) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List() ([]*auth.User, error) {
	users, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) GetByID(id string) (*auth.User, error) {
	return s.repo.GetByID(id)
}

// UpdatePermissions replaces the target user's permission flag set. An actor
// cannot revoke the admin view from their own account, so an administrator
// cannot lock themselves out of the panel that would undo the mistake.
func (s *Service) UpdatePermissions(id string, dto UpdatePermissionsDTO, actor *auth.User) (*auth.User, error) {
	target, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if actor != nil && actor.ID == target.ID && actor.Permissions.CanViewAdmin && !dto.CanViewAdmin {
		s.logger.Warn("permission update rejected: self admin-view revoke", "user_id", actor.ID)
		return nil, internal.ErrSelfAdminRevoke
	}

	perms := auth.Permissions{
		CanEditAllFields: dto.CanEditAllFields,
		CanDeleteTickets: dto.CanDeleteTickets,
		CanManageUsers:   dto.CanManageUsers,
		CanViewDashboard: dto.CanViewDashboard,
		CanViewTickets:   dto.CanViewTickets,
		CanViewAssets:    dto.CanViewAssets,
		CanViewAdmin:     dto.CanViewAdmin,
	}

	if err := s.repo.UpdatePermissions(id, perms); err != nil {
		s.logger.Error("failed to update permissions", "error", err, "user_id", id)
		return nil, err
	}

	target.Permissions = perms

	s.logger.Info("permissions updated",
		"user_id", id,
		"actor_id", actorID(actor),
		"can_view_admin", perms.CanViewAdmin)

	return target, nil
}

func actorID(actor *auth.User) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}
