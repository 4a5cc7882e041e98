package client

import "log/slog"

type Repository interface {
	List() ([]*Client, error)
	GetByID(id string) (*Client, error)
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

// List returns all clients with their requester rosters, used to populate
// ticket forms.
func (s *Service) List() ([]*Client, error) {
	clients, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list clients", "error", err)
		return nil, err
	}
	return clients, nil
}

func (s *Service) GetByID(id string) (*Client, error) {
	return s.repo.GetByID(id)
}
