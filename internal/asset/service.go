package asset

import "log/slog"

type Repository interface {
	List() ([]*Asset, error)
	ByClient(clientID string) ([]*Asset, error)
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

func (s *Service) List() ([]*Asset, error) {
	assets, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list assets", "error", err)
		return nil, err
	}
	return assets, nil
}

// Search restricts the catalog to the client (when given), then applies the
// free-text filter across id, brand, model and serial number.
func (s *Service) Search(clientID, query string) ([]*Asset, error) {
	assets, err := s.availableFor(clientID)
	if err != nil {
		s.logger.Error("failed to search assets", "error", err, "client_id", clientID)
		return nil, err
	}
	return FilterByQuery(assets, query), nil
}

// ReconcileSelection drops the selected asset ids that do not belong to the
// client. Called on client switch to keep ticket links consistent.
func (s *Service) ReconcileSelection(selected []string, clientID string) ([]string, error) {
	available, err := s.availableFor(clientID)
	if err != nil {
		return nil, err
	}
	return ReconcileSelection(selected, available), nil
}

func (s *Service) availableFor(clientID string) ([]*Asset, error) {
	if clientID == "" {
		return s.repo.List()
	}
	return s.repo.ByClient(clientID)
}
