package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vyrtus/helpdesk/internal"
	"github.com/vyrtus/helpdesk/internal/client"
)

// ClientRepository implements client.Repository using GORM.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) client.Repository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List() ([]*client.Client, error) {
	var clients []*client.Client
	err := r.db.Preload("Requesters", func(db *gorm.DB) *gorm.DB {
		return db.Order("solicitantes.id ASC")
	}).Order("nome ASC").Find(&clients).Error
	if err != nil {
		return nil, internal.NewExternalError("failed to list clients", err)
	}
	return clients, nil
}

func (r *ClientRepository) GetByID(id string) (*client.Client, error) {
	var c client.Client
	err := r.db.Preload("Requesters").Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrClientNotFound
		}
		return nil, internal.NewExternalError("client lookup failed", err)
	}
	return &c, nil
}
