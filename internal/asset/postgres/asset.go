package postgres

import (
	"gorm.io/gorm"

	"github.com/vyrtus/helpdesk/internal"
	"github.com/vyrtus/helpdesk/internal/asset"
)

// AssetRepository implements asset.Repository using GORM.
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.Repository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) List() ([]*asset.Asset, error) {
	var assets []*asset.Asset
	if err := r.db.Order("id ASC").Find(&assets).Error; err != nil {
		return nil, internal.NewExternalError("failed to list assets", err)
	}
	return assets, nil
}

func (r *AssetRepository) ByClient(clientID string) ([]*asset.Asset, error) {
	var assets []*asset.Asset
	err := r.db.Where("cliente_id = ?", clientID).
		Order("id ASC").
		Find(&assets).Error
	if err != nil {
		return nil, internal.NewExternalError("failed to list client assets", err)
	}
	return assets, nil
}
