package asset

import (
	"strings"
	"time"
)

// Asset is an inventory-tracked piece of client equipment. The id is the
// six-digit inventory code, not a surrogate key.
type Asset struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	ClientID        string     `json:"client_id" gorm:"column:cliente_id;not null;index"`
	Type            string     `json:"type" gorm:"column:tipo"`
	Brand           string     `json:"brand" gorm:"column:marca"`
	Model           string     `json:"model" gorm:"column:modelo"`
	SerialNumber    string     `json:"serial_number" gorm:"column:numero_serie"`
	LastMaintenance *time.Time `json:"last_maintenance,omitempty" gorm:"column:ultima_manutencao"`
}

func (Asset) TableName() string {
	return "ativos"
}

// MatchesQuery reports whether the asset matches a free-text query with a
// case-insensitive substring check across id, brand, model and serial
// number. An empty query matches everything.
func (a *Asset) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{a.ID, a.Brand, a.Model, a.SerialNumber} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// FilterByQuery applies MatchesQuery over a catalog slice.
func FilterByQuery(assets []*Asset, query string) []*Asset {
	if query == "" {
		return assets
	}
	filtered := make([]*Asset, 0, len(assets))
	for _, a := range assets {
		if a.MatchesQuery(query) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// ReconcileSelection drops selected asset ids that are not in the available
// set. Used when a ticket's client changes so no cross-client links survive
// the switch.
func ReconcileSelection(selected []string, available []*Asset) []string {
	owned := make(map[string]struct{}, len(available))
	for _, a := range available {
		owned[a.ID] = struct{}{}
	}

	kept := make([]string, 0, len(selected))
	for _, id := range selected {
		if _, ok := owned[id]; ok {
			kept = append(kept, id)
		}
	}
	return kept
}
