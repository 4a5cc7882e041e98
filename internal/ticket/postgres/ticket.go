package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vyrtus/helpdesk/internal"
	"github.com/vyrtus/helpdesk/internal/ticket"
)

// AssetLink is a row in the ticket↔asset join table.
type AssetLink struct {
	TicketID string `gorm:"column:chamado_id;primaryKey"`
	AssetID  string `gorm:"column:ativo_id;primaryKey"`
}

func (AssetLink) TableName() string {
	return "chamado_ativos"
}

// TicketRepository implements ticket.Repository using GORM.
type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) ticket.Repository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) List() ([]*ticket.Ticket, error) {
	var tickets []*ticket.Ticket
	err := r.db.Preload("Attachments").
		Order("data_criacao DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, internal.NewExternalError("failed to list tickets", err)
	}

	if err := r.loadAssetLinks(tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *TicketRepository) GetByID(id string) (*ticket.Ticket, error) {
	var t ticket.Ticket
	err := r.db.Preload("Attachments").Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTicketNotFound
		}
		return nil, internal.NewExternalError("ticket lookup failed", err)
	}

	if err := r.loadAssetLinks([]*ticket.Ticket{&t}); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateWithActivity persists the ticket, its asset links and the opening
// activity in one transaction.
func (r *TicketRepository) CreateWithActivity(t *ticket.Ticket, a *ticket.Activity) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Attachments").Create(t).Error; err != nil {
			return err
		}
		if err := replaceAssetLinks(tx, t.ID, t.AssetIDs); err != nil {
			return err
		}
		if a != nil {
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return internal.NewExternalError("failed to create ticket", err)
	}
	return nil
}

// UpdateWithActivity saves the full merged record; the status-change activity
// (when present) lands in the same transaction.
func (r *TicketRepository) UpdateWithActivity(t *ticket.Ticket, a *ticket.Activity) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Attachments").Save(t).Error; err != nil {
			return err
		}
		if err := replaceAssetLinks(tx, t.ID, t.AssetIDs); err != nil {
			return err
		}
		if a != nil {
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return internal.NewExternalError("failed to update ticket", err)
	}
	return nil
}

// ActivitiesByTicket returns the log in insertion order; data_criacao breaks
// ties the same way for rows created in one transaction.
func (r *TicketRepository) ActivitiesByTicket(ticketID string) ([]*ticket.Activity, error) {
	var activities []*ticket.Activity
	err := r.db.Where("chamado_id = ?", ticketID).
		Order("data_criacao ASC").
		Find(&activities).Error
	if err != nil {
		return nil, internal.NewExternalError("failed to list activities", err)
	}
	return activities, nil
}

func (r *TicketRepository) CreateActivity(a *ticket.Activity) error {
	if err := r.db.Create(a).Error; err != nil {
		return internal.NewExternalError("failed to create activity", err)
	}
	return nil
}

// AddAttachment stores the metadata row and its ATTACHMENT activity
// together.
func (r *TicketRepository) AddAttachment(att *ticket.Attachment, a *ticket.Activity) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(att).Error; err != nil {
			return err
		}
		if a != nil {
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return internal.NewExternalError("failed to add attachment", err)
	}
	return nil
}

func replaceAssetLinks(tx *gorm.DB, ticketID string, assetIDs []string) error {
	if err := tx.Where("chamado_id = ?", ticketID).Delete(&AssetLink{}).Error; err != nil {
		return err
	}
	for _, assetID := range assetIDs {
		if err := tx.Create(&AssetLink{TicketID: ticketID, AssetID: assetID}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *TicketRepository) loadAssetLinks(tickets []*ticket.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	ids := make([]string, len(tickets))
	byID := make(map[string]*ticket.Ticket, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
		byID[t.ID] = t
		t.AssetIDs = []string{}
	}

	var links []AssetLink
	if err := r.db.Where("chamado_id IN ?", ids).Order("ativo_id ASC").Find(&links).Error; err != nil {
		return internal.NewExternalError("failed to load asset links", err)
	}

	for _, link := range links {
		if t, ok := byID[link.TicketID]; ok {
			t.AssetIDs = append(t.AssetIDs, link.AssetID)
		}
	}
	return nil
}
