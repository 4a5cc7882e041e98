package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vyrtus/helpdesk/internal"
	"github.com/vyrtus/helpdesk/internal/core/events"
)

const openedActivityContent = "Chamado aberto no sistema."

// Repository is the data access surface for tickets and their activities.
// The *WithActivity methods persist both records in one transaction so a
// ticket can never exist without its "opened" entry, and a status change can
// never lose its log line.
type Repository interface {
	List() ([]*Ticket, error)
	GetByID(id string) (*Ticket, error)
	CreateWithActivity(t *Ticket, a *Activity) error
	UpdateWithActivity(t *Ticket, a *Activity) error
	ActivitiesByTicket(ticketID string) ([]*Activity, error)
	CreateActivity(a *Activity) error
	AddAttachment(att *Attachment, a *Activity) error
}

// AssetCatalog resolves which of the selected asset ids belong to a client.
// Satisfied by asset.Service.
type AssetCatalog interface {
	ReconcileSelection(selected []string, clientID string) ([]string, error)
}

type Service struct {
	repo   Repository
	assets AssetCatalog
	events *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, assets AssetCatalog, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		assets: assets,
		events: bus,
		logger: logger,
	}
}

// List returns tickets filtered by bucket; BucketAll returns everything.
func (s *Service) List(bucket Bucket) ([]*Ticket, error) {
	tickets, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list tickets", "error", err)
		return nil, err
	}
	return Filter(tickets, bucket), nil
}

// Stats recomputes the per-bucket totals from the full collection.
func (s *Service) Stats() (map[Bucket]int, error) {
	tickets, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to load tickets for stats", "error", err)
		return nil, err
	}
	return Counts(tickets), nil
}

func (s *Service) GetByID(id string) (*Ticket, error) {
	return s.repo.GetByID(id)
}

// Create opens a ticket. The server owns id and timestamps; createdAt equals
// updatedAt on the stored record, lastUpdatedBy is the acting user, and the
// "opened" STATUS_CHANGE activity lands in the same transaction.
func (s *Service) Create(ctx context.Context, dto CreateTicketDTO, actor Actor) (*Ticket, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	status := dto.Status
	if status == "" {
		status = StatusAguardandoAtendimento
	}

	assetIDs, err := s.reconcileAssets(dto.AssetIDs, dto.ClientID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t := &Ticket{
		ID:                uuid.NewString(),
		Title:             dto.Title,
		Description:       dto.Description,
		ClientID:          dto.ClientID,
		RequesterID:       dto.RequesterID,
		RequesterName:     dto.RequesterName,
		AssetIDs:          assetIDs,
		Label:             dto.Label,
		Status:            status,
		Type:              dto.Type,
		AssigneeID:        dto.AssigneeID,
		LastUpdatedByID:   actor.ID,
		LastUpdatedByName: actor.Name,
		CreatedAt:         now,
		UpdatedAt:         now,
		Attachments:       []Attachment{},
	}

	opened := s.newActivity(t.ID, actor, openedActivityContent, ActivityStatusChange)

	if err := s.repo.CreateWithActivity(t, opened); err != nil {
		s.logger.Error("failed to create ticket", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	s.logger.Info("ticket created",
		"ticket_id", t.ID,
		"client_id", t.ClientID,
		"status", t.Status,
		"actor_id", actor.ID)

	if s.events != nil {
		s.events.Publish(ctx, events.NewTicketCreated(t.ID, actor.ID))
	}

	return t, nil
}

// Update applies a partial update with merge semantics: only fields present
// in the DTO change. updatedAt and lastUpdatedBy are refreshed regardless of
// which fields changed. A status transition appends exactly one
// STATUS_CHANGE activity quoting old and new values; an absent or unchanged
// status appends nothing.
func (s *Service) Update(ctx context.Context, id string, dto UpdateTicketDTO, actor Actor) (*Ticket, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	oldStatus := t.Status
	applyUpdate(t, dto)

	// A client switch or a new selection may carry links to assets the
	// client does not own; those are dropped, never stored.
	if dto.ClientID != nil || dto.AssetIDs != nil {
		kept, err := s.reconcileAssets(t.AssetIDs, t.ClientID)
		if err != nil {
			return nil, err
		}
		t.AssetIDs = kept
	}

	t.UpdatedAt = time.Now()
	t.LastUpdatedByID = actor.ID
	t.LastUpdatedByName = actor.Name

	var statusActivity *Activity
	if dto.Status != nil && *dto.Status != oldStatus {
		content := fmt.Sprintf("Status alterado de %q para %q.", oldStatus, *dto.Status)
		statusActivity = s.newActivity(t.ID, actor, content, ActivityStatusChange)
	}

	if err := s.repo.UpdateWithActivity(t, statusActivity); err != nil {
		s.logger.Error("failed to update ticket", "error", err, "ticket_id", id, "actor_id", actor.ID)
		return nil, err
	}

	s.logger.Info("ticket updated",
		"ticket_id", t.ID,
		"status", t.Status,
		"status_changed", statusActivity != nil,
		"actor_id", actor.ID)

	if statusActivity != nil && s.events != nil {
		s.events.Publish(ctx, events.NewTicketStatusChanged(t.ID, actor.ID, string(oldStatus), string(t.Status)))
	}

	return t, nil
}

// Activities lists a ticket's log in insertion order.
func (s *Service) Activities(ticketID string) ([]*Activity, error) {
	if _, err := s.repo.GetByID(ticketID); err != nil {
		return nil, err
	}
	return s.repo.ActivitiesByTicket(ticketID)
}

// AddComment appends a user-authored COMMENT activity.
func (s *Service) AddComment(ticketID string, dto CreateCommentDTO, actor Actor) (*Activity, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if _, err := s.repo.GetByID(ticketID); err != nil {
		return nil, err
	}

	a := s.newActivity(ticketID, actor, dto.Content, ActivityComment)
	if err := s.repo.CreateActivity(a); err != nil {
		s.logger.Error("failed to create activity", "error", err, "ticket_id", ticketID)
		return nil, err
	}

	return a, nil
}

// AddAttachment records attachment metadata and the ATTACHMENT activity in
// one transaction. The file body never passes through this service.
func (s *Service) AddAttachment(ticketID string, dto CreateAttachmentDTO, actor Actor) (*Attachment, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if _, err := s.repo.GetByID(ticketID); err != nil {
		return nil, err
	}

	att := &Attachment{
		ID:       uuid.NewString(),
		TicketID: ticketID,
		FileName: dto.FileName,
		FileSize: dto.FileSize,
		MimeType: dto.MimeType,
	}
	a := s.newActivity(ticketID, actor, fmt.Sprintf("Anexo adicionado: %s.", dto.FileName), ActivityAttachment)

	if err := s.repo.AddAttachment(att, a); err != nil {
		s.logger.Error("failed to add attachment", "error", err, "ticket_id", ticketID)
		return nil, err
	}

	return att, nil
}

func (s *Service) reconcileAssets(selected []string, clientID string) ([]string, error) {
	if len(selected) == 0 {
		return selected, nil
	}
	kept, err := s.assets.ReconcileSelection(selected, clientID)
	if err != nil {
		s.logger.Error("failed to reconcile asset selection", "error", err, "client_id", clientID)
		return nil, err
	}
	return kept, nil
}

func (s *Service) newActivity(ticketID string, actor Actor, content string, kind ActivityKind) *Activity {
	return &Activity{
		ID:         uuid.NewString(),
		TicketID:   ticketID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Content:    content,
		Kind:       kind,
		CreatedAt:  time.Now(),
	}
}

func applyUpdate(t *Ticket, dto UpdateTicketDTO) {
	if dto.Title != nil {
		t.Title = *dto.Title
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.ClientID != nil {
		t.ClientID = *dto.ClientID
	}
	if dto.RequesterID != nil {
		t.RequesterID = *dto.RequesterID
	}
	if dto.RequesterName != nil {
		t.RequesterName = *dto.RequesterName
	}
	if dto.AssetIDs != nil {
		t.AssetIDs = *dto.AssetIDs
	}
	if dto.Label != nil {
		t.Label = *dto.Label
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	if dto.Type != nil {
		t.Type = *dto.Type
	}
	if dto.AssigneeID != nil {
		t.AssigneeID = dto.AssigneeID
	}
}
