package ticket

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/vyrtus/helpdesk/internal/auth"
	"github.com/vyrtus/helpdesk/internal/transport"
	"github.com/vyrtus/helpdesk/pkg/logger"
)

type ServiceAPI interface {
	List(bucket Bucket) ([]*Ticket, error)
	Stats() (map[Bucket]int, error)
	GetByID(id string) (*Ticket, error)
	Create(ctx context.Context, dto CreateTicketDTO, actor Actor) (*Ticket, error)
	Update(ctx context.Context, id string, dto UpdateTicketDTO, actor Actor) (*Ticket, error)
	Activities(ticketID string) ([]*Activity, error)
	AddComment(ticketID string, dto CreateCommentDTO, actor Actor) (*Activity, error)
	AddAttachment(ticketID string, dto CreateAttachmentDTO, actor Actor) (*Attachment, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func actorFrom(u *auth.User) Actor {
	return Actor{ID: u.ID, Name: u.Name}
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	bucket, err := ParseBucket(r.URL.Query().Get("bucket"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tickets, err := h.Service.List(bucket)
	if err != nil {
		h.Logger.Error("ListTickets: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"tickets": tickets,
		"bucket":  bucket,
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.Stats()
	if err != nil {
		h.Logger.Error("GetStats: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, counts)
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	t, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Create(r.Context(), dto, actorFrom(user))
	if err != nil {
		h.Logger.Error("CreateTicket: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateTicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto, actorFrom(user))
	if err != nil {
		h.Logger.Error("UpdateTicket: service error", "error", err, "ticket_id", chi.URLParam(r, "id"), "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.Service.Activities(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{"activities": activities})
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.AddComment(chi.URLParam(r, "id"), dto, actorFrom(user))
	if err != nil {
		h.Logger.Error("AddComment: service error", "error", err, "ticket_id", chi.URLParam(r, "id"), "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAttachmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	att, err := h.Service.AddAttachment(chi.URLParam(r, "id"), dto, actorFrom(user))
	if err != nil {
		h.Logger.Error("AddAttachment: service error", "error", err, "ticket_id", chi.URLParam(r, "id"), "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, att)
}
