package client

import (
	"net/http"

	"github.com/vyrtus/helpdesk/internal/transport"
	"github.com/vyrtus/helpdesk/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*Client, error)
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

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.List()
	if err != nil {
		h.Logger.Error("ListClients: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{"clients": clients})
}
