package asset

import (
	"net/http"

	"github.com/vyrtus/helpdesk/internal/transport"
	"github.com/vyrtus/helpdesk/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*Asset, error)
	Search(clientID, query string) ([]*Asset, error)
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

// ListAssets serves the catalog; ?client_id= restricts to one client and
// ?q= applies the free-text filter.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	query := r.URL.Query().Get("q")

	assets, err := h.Service.Search(clientID, query)
	if err != nil {
		h.Logger.Error("ListAssets: service error", "error", err, "client_id", clientID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{"assets": assets})
}
