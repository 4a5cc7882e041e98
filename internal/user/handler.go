package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/vyrtus/helpdesk/internal/auth"
	"github.com/vyrtus/helpdesk/internal/transport"
	"github.com/vyrtus/helpdesk/internal/view"
	"github.com/vyrtus/helpdesk/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*auth.User, error)
	GetByID(id string) (*auth.User, error)
	UpdatePermissions(id string, dto UpdatePermissionsDTO, actor *auth.User) (*auth.User, error)
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

// meResponse augments the session user with the views their permissions
// enable and where the client should land given its current view.
type meResponse struct {
	User         *auth.User  `json:"user"`
	AllowedViews []view.View `json:"allowed_views"`
	ActiveView   *view.View  `json:"active_view,omitempty"`
}

// GetCurrentUser returns the active session. The optional ?view= query is the
// client's currently selected view; the response carries the reconciled one.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp := meResponse{
		User:         user,
		AllowedViews: view.Allowed(user.Permissions),
	}
	if resolved, ok := view.Resolve(view.View(r.URL.Query().Get("view")), user.Permissions); ok {
		resp.ActiveView = &resolved
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List()
	if err != nil {
		h.Logger.Error("ListUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *Handler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID := chi.URLParam(r, "id")

	var dto UpdatePermissionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdatePermissions(userID, dto, actor)
	if err != nil {
		h.Logger.Error("UpdatePermissions: service error", "error", err, "user_id", userID, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}
