package handlers

import (
	"net/http"

	"github.com/vlat-exam/api/internal/api/middleware"
	"github.com/vlat-exam/api/internal/api/types"
	"github.com/vlat-exam/api/internal/services"
)

type UsersHandler struct {
	users services.UserService
}

func NewUsersHandler(users services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List returns every user, newest first. It is an unauthenticated diagnostic.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]types.UserView, 0, len(users))
	for i := range users {
		views = append(views, types.NewUserView(&users[i]))
	}
	writeJSON(w, http.StatusOK, types.UsersResponse{
		APIResponse: types.APIResponse{Success: true},
		Count:       len(views),
		Users:       views,
	})
}

// Me returns the user named by the verified bearer token.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeMessage(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	u, err := h.users.Get(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ProfileResponse{
		APIResponse: types.APIResponse{Success: true},
		User:        types.NewUserView(u),
	})
}
