package api

import (
	"net/http"

	"github.com/HerbHall/newsroom/internal/apperr"
	"github.com/HerbHall/newsroom/internal/server"
	"github.com/HerbHall/newsroom/pkg/models"
)

type usersResponse struct {
	Users []models.User `json:"users"`
}

type userResponse struct {
	User *models.User `json:"user"`
}

// handleListUsers returns every user.
//
//	@Summary		List users
//	@Tags			users
//	@Produce		json
//	@Success		200 {object} usersResponse
//	@Router			/users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, r, err, apperr.MsgUserNotFound)
		return
	}
	server.WriteJSON(w, http.StatusOK, usersResponse{Users: users})
}

// handleGetUser returns one user by username.
//
//	@Summary		Get user
//	@Tags			users
//	@Produce		json
//	@Param			username path string true "Username"
//	@Success		200 {object} userResponse
//	@Failure		404 {object} server.Problem
//	@Router			/users/{username} [get]
func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), r.PathValue("username"))
	if err != nil {
		h.fail(w, r, err, apperr.MsgUserNotFound)
		return
	}
	server.WriteJSON(w, http.StatusOK, userResponse{User: u})
}
