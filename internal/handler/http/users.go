package http

import (
	"net/http"

	"github.com/MKhiriev/go-cinema/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.GetProfile(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), actor(r), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.services.UserService.GetUser(r.Context(), actor(r), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, view, http.StatusOK)
}

func (h *Handler) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	view, err := h.services.UserService.GetUserByUsername(r.Context(), actor(r), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, view, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var patch models.UserPatch
	if err = decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), actor(r), userID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.services.UserService.DeactivateUser(r.Context(), actor(r), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, models.DeletedResponse{ID: id}, http.StatusOK)
}

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.RoleChangeRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.ChangeRole(r.Context(), actor(r), userID, req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) setLevel(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.LevelChangeRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.SetLevel(r.Context(), actor(r), userID, req.Level)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) addMoney(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.AddMoneyRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	balance, err := h.services.UserService.AddMoney(r.Context(), actor(r), userID, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, balance, http.StatusOK)
}

func (h *Handler) listUserComments(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.services.CommentService.ListUserComments(r.Context(), actor(r), userID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, comments, http.StatusOK)
}
