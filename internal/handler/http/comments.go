package http

import (
	"net/http"

	"github.com/MKhiriev/go-cinema/models"
)

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	var req models.NewComment
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.services.CommentService.CreateComment(r.Context(), actor(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, comment, http.StatusCreated)
}

func (h *Handler) listMovieComments(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "movie_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.services.CommentService.ListMovieComments(r.Context(), actor(r), movieID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, comments, http.StatusOK)
}

func (h *Handler) updateComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var patch models.CommentPatch
	if err = decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.services.CommentService.UpdateComment(r.Context(), actor(r), commentID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, comment, http.StatusOK)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.services.CommentService.DeleteComment(r.Context(), actor(r), commentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, models.DeletedResponse{ID: id}, http.StatusOK)
}
