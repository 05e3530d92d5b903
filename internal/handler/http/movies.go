package http

import (
	"net/http"

	"github.com/MKhiriev/go-cinema/models"
)

func (h *Handler) listMovies(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	movies, err := h.services.MovieService.ListMovies(r.Context(), actor(r), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, movies, http.StatusOK)
}

func (h *Handler) createMovie(w http.ResponseWriter, r *http.Request) {
	var req models.NewMovie
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	movie, err := h.services.MovieService.CreateMovie(r.Context(), actor(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, movie, http.StatusCreated)
}

func (h *Handler) getMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	movie, err := h.services.MovieService.GetMovie(r.Context(), actor(r), movieID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, movie, http.StatusOK)
}

func (h *Handler) updateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var patch models.MoviePatch
	if err = decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	movie, err := h.services.MovieService.UpdateMovie(r.Context(), actor(r), movieID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, movie, http.StatusOK)
}

func (h *Handler) deleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.services.MovieService.DeleteMovie(r.Context(), actor(r), movieID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, models.DeletedResponse{ID: id}, http.StatusOK)
}

func (h *Handler) setAccessLevel(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.AccessLevelChangeRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	movie, err := h.services.MovieService.SetAccessLevel(r.Context(), actor(r), movieID, req.AccessLevel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, movie, http.StatusOK)
}
