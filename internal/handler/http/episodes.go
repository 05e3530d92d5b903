package http

import (
	"net/http"

	"github.com/MKhiriev/go-cinema/models"
)

func (h *Handler) createEpisode(w http.ResponseWriter, r *http.Request) {
	var req models.NewEpisode
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	episode, err := h.services.EpisodeService.CreateEpisode(r.Context(), actor(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, episode, http.StatusCreated)
}

func (h *Handler) listEpisodes(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "movie_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	episodes, err := h.services.EpisodeService.ListEpisodes(r.Context(), actor(r), movieID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, episodes, http.StatusOK)
}

func (h *Handler) getEpisode(w http.ResponseWriter, r *http.Request) {
	episodeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	episode, err := h.services.EpisodeService.GetEpisode(r.Context(), actor(r), episodeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, episode, http.StatusOK)
}

func (h *Handler) updateEpisode(w http.ResponseWriter, r *http.Request) {
	episodeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var patch models.EpisodePatch
	if err = decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	episode, err := h.services.EpisodeService.UpdateEpisode(r.Context(), actor(r), episodeID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, episode, http.StatusOK)
}

// deleteEpisode is a hard delete; purchases of the episode go with it.
func (h *Handler) deleteEpisode(w http.ResponseWriter, r *http.Request) {
	episodeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.services.EpisodeService.DeleteEpisode(r.Context(), actor(r), episodeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, models.DeletedResponse{ID: id}, http.StatusOK)
}

func (h *Handler) purchaseEpisode(w http.ResponseWriter, r *http.Request) {
	episodeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	purchase, err := h.services.PurchaseService.PurchaseEpisode(r.Context(), actor(r), episodeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, purchase, http.StatusOK)
}
