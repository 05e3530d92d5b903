// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-cinema/models"
)

func (h *Handler) purchasePremium(w http.ResponseWriter, r *http.Request) {
	var req models.PremiumPurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	purchase, err := h.services.PremiumService.PurchasePremium(r.Context(), actor(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, purchase, http.StatusOK)
}

func (h *Handler) premiumStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.PremiumService.GetStatus(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, status, http.StatusOK)
}
