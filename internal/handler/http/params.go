package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/utils"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/go-chi/chi/v5"
)

// pathID parses the positive integer path parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPathParameter, name, raw)
	}
	return id, nil
}

// pageFromQuery reads ?skip= and ?limit=. Absent values are zero and are
// normalized by the services.
func pageFromQuery(r *http.Request) (models.Page, error) {
	var page models.Page
	query := r.URL.Query()

	for name, dst := range map[string]*uint64{"skip": &page.Offset, "limit": &page.Limit} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.Page{}, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParameter, name, raw)
		}
		*dst = v
	}

	return page, nil
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return nil
}

// actor returns the user stored by the auth middleware. Routes reaching a
// handler without one are a wiring bug.
func actor(r *http.Request) models.User {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		panic("http: authenticated route without user in context")
	}
	return user
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
