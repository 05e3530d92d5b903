package http

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/MKhiriev/go-cinema/internal/utils"
	"github.com/MKhiriev/go-cinema/models"
)

const (
	oauthSessionName = "go_cinema_oauth"
	oauthStateKey    = "oauth_state"
	oauthStateBytes  = 32
)

// register creates an account and answers 201 with the profile.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.UserID).Msg("user registered")
	writeJSON(w, r, user, http.StatusCreated)
}

// token exchanges credentials for a bearer token. The body may be an
// OAuth2 password-grant form or the equivalent JSON object.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	credentials, err := readCredentials(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	user, err := h.services.AuthService.Authenticate(ctx, credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.TokenResponse{AccessToken: token.SignedString, TokenType: "bearer"}, http.StatusOK)
}

func readCredentials(r *http.Request) (models.Credentials, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var credentials models.Credentials
	switch mediaType {
	case "application/json":
		if err := decodeJSON(r, &credentials); err != nil {
			return models.Credentials{}, err
		}
	default:
		if err := r.ParseForm(); err != nil {
			return models.Credentials{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		credentials.Username = r.PostForm.Get("username")
		credentials.Password = r.PostForm.Get("password")
	}

	return credentials, nil
}

// googleLogin stores a fresh state in the session and redirects to the
// provider's consent screen.
func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	provider := h.services.OAuthProvider
	if provider == nil {
		writeError(w, r, service.ErrOAuthDisabled)
		return
	}

	state, err := utils.RandomSecret(oauthStateBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	session, _ := h.sessions.Get(r, oauthSessionName) // a tampered cookie yields a fresh session
	session.Values[oauthStateKey] = state
	if err = session.Save(r, w); err != nil {
		writeError(w, r, err)
		return
	}

	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusFound)
}

// googleCallback verifies the state, resolves the identity and redirects
// to the frontend with a session token.
func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	provider := h.services.OAuthProvider
	if provider == nil {
		writeError(w, r, service.ErrOAuthDisabled)
		return
	}
	log := logger.FromRequest(r)

	session, _ := h.sessions.Get(r, oauthSessionName)
	expected, _ := session.Values[oauthStateKey].(string)
	delete(session.Values, oauthStateKey)
	if err := session.Save(r, w); err != nil {
		log.Err(err).Msg("error clearing oauth state")
	}

	query := r.URL.Query()
	if expected == "" || query.Get("state") != expected {
		writeError(w, r, ErrOAuthStateMismatch)
		return
	}
	if reason := query.Get("error"); reason != "" {
		writeError(w, r, fmt.Errorf("%w: provider returned %q", service.ErrOAuthExchangeFailed, reason))
		return
	}

	ctx := r.Context()
	identity, err := provider.Exchange(ctx, query.Get("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.LoginWithOAuth(ctx, identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	target, err := url.Parse(h.oauth.FrontendCallbackURL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	values := target.Query()
	values.Set("token", token.SignedString)
	target.RawQuery = values.Encode()

	log.Info().Int64("user_id", user.UserID).Msg("oauth login succeeded")
	http.Redirect(w, r, target.String(), http.StatusFound)
}
