package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cinema/internal/config"
	"github.com/MKhiriev/go-cinema/internal/utils"
	"github.com/MKhiriev/go-cinema/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuthProvider implements OAuthProvider for Google sign-in. It is
// constructed once at startup and injected where needed.
type GoogleOAuthProvider struct {
	config      *oauth2.Config
	userInfoURL string
	client      *utils.HTTPClient
}

// NewGoogleOAuthProvider builds the provider from cfg. It fails with
// ErrOAuthDisabled when no client id is configured.
func NewGoogleOAuthProvider(cfg config.OAuth, client *utils.HTTPClient) (*GoogleOAuthProvider, error) {
	return newOAuthProvider(cfg, google.Endpoint, client)
}

func newOAuthProvider(cfg config.OAuth, endpoint oauth2.Endpoint, client *utils.HTTPClient) (*GoogleOAuthProvider, error) {
	if !cfg.Enabled() {
		return nil, ErrOAuthDisabled
	}

	return &GoogleOAuthProvider{
		config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: cfg.UserInfoURL,
		client:      client,
	}, nil
}

// AuthCodeURL returns the consent screen URL carrying state.
func (p *GoogleOAuthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades code for an access token and fetches the identity it
// belongs to from the userinfo endpoint.
func (p *GoogleOAuthProvider) Exchange(ctx context.Context, code string) (models.OAuthIdentity, error) {
	// the token request goes through the same transport as userinfo
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client.GetClient())

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return models.OAuthIdentity{}, fmt.Errorf("%w: %w", ErrOAuthExchangeFailed, err)
	}

	var identity models.OAuthIdentity
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&identity).
		Get(p.userInfoURL)
	if err != nil {
		return models.OAuthIdentity{}, fmt.Errorf("%w: userinfo request: %w", ErrOAuthExchangeFailed, err)
	}
	if resp.IsError() {
		return models.OAuthIdentity{}, fmt.Errorf("%w: userinfo returned %s", ErrOAuthExchangeFailed, resp.Status())
	}
	if identity.Email == "" {
		return models.OAuthIdentity{}, ErrOAuthNoEmail
	}

	return identity, nil
}
