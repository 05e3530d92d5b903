package models

// OAuthIdentity is the identity assertion returned by an external provider
// after a successful code exchange.
type OAuthIdentity struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}
