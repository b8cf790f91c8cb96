package models

// SessionClaims are the identity facts embedded in a session token. They are
// minted once at subscription time and carried verbatim in every token; a
// re-subscription mints a new token without invalidating old ones.
type SessionClaims struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	SubscribedAt string `json:"subscribedAt"`
}

// Valid reports whether all required claims are present.
func (c SessionClaims) Valid() bool {
	return c.Email != "" && c.FirstName != "" && c.SubscribedAt != ""
}
