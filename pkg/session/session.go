// Package session holds the persisted login state: the bearer token and the
// display name of the signed-in user. It is the only place that state lives;
// the API client and the console route gate consume it through Provider.
package session

// Provider exposes the current session state.
type Provider interface {
	// Token returns the stored bearer credential, empty when signed out.
	Token() string
	// Username returns the stored display name, empty when signed out.
	Username() string
	// Save replaces the stored session.
	Save(token, username string) error
	// Clear removes the stored session.
	Clear() error
}

// HasToken reports whether a credential is present. Presence is the only
// route-gating signal; an expired token is discovered when a call fails.
func HasToken(p Provider) bool {
	return p != nil && p.Token() != ""
}
