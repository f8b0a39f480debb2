package provider

// Identity is a normalized profile returned by an external identity
// provider. It contains facts only, no decisions.
type Identity struct {
	Provider       string // e.g. "google"
	ProviderUserID string // provider-scoped unique user identifier (sub)
	Email          string // email address asserted by the provider
	EmailVerified  bool   // whether the provider asserts email ownership
	Name           string // display name, may be empty
	Audience       string // client id the provider token was issued for
}
