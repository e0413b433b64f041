package completion

import "strings"

// GatewayBaseURL is the endpoint all providers are redirected to when the
// shared opt-in flag is set and no more specific override exists.
const GatewayBaseURL = "https://gpuai.app/api/v1"

// ParseBoolish reports whether s is a recognized truthy token. Matching is
// case-insensitive; anything outside the token set (including the empty
// string) is falsy. Malformed values never produce an error, they simply
// resolve to false.
func ParseBoolish(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// BaseURLSource holds the configuration sources feeding base-URL resolution,
// from most to least specific. It is a plain value so the precedence logic
// can be exercised without touching process environment state.
type BaseURLSource struct {
	// Explicit is the base URL passed to the client constructor.
	Explicit string
	// EnvOverride is the provider-specific environment override
	// (OPENAI_BASE_URL, ANTHROPIC_BASE_URL).
	EnvOverride string
	// GatewayFlag is the raw value of the shared opt-in flag (USE_GPUAI).
	GatewayFlag string
	// GatewayURL is the URL the flag redirects to. Empty means GatewayBaseURL.
	GatewayURL string
}

// Resolve applies the precedence chain and returns the base URL to use, or
// nil when every source is unset and the SDK default applies. Non-empty
// values are used verbatim.
func (s BaseURLSource) Resolve() *string {
	if s.Explicit != "" {
		url := s.Explicit
		return &url
	}
	if s.EnvOverride != "" {
		url := s.EnvOverride
		return &url
	}
	if ParseBoolish(s.GatewayFlag) {
		url := s.GatewayURL
		if url == "" {
			url = GatewayBaseURL
		}
		return &url
	}
	return nil
}
