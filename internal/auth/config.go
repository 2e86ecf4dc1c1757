package auth

import "time"

// Config groups the CAS endpoint settings and the session cookie policy.
type Config struct {
	CAS     CASConfig     `yaml:"cas"`
	Session SessionConfig `yaml:"session"`
}

// CASConfig points at the CAS server and names the service URLs it redirects
// back to.
type CASConfig struct {
	// ServerURL is the CAS server base, e.g. https://cas.example.org/cas.
	ServerURL string `yaml:"server_url" validate:"required,url"`

	// ServiceURL is the callback URL registered with CAS, the one tickets
	// are issued for.
	ServiceURL string `yaml:"service_url" validate:"required,url"`

	// AppURL is where CAS sends the browser after logout.
	AppURL string `yaml:"app_url"      default:"http://localhost"`

	// RequestTimeout bounds a single serviceValidate call.
	RequestTimeout time.Duration `yaml:"request_timeout" default:"10s"`
}

// SessionConfig controls the session cookie and lifetime.
type SessionConfig struct {
	CookieName string        `yaml:"cookie_name" default:"portal_session"`
	TTL        time.Duration `yaml:"ttl"         default:"24h"`
}
