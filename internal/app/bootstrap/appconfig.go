// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, env). AppConfig is everything specific to NurseHub: where
// the backend REST API lives, how session cookies are signed, and CSRF
// protection.
type AppConfig struct {
	// APIBaseURL is the root of the backend REST API every page is
	// rendered from, e.g. "http://localhost:8080/api".
	APIBaseURL string

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRFKey signs the per-form CSRF tokens. 32 bytes.
	CSRFKey string
}
