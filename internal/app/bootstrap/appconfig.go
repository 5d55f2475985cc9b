// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (READALONG_*), config
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers ports, TLS, logging and the dev/prod environment.
//
// Empty credentials are valid: the app starts and the affected routes
// fail closed with a configuration error.
type AppConfig struct {
	// MongoDB connection configuration. An empty URI leaves the document
	// store unconfigured.
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Generative providers
	GoogleAPIKey string // credential for both text and image providers
	TextModel    string // e.g. gemini-1.5-flash
	ImageModel   string // e.g. imagen-3.0-generate-001
	ImageBaseURL string // REST base for the image provider

	// Anonymous identity (Identity Toolkit web API key)
	IdentityAPIKey string

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (empty = ephemeral random key)
	SessionName   string // Cookie name for sessions (default: readalong-session)
	SessionDomain string // Cookie domain (blank means current host)
}

// KeyPrefix returns the first characters of the provider credential, the
// only part of it the app ever reports.
func (c AppConfig) KeyPrefix() string {
	const n = 6
	if len(c.GoogleAPIKey) <= n {
		return c.GoogleAPIKey
	}
	return c.GoogleAPIKey[:n]
}
