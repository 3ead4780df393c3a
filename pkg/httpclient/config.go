package httpclient

import (
	"fmt"
	"time"
)

// AuthType selects how a named client authenticates outbound requests.
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "api_key"
)

// BasicAuthConfig holds HTTP Basic Authentication credentials.
type BasicAuthConfig struct {
	Username string
	Password SecureString
}

// TokenAuthConfig holds a bearer token.
type TokenAuthConfig struct {
	Token SecureString
}

// APIKeyAuthConfig holds an API key sent either as a header or a query
// parameter.
type APIKeyAuthConfig struct {
	Key      string
	Value    SecureString
	Location string // "header" or "query"
}

// AuthConfig selects and configures one authentication scheme.
type AuthConfig struct {
	Type      AuthType
	BasicAuth *BasicAuthConfig
	Token     *TokenAuthConfig
	APIKey    *APIKeyAuthConfig
}

// KeyValue is a single header or query parameter entry. A slice (rather than
// a map) preserves authored order and allows duplicate keys.
type KeyValue struct {
	Key   string
	Value string
}

// NetworkConfig controls connection pooling and timeouts.
type NetworkConfig struct {
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration
	TLSHandshakeTimeout time.Duration
	DisableKeepAlives   bool
}

// SecurityConfig controls redirect following, response size limits, and SSRF
// protections applied to every request made through this client.
type SecurityConfig struct {
	MaxRedirects       int
	MaxResponseSize    int64
	FollowRedirects    bool
	BlockPrivateIPs    bool
	BlockLocalhost     bool
	BlockLinkLocal     bool
	BlockCloudMetadata bool
	AllowedDomains     []string
}

// RetryConfig controls retry/backoff behavior on transient failures (spec
// §5: "retries with backoff on 429/5xx, capped at 3").
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// Config is the full configuration for one named HTTP client.
type Config struct {
	UID         string
	Description string

	Auth     AuthConfig
	Network  NetworkConfig
	Security SecurityConfig
	Retry    RetryConfig

	Headers     []KeyValue
	QueryParams []KeyValue

	BaseURL string
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.UID == "" {
		return fmt.Errorf("client UID is required")
	}

	switch c.Auth.Type {
	case "", AuthTypeNone:
	case AuthTypeBasic:
		if c.Auth.BasicAuth == nil {
			return fmt.Errorf("basic_auth configuration is required for auth_type basic")
		}
		if c.Auth.BasicAuth.Username == "" {
			return fmt.Errorf("username is required for basic auth")
		}
		if c.Auth.BasicAuth.Password.IsEmpty() {
			return fmt.Errorf("password is required for basic auth")
		}
	case AuthTypeBearer:
		if c.Auth.Token == nil {
			return fmt.Errorf("token configuration is required for auth_type bearer")
		}
		if c.Auth.Token.Token.IsEmpty() {
			return fmt.Errorf("token is required for bearer auth")
		}
	case AuthTypeAPIKey:
		if c.Auth.APIKey == nil {
			return fmt.Errorf("api_key configuration is required for auth_type api_key")
		}
		if c.Auth.APIKey.Key == "" {
			return fmt.Errorf("api_key.key is required")
		}
		if c.Auth.APIKey.Location != "header" && c.Auth.APIKey.Location != "query" {
			return fmt.Errorf("api_key.location must be 'header' or 'query'")
		}
	default:
		return fmt.Errorf("invalid auth_type: %s (must be one of: none, basic, bearer, api_key)", c.Auth.Type)
	}

	if c.Network.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.Network.MaxIdleConns < 0 {
		return fmt.Errorf("max_idle_conns cannot be negative")
	}
	if c.Network.MaxIdleConnsPerHost < 0 {
		return fmt.Errorf("max_idle_conns_per_host cannot be negative")
	}
	if c.Network.MaxConnsPerHost < 0 {
		return fmt.Errorf("max_conns_per_host cannot be negative")
	}
	if c.Security.MaxRedirects < 0 {
		return fmt.Errorf("max_redirects cannot be negative")
	}
	if c.Security.MaxResponseSize < 0 {
		return fmt.Errorf("max_response_size cannot be negative")
	}
	if c.Retry.MaxRetries < 0 || c.Retry.MaxRetries > 3 {
		return fmt.Errorf("max_retries must be between 0 and 3")
	}

	return nil
}

// ApplyDefaults fills in zero-valued fields with production-sane defaults.
func (c *Config) ApplyDefaults() {
	if c.Auth.Type == "" {
		c.Auth.Type = AuthTypeNone
	}
	if c.Network.Timeout == 0 {
		c.Network.Timeout = 30 * time.Second
	}
	if c.Network.MaxIdleConns == 0 {
		c.Network.MaxIdleConns = 100
	}
	if c.Network.MaxIdleConnsPerHost == 0 {
		c.Network.MaxIdleConnsPerHost = 10
	}
	if c.Network.MaxConnsPerHost == 0 {
		c.Network.MaxConnsPerHost = 100
	}
	if c.Network.IdleConnTimeout == 0 {
		c.Network.IdleConnTimeout = 90 * time.Second
	}
	if c.Network.TLSHandshakeTimeout == 0 {
		c.Network.TLSHandshakeTimeout = 10 * time.Second
	}
	if c.Security.MaxRedirects == 0 {
		c.Security.MaxRedirects = 10
	}
	if c.Security.MaxResponseSize == 0 {
		c.Security.MaxResponseSize = 10 * 1024 * 1024
	}
	if c.Retry.MaxRetries == 0 {
		c.Retry.MaxRetries = 3
	}
	if c.Retry.BaseDelay == 0 {
		c.Retry.BaseDelay = 200 * time.Millisecond
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c

	if c.Headers != nil {
		clone.Headers = append([]KeyValue(nil), c.Headers...)
	}
	if c.QueryParams != nil {
		clone.QueryParams = append([]KeyValue(nil), c.QueryParams...)
	}
	if c.Security.AllowedDomains != nil {
		clone.Security.AllowedDomains = append([]string(nil), c.Security.AllowedDomains...)
	}
	if c.Auth.BasicAuth != nil {
		basic := *c.Auth.BasicAuth
		clone.Auth.BasicAuth = &basic
	}
	if c.Auth.Token != nil {
		token := *c.Auth.Token
		clone.Auth.Token = &token
	}
	if c.Auth.APIKey != nil {
		key := *c.Auth.APIKey
		clone.Auth.APIKey = &key
	}

	return &clone
}
