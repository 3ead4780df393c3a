// Package httpclient provides a configurable, named HTTP client factory for
// the workflow engine.
//
// Node executors and the VFS/proxy adapters reference a preconfigured
// client by name rather than repeating authentication and pooling setup.
// Every client built by New retries 429/5xx responses with backoff
// (spec §5). SSRF protection is added only when Config.Security enables
// one of its Block* checks or sets AllowedDomains. Security.MaxResponseSize
// is validated and defaulted but not enforced on response bodies.
//
// # Features
//
//   - Multiple named HTTP clients with independent configurations
//   - Authentication: none (default), basic, bearer token, API key
//   - Configurable timeouts, connection pooling, and redirect limits
//   - Default headers and query parameters
//   - SSRF protection (private IP, localhost, link-local, cloud metadata)
//   - Retry with exponential backoff on 429/5xx, capped at 3 retries
//   - Thread-safe client registry
//
// # Example
//
//	cfg := &httpclient.Config{
//	    UID: "vfs",
//	    Auth: httpclient.AuthConfig{
//	        Type:  httpclient.AuthTypeBearer,
//	        Token: &httpclient.TokenAuthConfig{Token: httpclient.NewSecureString(token)},
//	    },
//	}
//	client, err := httpclient.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry := httpclient.NewRegistry()
//	registry.Register("vfs", client)
package httpclient
