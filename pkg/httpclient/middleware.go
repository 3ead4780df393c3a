package httpclient

import "net/http"

// Middleware wraps an http.RoundTripper with cross-cutting behavior — auth,
// SSRF checks, retries, and so on. Each one composes independently of the
// others, which is what lets New() build the transport stack by appending
// only the middlewares a given Config actually turns on.
type Middleware func(http.RoundTripper) http.RoundTripper

// Chain folds middlewares into one, applied outermost-first so the order
// callers list them in is the order they run in.
func Chain(middlewares ...Middleware) Middleware {
	return func(base http.RoundTripper) http.RoundTripper {
		for i := len(middlewares) - 1; i >= 0; i-- {
			base = middlewares[i](base)
		}
		return base
	}
}

// clientTagMiddleware stamps every outgoing request with the UID the client
// was registered under. This is what lets a captured request (in a test, or
// in a proxy's access log sitting in front of a named client) be traced
// back to the httpclient.Registry entry that issued it, without threading
// the UID through every call site that holds the *http.Client.
func clientTagMiddleware(uid string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return &clientTagRoundTripper{next: next, uid: uid}
	}
}

type clientTagRoundTripper struct {
	next http.RoundTripper
	uid  string
}

func (t *clientTagRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("X-Flowrunner-Client", t.uid)
	return t.next.RoundTrip(clonedReq)
}

// authMiddleware adds authentication headers to requests
func authMiddleware(config *Config) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return &authRoundTripper{
			next:   next,
			config: config,
		}
	}
}

type authRoundTripper struct {
	next   http.RoundTripper
	config *Config
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clonedReq := req.Clone(req.Context())

	// Add authentication based on type
	switch t.config.Auth.Type {
	case AuthTypeBasic:
		if t.config.Auth.BasicAuth != nil {
			clonedReq.SetBasicAuth(t.config.Auth.BasicAuth.Username, t.config.Auth.BasicAuth.Password.Value())
		}
	case AuthTypeBearer:
		if t.config.Auth.Token != nil {
			clonedReq.Header.Set("Authorization", "Bearer "+t.config.Auth.Token.Token.Value())
		}
	case AuthTypeAPIKey:
		if t.config.Auth.APIKey != nil {
			if t.config.Auth.APIKey.Location == "header" {
				clonedReq.Header.Set(t.config.Auth.APIKey.Key, t.config.Auth.APIKey.Value.Value())
			} else if t.config.Auth.APIKey.Location == "query" {
				q := clonedReq.URL.Query()
				q.Set(t.config.Auth.APIKey.Key, t.config.Auth.APIKey.Value.Value())
				clonedReq.URL.RawQuery = q.Encode()
			}
		}
	}

	return t.next.RoundTrip(clonedReq)
}

// headersMiddleware attaches a config-level default header set (spec §5:
// per-client headers) to every request the client issues.
func headersMiddleware(headers []KeyValue) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return &headersRoundTripper{
			next:    next,
			headers: headers,
		}
	}
}

type headersRoundTripper struct {
	next    http.RoundTripper
	headers []KeyValue
}

func (t *headersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clonedReq := req.Clone(req.Context())
	// Add, not Set: a multi-value header configured on the client (e.g.
	// Accept) should layer onto whatever the node config already set,
	// not clobber it.
	for _, h := range t.headers {
		clonedReq.Header.Add(h.Key, h.Value)
	}
	return t.next.RoundTrip(clonedReq)
}

// queryParamsMiddleware attaches config-level default query parameters
// (spec §5) to every request URL the client issues.
func queryParamsMiddleware(params []KeyValue) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return &queryParamsRoundTripper{
			next:   next,
			params: params,
		}
	}
}

type queryParamsRoundTripper struct {
	next   http.RoundTripper
	params []KeyValue
}

func (t *queryParamsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.params) == 0 {
		return t.next.RoundTrip(req)
	}
	clonedReq := req.Clone(req.Context())
	q := clonedReq.URL.Query()
	for _, p := range t.params {
		q.Add(p.Key, p.Value)
	}
	clonedReq.URL.RawQuery = q.Encode()
	return t.next.RoundTrip(clonedReq)
}

// ssrfProtectionMiddleware rejects requests whose URL resolves into a
// blocked range (private/link-local/cloud-metadata) per Config.Security,
// and re-validates on every redirect hop New()'s CheckRedirect follows.
func ssrfProtectionMiddleware(config *Config) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return &ssrfProtectionRoundTripper{
			next:   next,
			config: config,
		}
	}
}

type ssrfProtectionRoundTripper struct {
	next   http.RoundTripper
	config *Config
}

func (t *ssrfProtectionRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Validate URL before making the request
	if err := validateURL(req.URL.String(), t.config); err != nil {
		return nil, err
	}

	return t.next.RoundTrip(req)
}
