package proxyclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sypnex/flowrunner/pkg/httpclient"
)

// Request is the payload sent to POST /api/proxy/http (spec §4.2).
type Request struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    any               `json:"body,omitempty"`
	Timeout int               `json:"timeout,omitempty"` // seconds
}

// wireResponse mirrors the proxy's raw JSON response shape.
type wireResponse struct {
	Status   int               `json:"status"`
	Headers  map[string]string `json:"headers"`
	IsBinary bool              `json:"is_binary"`
	Content  string            `json:"content"`
}

// Response is the decoded result of a proxied call. For binary responses,
// Content holds the decoded bytes; for text responses, Content holds the
// UTF-8 text and ParsedJSON holds an opportunistic JSON parse (nil if the
// text isn't valid JSON — not treated as an error, per spec §4.2).
type Response struct {
	Status      int
	Headers     map[string]string
	IsBinary    bool
	Content     []byte
	Text        string
	ParsedJSON  any
	ContentType string
}

// Client relays outbound HTTP requests through the proxy endpoint.
type Client struct {
	baseURL      string
	sessionToken httpclient.SecureString
	httpClient   *http.Client
}

// New creates a proxy client. httpClient should already carry connection
// pooling and retry/backoff (pkg/httpclient). The token is kept as a
// SecureString so it can't leak through an incidental %v/%+v on a Client.
func New(baseURL, sessionToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		sessionToken: httpclient.NewSecureString(sessionToken),
		httpClient:   httpClient,
	}
}

// Do relays req through the proxy and decodes the response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("proxyclient: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/proxy/http", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("proxyclient: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Session-Token", c.sessionToken.Value())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("proxyclient: request %s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("proxyclient: proxy returned status %d for %s %s", resp.StatusCode, req.Method, req.URL)
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("proxyclient: decode proxy response: %w", err)
	}

	out := &Response{
		Status:      wire.Status,
		Headers:     wire.Headers,
		IsBinary:    wire.IsBinary,
		ContentType: contentType(wire.Headers),
	}

	if wire.IsBinary {
		decoded, err := base64.StdEncoding.DecodeString(wire.Content)
		if err != nil {
			return nil, fmt.Errorf("proxyclient: decode base64 content: %w", err)
		}
		out.Content = decoded
		return out, nil
	}

	out.Text = wire.Content
	out.Content = []byte(wire.Content)
	var parsed any
	if json.Unmarshal([]byte(wire.Content), &parsed) == nil {
		out.ParsedJSON = parsed
	}
	return out, nil
}

// contentType looks up the content-type header case-insensitively, since
// the proxy's header map is assembled from arbitrary upstream servers.
func contentType(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, "content-type") {
			return v
		}
	}
	return ""
}
