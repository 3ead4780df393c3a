package builtin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sypnex/flowrunner/pkg/datautil"
	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/httpclient"
	"github.com/sypnex/flowrunner/pkg/proxyclient"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

// HTTPExecutor sends an outbound request through the HTTP proxy adapter
// (spec §4.2, §4.6 "http"). When a node sets client_name, the request
// bypasses the proxy and goes out directly through a client previously
// registered in Clients — the Go-native equivalent of the teacher's
// POST /api/v1/httpclient/register endpoint, for callers that need a
// specific auth/timeout profile the shared proxy doesn't apply.
type HTTPExecutor struct {
	Proxy   *proxyclient.Client
	Clients *httpclient.Registry
}

// NodeType implements executor.NodeExecutor.
func (e *HTTPExecutor) NodeType() string { return "http" }

// Execute implements executor.NodeExecutor.
func (e *HTTPExecutor) Execute(ctx context.Context, node *workflow.Node, input executor.InputData, allResults map[string]workflow.Result, parentNodeID string) (workflow.Result, error) {
	url := node.ConfigString("url", "")
	method := strings.ToUpper(node.ConfigString("method", "GET"))
	headersStr := node.ConfigString("headers", "")
	bodyStr := node.ConfigString("body", "")
	clientName := node.ConfigString("client_name", "")

	headers := map[string]string{}
	if strings.TrimSpace(headersStr) != "" {
		_ = json.Unmarshal([]byte(headersStr), &headers)
	}

	var body any
	if strings.TrimSpace(bodyStr) != "" {
		processed := datautil.ApplyTemplates(bodyStr, input, time.Now())
		var parsed any
		if json.Unmarshal([]byte(processed), &parsed) == nil {
			body = parsed
		} else {
			body = processed
		}
	}

	if clientName != "" {
		return e.executeDirect(ctx, clientName, url, method, headers, body)
	}

	resp, err := e.Proxy.Do(ctx, proxyclient.Request{
		URL:     url,
		Method:  method,
		Headers: headers,
		Body:    body,
		Timeout: 30,
	})
	if err != nil {
		return workflow.Result{"error": err.Error()}, nil
	}

	if resp.IsBinary {
		result := workflow.Result{
			"data":         resp.Content,
			"binary":       resp.Content,
			"blob":         resp.Content,
			"content_type": resp.ContentType,
		}
		switch {
		case strings.Contains(resp.ContentType, "image"):
			result["image_data"] = resp.Content
		case strings.Contains(resp.ContentType, "audio"):
			result["audio_data"] = resp.Content
		}
		return result, nil
	}

	return workflow.Result{
		"response":     resp.Text,
		"data":         resp.Text,
		"text":         resp.Text,
		"parsed_json":  resp.ParsedJSON,
		"json":         resp.ParsedJSON,
		"content_type": resp.ContentType,
		"status":       resp.Status,
	}, nil
}

// executeDirect issues the request through a named client instead of the
// proxy adapter, looking it up in Clients by name.
func (e *HTTPExecutor) executeDirect(ctx context.Context, clientName, url, method string, headers map[string]string, body any) (workflow.Result, error) {
	if e.Clients == nil {
		return workflow.Result{"error": "no HTTP client registry configured"}, nil
	}
	client, err := e.Clients.Get(clientName)
	if err != nil {
		return workflow.Result{"error": err.Error()}, nil
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return workflow.Result{"error": err.Error()}, nil
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return workflow.Result{"error": err.Error()}, nil
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return workflow.Result{"error": err.Error()}, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return workflow.Result{"error": err.Error()}, nil
	}
	contentType := resp.Header.Get("Content-Type")

	var parsed any
	if strings.Contains(contentType, "json") {
		_ = json.Unmarshal(data, &parsed)
	}

	return workflow.Result{
		"response":     string(data),
		"data":         string(data),
		"text":         string(data),
		"parsed_json":  parsed,
		"json":         parsed,
		"content_type": contentType,
		"status":       resp.StatusCode,
	}, nil
}
