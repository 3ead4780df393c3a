package builtin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/proxyclient"
	"github.com/sypnex/flowrunner/pkg/workflow"
)

func newLLMChatNode(config map[string]any) *workflow.Node {
	params := make(map[string]workflow.ConfigParam, len(config))
	for k, v := range config {
		params[k] = workflow.ConfigParam{Value: v}
	}
	return &workflow.Node{ID: "n1", Type: "llm_chat", Config: params}
}

// chatCompletionProxyServer fakes a POST /api/proxy/http endpoint whose
// upstream is an OpenAI-compatible chat completion API, so LLMChatExecutor
// can be exercised end to end through the real proxyclient.Client wire
// format instead of a hand-rolled double.
func chatCompletionProxyServer(t *testing.T, status int, upstreamBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req proxyclient.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode proxied request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":    status,
			"headers":   map[string]string{"Content-Type": "application/json"},
			"is_binary": false,
			"content":   upstreamBody,
		})
	}))
}

func TestLLMChatExecutor_Success(t *testing.T) {
	upstream := `{"choices":[{"message":{"content":"hi there"}}],"usage":{"total_tokens":17}}`
	srv := chatCompletionProxyServer(t, http.StatusOK, upstream)
	defer srv.Close()

	e := &LLMChatExecutor{Proxy: proxyclient.New(srv.URL, "tok", nil)}
	node := newLLMChatNode(map[string]any{"endpoint": "https://api.example.com/v1", "model": "gpt-test"})

	result, err := e.Execute(context.Background(), node, executor.InputData{"prompt": "hello"}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["response"] != "hi there" {
		t.Errorf("response = %v, want \"hi there\"", result["response"])
	}
	if result["tokens_used"] != float64(17) {
		t.Errorf("tokens_used = %v, want 17", result["tokens_used"])
	}
	if result["model_used"] != "gpt-test" {
		t.Errorf("model_used = %v, want gpt-test", result["model_used"])
	}
}

func TestLLMChatExecutor_UpstreamErrorStatus(t *testing.T) {
	srv := chatCompletionProxyServer(t, http.StatusInternalServerError, "boom")
	defer srv.Close()

	e := &LLMChatExecutor{Proxy: proxyclient.New(srv.URL, "tok", nil)}
	node := newLLMChatNode(map[string]any{"endpoint": "https://api.example.com/v1"})

	result, err := e.Execute(context.Background(), node, executor.InputData{"prompt": "hello"}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, failed := result["error"]; !failed {
		t.Errorf("expected error result, got %v", result)
	}
}

func TestLLMChatExecutor_NoChoicesInResponse(t *testing.T) {
	srv := chatCompletionProxyServer(t, http.StatusOK, `{"choices":[]}`)
	defer srv.Close()

	e := &LLMChatExecutor{Proxy: proxyclient.New(srv.URL, "tok", nil)}
	node := newLLMChatNode(map[string]any{"endpoint": "https://api.example.com/v1"})

	result, err := e.Execute(context.Background(), node, executor.InputData{"prompt": "hello"}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, failed := result["error"]; !failed {
		t.Errorf("expected error result, got %v", result)
	}
}

func TestLLMChatExecutor_ProxyTransportFailure(t *testing.T) {
	e := &LLMChatExecutor{Proxy: proxyclient.New("http://127.0.0.1:0", "tok", nil)}
	node := newLLMChatNode(map[string]any{"endpoint": "https://api.example.com/v1"})

	result, err := e.Execute(context.Background(), node, executor.InputData{"prompt": "hello"}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, failed := result["error"]; !failed {
		t.Errorf("expected error result, got %v", result)
	}
}
