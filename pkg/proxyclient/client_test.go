package proxyclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Do_Text(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-Token") != "tok" {
			t.Errorf("missing session token")
		}
		var req Request
		json.NewDecoder(r.Body).Decode(&req)
		if req.URL != "https://example/api" {
			t.Errorf("URL = %q", req.URL)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":    200,
			"headers":   map[string]string{"content-type": "application/json"},
			"is_binary": false,
			"content":   `{"user":{"name":"Ada"}}`,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	resp, err := c.Do(context.Background(), Request{URL: "https://example/api", Method: "GET"})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if resp.IsBinary {
		t.Error("expected non-binary response")
	}
	m, ok := resp.ParsedJSON.(map[string]any)
	if !ok {
		t.Fatalf("ParsedJSON not a map: %#v", resp.ParsedJSON)
	}
	user, ok := m["user"].(map[string]any)
	if !ok || user["name"] != "Ada" {
		t.Errorf("unexpected parsed json: %#v", m)
	}
}

func TestClient_Do_TextNotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":    200,
			"headers":   map[string]string{"content-type": "text/plain"},
			"is_binary": false,
			"content":   "not json at all",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	resp, err := c.Do(context.Background(), Request{URL: "https://example/text", Method: "GET"})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if resp.ParsedJSON != nil {
		t.Errorf("expected nil ParsedJSON, got %#v", resp.ParsedJSON)
	}
	if resp.Text != "not json at all" {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestClient_Do_Binary(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	encoded := base64.StdEncoding.EncodeToString(payload)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":    200,
			"headers":   map[string]string{"content-type": "image/png"},
			"is_binary": true,
			"content":   encoded,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	resp, err := c.Do(context.Background(), Request{URL: "https://example/img.png", Method: "GET"})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !resp.IsBinary {
		t.Error("expected binary response")
	}
	if string(resp.Content) != string(payload) {
		t.Errorf("Content = %v, want %v", resp.Content, payload)
	}
	if resp.ContentType != "image/png" {
		t.Errorf("ContentType = %q", resp.ContentType)
	}
}

func TestClient_Do_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	if _, err := c.Do(context.Background(), Request{URL: "https://example", Method: "GET"}); err == nil {
		t.Fatal("expected error")
	}
}
