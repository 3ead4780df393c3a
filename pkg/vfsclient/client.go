package vfsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/sypnex/flowrunner/pkg/httpclient"
)

// Client talks to the remote virtual file system over HTTP. All operations
// authenticate with a single bearer token carried in the X-Session-Token
// header (spec §6).
type Client struct {
	baseURL      string
	sessionToken httpclient.SecureString
	httpClient   *http.Client
}

// New creates a VFS client. httpClient is expected to already carry
// connection pooling, SSRF protection, and retry/backoff (pkg/httpclient);
// this package only knows the VFS wire protocol. The token is kept as a
// SecureString so a %v/%+v on a Client (e.g. in an error wrap or a debug
// log line) never leaks it.
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

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-Token", c.sessionToken.Value())
	return req, nil
}

// ReadEnvelope is the JSON body returned by the read endpoint. Fields beyond
// Content are caller-interpreted (spec §4.1: "interpretation is the
// caller's responsibility").
type ReadEnvelope struct {
	Content string         `json:"content"`
	Extra   map[string]any `json:"-"`
}

// Read fetches a file's content envelope. The backend format (json/text)
// interpretation is left to the caller, matching the VFS's own
// format-agnostic read endpoint.
func (c *Client) Read(ctx context.Context, path string) (*ReadEnvelope, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/virtual-files/read"+normalizePath(path), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vfsclient: read %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vfsclient: read %s: %w (status %d)", path, ErrNotFound, resp.StatusCode)
	}

	var env ReadEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("vfsclient: read %s: decode response: %w", path, err)
	}
	return &env, nil
}

// Info reports whether path exists. Per spec §4.1, any non-200 is treated
// as "does not exist" rather than an error; transport failures still
// surface as an error.
func (c *Client) Info(ctx context.Context, path string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/virtual-files/info"+normalizePath(path), nil)
	if err != nil {
		return false, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("vfsclient: info %s: %w", path, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

// Download fetches raw bytes, used exclusively for binary-format loads.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/virtual-files/download"+normalizePath(path), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vfsclient: download %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vfsclient: download %s: %w (status %d)", path, ErrNotFound, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("vfsclient: download %s: read body: %w", path, err)
	}
	return data, nil
}

// ListItem is one entry in a list() response: either a file or a directory.
// Children is present only when the server eagerly expanded a directory;
// callers that need full recursion re-invoke List on each directory whose
// Children is nil (spec §4.1).
type ListItem struct {
	Name        string     `json:"name"`
	Type        string     `json:"type,omitempty"`
	IsDirectory bool       `json:"is_directory,omitempty"`
	Children    []ListItem `json:"children,omitempty"`
}

// ListEnvelope wraps a directory listing response.
type ListEnvelope struct {
	Items []ListItem `json:"items"`
}

// List returns the immediate contents of a directory path.
func (c *Client) List(ctx context.Context, path string) (*ListEnvelope, error) {
	q := url.Values{"path": {path}}
	req, err := c.newRequest(ctx, http.MethodGet, "/api/virtual-files/list?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vfsclient: list %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ErrUnexpectedStatus{Op: "list " + path, Status: resp.StatusCode, Body: string(body)}
	}

	var env ListEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("vfsclient: list %s: decode response: %w", path, err)
	}
	return &env, nil
}

// CreateFile creates a text file with the given content under parent.
func (c *Client) CreateFile(ctx context.Context, parent, name, content string) error {
	payload, err := json.Marshal(map[string]string{
		"name":        name,
		"parent_path": parent,
		"content":     content,
	})
	if err != nil {
		return fmt.Errorf("vfsclient: create-file %s/%s: %w", parent, name, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/virtual-files/create-file", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vfsclient: create-file %s/%s: %w", parent, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return &ErrUnexpectedStatus{Op: fmt.Sprintf("create-file %s/%s", parent, name), Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}

// CreateFolder creates a directory under parent, used by recursive
// vfs_directory_list/vfs_save flows that need to ensure intermediate paths
// exist.
func (c *Client) CreateFolder(ctx context.Context, parent, name string) error {
	payload, err := json.Marshal(map[string]string{"name": name, "parent_path": parent})
	if err != nil {
		return fmt.Errorf("vfsclient: create-folder %s/%s: %w", parent, name, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/virtual-files/create-folder", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vfsclient: create-folder %s/%s: %w", parent, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return &ErrUnexpectedStatus{Op: fmt.Sprintf("create-folder %s/%s", parent, name), Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}

// UploadFile uploads binary content as a multipart/form-data request
// (spec §6: "multipart: file, parent_path").
func (c *Client) UploadFile(ctx context.Context, parent, name string, data []byte) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("parent_path", parent); err != nil {
		return fmt.Errorf("vfsclient: upload-file %s/%s: %w", parent, name, err)
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return fmt.Errorf("vfsclient: upload-file %s/%s: %w", parent, name, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("vfsclient: upload-file %s/%s: %w", parent, name, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("vfsclient: upload-file %s/%s: %w", parent, name, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/virtual-files/upload-file", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vfsclient: upload-file %s/%s: %w", parent, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return &ErrUnexpectedStatus{Op: fmt.Sprintf("upload-file %s/%s", parent, name), Status: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}

// Delete removes a file or folder at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/virtual-files/delete"+normalizePath(path), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vfsclient: delete %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return &ErrUnexpectedStatus{Op: "delete " + path, Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}

// normalizePath ensures a leading slash, since every VFS path-suffixed
// endpoint expects one (e.g. /api/virtual-files/read/tmp/out.txt).
func normalizePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
