package vfsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Read(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-Token") != "tok" {
			t.Errorf("missing session token header")
		}
		if r.URL.Path != "/api/virtual-files/read/tmp/out.txt" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ReadEnvelope{Content: "hello"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	env, err := c.Read(context.Background(), "/tmp/out.txt")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if env.Content != "hello" {
		t.Errorf("Content = %q, want %q", env.Content, "hello")
	}
}

func TestClient_Read_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	if _, err := c.Read(context.Background(), "/missing.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestClient_Info(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "exists", status: http.StatusOK, want: true},
		{name: "missing", status: http.StatusNotFound, want: false},
		{name: "server error still treated as missing", status: http.StatusInternalServerError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := New(srv.URL, "tok", srv.Client())
			got, err := c.Info(context.Background(), "/a.txt")
			if err != nil {
				t.Fatalf("Info() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Info() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_Download(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	got, err := c.Download(context.Background(), "/img.png")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Download() = %v, want %v", got, payload)
	}
}

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("path") != "/tmp" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(ListEnvelope{Items: []ListItem{
			{Name: "a.txt", Type: "file"},
			{Name: "sub", IsDirectory: true},
		}})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	env, err := c.List(context.Background(), "/tmp")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(env.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(env.Items))
	}
}

func TestClient_CreateFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "out.txt" || body["parent_path"] != "/tmp" || body["content"] != "hi" {
			t.Errorf("unexpected body: %+v", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	if err := c.CreateFile(context.Background(), "/tmp", "out.txt", "hi"); err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}
}

func TestClient_CreateFile_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	err := c.CreateFile(context.Background(), "/tmp", "out.txt", "hi")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_UploadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if r.FormValue("parent_path") != "/tmp" {
			t.Errorf("parent_path = %q", r.FormValue("parent_path"))
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		if header.Filename != "img.png" {
			t.Errorf("filename = %q", header.Filename)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	if err := c.UploadFile(context.Background(), "/tmp", "img.png", []byte{1, 2, 3}); err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
}

func TestClient_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client())
	if err := c.Delete(context.Background(), "/tmp/out.txt"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}
