package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/logger"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/tokenstore"
)

func newTestStore(t *testing.T) tokenstore.Store {
	t.Helper()
	return tokenstore.NewFileStore(filepath.Join(t.TempDir(), "authToken"))
}

func TestClient_BearerFromStore(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := newTestStore(t)
	if err := store.Save("stored-token"); err != nil {
		t.Fatal(err)
	}

	// A token persisted by a previous run is picked up without SetAuthToken.
	c := New(srv.URL, store, logger.NewNop())
	if err := c.Get(context.Background(), "/api/v1/videos", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotAuth != "Bearer stored-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer stored-token")
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth, hasAuth = r.Header.Get("Authorization"), r.Header.Get("Authorization") != ""
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore(t), logger.NewNop())
	if err := c.Post(context.Background(), "/api/v1/auth/signin", map[string]string{"username": "u"}, nil); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if hasAuth {
		t.Errorf("unauthenticated request carried Authorization = %q, want none", gotAuth)
	}
}

func TestClient_SetAuthTokenAffectsLaterRequests(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := newTestStore(t)
	c := New(srv.URL, store, logger.NewNop())

	if err := c.SetAuthToken("fresh"); err != nil {
		t.Fatalf("SetAuthToken() error = %v", err)
	}
	if err := c.Get(context.Background(), "/x", nil); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer fresh" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer fresh")
	}

	// The token is persisted, not just cached.
	stored, _ := store.Read()
	if stored != "fresh" {
		t.Errorf("stored token = %q, want %q", stored, "fresh")
	}

	if err := c.RemoveAuthToken(); err != nil {
		t.Fatalf("RemoveAuthToken() error = %v", err)
	}
	if err := c.Get(context.Background(), "/x", nil); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization after RemoveAuthToken = %q, want none", gotAuth)
	}
}

func TestClient_UnauthorizedTeardown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	store := newTestStore(t)
	if err := store.Save("stale"); err != nil {
		t.Fatal(err)
	}

	hookCalls := 0
	c := New(srv.URL, store, logger.NewNop(), WithUnauthorizedHook(func() { hookCalls++ }))

	err := c.Get(context.Background(), "/api/v1/videos", nil)
	if err == nil {
		t.Fatal("Get() error = nil, want APIError")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("Get() error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("APIError.Status = %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "token expired" {
		t.Errorf("APIError.Message = %q, want %q", apiErr.Message, "token expired")
	}
	if hookCalls != 1 {
		t.Errorf("unauthorized hook calls = %d, want 1", hookCalls)
	}

	stored, err := store.Read()
	if err != nil {
		t.Fatal(err)
	}
	if stored != "" {
		t.Errorf("token store after 401 = %q, want empty", stored)
	}
}

func TestClient_ErrorMessageShapes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "message field", status: 400, body: `{"message":"bad input"}`, wantMsg: "bad input"},
		{name: "error field", status: 500, body: `{"error":"boom"}`, wantMsg: "boom"},
		{name: "non-json body", status: 502, body: "Bad Gateway", wantMsg: "502 Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, newTestStore(t), logger.NewNop())
			err := c.Get(context.Background(), "/x", nil)
			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("error type = %T, want *APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClient_DownloadRawBytes(t *testing.T) {
	payload := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0x01} // zip magic, not JSON
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Write(payload)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore(t), logger.NewNop())
	got, err := c.Download(context.Background(), "/api/v1/zip/download?job_ref=abc")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Download() = %v, want %v", got, payload)
	}
}

func TestClient_PostDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore(t), logger.NewNop())
	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.Post(context.Background(), "/api/v1/auth/signin", map[string]string{"username": "u"}, &out); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if out.AccessToken != "tok" || !strings.EqualFold(out.TokenType, "bearer") {
		t.Errorf("decoded = %+v, want access_token tok", out)
	}
}
