package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/model"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/httpclient"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/logger"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/tokenstore"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestClient(t *testing.T, baseURL string) httpclient.Client {
	t.Helper()
	store := tokenstore.NewFileStore(filepath.Join(t.TempDir(), "authToken"))
	return httpclient.New(baseURL, store, logger.NewNop())
}

func TestSubmit_RejectsNonVideoLocally(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// A real PNG header so extension and content agree.
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)
	path := writeFile(t, "picture.png", png)

	sub := NewSubmitter(newTestClient(t, srv.URL), logger.NewNop())
	_, err := sub.Submit(context.Background(), path)
	if !errors.Is(err, ErrNotVideo) {
		t.Fatalf("Submit() error = %v, want ErrNotVideo", err)
	}
	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Errorf("server received %d requests, want 0: validation must happen before the network", n)
	}
}

func TestSubmit_MultipartVideo(t *testing.T) {
	content := []byte("fake video bytes")
	var gotField, gotFilename, gotPartType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mr, err := r.MultipartReader()
		if err != nil {
			t.Errorf("not a multipart request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		part, err := mr.NextPart()
		if err != nil {
			t.Errorf("no part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotField = part.FormName()
		gotFilename = part.FileName()
		gotPartType = part.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(part)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"1","job_ref":"job-9","filename":"movie.mp4","filetype":"video/mp4","status":"pending"}`))
	}))
	defer srv.Close()

	path := writeFile(t, "movie.mp4", content)

	sub := NewSubmitter(newTestClient(t, srv.URL), logger.NewNop())
	var notified *model.VideoUploadResponse
	sub.OnUploaded = func(resp model.VideoUploadResponse) { notified = &resp }

	resp, err := sub.Submit(context.Background(), path)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if resp.JobRef != "job-9" {
		t.Errorf("Submit() job_ref = %q, want job-9", resp.JobRef)
	}
	if gotField != "file" {
		t.Errorf("multipart field = %q, want %q", gotField, "file")
	}
	if gotFilename != "movie.mp4" {
		t.Errorf("multipart filename = %q, want movie.mp4", gotFilename)
	}
	if gotPartType != "video/mp4" {
		t.Errorf("part content type = %q, want video/mp4", gotPartType)
	}
	if string(gotBody) != string(content) {
		t.Errorf("uploaded body = %q, want %q", gotBody, content)
	}
	if notified == nil {
		t.Error("OnUploaded hook not fired after successful submission")
	} else if notified.JobRef != "job-9" {
		t.Errorf("OnUploaded job_ref = %q, want job-9", notified.JobRef)
	}
}

func TestSubmit_BackendFailureIsRecoverable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"processing queue unavailable"}`))
	}))
	defer srv.Close()

	path := writeFile(t, "movie.mp4", []byte("bytes"))

	sub := NewSubmitter(newTestClient(t, srv.URL), logger.NewNop())
	fired := false
	sub.OnUploaded = func(model.VideoUploadResponse) { fired = true }

	_, err := sub.Submit(context.Background(), path)
	if err == nil {
		t.Fatal("Submit() error = nil, want backend failure")
	}
	var apiErr *httpclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Submit() error type = %T, want *httpclient.APIError", err)
	}
	if apiErr.Message != "processing queue unavailable" {
		t.Errorf("error message = %q, want the backend's", apiErr.Message)
	}
	if fired {
		t.Error("OnUploaded fired on failure")
	}
}

func TestSubmit_MissingFile(t *testing.T) {
	sub := NewSubmitter(newTestClient(t, "http://unused.invalid"), logger.NewNop())
	if _, err := sub.Submit(context.Background(), filepath.Join(t.TempDir(), "nope.mp4")); err == nil {
		t.Fatal("Submit() error = nil, want open failure")
	}
}
