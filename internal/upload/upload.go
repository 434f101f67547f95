// Package upload submits a locally selected video file to the backend as a
// single multipart request. Non-video files are rejected before any network
// traffic.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/model"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/httpclient"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/logger"
)

const uploadPath = "/api/v1/videos"

// The platform mime table lacks the common video containers on minimal
// systems, so the formats the product advertises are registered up front.
func init() {
	for ext, typ := range map[string]string{
		".mp4":  "video/mp4",
		".avi":  "video/x-msvideo",
		".mov":  "video/quicktime",
		".mkv":  "video/x-matroska",
		".webm": "video/webm",
	} {
		_ = mime.AddExtensionType(ext, typ)
	}
}

// ErrNotVideo is returned when the selected file's media type does not
// begin with video/. It is a validation error: no request has been sent.
var ErrNotVideo = errors.New("selected file is not a video")

// Submitter issues upload requests.
type Submitter struct {
	client httpclient.Client
	log    logger.Logger

	// OnUploaded, when set, fires after a successful submission. The job
	// list uses it as its refresh signal.
	OnUploaded func(model.VideoUploadResponse)
}

// NewSubmitter creates a Submitter over the given client.
func NewSubmitter(client httpclient.Client, log logger.Logger) *Submitter {
	return &Submitter{client: client, log: log}
}

// Submit validates and uploads the file at path, returning the created job.
// The file travels in one multipart request under the field name "file"
// with its detected media type on the part.
func (s *Submitter) Submit(ctx context.Context, path string) (model.VideoUploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.VideoUploadResponse{}, err
	}
	defer f.Close()

	contentType, err := detectMediaType(path, f)
	if err != nil {
		return model.VideoUploadResponse{}, err
	}
	if !strings.HasPrefix(contentType, "video/") {
		return model.VideoUploadResponse{}, fmt.Errorf("%w: %s has media type %s", ErrNotVideo, filepath.Base(path), contentType)
	}

	var resp model.VideoUploadResponse
	err = s.client.PostMultipart(ctx, uploadPath, "file", filepath.Base(path), contentType, f, &resp)
	if err != nil {
		s.log.Error("upload failed", "file", filepath.Base(path), "error", err)
		return model.VideoUploadResponse{}, err
	}

	s.log.Info("upload accepted", "file", filepath.Base(path), "job_ref", resp.JobRef)
	if s.OnUploaded != nil {
		s.OnUploaded(resp)
	}
	return resp, nil
}

// detectMediaType resolves the file's media type from its extension, the
// same signal the browser's File.type carries, and sniffs the leading bytes
// when the extension is unknown. The reader is rewound before returning.
func detectMediaType(path string, f io.ReadSeeker) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if base, _, err := mime.ParseMediaType(ct); err == nil {
			return base, nil
		}
		return ct, nil
	}

	var head bytes.Buffer
	if _, err := io.CopyN(&head, f, 512); err != nil && err != io.EOF {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	ct := http.DetectContentType(head.Bytes())
	if base, _, err := mime.ParseMediaType(ct); err == nil {
		return base, nil
	}
	return ct, nil
}
