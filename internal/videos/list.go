// Package videos is the job-list view-model of the Video Unpack client. It
// fetches the signed-in user's processing jobs in one round trip, exposes a
// page-at-a-time view over the in-memory collection, and tracks per-job
// download progress in a keyed registry.
package videos

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/model"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/httpclient"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/logger"
)

const (
	listPath     = "/api/v1/videos"
	downloadPath = "/api/v1/zip/download"

	// DefaultPerPage matches the dashboard's page size.
	DefaultPerPage = 5
)

// List is the paginated view-model over the fetched job collection.
// Pagination is purely client-side; the collection keeps whatever order the
// backend returned.
type List struct {
	client httpclient.Client
	log    logger.Logger
	saver  Saver

	mu          sync.Mutex
	jobs        []model.VideoJob
	page        int
	perPage     int
	downloading map[string]string // job_ref -> operation id
}

// ListOption configures a List.
type ListOption func(*List)

// WithPerPage overrides the page size. Values below 1 are ignored.
func WithPerPage(n int) ListOption {
	return func(l *List) {
		if n >= 1 {
			l.perPage = n
		}
	}
}

// WithSaver substitutes the artifact sink, mainly for tests.
func WithSaver(s Saver) ListOption {
	return func(l *List) { l.saver = s }
}

// NewList creates an empty view-model. Call Refresh to populate it.
func NewList(client httpclient.Client, log logger.Logger, downloadDir string, opts ...ListOption) *List {
	l := &List{
		client:      client,
		log:         log,
		saver:       NewDirSaver(downloadDir),
		page:        1,
		perPage:     DefaultPerPage,
		downloading: make(map[string]string),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Refresh replaces the collection wholesale with the backend's current set.
// The current page is reset to 1 when the job count changed. Two overlapping
// refreshes apply in completion order; the later writer wins.
func (l *List) Refresh(ctx context.Context) error {
	var jobs []model.VideoJob
	if err := l.client.Get(ctx, listPath, &jobs); err != nil {
		return err
	}

	l.mu.Lock()
	if len(jobs) != len(l.jobs) {
		l.page = 1
	}
	l.jobs = jobs
	l.mu.Unlock()
	return nil
}

// Jobs returns a copy of the full fetched collection.
func (l *List) Jobs() []model.VideoJob {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.VideoJob, len(l.jobs))
	copy(out, l.jobs)
	return out
}

// Len returns the total job count.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.jobs)
}

// PageItems returns the slice of jobs on the current page.
func (l *List) PageItems() []model.VideoJob {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := (l.page - 1) * l.perPage
	if start >= len(l.jobs) {
		return nil
	}
	end := start + l.perPage
	if end > len(l.jobs) {
		end = len(l.jobs)
	}
	out := make([]model.VideoJob, end-start)
	copy(out, l.jobs[start:end])
	return out
}

// CurrentPage returns the 1-based page index.
func (l *List) CurrentPage() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// PageCount returns ceil(total/perPage).
func (l *List) PageCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pageCountLocked()
}

func (l *List) pageCountLocked() int {
	return (len(l.jobs) + l.perPage - 1) / l.perPage
}

// GoToPage moves to page n. Requests outside [1, PageCount] leave the
// current page unchanged instead of failing.
func (l *List) GoToPage(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n < 1 || n > l.pageCountLocked() {
		return
	}
	l.page = n
}

// NextPage advances one page, a no-op on the last page.
func (l *List) NextPage() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.page+1 > l.pageCountLocked() {
		return
	}
	l.page++
}

// PrevPage goes back one page, a no-op on the first.
func (l *List) PrevPage() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.page <= 1 {
		return
	}
	l.page--
}

// Downloading reports whether a download of jobRef is in flight.
func (l *List) Downloading(jobRef string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.downloading[jobRef]
	return ok
}

// Download fetches the packaged artifact for jobRef and hands it to the
// saver. The saved name is the job's original filename with its last
// extension segment stripped, or video_<jobRef>.zip when no filename is
// known. The in-flight entry is removed on every exit path; failures are
// returned to the caller and never tear the view down.
//
// A second Download of the same jobRef while one is in flight is not
// blocked or coalesced. The operation id kept in the registry gives a
// future redesign a handle for cancellation or dedup.
func (l *List) Download(ctx context.Context, jobRef string) (string, error) {
	opID := uuid.New().String()
	l.mu.Lock()
	l.downloading[jobRef] = opID
	filename := ""
	for _, j := range l.jobs {
		if j.JobRef == jobRef {
			filename = j.Filename
			break
		}
	}
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		if l.downloading[jobRef] == opID {
			delete(l.downloading, jobRef)
		}
		l.mu.Unlock()
	}()

	q := url.Values{}
	q.Set("job_ref", jobRef)
	data, err := l.client.Download(ctx, downloadPath+"?"+q.Encode())
	if err != nil {
		l.log.Error("download failed", "job_ref", jobRef, "error", err)
		return "", err
	}

	path, err := l.saver.Save(saveName(jobRef, filename), data)
	if err != nil {
		l.log.Error("failed to save download", "job_ref", jobRef, "error", err)
		return "", err
	}
	l.log.Info("download saved", "job_ref", jobRef, "path", path, "op_id", opID)
	return path, nil
}

// saveName derives the on-disk name: the original filename minus its last
// extension segment, or a synthetic zip name when the filename is absent or
// stripping it would leave nothing.
func saveName(jobRef, filename string) string {
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		return filename[:idx]
	}
	return fmt.Sprintf("video_%s.zip", jobRef)
}
