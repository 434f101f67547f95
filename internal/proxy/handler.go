package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/config"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/logger"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/response"
)

// Handler forwards a single request to the configured backend.
type Handler struct {
	cfg    *config.Config
	logger logger.Logger
	http   *http.Client
}

func NewHandler(cfg *config.Config, l logger.Logger, client *http.Client) *Handler {
	return &Handler{cfg: cfg, logger: l, http: client}
}

// Forward relays the request to <backend>/api/<path>. A missing backend
// address is fatal for this request only and reported with a
// machine-readable body rather than failing silently. Non-JSON upstream
// responses are not supported on this path.
func (h *Handler) Forward(c *gin.Context) {
	backend := h.cfg.Proxy.BackendURL
	if backend == "" {
		h.logger.Error("BACKEND_URL is not configured")
		response.Fail(c, "BACKEND_URL is not configured", "set BACKEND_URL in the deployment environment")
		return
	}

	target := strings.TrimRight(backend, "/") + "/api" + c.Param("path")
	if raw := c.Request.URL.RawQuery; raw != "" {
		target += "?" + raw
	}

	var body io.Reader
	if c.Request.Method != http.MethodGet {
		body = c.Request.Body
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target, body)
	if err != nil {
		response.Fail(c, "proxy error", err.Error())
		return
	}
	for key, values := range c.Request.Header {
		req.Header[http.CanonicalHeaderKey(key)] = values
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Host = ""

	resp, err := h.http.Do(req)
	if err != nil {
		h.logger.Error("proxy request failed", "target", target, "error", err)
		response.Fail(c, "proxy error", err.Error())
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		response.Fail(c, "proxy error", err.Error())
		return
	}
	if !json.Valid(data) {
		h.logger.Error("upstream returned a non-JSON body", "target", target, "status", resp.StatusCode)
		response.Fail(c, "proxy error", "upstream returned a non-JSON body")
		return
	}

	h.logger.Debug("proxied request", "method", c.Request.Method, "target", target, "status", resp.StatusCode)
	response.Relay(c, resp.StatusCode, data)
}

// Recovery returns a middleware that recovers from panics and reports a
// JSON 500 instead of dropping the connection.
func Recovery(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				l.Error("panic recovered", "panic", err, "stack", string(debug.Stack()))
				response.Fail(c, "internal server error", "")
			}
		}()
		c.Next()
	}
}
