package stats

import (
	"net/http"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/pkg/health"
)

// Handler serves GET /stats and GET /status.
type Handler struct {
	svc    *Service
	status http.Handler
}

// NewHandler creates the handler. checks back GET /status, typically
// "redis" and "db".
func NewHandler(svc *Service, checks health.Checks, opts ...health.Option) *Handler {
	return &Handler{svc: svc, status: health.StatusHandler(checks, opts...)}
}

// Routes implements internal.Handler.
func (h *Handler) Routes(r internal.Router) {
	r.GET("/stats", h.stats)
	r.GET("/status", func(c internal.Context) error {
		h.status.ServeHTTP(c.Response(), c.Request())
		return nil
	})
}

func (h *Handler) stats(c internal.Context) error {
	st, err := h.svc.Get(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
