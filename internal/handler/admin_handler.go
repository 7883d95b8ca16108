package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cosspos/internal/worker"
)

// AdminHandler exposes queue maintenance for administrators.
type AdminHandler struct {
	pool *worker.Pool
}

func NewAdminHandler(pool *worker.Pool) *AdminHandler {
	return &AdminHandler{pool: pool}
}

// ListarDLQ shows dead-letter jobs without consuming them.
func (h *AdminHandler) ListarDLQ(c *gin.Context) {
	jobs, err := h.pool.ListarDLQ(c.Request.Context())
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(jobs), "jobs": jobs})
}

// ReencolarDLQ replays every dead-letter job.
func (h *AdminHandler) ReencolarDLQ(c *gin.Context) {
	movidos, err := h.pool.ReencolarDLQ(c.Request.Context())
	if err != nil {
		fallar(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reencolados": movidos})
}
