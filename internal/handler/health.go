package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	db *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the Healthcare API")
}

func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, Envelope{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, Envelope{"status": "healthy"})
}
