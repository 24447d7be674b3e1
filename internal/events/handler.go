package events

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventlens/backend/pkg/response"
)

// Handler exposes event reads over HTTP.
type Handler struct {
	repo *Repository
}

// NewHandler creates an events handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts the event routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.List)
	rg.GET("/events/:id", h.GetByID)
}

// List handles GET /events.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /events/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	ev, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load event")
		return
	}
	if ev == nil {
		response.NotFound(c, "event not found")
		return
	}
	response.OK(c, ev)
}
