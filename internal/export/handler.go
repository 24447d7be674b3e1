package export

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventlens/backend/pkg/queue"
	"github.com/eventlens/backend/pkg/response"
)

// Handler accepts export requests and enqueues them for the worker.
type Handler struct {
	queue  *queue.Queue
	logger *zap.Logger
}

// NewHandler creates an export handler.
func NewHandler(q *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{queue: q, logger: logger}
}

// RegisterRoutes mounts the export routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/events/:id/analytics/export", h.ExportEventReport)
	rg.POST("/workspaces/:id/analytics/export", h.ExportWorkspaceReport)
}

// ExportEventReport handles POST /events/:id/analytics/export.
func (h *Handler) ExportEventReport(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	jobID, err := h.queue.EnqueueEventReportExport(c.Request.Context(), queue.EventReportExportPayload{EventID: eventID})
	if err != nil {
		h.logger.Error("enqueue event export failed", zap.Error(err))
		response.Internal(c, "failed to enqueue export")
		return
	}
	response.Accepted(c, gin.H{"job_id": jobID})
}

// ExportWorkspaceReport handles POST /workspaces/:id/analytics/export?user_id=<uuid>.
func (h *Handler) ExportWorkspaceReport(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		response.BadRequest(c, "invalid or missing user_id")
		return
	}
	jobID, err := h.queue.EnqueueWorkspaceReportExport(c.Request.Context(), queue.WorkspaceReportExportPayload{
		WorkspaceID: workspaceID,
		RequestedBy: userID,
	})
	if err != nil {
		h.logger.Error("enqueue workspace export failed", zap.Error(err))
		response.Internal(c, "failed to enqueue export")
		return
	}
	response.Accepted(c, gin.H{"job_id": jobID})
}
