package workspaceanalytics

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventlens/backend/pkg/response"
)

// Handler exposes the workspace analytics report over HTTP. The caller's
// identity arrives from the transport layer (already authenticated there);
// the membership check itself happens inside the engine.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a workspace analytics handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts the workspace analytics routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/workspaces/:id/analytics", h.WorkspaceAnalytics)
}

// WorkspaceAnalytics handles GET /workspaces/:id/analytics?user_id=<uuid>.
func (h *Handler) WorkspaceAnalytics(c *gin.Context) {
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

	report, err := h.service.WorkspaceAnalytics(c.Request.Context(), workspaceID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotWorkspaceMember):
			response.Forbidden(c, "not a member of this workspace")
		case errors.Is(err, ErrWorkspaceNotFound):
			response.NotFound(c, "workspace not found")
		default:
			h.logger.Error("workspace analytics failed",
				zap.String("workspace_id", workspaceID.String()), zap.Error(err))
			response.Internal(c, "failed to compute workspace analytics")
		}
		return
	}
	response.OK(c, report)
}
