package eventanalytics

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventlens/backend/pkg/response"
)

// Handler exposes the event analytics computations over HTTP.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates an event analytics handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts the analytics routes under an event group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/:id/analytics/registrations", h.RegistrationsOverTime)
	rg.GET("/events/:id/analytics/checkins", h.CheckInRates)
	rg.GET("/events/:id/analytics/scores", h.ScoreDistributions)
	rg.GET("/events/:id/analytics/judges", h.JudgeParticipation)
	rg.GET("/events/:id/analytics/report", h.ComprehensiveReport)
}

// RegistrationsOverTime handles GET /events/:id/analytics/registrations.
func (h *Handler) RegistrationsOverTime(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	points, err := h.service.RegistrationsOverTime(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "registrations over time", err)
		return
	}
	response.OK(c, points)
}

// CheckInRates handles GET /events/:id/analytics/checkins.
func (h *Handler) CheckInRates(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	rates, err := h.service.CheckInRatesBySession(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "check-in rates", err)
		return
	}
	response.OK(c, rates)
}

// ScoreDistributions handles GET /events/:id/analytics/scores.
func (h *Handler) ScoreDistributions(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	buckets, err := h.service.ScoreDistributions(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "score distributions", err)
		return
	}
	response.OK(c, buckets)
}

// JudgeParticipation handles GET /events/:id/analytics/judges.
func (h *Handler) JudgeParticipation(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	rows, err := h.service.JudgeParticipation(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "judge participation", err)
		return
	}
	response.OK(c, rows)
}

// ComprehensiveReport handles GET /events/:id/analytics/report.
func (h *Handler) ComprehensiveReport(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	report, err := h.service.ComprehensiveReport(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(c, "event not found")
			return
		}
		h.fail(c, "comprehensive report", err)
		return
	}
	response.OK(c, report)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.logger.Error("event analytics failed", zap.String("op", op), zap.Error(err))
	response.Internal(c, "failed to compute event analytics")
}

func eventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return uuid.Nil, false
	}
	return id, true
}
