package admin

import (
	"errors"
	"io"
	"net/http"

	"tutorhub/internal/middleware"
	"tutorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group that already runs JWTAuth and AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/tutors", h.ListTutors)
	admin.PATCH("/tutors/:tutorId/verify", h.VerifyTutor)
	admin.GET("/stats", h.GetStats)
}

// ListTutors returns tutors page by page, optionally filtered by verification.
// @Summary	List tutors
// @Tags		Admin
// @Security	BearerAuth
// @Param		isVerified	query	bool	false	"verification filter"
// @Param		page		query	int		false	"page number"	default(1)
// @Param		limit		query	int		false	"page size"		default(20)
// @Success	200	{object}	map[string]interface{}	"count, total, page, pages, items"
// @Failure	403	{object}	map[string]interface{}	"admin role required"
// @Router		/admin/tutors [GET]
func (h *Handler) ListTutors(c *gin.Context) {
	var q ListTutorsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}

	page, err := h.service.ListTutors(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) VerifyTutor(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var req VerifyTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BindError(c, err)
		return
	}
	verified := true
	if req.IsVerified != nil {
		verified = *req.IsVerified
	}

	t, err := h.service.SetTutorVerified(c.Request.Context(), p.ID, c.Param("tutorId"), verified)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
