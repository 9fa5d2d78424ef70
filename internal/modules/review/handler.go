package review

import (
	"net/http"

	"tutorhub/internal/domain"
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

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/reviews/tutor/:tutorId", h.ListByTutor)

	protected.POST("/reviews", middleware.RequireRole(domain.RoleStudent), h.Create)
	protected.DELETE("/reviews/:reviewId", middleware.RequireRole(domain.RoleStudent, domain.RoleAdmin), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.service.Create(c.Request.Context(), p.ID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) Delete(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	out, err := h.service.Delete(c.Request.Context(), p, c.Param("reviewId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ListByTutor(c *gin.Context) {
	items, err := h.service.ListByTutor(c.Request.Context(), c.Param("tutorId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
