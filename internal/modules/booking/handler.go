package booking

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

// RegisterRoutes mounts the slot view on public and the booking routes on
// protected, which must already run JWTAuth.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/tutors/:tutorId/slots", h.DaySlots)

	bookings := protected.Group("/bookings")
	bookings.POST("", middleware.RequireRole(domain.RoleStudent), h.Create)
	bookings.GET("/student", middleware.RequireRole(domain.RoleStudent), h.ListForStudent)
	bookings.GET("/tutor", middleware.RequireRole(domain.RoleTutor), h.ListForTutor)
	bookings.GET("/:bookingId", h.Get)
	bookings.PATCH("/:bookingId", h.UpdateStatus)
	bookings.DELETE("/:bookingId", middleware.AdminOnly(), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), p.ID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Get(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), p, c.Param("bookingId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListForStudent(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	items, err := h.service.ListForStudent(c.Request.Context(), p.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ListForTutor(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	items, err := h.service.ListForTutor(c.Request.Context(), p.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), p, c.Param("bookingId"), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("bookingId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Booking deleted"})
}

func (h *Handler) DaySlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query parameter is required")
		return
	}

	out, err := h.service.DaySlots(c.Request.Context(), c.Param("tutorId"), date)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}
