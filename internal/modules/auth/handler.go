package auth

import (
	"net/http"

	"tutorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the auth endpoints on the /auth group.
func (h *Handler) RegisterRoutes(authGroup *gin.RouterGroup) {
	authGroup.POST("/student/signup", h.StudentSignup)
	authGroup.POST("/student/login", h.StudentLogin)
	authGroup.POST("/tutor/signup", h.TutorSignup)
	authGroup.POST("/tutor/login", h.TutorLogin)
	authGroup.POST("/admin/login", h.AdminLogin)
	authGroup.POST("/logout", h.Logout)
}

// StudentSignup creates a student account and returns a session token.
// @Summary	Student signup
// @Tags		Auth
// @Param		request	body	StudentSignupRequest	true	"name, username, email, password, phone"
// @Success	201	{object}	AuthResult
// @Failure	400	{object}	map[string]interface{}	"validation error"
// @Failure	409	{object}	map[string]interface{}	"username or email already in use"
// @Router		/auth/student/signup [POST]
func (h *Handler) StudentSignup(c *gin.Context) {
	var req StudentSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.service.SignupStudent(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

// TutorSignup creates an unverified tutor account. Availability is mandatory.
// @Summary	Tutor signup
// @Tags		Auth
// @Param		request	body	TutorSignupRequest	true	"profile and weekly availability"
// @Success	201	{object}	AuthResult
// @Failure	400	{object}	map[string]interface{}	"validation error or missing availability"
// @Failure	409	{object}	map[string]interface{}	"username or email already in use"
// @Router		/auth/tutor/signup [POST]
func (h *Handler) TutorSignup(c *gin.Context) {
	var req TutorSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.service.SignupTutor(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) StudentLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.service.LoginStudent(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) TutorLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.service.LoginTutor(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.service.LoginAdmin(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// Logout is stateless. Clients drop their token.
func (h *Handler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}
