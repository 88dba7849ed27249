package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BenAji/agora/internal/api/dto"
	"github.com/BenAji/agora/internal/api/middleware"
	"github.com/BenAji/agora/internal/domain/user"
	"github.com/BenAji/agora/pkg/security/auth"
)

var log = logrus.New()

// AuthHandler handles signup, login and profile requests
type AuthHandler struct {
	userService user.Service
	tokens      *auth.JWTService
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(userService user.Service, tokens *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
	}
}

// Signup godoc
// @Summary Register a new user
// @Description Create a user account and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.SignupRequest true "Signup information"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.userService.Signup(c.Request.Context(), user.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      user.Role(req.Role),
		CompanyID: req.CompanyID,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		log.Errorf("Signup failed: %v", err)
		respondError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(created.ID, created.Email, string(created.Role))
	if err != nil {
		log.Errorf("Token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Token: token, User: toUserResponse(created)})
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Errorf("Authentication failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokens.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Errorf("Token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: toUserResponse(u)})
}

// Me godoc
// @Summary Current user profile
// @Description Return the authenticated user with company and manager
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} user.User
// @Failure 401 {object} map[string]string
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	u, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}

func toUserResponse(u *user.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
	}
}
