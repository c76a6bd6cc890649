package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/harborview/booking-backend/internal/config"
	"github.com/harborview/booking-backend/internal/database"
	"github.com/harborview/booking-backend/internal/middleware"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/harborview/booking-backend/pkg/jwt"
)

type AuthHandler struct {
	jwtService *jwt.Service
	guestRepo  *database.GuestRepository
	cfg        *config.Config
	logger     *logrus.Logger
}

func NewAuthHandler(
	jwtService *jwt.Service,
	guestRepo *database.GuestRepository,
	cfg *config.Config,
	logger *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		guestRepo:  guestRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// Signup creates a new guest account and issues tokens
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	existing, err := h.guestRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.WithError(err).Error("Failed to look up guest by email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Failed to create account"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "email_taken",
			"message": "An account with this email already exists",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cfg.Security.BcryptCost)
	if err != nil {
		h.logger.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Failed to create account"})
		return
	}

	guest := &models.Guest{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		Role:         models.RoleGuest,
		PasswordHash: string(hash),
	}

	if err := h.guestRepo.Create(c.Request.Context(), guest); err != nil {
		h.logger.WithError(err).Error("Failed to create guest profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Failed to create account"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"guest_id": guest.ID,
		"email":    guest.Email,
	}).Info("Guest account created")

	h.respondWithTokens(c, http.StatusCreated, guest)
}

// Login verifies credentials and issues tokens
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	guest, err := h.guestRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.WithError(err).Error("Failed to look up guest by email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Failed to log in"})
		return
	}

	// Same response for unknown email and wrong password so the
	// endpoint can't be used to probe which emails exist
	if guest == nil || bcrypt.CompareHashAndPassword([]byte(guest.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "Invalid email or password",
		})
		return
	}

	h.respondWithTokens(c, http.StatusOK, guest)
}

// Refresh exchanges a valid refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		message := "Invalid refresh token"
		if h.jwtService.IsTokenExpired(req.RefreshToken) {
			message = "Refresh token has expired"
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": message})
		return
	}

	// Re-read the profile so refreshed tokens pick up role or name
	// changes made since the original login
	guest, err := h.guestRepo.GetByID(c.Request.Context(), claims.GuestID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load guest for token refresh")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Failed to refresh token"})
		return
	}
	if guest == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Account no longer exists"})
		return
	}

	h.respondWithTokens(c, http.StatusOK, guest)
}

// GetProfile returns the authenticated guest's profile
// GET /api/v1/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	guestCtx, exists := middleware.GetGuestContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	guest, err := h.guestRepo.GetByID(c.Request.Context(), guestCtx.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load guest profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Failed to load profile"})
		return
	}
	if guest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, guest)
}

func (h *AuthHandler) respondWithTokens(c *gin.Context, status int, guest *models.Guest) {
	accessToken, err := h.jwtService.GenerateAccessToken(guest.ID, guest.Email, guest.Name, string(guest.Role))
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate access token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Failed to issue tokens"})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(guest.ID, guest.Email)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate refresh token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Failed to issue tokens"})
		return
	}

	c.JSON(status, models.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Guest:        guest,
	})
}
