package handlers

import (
	"net/http"
	"time"

	"github.com/anhngq/blogary/internal/models"
	"github.com/anhngq/blogary/internal/repositories"
	"github.com/anhngq/blogary/pkg/token"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles registration, login and the refresh token lifecycle
type AuthHandler struct {
	userRepository  repositories.UserRepository
	tokenRepository repositories.RefreshTokenRepository
	tokens          *token.Manager
	refreshTTL      time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokenRepo repositories.RefreshTokenRepository, tokens *token.Manager, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userRepository:  userRepo,
		tokenRepository: tokenRepo,
		tokens:          tokens,
		refreshTTL:      refreshTTL,
	}
}

// RegisterAuthRoutes registers authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
	g.POST("/logout", h.Logout)
}

// Register creates a new user account and signs it in
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if existing, _ := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email); existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "Email already registered")
	}
	if existing, _ := h.userRepository.GetUserByUsername(c.Request().Context(), req.Username); existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		DisplayName: req.Username,
		Role:        models.RoleUser,
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return httpError(err)
	}

	return h.respondWithTokens(c, http.StatusCreated, user)
}

// Login verifies credentials and issues a token pair
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	return h.respondWithTokens(c, http.StatusOK, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. Revoked and expired tokens are rejected.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stored, err := h.tokenRepository.GetByToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}
	if stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Refresh token expired or revoked")
	}
	if _, err := h.tokens.Verify(req.RefreshToken); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), stored.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	if err := h.tokenRepository.RevokeToken(c.Request().Context(), req.RefreshToken); err != nil {
		return httpError(err)
	}

	return h.respondWithTokens(c, http.StatusOK, user)
}

// Logout revokes the presented refresh token
func (h *AuthHandler) Logout(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.tokenRepository.RevokeToken(c.Request().Context(), req.RefreshToken); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) respondWithTokens(c echo.Context, status int, user *models.User) error {
	accessToken, err := h.tokens.GenerateAccessToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate access token")
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(user.ID, h.refreshTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate refresh token")
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(h.refreshTTL),
	}
	if err := h.tokenRepository.CreateToken(c.Request().Context(), record); err != nil {
		return httpError(err)
	}

	return c.JSON(status, echo.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}
