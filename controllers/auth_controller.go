package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mzhao28/commune/middleware"
	"github.com/mzhao28/commune/models"
	"github.com/mzhao28/commune/services"
	"github.com/mzhao28/commune/utils"
)

// AuthController handles registration, login, logout, and profile reads.
type AuthController struct {
	identity *services.IdentityStore
	tokens   *utils.TokenManager
	revoked  *utils.TokenStore
}

// NewAuthController creates an AuthController.
func NewAuthController(identity *services.IdentityStore, tokens *utils.TokenManager, revoked *utils.TokenStore) *AuthController {
	return &AuthController{identity: identity, tokens: tokens, revoked: revoked}
}

type userResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

func publicUser(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Register creates a new account and returns it with a bearer token.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required,min=1,max=64"`
		Password string `json:"password" binding:"required,min=6,max=72"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid_input", "invalid request payload")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = utils.Sanitize(strings.TrimSpace(req.Name))
	if req.Name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid_input", "name cannot be empty")
		return
	}

	user, err := a.identity.Register(req.Email, req.Name, req.Password)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	token, _, err := a.tokens.Issue(user.ID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{
		"user":         publicUser(user),
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Login verifies credentials and issues a bearer token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid_input", "invalid request payload")
		return
	}

	user, err := a.identity.Authenticate(strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	token, _, err := a.tokens.Issue(user.ID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	tokenVal, exists := ctx.Get(middleware.ContextTokenKey)
	if !exists {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "no bearer token")
		return
	}
	tokenString, _ := tokenVal.(string)
	if claims, err := a.tokens.Parse(tokenString); err == nil {
		a.revoked.Revoke(tokenString, claims.ExpiresAt.Time)
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}
	user, err := a.identity.GetUser(userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": publicUser(user)})
}

// GetUserPublic returns public profile info by user ID.
func (a *AuthController) GetUserPublic(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid_input", "invalid user id")
		return
	}
	user, err := a.identity.GetUser(id)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"created_at": user.CreatedAt,
	}})
}
