package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mzhao28/commune/models"
	"github.com/mzhao28/commune/services"
	"github.com/mzhao28/commune/utils"
)

// CommunityController manages community lifecycle and membership endpoints.
type CommunityController struct {
	db      *gorm.DB
	svc     *services.CommunityService
	agg     *services.Aggregator
	members *services.MembershipEngine
}

// NewCommunityController creates a CommunityController.
func NewCommunityController(db *gorm.DB, svc *services.CommunityService, agg *services.Aggregator) *CommunityController {
	return &CommunityController{db: db, svc: svc, agg: agg, members: svc.Members}
}

// Create creates a community; the creator becomes its first member.
func (c *CommunityController) Create(ctx *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required,min=1,max=128"`
		Description string `json:"description"`
		IsPrivate   bool   `json:"is_private"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid_input", "invalid request payload")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid_input", "name cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}

	community, err := c.svc.Create(userID, name, utils.Sanitize(req.Description), req.IsPrivate)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	view, err := c.agg.CommunityView(*community, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"community": view})
}

// List returns communities with viewer-dependent projections, optionally
// filtered by a name substring.
func (c *CommunityController) List(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	search := strings.TrimSpace(ctx.Query("search"))

	communities, err := c.svc.List(search, (page-1)*pageSize, pageSize)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	views, err := c.agg.CommunityViews(communities, viewerID(ctx))
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": views, "page": page, "page_size": pageSize})
}

// ListMine returns communities the authenticated user belongs to.
func (c *CommunityController) ListMine(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	communities, err := c.members.ListForUser(userID, (page-1)*pageSize, pageSize)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	views, err := c.agg.CommunityViews(communities, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": views, "page": page, "page_size": pageSize})
}

// ListOwned returns communities created by the authenticated user.
func (c *CommunityController) ListOwned(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	communities, err := c.members.ListOwnedBy(userID, (page-1)*pageSize, pageSize)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	views, err := c.agg.CommunityViews(communities, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": views, "page": page, "page_size": pageSize})
}

// GetBySlug returns the community detail view. Private communities are not
// membership-gated on read.
func (c *CommunityController) GetBySlug(ctx *gin.Context) {
	slug := strings.TrimSpace(ctx.Param("slug"))
	if slug == "" {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid_input", "missing slug")
		return
	}

	community, err := c.svc.GetBySlug(slug)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	view, err := c.agg.CommunityView(*community, viewerID(ctx))
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"community": view})
}

// Update applies changes; only the creator may update. The slug never changes.
func (c *CommunityController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid_input", "invalid community id")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPrivate   *bool   `json:"is_private"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "invalid_input", "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}

	changes := services.CommunityUpdate{Description: req.Description, IsPrivate: req.IsPrivate}
	if req.Name != nil {
		name := utils.Sanitize(strings.TrimSpace(*req.Name))
		if name == "" {
			utils.Error(ctx, http.StatusBadRequest, 40015, "invalid_input", "name cannot be empty")
			return
		}
		changes.Name = &name
	}
	if req.Description != nil {
		desc := utils.Sanitize(*req.Description)
		changes.Description = &desc
	}

	community, err := c.svc.Update(userID, id, changes)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	view, err := c.agg.CommunityView(*community, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"community": view})
}

// Delete removes a community and its posts, comments, likes, and membership
// rows; only the creator may delete.
func (c *CommunityController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40016, "invalid_input", "invalid community id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}

	if err := c.svc.Delete(userID, id); err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "community deleted"})
}

// Join adds the authenticated user to the membership set.
func (c *CommunityController) Join(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40017, "invalid_input", "invalid community id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}

	community, err := c.svc.Join(userID, id)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	view, err := c.agg.CommunityView(*community, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"community": view})
}

// Leave removes the authenticated user from the membership set.
func (c *CommunityController) Leave(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40018, "invalid_input", "invalid community id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}

	community, err := c.svc.Leave(userID, id)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	view, err := c.agg.CommunityView(*community, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"community": view})
}

// ListPosts returns posts inside a community.
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40019, "invalid_input", "invalid community id")
		return
	}

	if _, err := c.svc.GetByID(id); err != nil {
		renderServiceError(ctx, err)
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	var posts []models.Post
	if err := c.db.Where("community_id = ?", id).
		Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&posts).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}

	views, err := c.agg.PostViews(posts, viewerID(ctx), false)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": views, "page": page, "page_size": pageSize})
}
