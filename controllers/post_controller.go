package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mzhao28/commune/models"
	"github.com/mzhao28/commune/services"
	"github.com/mzhao28/commune/utils"
)

// PostController manages CRUD operations for posts plus like/unlike.
type PostController struct {
	db    *gorm.DB
	agg   *services.Aggregator
	likes *services.LikeService
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB, agg *services.Aggregator, likes *services.LikeService) *PostController {
	return &PostController{db: db, agg: agg, likes: likes}
}

func (p *PostController) loadPost(id uint) (*models.Post, error) {
	var post models.Post
	if err := p.db.Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create allows authenticated users to create new posts, optionally inside a
// community. The referenced community must exist; membership is not required.
func (p *PostController) Create(ctx *gin.Context) {
	var req struct {
		Title          string `json:"title" binding:"required,min=1,max=255"`
		Content        string `json:"content" binding:"required"`
		CommunityID    *uint  `json:"community_id"`
		IsAnnouncement bool   `json:"is_announcement"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid_input", "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}

	if req.CommunityID != nil {
		var count int64
		if err := p.db.Model(&models.Community{}).Where("id = ?", *req.CommunityID).Count(&count).Error; err != nil {
			renderServiceError(ctx, err)
			return
		}
		if count == 0 {
			renderServiceError(ctx, services.ErrNotFound)
			return
		}
	}

	post := models.Post{
		AuthorID:       userID,
		CommunityID:    req.CommunityID,
		Title:          utils.Sanitize(strings.TrimSpace(req.Title)),
		Content:        utils.Sanitize(req.Content),
		IsAnnouncement: req.IsAnnouncement,
	}
	if err := p.db.Create(&post).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}

	created, err := p.loadPost(post.ID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	view, err := p.agg.PostView(*created, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": view})
}

// List returns paginated posts with like/comment projections.
func (p *PostController) List(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	search := strings.TrimSpace(ctx.Query("search"))

	var posts []models.Post
	q := p.db.Preload("Author").Order("created_at DESC")
	if search != "" {
		q = q.Where("title LIKE ? OR content LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if err := q.Offset((page - 1) * pageSize).Limit(pageSize).Find(&posts).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}

	views, err := p.agg.PostViews(posts, viewerID(ctx), false)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": views, "page": page, "page_size": pageSize})
}

// Announcements returns announcement posts only.
func (p *PostController) Announcements(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var posts []models.Post
	if err := p.db.Where("is_announcement = ?", true).
		Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&posts).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}

	views, err := p.agg.PostViews(posts, viewerID(ctx), false)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": views, "page": page, "page_size": pageSize})
}

// Get returns a single post view.
func (p *PostController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid_input", "invalid post id")
		return
	}

	post, err := p.loadPost(id)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	view, err := p.agg.PostView(*post, viewerID(ctx))
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": view})
}

// Update allows the author to update their post.
func (p *PostController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid_input", "invalid post id")
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid_input", "invalid request payload")
		return
	}

	post, err := p.loadPost(id)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}
	if err := services.CanModifyPost(userID, post); err != nil {
		renderServiceError(ctx, err)
		return
	}

	if req.Title != nil {
		post.Title = utils.Sanitize(strings.TrimSpace(*req.Title))
	}
	if req.Content != nil {
		post.Content = utils.Sanitize(*req.Content)
	}
	if err := p.db.Save(post).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}

	view, err := p.agg.PostView(*post, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": view})
}

// Delete allows the author to delete their post together with its comments
// and likes, children first, in one transaction.
func (p *PostController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid_input", "invalid post id")
		return
	}

	post, err := p.loadPost(id)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}
	if err := services.CanModifyPost(userID, post); err != nil {
		renderServiceError(ctx, err)
		return
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// ListUserPosts returns posts created by a specific user, with the minimal
// community projection attached for each post in a community.
func (p *PostController) ListUserPosts(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40025, "invalid_input", "invalid user id")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var posts []models.Post
	if err := p.db.Where("author_id = ?", id).
		Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&posts).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}

	views, err := p.agg.PostViews(posts, viewerID(ctx), true)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": views, "page": page, "page_size": pageSize})
}

// Like records a like by the authenticated user.
func (p *PostController) Like(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40026, "invalid_input", "invalid post id")
		return
	}

	post, err := p.loadPost(id)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}

	if err := p.likes.Like(userID, post.ID); err != nil {
		renderServiceError(ctx, err)
		return
	}

	view, err := p.agg.PostView(*post, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": view})
}

// Unlike removes the authenticated user's like.
func (p *PostController) Unlike(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40027, "invalid_input", "invalid post id")
		return
	}

	post, err := p.loadPost(id)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}

	if err := p.likes.Unlike(userID, post.ID); err != nil {
		renderServiceError(ctx, err)
		return
	}

	view, err := p.agg.PostView(*post, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": view})
}
