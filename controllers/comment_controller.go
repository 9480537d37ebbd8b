package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mzhao28/commune/models"
	"github.com/mzhao28/commune/services"
	"github.com/mzhao28/commune/utils"
)

// CommentController manages comments under posts.
type CommentController struct {
	db *gorm.DB
}

// NewCommentController creates a CommentController.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

func (c *CommentController) loadComment(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := c.db.Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListForPost returns comments on a post, oldest first.
func (c *CommentController) ListForPost(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid_input", "invalid post id")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var comments []models.Comment
	if err := c.db.Where("post_id = ?", postID).
		Preload("Author").
		Order("created_at ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&comments).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": comments, "page": page, "page_size": pageSize})
}

// Create adds a comment to an existing post; any authenticated user may comment.
func (c *CommentController) Create(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid_input", "invalid post id")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid_input", "invalid request payload")
		return
	}

	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40033, "invalid_input", "content cannot be empty")
		return
	}

	var count int64
	if err := c.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}
	if count == 0 {
		renderServiceError(ctx, services.ErrNotFound)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}

	comment := models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  content,
	}
	if err := c.db.Create(&comment).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}
	if err := c.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// Update allows the author to edit their comment.
func (c *CommentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40034, "invalid_input", "invalid comment id")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40035, "invalid_input", "invalid request payload")
		return
	}

	comment, err := c.loadComment(id)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}
	if err := services.CanModifyComment(userID, comment); err != nil {
		renderServiceError(ctx, err)
		return
	}

	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40036, "invalid_input", "content cannot be empty")
		return
	}

	comment.Content = content
	if err := c.db.Save(comment).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// Delete allows the author to delete their comment.
func (c *CommentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40037, "invalid_input", "invalid comment id")
		return
	}

	comment, err := c.loadComment(id)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthenticated", "unauthorized")
		return
	}
	if err := services.CanModifyComment(userID, comment); err != nil {
		renderServiceError(ctx, err)
		return
	}

	if err := c.db.Delete(comment).Error; err != nil {
		renderServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}
