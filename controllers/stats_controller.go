package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mzhao28/commune/models"
	"github.com/mzhao28/commune/utils"
)

// StatsController provides aggregate totals for the instance.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns user, community, post, and comment totals.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var communityCount int64
	var postCount int64
	var commentCount int64

	// Fall back to 0 per counter instead of failing the whole endpoint
	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := s.db.Model(&models.Community{}).Count(&communityCount).Error; err != nil {
		communityCount = 0
	}
	if err := s.db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		postCount = 0
	}
	if err := s.db.Model(&models.Comment{}).Count(&commentCount).Error; err != nil {
		commentCount = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":      userCount,
		"community_count": communityCount,
		"post_count":      postCount,
		"comment_count":   commentCount,
	})
}
