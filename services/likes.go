package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mzhao28/commune/models"
)

// LikeStore is the persistence surface behind the like service. Add must fail
// with a duplicate-key error when the (user, post) pair already exists; the
// unique index is the authoritative guard against concurrent identical likes.
type LikeStore interface {
	Liked(userID, postID uint) (bool, error)
	Add(userID, postID uint) error
	Delete(userID, postID uint) (int64, error)
	Count(postID uint) (int64, error)
}

// LikeService creates and removes likes, holding the at-most-one-like-per-
// (user, post) invariant through the policy checks and the store's unique
// index.
type LikeService struct {
	store LikeStore
}

// NewLikeService creates a LikeService backed by db.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{store: &gormLikeStore{db: db}}
}

// Like records that userID liked postID. A second like by the same user fails
// with ErrAlreadyLiked and leaves the like set unchanged.
func (s *LikeService) Like(userID, postID uint) error {
	liked, err := s.store.Liked(userID, postID)
	if err != nil {
		return err
	}
	if err := CheckLike(liked); err != nil {
		return err
	}
	if err := s.store.Add(userID, postID); err != nil {
		// Concurrent identical request slipped past the check; the unique
		// index rejected it, which is the same outcome.
		if isDuplicateKey(err) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// Unlike removes the like for (userID, postID). Unliking a post never liked
// fails with ErrNotLiked.
func (s *LikeService) Unlike(userID, postID uint) error {
	removed, err := s.store.Delete(userID, postID)
	if err != nil {
		return err
	}
	return CheckUnlike(removed > 0)
}

// IsLiked reports whether userID has liked postID.
func (s *LikeService) IsLiked(userID, postID uint) (bool, error) {
	return s.store.Liked(userID, postID)
}

// LikeCount returns the number of likes on a post.
func (s *LikeService) LikeCount(postID uint) (int64, error) {
	return s.store.Count(postID)
}

type gormLikeStore struct {
	db *gorm.DB
}

func (s *gormLikeStore) Liked(userID, postID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormLikeStore) Add(userID, postID uint) error {
	return s.db.Create(&models.Like{UserID: userID, PostID: postID}).Error
}

func (s *gormLikeStore) Delete(userID, postID uint) (int64, error) {
	res := s.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
	return res.RowsAffected, res.Error
}

func (s *gormLikeStore) Count(postID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL error 1062 surfaces as a plain message without the translator enabled
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
