package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mzhao28/commune/models"
)

// CommunityService owns the community lifecycle: creation with slug
// allocation, updates, join/leave, and the explicit cascading delete.
type CommunityService struct {
	DB      *gorm.DB
	Slugs   *SlugAllocator
	Members *MembershipEngine
}

// NewCommunityService wires the community service and its collaborators.
func NewCommunityService(db *gorm.DB, slugs *SlugAllocator) *CommunityService {
	return &CommunityService{
		DB:      db,
		Slugs:   slugs,
		Members: NewMembershipEngine(db),
	}
}

// CommunityUpdate carries optional field changes. The slug and the creator
// are immutable and deliberately absent.
type CommunityUpdate struct {
	Name        *string
	Description *string
	IsPrivate   *bool
}

// Create allocates a slug, persists the community, and enrolls the creator as
// its first member, all inside one transaction.
func (s *CommunityService) Create(creatorID uint, name, description string, isPrivate bool) (*models.Community, error) {
	var community models.Community
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		allocated, err := s.Slugs.Allocate(name, func(candidate string) (bool, error) {
			var count int64
			if err := tx.Model(&models.Community{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
				return false, err
			}
			return count > 0, nil
		})
		if err != nil {
			return err
		}

		community = models.Community{
			Name:        name,
			Slug:        allocated,
			Description: description,
			IsPrivate:   isPrivate,
			CreatedByID: creatorID,
		}
		if err := tx.Create(&community).Error; err != nil {
			// A concurrent allocation won the slug between check and insert.
			if isDuplicateKey(err) {
				return ErrSlugExhausted
			}
			return err
		}

		return s.Members.WithTx(tx).AddMember(community.ID, creatorID)
	})
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// GetByID loads a community by primary key.
func (s *CommunityService) GetByID(id uint) (*models.Community, error) {
	var community models.Community
	if err := s.DB.First(&community, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &community, nil
}

// GetBySlug loads a community by its slug. Private communities are not gated
// here: any authenticated user may fetch the detail view.
func (s *CommunityService) GetBySlug(slug string) (*models.Community, error) {
	var community models.Community
	if err := s.DB.Where("slug = ?", slug).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &community, nil
}

// List returns communities ordered newest first, optionally filtered by a
// case-insensitive name substring.
func (s *CommunityService) List(search string, offset, limit int) ([]models.Community, error) {
	var communities []models.Community
	q := s.DB.Order("created_at DESC")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	err := q.Offset(offset).Limit(limit).Find(&communities).Error
	return communities, err
}

// Update applies field changes after the creator-only policy check.
func (s *CommunityService) Update(actorID, id uint, changes CommunityUpdate) (*models.Community, error) {
	community, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := CanModifyCommunity(actorID, community); err != nil {
		return nil, err
	}

	if changes.Name != nil {
		community.Name = *changes.Name
	}
	if changes.Description != nil {
		community.Description = *changes.Description
	}
	if changes.IsPrivate != nil {
		community.IsPrivate = *changes.IsPrivate
	}
	if err := s.DB.Save(community).Error; err != nil {
		return nil, err
	}
	return community, nil
}

// Delete removes a community and everything under it, children before
// parents, in one transaction: likes and comments of its posts, the posts,
// the membership set, then the community row.
func (s *CommunityService) Delete(actorID, id uint) error {
	community, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := CanModifyCommunity(actorID, community); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&models.Post{}).Select("id").Where("community_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("community_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("community_id = ?", id).Delete(&models.CommunityMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Community{}, id).Error
	})
}

// Join enrolls the actor, subject to the private-community gate.
func (s *CommunityService) Join(actorID, id uint) (*models.Community, error) {
	community, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := CanJoinCommunity(actorID, community); err != nil {
		return nil, err
	}
	if err := s.Members.AddMember(id, actorID); err != nil {
		return nil, err
	}
	return community, nil
}

// Leave removes the actor from the membership set; the creator cannot leave.
func (s *CommunityService) Leave(actorID, id uint) (*models.Community, error) {
	community, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := CanLeaveCommunity(actorID, community); err != nil {
		return nil, err
	}
	if err := s.Members.RemoveMember(community, actorID); err != nil {
		return nil, err
	}
	return community, nil
}
