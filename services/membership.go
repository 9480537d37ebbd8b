package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mzhao28/commune/models"
)

// MembershipStore is the persistence surface behind the membership engine.
// Insert must be a no-op for an already present (community, user) pair.
type MembershipStore interface {
	Insert(communityID, userID uint) error
	Remove(communityID, userID uint) error
	Exists(communityID, userID uint) (bool, error)
	Count(communityID uint) (int64, error)
	CommunitiesFor(userID uint, offset, limit int) ([]models.Community, error)
	CommunitiesOwnedBy(userID uint, offset, limit int) ([]models.Community, error)
}

// MembershipEngine manages the community membership set. The relation carries
// no attributes beyond the pair itself; "owner" is implicit (the creator).
type MembershipEngine struct {
	store MembershipStore
}

// NewMembershipEngine creates a MembershipEngine backed by db.
func NewMembershipEngine(db *gorm.DB) *MembershipEngine {
	return &MembershipEngine{store: &gormMembershipStore{db: db}}
}

// WithTx returns an engine operating inside the given transaction.
func (e *MembershipEngine) WithTx(tx *gorm.DB) *MembershipEngine {
	return &MembershipEngine{store: &gormMembershipStore{db: tx}}
}

// AddMember inserts into the membership set. Adding an existing member is a
// no-op.
func (e *MembershipEngine) AddMember(communityID, userID uint) error {
	return e.store.Insert(communityID, userID)
}

// RemoveMember removes a user from the membership set after the leave policy
// allows it; the community creator can never be removed. Removing a
// non-member is a no-op.
func (e *MembershipEngine) RemoveMember(community *models.Community, userID uint) error {
	if community == nil {
		return ErrNotFound
	}
	if err := CanLeaveCommunity(userID, community); err != nil {
		return err
	}
	return e.store.Remove(community.ID, userID)
}

// IsMember reports whether the user belongs to the community.
func (e *MembershipEngine) IsMember(communityID, userID uint) (bool, error) {
	return e.store.Exists(communityID, userID)
}

// MemberCount returns the cardinality of the membership set.
func (e *MembershipEngine) MemberCount(communityID uint) (int64, error) {
	return e.store.Count(communityID)
}

// ListForUser returns communities the user is a member of.
func (e *MembershipEngine) ListForUser(userID uint, offset, limit int) ([]models.Community, error) {
	return e.store.CommunitiesFor(userID, offset, limit)
}

// ListOwnedBy returns communities created by the user.
func (e *MembershipEngine) ListOwnedBy(userID uint, offset, limit int) ([]models.Community, error) {
	return e.store.CommunitiesOwnedBy(userID, offset, limit)
}

type gormMembershipStore struct {
	db *gorm.DB
}

func (s *gormMembershipStore) Insert(communityID, userID uint) error {
	member := models.CommunityMember{CommunityID: communityID, UserID: userID}
	// The (community_id, user_id) unique index absorbs duplicate joins.
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "community_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&member).Error
}

func (s *gormMembershipStore) Remove(communityID, userID uint) error {
	return s.db.Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&models.CommunityMember{}).Error
}

func (s *gormMembershipStore) Exists(communityID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormMembershipStore) Count(communityID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.CommunityMember{}).
		Where("community_id = ?", communityID).
		Count(&count).Error
	return count, err
}

func (s *gormMembershipStore) CommunitiesFor(userID uint, offset, limit int) ([]models.Community, error) {
	var communities []models.Community
	err := s.db.
		Joins("JOIN community_members ON community_members.community_id = communities.id").
		Where("community_members.user_id = ?", userID).
		Order("communities.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&communities).Error
	return communities, err
}

func (s *gormMembershipStore) CommunitiesOwnedBy(userID uint, offset, limit int) ([]models.Community, error) {
	var communities []models.Community
	err := s.db.
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&communities).Error
	return communities, err
}
