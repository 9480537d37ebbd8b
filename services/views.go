package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/mzhao28/commune/models"
)

// Read-time projections. These are assembled from immutable query results and
// never written back; persisted entities are not mutated with derived data.

// UserRef is the author projection embedded in post and comment views.
type UserRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CommunityRef is the minimal community projection nested inside post views.
type CommunityRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostView is the post resource shape returned to a viewer.
type PostView struct {
	ID             uint          `json:"id"`
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	AuthorID       uint          `json:"author_id"`
	CommunityID    *uint         `json:"community_id"`
	IsAnnouncement bool          `json:"is_announcement"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Author         UserRef       `json:"author"`
	Community      *CommunityRef `json:"community,omitempty"`
	LikesCount     int64         `json:"likes_count"`
	CommentsCount  int64         `json:"comments_count"`
	IsLiked        bool          `json:"is_liked"`
}

// CommunityView is the community resource shape returned to a viewer.
type CommunityView struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IsPrivate    bool      `json:"is_private"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedByID  uint      `json:"created_by_id"`
	IsMember     bool      `json:"is_member"`
	IsAdmin      bool      `json:"is_admin"`
	MembersCount int64     `json:"members_count"`
}

// Aggregator shapes stored rows into response views. A viewerID of zero means
// there is no authenticated viewer: is_liked and is_member come back false.
type Aggregator struct {
	DB *gorm.DB
}

// NewAggregator creates an Aggregator bound to db.
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{DB: db}
}

type countRow struct {
	RefID uint  `gorm:"column:ref_id"`
	N     int64 `gorm:"column:n"`
}

// PostViews builds views for a page of posts with batched count queries.
// withCommunity controls whether the minimal community projection is attached
// (used in user post listings to avoid over-fetching elsewhere).
func (a *Aggregator) PostViews(posts []models.Post, viewerID uint, withCommunity bool) ([]PostView, error) {
	if len(posts) == 0 {
		return []PostView{}, nil
	}

	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	likeCounts, err := a.countByPost(&models.Like{}, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := a.countByPost(&models.Comment{}, postIDs)
	if err != nil {
		return nil, err
	}

	liked := map[uint]bool{}
	if viewerID != 0 {
		var likedIDs []uint
		if err := a.DB.Model(&models.Like{}).
			Where("user_id = ? AND post_id IN ?", viewerID, postIDs).
			Pluck("post_id", &likedIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	refs := map[uint]CommunityRef{}
	if withCommunity {
		communityIDs := make([]uint, 0, len(posts))
		for _, p := range posts {
			if p.CommunityID != nil {
				communityIDs = append(communityIDs, *p.CommunityID)
			}
		}
		if len(communityIDs) > 0 {
			var communities []models.Community
			if err := a.DB.Select("id", "name", "slug").Find(&communities, communityIDs).Error; err != nil {
				return nil, err
			}
			for _, c := range communities {
				refs[c.ID] = CommunityRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
			}
		}
	}

	return assemblePostViews(posts, likeCounts, commentCounts, liked, refs), nil
}

// PostView builds the view for a single post.
func (a *Aggregator) PostView(post models.Post, viewerID uint) (PostView, error) {
	views, err := a.PostViews([]models.Post{post}, viewerID, post.CommunityID != nil)
	if err != nil {
		return PostView{}, err
	}
	return views[0], nil
}

// CommunityViews builds views for a page of communities with batched count
// and membership queries.
func (a *Aggregator) CommunityViews(communities []models.Community, viewerID uint) ([]CommunityView, error) {
	if len(communities) == 0 {
		return []CommunityView{}, nil
	}

	ids := make([]uint, 0, len(communities))
	for _, c := range communities {
		ids = append(ids, c.ID)
	}

	var rows []countRow
	if err := a.DB.Model(&models.CommunityMember{}).
		Select("community_id AS ref_id, COUNT(*) AS n").
		Where("community_id IN ?", ids).
		Group("community_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	memberCounts := map[uint]int64{}
	for _, r := range rows {
		memberCounts[r.RefID] = r.N
	}

	memberOf := map[uint]bool{}
	if viewerID != 0 {
		var memberIDs []uint
		if err := a.DB.Model(&models.CommunityMember{}).
			Where("user_id = ? AND community_id IN ?", viewerID, ids).
			Pluck("community_id", &memberIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range memberIDs {
			memberOf[id] = true
		}
	}

	return assembleCommunityViews(communities, memberCounts, memberOf, viewerID), nil
}

// CommunityView builds the view for a single community.
func (a *Aggregator) CommunityView(community models.Community, viewerID uint) (CommunityView, error) {
	views, err := a.CommunityViews([]models.Community{community}, viewerID)
	if err != nil {
		return CommunityView{}, err
	}
	return views[0], nil
}

func (a *Aggregator) countByPost(model interface{}, postIDs []uint) (map[uint]int64, error) {
	var rows []countRow
	if err := a.DB.Model(model).
		Select("post_id AS ref_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := map[uint]int64{}
	for _, r := range rows {
		counts[r.RefID] = r.N
	}
	return counts, nil
}

func assemblePostViews(posts []models.Post, likeCounts, commentCounts map[uint]int64, liked map[uint]bool, refs map[uint]CommunityRef) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		view := PostView{
			ID:             p.ID,
			Title:          p.Title,
			Content:        p.Content,
			AuthorID:       p.AuthorID,
			CommunityID:    p.CommunityID,
			IsAnnouncement: p.IsAnnouncement,
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
			Author:         UserRef{ID: p.Author.ID, Name: p.Author.Name},
			LikesCount:     likeCounts[p.ID],
			CommentsCount:  commentCounts[p.ID],
			IsLiked:        liked[p.ID],
		}
		if view.Author.ID == 0 {
			view.Author.ID = p.AuthorID
		}
		if p.CommunityID != nil {
			if ref, ok := refs[*p.CommunityID]; ok {
				view.Community = &ref
			}
		}
		views = append(views, view)
	}
	return views
}

func assembleCommunityViews(communities []models.Community, memberCounts map[uint]int64, memberOf map[uint]bool, viewerID uint) []CommunityView {
	views := make([]CommunityView, 0, len(communities))
	for _, c := range communities {
		views = append(views, CommunityView{
			ID:           c.ID,
			Name:         c.Name,
			Description:  c.Description,
			IsPrivate:    c.IsPrivate,
			Slug:         c.Slug,
			CreatedAt:    c.CreatedAt,
			CreatedByID:  c.CreatedByID,
			IsMember:     memberOf[c.ID],
			IsAdmin:      viewerID != 0 && c.CreatedByID == viewerID,
			MembersCount: memberCounts[c.ID],
		})
	}
	return views
}
