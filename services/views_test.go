package services

import (
	"testing"

	"github.com/mzhao28/commune/models"
)

func uintPtr(v uint) *uint { return &v }

func TestAssemblePostViews(t *testing.T) {
	posts := []models.Post{
		{ID: 1, AuthorID: 10, Author: models.User{ID: 10, Name: "ada"}, Title: "first"},
		{ID: 2, AuthorID: 11, Author: models.User{ID: 11, Name: "bob"}, CommunityID: uintPtr(5)},
	}
	likeCounts := map[uint]int64{1: 3}
	commentCounts := map[uint]int64{1: 1, 2: 4}
	liked := map[uint]bool{1: true}
	refs := map[uint]CommunityRef{5: {ID: 5, Name: "Gophers", Slug: "gophers"}}

	views := assemblePostViews(posts, likeCounts, commentCounts, liked, refs)
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}

	if views[0].LikesCount != 3 || views[0].CommentsCount != 1 || !views[0].IsLiked {
		t.Fatalf("post 1 projections wrong: %+v", views[0])
	}
	if views[0].Community != nil {
		t.Fatalf("post 1 should have no community ref")
	}
	if views[0].Author.Name != "ada" {
		t.Fatalf("post 1 author = %q", views[0].Author.Name)
	}

	if views[1].LikesCount != 0 || views[1].IsLiked {
		t.Fatalf("post 2 projections wrong: %+v", views[1])
	}
	if views[1].Community == nil || views[1].Community.Slug != "gophers" {
		t.Fatalf("post 2 community ref wrong: %+v", views[1].Community)
	}
}

func TestAssemblePostViewsAnonymousViewer(t *testing.T) {
	posts := []models.Post{{ID: 1, AuthorID: 10}}
	// No viewer: liked map is empty, is_liked is false rather than an error.
	views := assemblePostViews(posts, map[uint]int64{1: 2}, nil, nil, nil)
	if views[0].IsLiked {
		t.Fatal("anonymous viewer must never see is_liked=true")
	}
	if views[0].LikesCount != 2 {
		t.Fatalf("likes_count = %d, want 2", views[0].LikesCount)
	}
}

func TestAssembleCommunityViews(t *testing.T) {
	communities := []models.Community{
		{ID: 1, Name: "Gophers", Slug: "gophers", CreatedByID: 10},
		{ID: 2, Name: "Private Club", Slug: "private-club", CreatedByID: 11, IsPrivate: true},
	}
	memberCounts := map[uint]int64{1: 12, 2: 1}
	memberOf := map[uint]bool{1: true}

	views := assembleCommunityViews(communities, memberCounts, memberOf, 10)
	if !views[0].IsMember || !views[0].IsAdmin || views[0].MembersCount != 12 {
		t.Fatalf("community 1 projections wrong: %+v", views[0])
	}
	if views[1].IsMember || views[1].IsAdmin {
		t.Fatalf("community 2 projections wrong: %+v", views[1])
	}
	if !views[1].IsPrivate {
		t.Fatal("is_private must pass through")
	}
}

func TestAssembleCommunityViewsAnonymous(t *testing.T) {
	communities := []models.Community{{ID: 1, CreatedByID: 0}}
	views := assembleCommunityViews(communities, nil, nil, 0)
	// Viewer id zero means no viewer; is_admin must not trigger on the zero value.
	if views[0].IsAdmin || views[0].IsMember {
		t.Fatalf("anonymous viewer projections wrong: %+v", views[0])
	}
}
