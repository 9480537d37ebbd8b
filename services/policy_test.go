package services

import (
	"errors"
	"testing"

	"github.com/mzhao28/commune/models"
)

func TestCanModifyPost(t *testing.T) {
	post := &models.Post{ID: 1, AuthorID: 7}

	if err := CanModifyPost(7, post); err != nil {
		t.Fatalf("author denied: %v", err)
	}
	if err := CanModifyPost(8, post); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if err := CanModifyPost(7, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCanModifyComment(t *testing.T) {
	comment := &models.Comment{ID: 1, AuthorID: 3}

	if err := CanModifyComment(3, comment); err != nil {
		t.Fatalf("author denied: %v", err)
	}
	if err := CanModifyComment(4, comment); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestCanModifyCommunity(t *testing.T) {
	community := &models.Community{ID: 1, CreatedByID: 5}

	if err := CanModifyCommunity(5, community); err != nil {
		t.Fatalf("creator denied: %v", err)
	}
	if err := CanModifyCommunity(6, community); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestCanJoinCommunity(t *testing.T) {
	public := &models.Community{ID: 1, CreatedByID: 5}
	private := &models.Community{ID: 2, CreatedByID: 5, IsPrivate: true}

	if err := CanJoinCommunity(9, public); err != nil {
		t.Fatalf("public join denied: %v", err)
	}
	if err := CanJoinCommunity(9, private); !errors.Is(err, ErrPrivateCommunity) {
		t.Fatalf("got %v, want ErrPrivateCommunity", err)
	}
	// The creator may always join their own private community.
	if err := CanJoinCommunity(5, private); err != nil {
		t.Fatalf("creator join denied: %v", err)
	}
}

func TestCanLeaveCommunity(t *testing.T) {
	community := &models.Community{ID: 1, CreatedByID: 5}

	if err := CanLeaveCommunity(5, community); !errors.Is(err, ErrOwnerCannotLeave) {
		t.Fatalf("got %v, want ErrOwnerCannotLeave", err)
	}
	if err := CanLeaveCommunity(9, community); err != nil {
		t.Fatalf("member leave denied: %v", err)
	}
}

func TestLikeGuards(t *testing.T) {
	if err := CheckLike(true); !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("got %v, want ErrAlreadyLiked", err)
	}
	if err := CheckLike(false); err != nil {
		t.Fatalf("first like denied: %v", err)
	}
	if err := CheckUnlike(false); !errors.Is(err, ErrNotLiked) {
		t.Fatalf("got %v, want ErrNotLiked", err)
	}
	if err := CheckUnlike(true); err != nil {
		t.Fatalf("unlike denied: %v", err)
	}
}

func TestReasonMapping(t *testing.T) {
	cases := map[error]string{
		ErrNotFound:         "not_found",
		ErrForbidden:        "forbidden",
		ErrDuplicateEmail:   "duplicate_email",
		ErrInvalidLogin:     "invalid_credentials",
		ErrInactiveAccount:  "inactive_account",
		ErrAlreadyLiked:     "already_liked",
		ErrNotLiked:         "not_liked",
		ErrOwnerCannotLeave: "owner_cannot_leave",
		ErrPrivateCommunity: "private_community",
		ErrSlugExhausted:    "slug_exhausted",
		errors.New("mystery"): "internal",
	}
	for err, want := range cases {
		if got := Reason(err); got != want {
			t.Errorf("Reason(%v) = %q, want %q", err, got, want)
		}
	}
}
