package services

import "github.com/mzhao28/commune/models"

// Authorization policy: pure decision functions with no side effects. Each
// takes the acting user and the resource state and returns nil to allow or a
// typed failure to deny.

// CanModifyPost allows only the author to update or delete a post.
func CanModifyPost(actorID uint, post *models.Post) error {
	if post == nil {
		return ErrNotFound
	}
	if post.AuthorID != actorID {
		return ErrForbidden
	}
	return nil
}

// CanModifyComment allows only the author to update or delete a comment.
func CanModifyComment(actorID uint, comment *models.Comment) error {
	if comment == nil {
		return ErrNotFound
	}
	if comment.AuthorID != actorID {
		return ErrForbidden
	}
	return nil
}

// CanModifyCommunity allows only the creator to update or delete a community.
func CanModifyCommunity(actorID uint, community *models.Community) error {
	if community == nil {
		return ErrNotFound
	}
	if community.CreatedByID != actorID {
		return ErrForbidden
	}
	return nil
}

// CanJoinCommunity denies joining a private community to everyone but its
// creator. Public communities are open to any authenticated user.
func CanJoinCommunity(actorID uint, community *models.Community) error {
	if community == nil {
		return ErrNotFound
	}
	if community.IsPrivate && community.CreatedByID != actorID {
		return ErrPrivateCommunity
	}
	return nil
}

// CanLeaveCommunity denies leaving to the creator; ownership is permanent and
// the creator is always a member.
func CanLeaveCommunity(actorID uint, community *models.Community) error {
	if community == nil {
		return ErrNotFound
	}
	if community.CreatedByID == actorID {
		return ErrOwnerCannotLeave
	}
	return nil
}

// CheckLike gates a like creation on the current (actor, post) like state.
func CheckLike(alreadyLiked bool) error {
	if alreadyLiked {
		return ErrAlreadyLiked
	}
	return nil
}

// CheckUnlike gates a like removal on the current (actor, post) like state.
func CheckUnlike(liked bool) error {
	if !liked {
		return ErrNotLiked
	}
	return nil
}
