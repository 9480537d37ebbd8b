package services

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

type likePair struct {
	userID uint
	postID uint
}

type fakeLikeStore struct {
	likes  map[likePair]bool
	addErr error
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{likes: map[likePair]bool{}}
}

func (f *fakeLikeStore) Liked(userID, postID uint) (bool, error) {
	return f.likes[likePair{userID, postID}], nil
}

func (f *fakeLikeStore) Add(userID, postID uint) error {
	if f.addErr != nil {
		return f.addErr
	}
	key := likePair{userID, postID}
	if f.likes[key] {
		return fmt.Errorf("Error 1062 (23000): Duplicate entry '%d-%d' for key 'uk_user_post'", userID, postID)
	}
	f.likes[key] = true
	return nil
}

func (f *fakeLikeStore) Delete(userID, postID uint) (int64, error) {
	key := likePair{userID, postID}
	if !f.likes[key] {
		return 0, nil
	}
	delete(f.likes, key)
	return 1, nil
}

func (f *fakeLikeStore) Count(postID uint) (int64, error) {
	var n int64
	for key := range f.likes {
		if key.postID == postID {
			n++
		}
	}
	return n, nil
}

func TestLikeTwiceKeepsOneLike(t *testing.T) {
	svc := &LikeService{store: newFakeLikeStore()}

	if err := svc.Like(1, 10); err != nil {
		t.Fatalf("first like: %v", err)
	}
	if err := svc.Like(1, 10); !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("second like = %v, want ErrAlreadyLiked", err)
	}
	if n, _ := svc.LikeCount(10); n != 1 {
		t.Fatalf("likes = %d, want exactly 1", n)
	}
}

func TestLikeConcurrentDuplicateAbsorbed(t *testing.T) {
	store := newFakeLikeStore()
	// The existence check misses a racing insert; the unique index rejects it.
	store.addErr = gorm.ErrDuplicatedKey
	svc := &LikeService{store: store}

	if err := svc.Like(1, 10); !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("racing duplicate = %v, want ErrAlreadyLiked", err)
	}
}

func TestUnlikeNeverLiked(t *testing.T) {
	svc := &LikeService{store: newFakeLikeStore()}

	if err := svc.Unlike(1, 10); !errors.Is(err, ErrNotLiked) {
		t.Fatalf("unlike = %v, want ErrNotLiked", err)
	}
	if n, _ := svc.LikeCount(10); n != 0 {
		t.Fatalf("likes = %d, want 0", n)
	}
}

func TestLikeUnlikeRoundtrip(t *testing.T) {
	svc := &LikeService{store: newFakeLikeStore()}

	if err := svc.Like(2, 10); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := svc.Unlike(2, 10); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if n, _ := svc.LikeCount(10); n != 0 {
		t.Fatalf("likes = %d, want 0 after unlike", n)
	}
	if err := svc.Unlike(2, 10); !errors.Is(err, ErrNotLiked) {
		t.Fatalf("second unlike = %v, want ErrNotLiked", err)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{gorm.ErrDuplicatedKey, true},
		{errors.New("Error 1062 (23000): Duplicate entry 'a@b.c' for key 'users.email'"), true},
		{errors.New("driver: bad connection"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := isDuplicateKey(tc.err); got != tc.want {
			t.Errorf("isDuplicateKey(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
