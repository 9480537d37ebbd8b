package services

import (
	"errors"
	"testing"

	"github.com/mzhao28/commune/models"
)

type memberPair struct {
	communityID uint
	userID      uint
}

type fakeMembershipStore struct {
	members map[memberPair]bool
	removes int
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{members: map[memberPair]bool{}}
}

func (f *fakeMembershipStore) Insert(communityID, userID uint) error {
	f.members[memberPair{communityID, userID}] = true
	return nil
}

func (f *fakeMembershipStore) Remove(communityID, userID uint) error {
	f.removes++
	delete(f.members, memberPair{communityID, userID})
	return nil
}

func (f *fakeMembershipStore) Exists(communityID, userID uint) (bool, error) {
	return f.members[memberPair{communityID, userID}], nil
}

func (f *fakeMembershipStore) Count(communityID uint) (int64, error) {
	var n int64
	for key := range f.members {
		if key.communityID == communityID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMembershipStore) CommunitiesFor(userID uint, offset, limit int) ([]models.Community, error) {
	return nil, nil
}

func (f *fakeMembershipStore) CommunitiesOwnedBy(userID uint, offset, limit int) ([]models.Community, error) {
	return nil, nil
}

func TestAddMemberIdempotent(t *testing.T) {
	engine := &MembershipEngine{store: newFakeMembershipStore()}

	if err := engine.AddMember(1, 7); err != nil {
		t.Fatalf("first add: %v", err)
	}
	before, err := engine.MemberCount(1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	if err := engine.AddMember(1, 7); err != nil {
		t.Fatalf("second add: %v", err)
	}
	after, err := engine.MemberCount(1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	if before != 1 || after != before {
		t.Fatalf("member count = %d then %d, want 1 both times", before, after)
	}
}

func TestRemoveMemberOwnerGuard(t *testing.T) {
	store := newFakeMembershipStore()
	engine := &MembershipEngine{store: store}
	community := &models.Community{ID: 1, CreatedByID: 7}

	if err := engine.AddMember(1, 7); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := engine.RemoveMember(community, 7); !errors.Is(err, ErrOwnerCannotLeave) {
		t.Fatalf("remove creator = %v, want ErrOwnerCannotLeave", err)
	}
	if store.removes != 0 {
		t.Fatal("store must not be touched when the owner guard denies")
	}
	if ok, _ := engine.IsMember(1, 7); !ok {
		t.Fatal("creator must stay in the membership set")
	}
}

func TestRemoveMember(t *testing.T) {
	engine := &MembershipEngine{store: newFakeMembershipStore()}
	community := &models.Community{ID: 1, CreatedByID: 7}

	if err := engine.AddMember(1, 8); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := engine.RemoveMember(community, 8); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, _ := engine.IsMember(1, 8); ok {
		t.Fatal("member should be gone after remove")
	}
}

func TestRemoveMemberNonMemberNoop(t *testing.T) {
	engine := &MembershipEngine{store: newFakeMembershipStore()}
	community := &models.Community{ID: 1, CreatedByID: 7}

	if err := engine.RemoveMember(community, 8); err != nil {
		t.Fatalf("removing a non-member = %v, want nil", err)
	}
}

func TestRemoveMemberMissingCommunity(t *testing.T) {
	engine := &MembershipEngine{store: newFakeMembershipStore()}

	if err := engine.RemoveMember(nil, 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove on missing community = %v, want ErrNotFound", err)
	}
}
