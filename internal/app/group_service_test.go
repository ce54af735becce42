package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitmate/internal/model"
	"splitmate/internal/repository"
)

type fakeGroupCache struct {
	entries       map[uint][]model.Group
	invalidations int
}

func newFakeGroupCache() *fakeGroupCache {
	return &fakeGroupCache{entries: make(map[uint][]model.Group)}
}

func (c *fakeGroupCache) GetGroups(_ context.Context, userID uint) ([]model.Group, bool, error) {
	groups, ok := c.entries[userID]
	return groups, ok, nil
}

func (c *fakeGroupCache) SetGroups(_ context.Context, userID uint, groups []model.Group) error {
	c.entries[userID] = groups
	return nil
}

func (c *fakeGroupCache) Invalidate(_ context.Context, userID uint) error {
	delete(c.entries, userID)
	c.invalidations++
	return nil
}

func newTestGroupService() (*GroupService, *repository.MemoryGroupRepository, *repository.MemoryUserRepository, *fakeGroupCache) {
	users := repository.NewMemoryUserRepository()
	groups := repository.NewMemoryGroupRepository(users)
	groupCache := newFakeGroupCache()
	svc := NewGroupService(groups, groupCache, nil)
	return svc, groups, users, groupCache
}

func seedUser(t *testing.T, users *repository.MemoryUserRepository, email, username string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Username: username, PasswordHash: "x"}
	require.NoError(t, users.Create(user))
	return user
}

func TestCreateGroupOwnerIsMember(t *testing.T) {
	svc, groupRepo, users, groupCache := newTestGroupService()
	owner := seedUser(t, users, "a@x.com", "alice")

	group, err := svc.CreateGroup(context.Background(), owner.ID, CreateGroupInput{
		Name:        "Trip to Hanoi",
		Description: "shared expenses",
	})
	require.NoError(t, err)
	assert.NotZero(t, group.ID)
	assert.Equal(t, owner.ID, group.OwnerID)

	isMember, err := groupRepo.IsMember(group.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, isMember)
	assert.Equal(t, 1, groupCache.invalidations)
}

func TestCreateGroupValidation(t *testing.T) {
	svc, _, users, _ := newTestGroupService()
	owner := seedUser(t, users, "a@x.com", "alice")

	_, err := svc.CreateGroup(context.Background(), owner.ID, CreateGroupInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListGroupsReadThroughCache(t *testing.T) {
	svc, groupRepo, users, groupCache := newTestGroupService()
	owner := seedUser(t, users, "a@x.com", "alice")
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, owner.ID, CreateGroupInput{Name: "Flatmates"})
	require.NoError(t, err)

	first, err := svc.ListGroups(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Contains(t, groupCache.entries, owner.ID)

	// A write that bypasses the service is invisible until the cache entry
	// goes away, which is exactly what read-through means.
	require.NoError(t, groupRepo.Create(&model.Group{Name: "Sneaky", OwnerID: owner.ID}, owner.ID))
	second, err := svc.ListGroups(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, second, 1)

	require.NoError(t, groupCache.Invalidate(ctx, owner.ID))
	third, err := svc.ListGroups(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

func TestListGroupsOnlyMembership(t *testing.T) {
	svc, _, users, _ := newTestGroupService()
	alice := seedUser(t, users, "a@x.com", "alice")
	bob := seedUser(t, users, "b@x.com", "bob")
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, alice.ID, CreateGroupInput{Name: "Alice only"})
	require.NoError(t, err)

	bobGroups, err := svc.ListGroups(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobGroups)
}

func TestGroupDetails(t *testing.T) {
	svc, _, users, _ := newTestGroupService()
	alice := seedUser(t, users, "a@x.com", "alice")
	bob := seedUser(t, users, "b@x.com", "bob")
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, alice.ID, CreateGroupInput{Name: "Flatmates"})
	require.NoError(t, err)

	details, err := svc.GroupDetails(group.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, details.ID)
	require.Len(t, details.Members, 1)
	assert.Equal(t, "alice", details.Members[0].Username)

	_, err = svc.GroupDetails(group.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotGroupMember)

	_, err = svc.GroupDetails(group.ID+100, alice.ID)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
