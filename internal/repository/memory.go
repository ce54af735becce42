package repository

import (
	"sort"
	"sync"
	"time"

	"splitmate/internal/model"
)

// In-memory store implementations with the same contracts as the gorm
// repositories. They back service and handler tests without a database.

type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		nextID: 1,
		users:  make(map[uint]model.User),
	}
}

func (r *MemoryUserRepository) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) GetByID(id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	found := user
	return &found, nil
}

type MemoryGroupRepository struct {
	mu      sync.Mutex
	nextID  uint
	groups  map[uint]model.Group
	members map[uint][]uint
	users   *MemoryUserRepository
}

// NewMemoryGroupRepository shares a user repository so ListMembers can
// resolve member records the way the SQL join does.
func NewMemoryGroupRepository(users *MemoryUserRepository) *MemoryGroupRepository {
	return &MemoryGroupRepository{
		nextID:  1,
		groups:  make(map[uint]model.Group),
		members: make(map[uint][]uint),
		users:   users,
	}
}

func (r *MemoryGroupRepository) Create(group *model.Group, ownerID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group.ID = r.nextID
	r.nextID++
	now := time.Now()
	if group.CreatedAt.IsZero() {
		group.CreatedAt = now
	}
	group.UpdatedAt = now
	r.groups[group.ID] = *group
	r.members[group.ID] = []uint{ownerID}
	return nil
}

func (r *MemoryGroupRepository) GetByID(id uint) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	found := group
	return &found, nil
}

func (r *MemoryGroupRepository) ListByMember(userID uint) ([]model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var groups []model.Group
	for groupID, memberIDs := range r.members {
		for _, memberID := range memberIDs {
			if memberID == userID {
				groups = append(groups, r.groups[groupID])
				break
			}
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.After(groups[j].CreatedAt)
	})
	return groups, nil
}

func (r *MemoryGroupRepository) IsMember(groupID, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, memberID := range r.members[groupID] {
		if memberID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryGroupRepository) ListMembers(groupID uint) ([]model.User, error) {
	r.mu.Lock()
	memberIDs := append([]uint(nil), r.members[groupID]...)
	r.mu.Unlock()

	var users []model.User
	for _, memberID := range memberIDs {
		user, err := r.users.GetByID(memberID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			users = append(users, *user)
		}
	}
	return users, nil
}

type MemoryActivityRepository struct {
	mu         sync.Mutex
	nextID     uint
	activities []model.Activity
}

func NewMemoryActivityRepository() *MemoryActivityRepository {
	return &MemoryActivityRepository{nextID: 1}
}

func (r *MemoryActivityRepository) Create(activity *model.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity.ID = r.nextID
	r.nextID++
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	r.activities = append(r.activities, *activity)
	return nil
}

func (r *MemoryActivityRepository) ListByUser(userID uint, limit int) ([]model.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var activities []model.Activity
	for i := len(r.activities) - 1; i >= 0; i-- {
		if r.activities[i].UserID != userID {
			continue
		}
		activities = append(activities, r.activities[i])
		if limit > 0 && len(activities) >= limit {
			break
		}
	}
	return activities, nil
}
