package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"splitmate/internal/model"
)

var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrNotGroupMember = errors.New("not a member of this group")
)

type GroupStore interface {
	Create(group *model.Group, ownerID uint) error
	GetByID(id uint) (*model.Group, error)
	ListByMember(userID uint) ([]model.Group, error)
	IsMember(groupID, userID uint) (bool, error)
	ListMembers(groupID uint) ([]model.User, error)
}

type GroupListCache interface {
	GetGroups(ctx context.Context, userID uint) ([]model.Group, bool, error)
	SetGroups(ctx context.Context, userID uint, groups []model.Group) error
	Invalidate(ctx context.Context, userID uint) error
}

type GroupService struct {
	groupRepo GroupStore
	cache     GroupListCache
	publisher ActivityPublisher
}

type CreateGroupInput struct {
	Name        string
	Description string
}

// GroupDetails is a group plus its member roster. Embedding keeps the JSON
// shape flat: the group fields with a members array alongside.
type GroupDetails struct {
	model.Group
	Members []model.User `json:"members"`
}

func NewGroupService(groupRepo GroupStore, cache GroupListCache, publisher ActivityPublisher) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		cache:     cache,
		publisher: publisher,
	}
}

func (s *GroupService) CreateGroup(ctx context.Context, userID uint, input CreateGroupInput) (*model.Group, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 100 {
		return nil, ErrInvalidInput
	}

	group := &model.Group{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		OwnerID:     userID,
	}
	if err := s.groupRepo.Create(group, userID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
	if s.publisher != nil {
		groupID := group.ID
		_ = s.publisher.Publish(ctx, model.Activity{
			UserID:    userID,
			GroupID:   &groupID,
			Action:    "group.created",
			Detail:    group.Name,
			CreatedAt: time.Now(),
		})
	}
	return group, nil
}

// ListGroups returns the groups the user belongs to, newest first, with a
// read-through cache in front of the store.
func (s *GroupService) ListGroups(ctx context.Context, userID uint) ([]model.Group, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	if s.cache != nil {
		if cached, hit, err := s.cache.GetGroups(ctx, userID); err == nil && hit {
			return cached, nil
		}
	}

	groups, err := s.groupRepo.ListByMember(userID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetGroups(ctx, userID, groups)
	}
	return groups, nil
}

func (s *GroupService) GroupDetails(groupID, userID uint) (*GroupDetails, error) {
	if groupID == 0 || userID == 0 {
		return nil, ErrInvalidInput
	}

	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	isMember, err := s.groupRepo.IsMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotGroupMember
	}

	members, err := s.groupRepo.ListMembers(groupID)
	if err != nil {
		return nil, err
	}
	return &GroupDetails{Group: *group, Members: members}, nil
}
