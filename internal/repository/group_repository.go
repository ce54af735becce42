package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"splitmate/internal/model"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts the group and the owner's membership row in one
// transaction so a group never exists without its owner as a member.
func (r *GroupRepository) Create(group *model.Group, ownerID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		member := &model.GroupMember{GroupID: group.ID, UserID: ownerID}
		return tx.Create(member).Error
	})
	if err != nil {
		return fmt.Errorf("create group failed: %w", err)
	}
	return nil
}

func (r *GroupRepository) GetByID(id uint) (*model.Group, error) {
	var group model.Group
	if err := r.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query group by id failed: %w", err)
	}
	return &group, nil
}

func (r *GroupRepository) ListByMember(userID uint) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("list groups by member failed: %w", err)
	}
	return groups, nil
}

func (r *GroupRepository) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("query group membership failed: %w", err)
	}
	return count > 0, nil
}

func (r *GroupRepository) ListMembers(groupID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ?", groupID).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list group members failed: %w", err)
	}
	return users, nil
}
