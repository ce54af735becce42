package app

import "splitmate/internal/model"

type ActivityStore interface {
	ListByUser(userID uint, limit int) ([]model.Activity, error)
}

type ActivityService struct {
	activityRepo ActivityStore
}

func NewActivityService(activityRepo ActivityStore) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

func (s *ActivityService) ListRecent(userID uint, limit int) ([]model.Activity, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.activityRepo.ListByUser(userID, limit)
}
