package repository

import (
	"context"
	"errors"
	"meetapp/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultSubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *DefaultSubscriptionRepository {
	return &DefaultSubscriptionRepository{db: db}
}

// FindByID returns the subscription with its meetup loaded, or nil when absent.
func (s *DefaultSubscriptionRepository) FindByID(ctx context.Context, id int) (*entity.Subscription, error) {
	var sub entity.Subscription
	err := s.db.WithContext(ctx).
		Preload("Meetup").
		First(&sub, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindConflict returns a subscription of userID to a meetup happening exactly
// at date, or nil when there is none.
func (s *DefaultSubscriptionRepository) FindConflict(ctx context.Context, userID int, date int64) (*entity.Subscription, error) {
	var sub entity.Subscription
	err := s.db.WithContext(ctx).
		Joins("JOIN meetups ON meetups.id = subscriptions.meetup_id").
		Where("subscriptions.user_id = ?", userID).
		Where("meetups.date = ?", date).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindUpcomingByUserID lists the subscriptions of userID to meetups after now,
// ordered by meetup date, along with the total number of such subscriptions.
func (s *DefaultSubscriptionRepository) FindUpcomingByUserID(ctx context.Context, userID int, now int64, page entity.Page) ([]*entity.Subscription, int64, error) {
	query := func() *gorm.DB {
		return s.db.WithContext(ctx).
			Model(&entity.Subscription{}).
			Joins("JOIN meetups ON meetups.id = subscriptions.meetup_id").
			Where("subscriptions.user_id = ?", userID).
			Where("meetups.date > ?", now)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []*entity.Subscription
	err := query().
		Preload("Meetup.Organizer").
		Preload("Meetup.Banner").
		Order("meetups.date asc").
		Order("subscriptions.id asc").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (s *DefaultSubscriptionRepository) Save(ctx context.Context, sub *entity.Subscription) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(sub).Error
}

func (s *DefaultSubscriptionRepository) Delete(ctx context.Context, sub *entity.Subscription) error {
	return s.db.WithContext(ctx).Delete(&entity.Subscription{}, sub.ID).Error
}
