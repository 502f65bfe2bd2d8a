package repository

import (
	"context"
	"errors"
	"meetapp/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultMeetupRepository struct {
	db *gorm.DB
}

func NewMeetupRepository(db *gorm.DB) *DefaultMeetupRepository {
	return &DefaultMeetupRepository{db: db}
}

// FindByID returns the meetup with its organizer and banner loaded, or nil when absent.
func (m *DefaultMeetupRepository) FindByID(ctx context.Context, id int) (*entity.Meetup, error) {
	var meetup entity.Meetup
	err := m.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Banner").
		First(&meetup, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meetup, nil
}

// FindPage lists meetups matching filter, ascending by date, along with the
// total number of matching rows.
func (m *DefaultMeetupRepository) FindPage(ctx context.Context, filter entity.MeetupFilter, page entity.Page) ([]*entity.Meetup, int64, error) {
	query := func() *gorm.DB {
		q := m.db.WithContext(ctx).Model(&entity.Meetup{})
		if filter.ExcludeUserID != 0 {
			q = q.Where("user_id <> ?", filter.ExcludeUserID)
		}
		if filter.From != 0 {
			q = q.Where("date >= ?", filter.From)
		}
		if filter.To != 0 {
			q = q.Where("date < ?", filter.To)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var meetups []*entity.Meetup
	err := query().
		Preload("Organizer").
		Preload("Banner").
		Order("date asc").
		Order("id asc").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&meetups).Error
	if err != nil {
		return nil, 0, err
	}
	return meetups, total, nil
}

func (m *DefaultMeetupRepository) FindByUserID(ctx context.Context, userID int) ([]*entity.Meetup, error) {
	var meetups []*entity.Meetup
	err := m.db.WithContext(ctx).
		Preload("Banner").
		Where("user_id = ?", userID).
		Order("date asc").
		Order("id asc").
		Find(&meetups).Error
	return meetups, err
}

func (m *DefaultMeetupRepository) Save(ctx context.Context, meetup *entity.Meetup) error {
	return m.db.WithContext(ctx).Omit(clause.Associations).Save(meetup).Error
}

// Delete removes the meetup together with every subscription to it.
func (m *DefaultMeetupRepository) Delete(ctx context.Context, meetup *entity.Meetup) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("meetup_id = ?", meetup.ID).Delete(&entity.Subscription{}).Error
		if err != nil {
			return err
		}
		return tx.Delete(meetup).Error
	})
}
