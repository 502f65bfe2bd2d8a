package entity

import "time"

type Meetup struct {
	ID          int    `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Location    string `gorm:"not null"`
	Date        int64  `gorm:"not null;index"` // UTC epoch millis
	UserID      int    `gorm:"not null;index"` // References: users(id)
	FileID      *int   // References: files(id)
	CreatedAt   int64  `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt   int64  `gorm:"not null;autoUpdateTime:milli"`

	// Relations
	Organizer User  `gorm:"foreignKey:UserID;references:ID"`
	Banner    *File `gorm:"foreignKey:FileID;references:ID"`
}

// ScheduledAt returns the meetup date as a UTC time.
func (m *Meetup) ScheduledAt() time.Time {
	return time.UnixMilli(m.Date).UTC()
}
