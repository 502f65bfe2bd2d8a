package entity

// Subscription links a subscriber to a meetup they intend to attend.
// A subscriber never holds two subscriptions whose meetups share the same date;
// that rule is checked by the scheduling policy, not by the schema.
type Subscription struct {
	ID        int   `gorm:"primaryKey"`
	UserID    int   `gorm:"not null;index"` // References: users(id)
	MeetupID  int   `gorm:"not null;index"` // References: meetups(id)
	CreatedAt int64 `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:milli"`

	// Relations
	Subscriber User   `gorm:"foreignKey:UserID;references:ID"`
	Meetup     Meetup `gorm:"foreignKey:MeetupID;references:ID"`
}
