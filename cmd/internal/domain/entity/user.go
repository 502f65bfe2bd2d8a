package entity

type User struct {
	ID           int    `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    int64  `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt    int64  `gorm:"not null;autoUpdateTime:milli"`
}
