package entity

// File holds the metadata of an uploaded meetup banner. The content lives on disk.
type File struct {
	ID        int    `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Path      string `gorm:"not null;uniqueIndex"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:milli"`
}
