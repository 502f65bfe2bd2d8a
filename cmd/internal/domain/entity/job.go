package entity

type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Job is a durable unit of background work, e.g. a subscription notification mail.
type Job struct {
	ID        string    `gorm:"primaryKey"`
	Kind      string    `gorm:"not null;index"`
	Payload   string    `gorm:"not null"` // JSON
	Status    JobStatus `gorm:"not null;index"`
	Attempts  int       `gorm:"not null"`
	LastError string
	RunAt     int64 `gorm:"not null;index"`
	CreatedAt int64 `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:milli"`
}
