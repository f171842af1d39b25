package db_models

import "github.com/google/uuid"

// Alert parallels CheckIn for the alert workflow. IsSafe is a pointer so a
// row can carry the null-safety sentinel, which suppresses the purge step of
// a new alert cycle.
type Alert struct {
	BaseModel
	MemberID uuid.UUID `gorm:"type:uuid;index"`

	IsSafe  *bool
	Comment *string
}
