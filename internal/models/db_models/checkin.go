package db_models

import "github.com/google/uuid"

// CheckIn is an immutable record of a single check-in. A newer row
// supersedes an older one; rows are never updated or deleted.
type CheckIn struct {
	BaseModel
	MemberID uuid.UUID `gorm:"type:uuid;index"`

	IsSafe       bool
	IsAbleToWork bool

	// Support is the requested support category "1".."4"; "4" is "other"
	// and requires OtherSupport free text.
	Support      string
	OtherSupport *string

	// ElectricityCondition is the electricity impact category "1".."3".
	ElectricityCondition string

	NumberOfPeopleToRelocate int
	Comment                  *string

	PlaceID   *string
	City      *string
	State     *string
	Country   *string
	Latitude  *float64
	Longitude *float64
}
