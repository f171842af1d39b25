package db_models

import "time"

// MemberIsAttribute is the closed allow-list of member flags mutable
// through SetIsAttribute.
type MemberIsAttribute string

const (
	IsAttributeAdmin             MemberIsAttribute = "isAdmin"
	IsAttributeMobilized         MemberIsAttribute = "isMobilized"
	IsAttributeExemptFromCheckIn MemberIsAttribute = "isExemptFromCheckIn"
	IsAttributeOptedOutOfMap     MemberIsAttribute = "isOptedOutOfMap"
)

// Member is the local roster row. Deletion and restriction flags mirror the
// external directory; removal from the directory never deletes the row.
// CheckInToken/AlertToken are non-nil only while a pending action link is
// valid and are cleared on successful submission.
type Member struct {
	BaseModel
	SlackID             string `gorm:"uniqueIndex"`
	Name                string
	Email               string `gorm:"index"`
	ProjectManagerEmail string
	IsDeleted           bool
	IsRestricted        bool
	IsUltraRestricted   bool
	IsAdmin             bool
	IsMobilized         bool
	IsExemptFromCheckIn bool
	IsOptedOutOfMap     bool
	CheckInToken        *string
	AlertToken          *string

	// Current check-in/alert, most recent by creation time. Hydrated by the
	// repository, not by gorm association loading.
	CheckIn *CheckIn `gorm:"-"`
	Alert   *Alert   `gorm:"-"`
}

func (m *Member) LastCheckInAt() *time.Time {
	if m.CheckIn == nil {
		return nil
	}
	t := m.CheckIn.CreatedAtTime()
	return &t
}

func (m *Member) LastAlertAt() *time.Time {
	if m.Alert == nil {
		return nil
	}
	t := m.Alert.CreatedAtTime()
	return &t
}
