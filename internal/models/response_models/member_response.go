package response_models

import "huddle/internal/models/db_models"

// The full and protected member shapes are defined separately and built by
// explicit field selection. A field added to the model never reaches the
// protected shape unless listed here.

type CheckInResponse struct {
	ID                       string   `json:"id"`
	MemberID                 string   `json:"memberId"`
	IsSafe                   bool     `json:"isSafe"`
	IsAbleToWork             bool     `json:"isAbleToWork"`
	Support                  string   `json:"support"`
	OtherSupport             *string  `json:"otherSupport"`
	ElectricityCondition     string   `json:"electricityCondition"`
	NumberOfPeopleToRelocate int      `json:"numberOfPeopleToRelocate"`
	Comment                  *string  `json:"comment"`
	City                     *string  `json:"city"`
	State                    *string  `json:"state"`
	Country                  *string  `json:"country"`
	Latitude                 *float64 `json:"latitude"`
	Longitude                *float64 `json:"longitude"`
	CreatedAt                int64    `json:"createdAt"`
}

type ProtectedCheckInResponse struct {
	ID        string  `json:"id"`
	MemberID  string  `json:"memberId"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Country   *string `json:"country"`
	CreatedAt int64   `json:"createdAt"`
}

type AlertResponse struct {
	ID        string  `json:"id"`
	MemberID  string  `json:"memberId"`
	IsSafe    *bool   `json:"isSafe"`
	Comment   *string `json:"comment"`
	CreatedAt int64   `json:"createdAt"`
}

type ProtectedAlertResponse struct {
	ID        string `json:"id"`
	MemberID  string `json:"memberId"`
	CreatedAt int64  `json:"createdAt"`
}

type MemberResponse struct {
	ID                  string           `json:"id"`
	SlackID             string           `json:"slackId"`
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	ProjectManagerEmail string           `json:"projectManagerEmail"`
	IsDeleted           bool             `json:"isDeleted"`
	IsRestricted        bool             `json:"isRestricted"`
	IsUltraRestricted   bool             `json:"isUltraRestricted"`
	IsAdmin             bool             `json:"isAdmin"`
	IsMobilized         bool             `json:"isMobilized"`
	IsExemptFromCheckIn bool             `json:"isExemptFromCheckIn"`
	IsOptedOutOfMap     bool             `json:"isOptedOutOfMap"`
	CheckIn             *CheckInResponse `json:"checkIn"`
	Alert               *AlertResponse   `json:"alert"`
	CreatedAt           int64            `json:"createdAt"`
	UpdatedAt           int64            `json:"updatedAt"`
}

type ProtectedMemberResponse struct {
	ID                  string                    `json:"id"`
	SlackID             string                    `json:"slackId"`
	Name                string                    `json:"name"`
	Email               string                    `json:"email"`
	ProjectManagerEmail string                    `json:"projectManagerEmail"`
	IsDeleted           bool                      `json:"isDeleted"`
	IsRestricted        bool                      `json:"isRestricted"`
	IsUltraRestricted   bool                      `json:"isUltraRestricted"`
	CheckIn             *ProtectedCheckInResponse `json:"checkIn"`
	Alert               *ProtectedAlertResponse   `json:"alert"`
	CreatedAt           int64                     `json:"createdAt"`
	UpdatedAt           int64                     `json:"updatedAt"`
}

func CheckInToResponse(c *db_models.CheckIn) *CheckInResponse {
	if c == nil {
		return nil
	}
	return &CheckInResponse{
		ID:                       c.ID.String(),
		MemberID:                 c.MemberID.String(),
		IsSafe:                   c.IsSafe,
		IsAbleToWork:             c.IsAbleToWork,
		Support:                  c.Support,
		OtherSupport:             c.OtherSupport,
		ElectricityCondition:     c.ElectricityCondition,
		NumberOfPeopleToRelocate: c.NumberOfPeopleToRelocate,
		Comment:                  c.Comment,
		City:                     c.City,
		State:                    c.State,
		Country:                  c.Country,
		Latitude:                 c.Latitude,
		Longitude:                c.Longitude,
		CreatedAt:                c.CreatedAt,
	}
}

func CheckInToProtectedResponse(c *db_models.CheckIn) *ProtectedCheckInResponse {
	if c == nil {
		return nil
	}
	return &ProtectedCheckInResponse{
		ID:        c.ID.String(),
		MemberID:  c.MemberID.String(),
		City:      c.City,
		State:     c.State,
		Country:   c.Country,
		CreatedAt: c.CreatedAt,
	}
}

func AlertToResponse(a *db_models.Alert) *AlertResponse {
	if a == nil {
		return nil
	}
	return &AlertResponse{
		ID:        a.ID.String(),
		MemberID:  a.MemberID.String(),
		IsSafe:    a.IsSafe,
		Comment:   a.Comment,
		CreatedAt: a.CreatedAt,
	}
}

func AlertToProtectedResponse(a *db_models.Alert) *ProtectedAlertResponse {
	if a == nil {
		return nil
	}
	return &ProtectedAlertResponse{
		ID:        a.ID.String(),
		MemberID:  a.MemberID.String(),
		CreatedAt: a.CreatedAt,
	}
}

func MemberToResponse(m *db_models.Member) *MemberResponse {
	return &MemberResponse{
		ID:                  m.ID.String(),
		SlackID:             m.SlackID,
		Name:                m.Name,
		Email:               m.Email,
		ProjectManagerEmail: m.ProjectManagerEmail,
		IsDeleted:           m.IsDeleted,
		IsRestricted:        m.IsRestricted,
		IsUltraRestricted:   m.IsUltraRestricted,
		IsAdmin:             m.IsAdmin,
		IsMobilized:         m.IsMobilized,
		IsExemptFromCheckIn: m.IsExemptFromCheckIn,
		IsOptedOutOfMap:     m.IsOptedOutOfMap,
		CheckIn:             CheckInToResponse(m.CheckIn),
		Alert:               AlertToResponse(m.Alert),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func MemberToProtectedResponse(m *db_models.Member) *ProtectedMemberResponse {
	return &ProtectedMemberResponse{
		ID:                  m.ID.String(),
		SlackID:             m.SlackID,
		Name:                m.Name,
		Email:               m.Email,
		ProjectManagerEmail: m.ProjectManagerEmail,
		IsDeleted:           m.IsDeleted,
		IsRestricted:        m.IsRestricted,
		IsUltraRestricted:   m.IsUltraRestricted,
		CheckIn:             CheckInToProtectedResponse(m.CheckIn),
		Alert:               AlertToProtectedResponse(m.Alert),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
