package request_models

type SubmitCheckInRequest struct {
	MemberID     string `json:"memberId" binding:"required"`
	CheckInToken string `json:"checkInToken" binding:"required"`

	IsSafe       *bool `json:"isSafe" binding:"required"`
	IsAbleToWork *bool `json:"isAbleToWork" binding:"required"`

	Support              string `json:"support" binding:"required,oneof=1 2 3 4"`
	OtherSupport         string `json:"otherSupport"`
	ElectricityCondition string `json:"electricityCondition" binding:"required,oneof=1 2 3"`

	NumberOfPeopleToRelocate int    `json:"numberOfPeopleToRelocate"`
	Comment                  string `json:"comment"`

	// Exactly one of PlaceID or the coordinate pair must be provided.
	PlaceID   string   `json:"placeId"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
