package request_models

type SubmitAlertRequest struct {
	MemberID   string `json:"memberId" binding:"required"`
	AlertToken string `json:"alertToken" binding:"required"`

	IsSafe  *bool  `json:"isSafe" binding:"required"`
	Comment string `json:"comment"`
}
