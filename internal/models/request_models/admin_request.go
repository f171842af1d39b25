package request_models

type UpdateProjectManagerEmailRequest struct {
	MemberID            string `json:"memberId" binding:"required"`
	ProjectManagerEmail string `json:"projectManagerEmail"`
}
