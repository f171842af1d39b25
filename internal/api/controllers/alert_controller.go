package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"huddle/internal/models/db_models"
	"huddle/internal/models/request_models"
	"huddle/internal/services"
	"huddle/pkg/utils"
)

type AlertController struct {
	memberService services.MemberServiceInterface
	tokens        services.TokenAuthority
}

func NewAlertController(memberService services.MemberServiceInterface, tokens services.TokenAuthority) *AlertController {
	return &AlertController{
		memberService: memberService,
		tokens:        tokens,
	}
}

// Submit godoc
// @Summary Submit an alert response
// @Description Records an alert response authorized by a one-time link
// @Tags Alerts
// @Accept json
// @Produce json
// @Param request body request_models.SubmitAlertRequest true "Alert payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /alert [post]
func (ctrl *AlertController) Submit(c *gin.Context) {
	var req request_models.SubmitAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	ctx := c.Request.Context()

	member, err := ctrl.memberService.GetByID(ctx, req.MemberID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if err := ctrl.tokens.ValidateToken(member, req.AlertToken, services.TokenPurposeAlert); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	record := &db_models.Alert{
		IsSafe:  req.IsSafe,
		Comment: optional(req.Comment),
	}

	if err := ctrl.memberService.Alert(ctx, member, record); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Alert response recorded")
}
