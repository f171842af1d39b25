package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"huddle/internal/models/db_models"
	"huddle/internal/models/request_models"
	"huddle/internal/models/response_models"
	"huddle/internal/services"
	"huddle/pkg/middleware"
	"huddle/pkg/utils"
)

type AdminController struct {
	memberService services.MemberServiceInterface
}

func NewAdminController(memberService services.MemberServiceInterface) *AdminController {
	return &AdminController{memberService: memberService}
}

// UpdateProjectManagerEmail godoc
// @Summary Update a member's project manager email
// @Description Admin-only mutation of the escalation address
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.UpdateProjectManagerEmailRequest true "Update payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /update-pm-email [post]
func (ctrl *AdminController) UpdateProjectManagerEmail(c *gin.Context) {
	actor, err := resolveActor(c, ctrl.memberService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if !actor.IsAdmin {
		utils.HandleServiceError(c, utils.ErrInsufficientPermissions)
		return
	}

	var req request_models.UpdateProjectManagerEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.ProjectManagerEmail))

	updated, err := ctrl.memberService.UpdateProjectManagerEmail(c.Request.Context(), req.MemberID, email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.MemberToResponse(updated), "Project manager email updated")
}

// resolveActor maps the session email to a Member. Roles are read from the
// row, never from the token, so a revoked admin loses access immediately.
func resolveActor(c *gin.Context, memberService services.MemberServiceInterface) (*db_models.Member, error) {
	email := c.GetString(middleware.SessionEmailKey)
	if email == "" {
		return nil, utils.ErrInvalidSession
	}

	member, err := memberService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if err == utils.ErrMemberNotFound {
			return nil, utils.ErrInvalidSession
		}
		return nil, err
	}

	return member, nil
}
