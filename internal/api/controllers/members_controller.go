package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"huddle/internal/infra"
	"huddle/internal/models/db_models"
	"huddle/internal/models/response_models"
	"huddle/internal/services"
	"huddle/pkg/utils"
)

type MembersController struct {
	memberService services.MemberServiceInterface
	cfg           *infra.Config
}

func NewMembersController(memberService services.MemberServiceInterface, cfg *infra.Config) *MembersController {
	return &MembersController{
		memberService: memberService,
		cfg:           cfg,
	}
}

// List godoc
// @Summary List members for the dashboard
// @Description Admin sessions receive the full member shape, others the redacted one
// @Tags Members
// @Produce json
// @Param lastCheckIn query string false "Recency bucket: short, long, never, other"
// @Param isSafe query bool false "Filter by latest check-in safety"
// @Param canWork query bool false "Filter by latest check-in ability to work"
// @Param isMobilized query bool false "Filter by mobilization flag"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /members [get]
func (ctrl *MembersController) List(c *gin.Context) {
	actor, err := resolveActor(c, ctrl.memberService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	members, err := ctrl.memberService.GetAll(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	members = ctrl.applyFilters(c, members)

	if actor.IsAdmin {
		out := make([]*response_models.MemberResponse, 0, len(members))
		for _, m := range members {
			out = append(out, response_models.MemberToResponse(m))
		}
		utils.RespondSuccess(c, out, "")
		return
	}

	out := make([]*response_models.ProtectedMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, response_models.MemberToProtectedResponse(m))
	}
	utils.RespondSuccess(c, out, "")
}

func (ctrl *MembersController) applyFilters(c *gin.Context, members []*db_models.Member) []*db_models.Member {
	if bucket := c.Query("lastCheckIn"); bucket != "" {
		members = filterMembers(members, func(m *db_models.Member) bool {
			return utils.ClassifyRecency(m.LastCheckInAt(), ctrl.cfg.ShortWindow, ctrl.cfg.LongWindow) == utils.Recency(bucket)
		})
	}

	if want, ok := boolQuery(c, "isSafe"); ok {
		members = filterMembers(members, func(m *db_models.Member) bool {
			return m.CheckIn != nil && m.CheckIn.IsSafe == want
		})
	}

	if want, ok := boolQuery(c, "canWork"); ok {
		members = filterMembers(members, func(m *db_models.Member) bool {
			return m.CheckIn != nil && m.CheckIn.IsAbleToWork == want
		})
	}

	if want, ok := boolQuery(c, "isMobilized"); ok {
		members = filterMembers(members, func(m *db_models.Member) bool {
			return m.IsMobilized == want
		})
	}

	return members
}

func filterMembers(members []*db_models.Member, keep func(*db_models.Member) bool) []*db_models.Member {
	out := make([]*db_models.Member, 0, len(members))
	for _, m := range members {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func boolQuery(c *gin.Context, name string) (value, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return parsed, true
}
