package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"huddle/internal/models/db_models"
	"huddle/internal/models/request_models"
	"huddle/internal/services"
	"huddle/pkg/utils"
)

type CheckInController struct {
	memberService services.MemberServiceInterface
	tokens        services.TokenAuthority
	locations     services.LocationResolver
}

func NewCheckInController(memberService services.MemberServiceInterface, tokens services.TokenAuthority, locations services.LocationResolver) *CheckInController {
	return &CheckInController{
		memberService: memberService,
		tokens:        tokens,
		locations:     locations,
	}
}

// Submit godoc
// @Summary Submit a check-in
// @Description Records a check-in authorized by a one-time link
// @Tags CheckIns
// @Accept json
// @Produce json
// @Param request body request_models.SubmitCheckInRequest true "Check-in payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /check-in [post]
func (ctrl *CheckInController) Submit(c *gin.Context) {
	var req request_models.SubmitCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Support == "4" && req.OtherSupport == "" {
		utils.RespondError(c, http.StatusBadRequest, "Support option 4 requires a description of the support needed")
		return
	}

	ctx := c.Request.Context()

	member, err := ctrl.memberService.GetByID(ctx, req.MemberID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if err := ctrl.tokens.ValidateToken(member, req.CheckInToken, services.TokenPurposeCheckIn); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	location, err := ctrl.resolveLocation(c, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	record := &db_models.CheckIn{
		IsSafe:                   *req.IsSafe,
		IsAbleToWork:             *req.IsAbleToWork,
		Support:                  req.Support,
		OtherSupport:             optional(req.OtherSupport),
		ElectricityCondition:     req.ElectricityCondition,
		NumberOfPeopleToRelocate: req.NumberOfPeopleToRelocate,
		Comment:                  optional(req.Comment),
		PlaceID:                  location.PlaceID,
		City:                     location.City,
		State:                    location.State,
		Country:                  location.Country,
		Latitude:                 location.Latitude,
		Longitude:                location.Longitude,
	}

	if err := ctrl.memberService.CheckIn(ctx, member, record); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Checked in successfully")
}

func (ctrl *CheckInController) resolveLocation(c *gin.Context, req *request_models.SubmitCheckInRequest) (*services.Location, error) {
	ctx := c.Request.Context()

	switch {
	case req.PlaceID != "":
		location, err := ctrl.locations.ResolveByPlaceID(ctx, req.PlaceID)
		if err != nil {
			return nil, utils.ErrLocationProvider
		}
		return location, nil

	case req.Latitude != nil && req.Longitude != nil:
		location, err := ctrl.locations.ResolveByCoordinates(ctx, *req.Latitude, *req.Longitude)
		if err != nil {
			return nil, utils.ErrLocationProvider
		}
		return location, nil

	default:
		return nil, utils.ErrNoLocationParams
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
