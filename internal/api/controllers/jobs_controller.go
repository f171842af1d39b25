package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"huddle/internal/infra"
	"huddle/internal/models/db_models"
	"huddle/internal/services"
	"huddle/pkg/utils"
)

// JobsController exposes the scheduled batch operations to an external
// scheduler. Each endpoint authenticates with the shared jobs token,
// acknowledges immediately and runs the batch in the background so the
// scheduler never times out on a slow fan-out.
type JobsController struct {
	memberService services.MemberServiceInterface
	cfg           *infra.Config
	logger        *zap.Logger
}

func NewJobsController(memberService services.MemberServiceInterface, cfg *infra.Config, logger *zap.Logger) *JobsController {
	return &JobsController{
		memberService: memberService,
		cfg:           cfg,
		logger:        logger,
	}
}

// Initialize godoc
// @Summary Sync the member directory and bootstrap the administrator
// @Tags Jobs
// @Produce json
// @Param token query string true "Jobs API token"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /jobs/initialize [get]
func (ctrl *JobsController) Initialize(c *gin.Context) {
	if !ctrl.authorized(c) {
		return
	}

	utils.RespondSuccess(c, nil, "Initialization started")
	go ctrl.runInitialize()
}

// Request godoc
// @Summary Broadcast a check-in request
// @Tags Jobs
// @Produce json
// @Param token query string true "Jobs API token"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /jobs/request [get]
func (ctrl *JobsController) Request(c *gin.Context) {
	ctrl.run(c, "check-in request", ctrl.memberService.RequestCheckIns)
}

// Remind godoc
// @Summary Remind members with late check-ins
// @Tags Jobs
// @Produce json
// @Param token query string true "Jobs API token"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /jobs/remind [get]
func (ctrl *JobsController) Remind(c *gin.Context) {
	ctrl.run(c, "late check-in reminder", ctrl.memberService.RemindMembersOfLateCheckIn)
}

// Notify godoc
// @Summary Post an overview of members with late check-ins
// @Tags Jobs
// @Produce json
// @Param token query string true "Jobs API token"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /jobs/notify [get]
func (ctrl *JobsController) Notify(c *gin.Context) {
	ctrl.run(c, "late check-in overview", ctrl.memberService.NotifyOfLateCheckIns)
}

// Alert godoc
// @Summary Start a new alert cycle
// @Tags Jobs
// @Produce json
// @Param token query string true "Jobs API token"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /jobs/alert [get]
func (ctrl *JobsController) Alert(c *gin.Context) {
	ctrl.run(c, "alert cycle", ctrl.memberService.RequestAlert)
}

func (ctrl *JobsController) run(c *gin.Context, name string, job func(ctx context.Context) error) {
	if !ctrl.authorized(c) {
		return
	}

	utils.RespondSuccess(c, nil, "Job started")
	go func() {
		if err := job(context.Background()); err != nil {
			ctrl.logger.Error("job failed", zap.String("job", name), zap.Error(err))
			return
		}
		ctrl.logger.Info("job finished", zap.String("job", name))
	}()
}

func (ctrl *JobsController) runInitialize() {
	ctx := context.Background()

	if err := ctrl.memberService.SyncAllWithSlack(ctx); err != nil {
		ctrl.logger.Error("job failed", zap.String("job", "initialize"), zap.Error(err))
		return
	}

	if id := ctrl.cfg.SlackAdministratorUserID; id != "" {
		member, err := ctrl.memberService.FindBySlackID(ctx, id)
		switch {
		case err != nil:
			ctrl.logger.Error("administrator lookup failed", zap.String("slack_id", id), zap.Error(err))
		case member == nil:
			ctrl.logger.Warn("configured administrator not in directory", zap.String("slack_id", id))
		default:
			if _, err := ctrl.memberService.SetIsAttribute(ctx, member.ID.String(), db_models.IsAttributeAdmin, true); err != nil {
				ctrl.logger.Error("administrator bootstrap failed", zap.String("slack_id", id), zap.Error(err))
			}
		}
	}

	ctrl.logger.Info("job finished", zap.String("job", "initialize"))
}

func (ctrl *JobsController) authorized(c *gin.Context) bool {
	if c.Query("token") != ctrl.cfg.JobsAPIToken {
		utils.HandleServiceError(c, utils.ErrInvalidJobsToken)
		return false
	}
	return true
}
