package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planhub-io/planhub/internal/modules/serializer"
	"github.com/planhub-io/planhub/internal/modules/service"
	"github.com/planhub-io/planhub/internal/planner"
)

type TimelineHandler struct {
	svc service.TimelineService
}

func NewTimelineHandler(s service.TimelineService) *TimelineHandler {
	return &TimelineHandler{svc: s}
}

type GetTimelineReq struct {
	CriticalTaskIDs []uint `form:"critical_task_ids" json:"critical_task_ids"`
}

// GetTimeline godoc
//
//	@Summary		Get project timeline
//	@Description	Build the Gantt projection for one project, inferring missing dates
//	@Tags			timeline
//	@Accept			json
//	@Produce		json
//	@Param			project_id			path	integer	true	"Project ID"
//	@Param			critical_task_ids	query	[]int	false	"Task IDs to highlight as critical"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=planner.Timeline}
//	@Router			/project/{project_id}/timeline [get]
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	req := GetTimelineReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tl, err := h.svc.Build(c.Request.Context(), service.BuildTimelineInput{
		ProjectID:       &projectID,
		CriticalTaskIDs: req.CriticalTaskIDs,
	})
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: tl})
}

// GetPortfolioTimeline godoc
//
//	@Summary		Get portfolio timeline
//	@Description	Build the Gantt projection across every project
//	@Tags			timeline
//	@Accept			json
//	@Produce		json
//	@Param			critical_task_ids	query	[]int	false	"Task IDs to highlight as critical"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=planner.Timeline}
//	@Router			/timeline [get]
func (h *TimelineHandler) GetPortfolioTimeline(c *gin.Context) {
	req := GetTimelineReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tl, err := h.svc.Build(c.Request.Context(), service.BuildTimelineInput{
		CriticalTaskIDs: req.CriticalTaskIDs,
	})
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: tl})
}

// GetPhases godoc
//
//	@Summary		Get phase groups
//	@Description	Group a project's tasks by phase with rollup progress and date spans
//	@Tags			timeline
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]planner.PhaseGroup}
//	@Router			/project/{project_id}/phases [get]
func (h *TimelineHandler) GetPhases(c *gin.Context) {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	groups, err := h.svc.PhaseGroups(c.Request.Context(), projectID)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	if groups == nil {
		groups = []planner.PhaseGroup{}
	}

	c.JSON(http.StatusOK, serializer.Response{Data: groups})
}
