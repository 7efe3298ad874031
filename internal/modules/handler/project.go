package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/serializer"
	"github.com/planhub-io/planhub/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	Name                 string                 `form:"name" json:"name" binding:"required"`
	Status               string                 `form:"status" json:"status"`
	StartDate            string                 `form:"start_date" json:"start_date" example:"2026-03-01"`
	TargetCompletionDate string                 `form:"target_completion_date" json:"target_completion_date" example:"2026-09-30"`
	BudgetCents          int64                  `form:"budget_cents" json:"budget_cents"`
	Settings             map[string]interface{} `form:"settings" json:"settings"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a new project
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"CreateProject payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Router			/project [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	target, err := parseDate("target_completion_date", req.TargetCompletionDate)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	project, err := h.svc.Create(c.Request.Context(), service.CreateProjectInput{
		Name:                 req.Name,
		Status:               model.ProjectStatus(req.Status),
		StartDate:            start,
		TargetCompletionDate: target,
		BudgetCents:          req.BudgetCents,
		Settings:             req.Settings,
	})
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: project})
}

// GetProjects godoc
//
//	@Summary		List projects
//	@Description	List all projects
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/project [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// GetProject godoc
//
//	@Summary		Get project
//	@Description	Get a project by its ID
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/project/{project_id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	project, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

type UpdateProjectReq struct {
	Name                 *string                `form:"name" json:"name"`
	Status               *string                `form:"status" json:"status"`
	StartDate            *string                `form:"start_date" json:"start_date"`
	TargetCompletionDate *string                `form:"target_completion_date" json:"target_completion_date"`
	BudgetCents          *int64                 `form:"budget_cents" json:"budget_cents"`
	Settings             map[string]interface{} `form:"settings" json:"settings"`
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Partially update a project; absent fields are left unchanged
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer						true	"Project ID"
//	@Param			payload		body	handler.UpdateProjectReq	true	"UpdateProject payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/project/{project_id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	req := UpdateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	start, err := parseDatePtr("start_date", req.StartDate)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	target, err := parseDatePtr("target_completion_date", req.TargetCompletionDate)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	patch := service.ProjectPatch{
		Name:                 req.Name,
		StartDate:            start,
		TargetCompletionDate: target,
		BudgetCents:          req.BudgetCents,
		Settings:             req.Settings,
	}
	if req.Status != nil {
		status := model.ProjectStatus(*req.Status)
		patch.Status = &status
	}

	project, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Delete a project and its tasks
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/project/{project_id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}
