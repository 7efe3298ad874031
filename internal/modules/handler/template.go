package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/serializer"
	"github.com/planhub-io/planhub/internal/modules/service"
)

type TemplateHandler struct {
	svc service.TemplateService
}

func NewTemplateHandler(s service.TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: s}
}

type CreateTemplateTaskReq struct {
	Description  string `form:"description" json:"description" binding:"required"`
	DurationDays *int   `form:"duration_days" json:"duration_days"`
	Phase        string `form:"phase" json:"phase"`
	Priority     string `form:"priority" json:"priority"`
	Owner        string `form:"owner" json:"owner"`
}

type CreateTemplateReq struct {
	Name        string                  `form:"name" json:"name" binding:"required"`
	Description string                  `form:"description" json:"description"`
	Tasks       []CreateTemplateTaskReq `form:"tasks" json:"tasks"`
}

// CreateTemplate godoc
//
//	@Summary		Create template
//	@Description	Create a reusable plan template with an ordered task list
//	@Tags			template
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateTemplateReq	true	"CreateTemplate payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Template}
//	@Router			/template [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	req := CreateTemplateReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
	}
	for _, t := range req.Tasks {
		in.Tasks = append(in.Tasks, service.CreateTemplateTaskInput{
			Description:  t.Description,
			DurationDays: t.DurationDays,
			Phase:        t.Phase,
			Priority:     model.Priority(t.Priority),
			Owner:        t.Owner,
		})
	}

	tpl, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: tpl})
}

// GetTemplates godoc
//
//	@Summary		List templates
//	@Description	List all plan templates
//	@Tags			template
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Template}
//	@Router			/template [get]
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	templates, err := h.svc.List(c.Request.Context())
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: templates})
}

// GetTemplate godoc
//
//	@Summary		Get template
//	@Description	Get a template with its task list
//	@Tags			template
//	@Accept			json
//	@Produce		json
//	@Param			template_id	path	integer	true	"Template ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Template}
//	@Router			/template/{template_id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, err := pathID(c, "template_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	tpl, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: tpl})
}

// DeleteTemplate godoc
//
//	@Summary		Delete template
//	@Description	Delete a template and its task list
//	@Tags			template
//	@Accept			json
//	@Produce		json
//	@Param			template_id	path	integer	true	"Template ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/template/{template_id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, err := pathID(c, "template_id")
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

type ApplyTemplateReq struct {
	ProjectID uint `form:"project_id" json:"project_id" binding:"required"`
}

type ApplyTemplateResp struct {
	CreatedCount int `json:"created_count"`
}

// ApplyTemplate godoc
//
//	@Summary		Apply template
//	@Description	Seed a project with the template's tasks; codes continue from the project's history
//	@Tags			template
//	@Accept			json
//	@Produce		json
//	@Param			template_id	path	integer						true	"Template ID"
//	@Param			payload		body	handler.ApplyTemplateReq	true	"ApplyTemplate payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.ApplyTemplateResp}
//	@Router			/template/{template_id}/apply [post]
func (h *TemplateHandler) ApplyTemplate(c *gin.Context) {
	id, err := pathID(c, "template_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	req := ApplyTemplateReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	count, err := h.svc.Apply(c.Request.Context(), id, req.ProjectID)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: ApplyTemplateResp{CreatedCount: count}})
}
