package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/serializer"
	"github.com/planhub-io/planhub/internal/modules/service"
)

type RiskHandler struct {
	svc service.RiskService
}

func NewRiskHandler(s service.RiskService) *RiskHandler {
	return &RiskHandler{svc: s}
}

type CreateRiskReq struct {
	Description string `form:"description" json:"description" binding:"required"`
	Likelihood  string `form:"likelihood" json:"likelihood" example:"Medium"`
	Impact      string `form:"impact" json:"impact" example:"High"`
	Mitigation  string `form:"mitigation" json:"mitigation"`
	Owner       string `form:"owner" json:"owner"`
}

// CreateRisk godoc
//
//	@Summary		Create risk
//	@Description	Record a risk against a project
//	@Tags			risk
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer					true	"Project ID"
//	@Param			payload		body	handler.CreateRiskReq	true	"CreateRisk payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Risk}
//	@Router			/project/{project_id}/risk [post]
func (h *RiskHandler) CreateRisk(c *gin.Context) {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	req := CreateRiskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	risk, err := h.svc.Create(c.Request.Context(), service.CreateRiskInput{
		ProjectID:   projectID,
		Description: req.Description,
		Likelihood:  model.Priority(req.Likelihood),
		Impact:      model.Priority(req.Impact),
		Mitigation:  req.Mitigation,
		Owner:       req.Owner,
	})
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: risk})
}

// GetRisks godoc
//
//	@Summary		List risks
//	@Description	List a project's risks
//	@Tags			risk
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Risk}
//	@Router			/project/{project_id}/risk [get]
func (h *RiskHandler) GetRisks(c *gin.Context) {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	risks, err := h.svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: risks})
}

type UpdateRiskReq struct {
	Description *string `form:"description" json:"description"`
	Likelihood  *string `form:"likelihood" json:"likelihood"`
	Impact      *string `form:"impact" json:"impact"`
	Mitigation  *string `form:"mitigation" json:"mitigation"`
	Owner       *string `form:"owner" json:"owner"`
	Status      *string `form:"status" json:"status"`
}

// UpdateRisk godoc
//
//	@Summary		Update risk
//	@Description	Partially update a risk
//	@Tags			risk
//	@Accept			json
//	@Produce		json
//	@Param			risk_id	path	integer					true	"Risk ID"
//	@Param			payload	body	handler.UpdateRiskReq	true	"UpdateRisk payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Risk}
//	@Router			/risk/{risk_id} [put]
func (h *RiskHandler) UpdateRisk(c *gin.Context) {
	id, err := pathID(c, "risk_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	req := UpdateRiskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	patch := service.RiskPatch{
		Description: req.Description,
		Mitigation:  req.Mitigation,
		Owner:       req.Owner,
	}
	if req.Likelihood != nil {
		likelihood := model.Priority(*req.Likelihood)
		patch.Likelihood = &likelihood
	}
	if req.Impact != nil {
		impact := model.Priority(*req.Impact)
		patch.Impact = &impact
	}
	if req.Status != nil {
		status := model.RiskStatus(*req.Status)
		patch.Status = &status
	}

	risk, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: risk})
}

// DeleteRisk godoc
//
//	@Summary		Delete risk
//	@Description	Delete a risk by its ID
//	@Tags			risk
//	@Accept			json
//	@Produce		json
//	@Param			risk_id	path	integer	true	"Risk ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/risk/{risk_id} [delete]
func (h *RiskHandler) DeleteRisk(c *gin.Context) {
	id, err := pathID(c, "risk_id")
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
