package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planhub-io/planhub/internal/modules/model"
	"github.com/planhub-io/planhub/internal/modules/serializer"
	"github.com/planhub-io/planhub/internal/modules/service"
	"github.com/planhub-io/planhub/internal/planner"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type CreateTaskReq struct {
	Description       string `form:"description" json:"description" binding:"required"`
	StartDate         string `form:"start_date" json:"start_date" example:"2026-03-01"`
	DueDate           string `form:"due_date" json:"due_date" example:"2026-03-15"`
	DurationDays      *int   `form:"duration_days" json:"duration_days"`
	Dependency        string `form:"dependency" json:"dependency" example:"T001, T002"`
	Owner             string `form:"owner" json:"owner"`
	Status            string `form:"status" json:"status" example:"Not Started"`
	Priority          string `form:"priority" json:"priority" example:"Medium"`
	Phase             string `form:"phase" json:"phase" example:"Phase 1: Design"`
	BudgetCents       int64  `form:"budget_cents" json:"budget_cents"`
	ActualBudgetCents int64  `form:"actual_budget_cents" json:"actual_budget_cents"`
	ApprovalRequired  string `form:"approval_required" json:"approval_required" example:"No"`
	Approver          string `form:"approver" json:"approver"`
	CompletionPercent int    `form:"completion_percent" json:"completion_percent"`
	Notes             string `form:"notes" json:"notes"`
}

// CreateTask godoc
//
//	@Summary		Create task
//	@Description	Create a task under a project; the task code is allocated server-side
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer					true	"Project ID"
//	@Param			payload		body	handler.CreateTaskReq	true	"CreateTask payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Task}
//	@Router			/project/{project_id}/task [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	req := CreateTaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	due, err := parseDate("due_date", req.DueDate)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	task, err := h.svc.Create(c.Request.Context(), service.CreateTaskInput{
		ProjectID:         projectID,
		Description:       req.Description,
		StartDate:         start,
		DueDate:           due,
		DurationDays:      req.DurationDays,
		Dependency:        req.Dependency,
		Owner:             req.Owner,
		Status:            model.TaskStatus(req.Status),
		Priority:          model.Priority(req.Priority),
		Phase:             req.Phase,
		BudgetCents:       req.BudgetCents,
		ActualBudgetCents: req.ActualBudgetCents,
		ApprovalRequired:  model.Approval(req.ApprovalRequired),
		Approver:          req.Approver,
		CompletionPercent: req.CompletionPercent,
		Notes:             req.Notes,
	})
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: task})
}

// GetTasks godoc
//
//	@Summary		List tasks
//	@Description	List a project's tasks ordered by task code
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Router			/project/{project_id}/task [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	tasks, err := h.svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: tasks})
}

// GetTask godoc
//
//	@Summary		Get task
//	@Description	Get a task by its ID
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			task_id	path	integer	true	"Task ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Task}
//	@Router			/task/{task_id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := pathID(c, "task_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	task, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: task})
}

type UpdateTaskReq struct {
	Description       *string `form:"description" json:"description"`
	StartDate         *string `form:"start_date" json:"start_date"`
	DueDate           *string `form:"due_date" json:"due_date"`
	DurationDays      *int    `form:"duration_days" json:"duration_days"`
	Dependency        *string `form:"dependency" json:"dependency"`
	Owner             *string `form:"owner" json:"owner"`
	Status            *string `form:"status" json:"status"`
	Priority          *string `form:"priority" json:"priority"`
	Phase             *string `form:"phase" json:"phase"`
	BudgetCents       *int64  `form:"budget_cents" json:"budget_cents"`
	ActualBudgetCents *int64  `form:"actual_budget_cents" json:"actual_budget_cents"`
	ApprovalRequired  *string `form:"approval_required" json:"approval_required"`
	Approver          *string `form:"approver" json:"approver"`
	CompletionPercent *int    `form:"completion_percent" json:"completion_percent"`
	Notes             *string `form:"notes" json:"notes"`
}

func (req *UpdateTaskReq) toPatch() (planner.TaskPatch, error) {
	start, err := parseDatePtr("start_date", req.StartDate)
	if err != nil {
		return planner.TaskPatch{}, err
	}
	due, err := parseDatePtr("due_date", req.DueDate)
	if err != nil {
		return planner.TaskPatch{}, err
	}

	patch := planner.TaskPatch{
		Description:       req.Description,
		StartDate:         start,
		DueDate:           due,
		DurationDays:      req.DurationDays,
		Dependency:        req.Dependency,
		Owner:             req.Owner,
		Phase:             req.Phase,
		BudgetCents:       req.BudgetCents,
		ActualBudgetCents: req.ActualBudgetCents,
		Approver:          req.Approver,
		CompletionPercent: req.CompletionPercent,
		Notes:             req.Notes,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		prio := model.Priority(*req.Priority)
		patch.Priority = &prio
	}
	if req.ApprovalRequired != nil {
		approval := model.Approval(*req.ApprovalRequired)
		patch.ApprovalRequired = &approval
	}
	return patch, nil
}

// UpdateTask godoc
//
//	@Summary		Update task
//	@Description	Partially update a task; setting status to Complete forces completion_percent to 100
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			task_id	path	integer					true	"Task ID"
//	@Param			payload	body	handler.UpdateTaskReq	true	"UpdateTask payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Task}
//	@Router			/task/{task_id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := pathID(c, "task_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	req := UpdateTaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	task, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: task})
}

// DeleteTask godoc
//
//	@Summary		Delete task
//	@Description	Delete a task; its code is never reissued to later tasks
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			task_id	path	integer	true	"Task ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/task/{task_id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := pathID(c, "task_id")
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

type BulkUpdateTasksReq struct {
	IDs   []uint        `form:"ids" json:"ids" binding:"required"`
	Patch UpdateTaskReq `form:"patch" json:"patch"`
}

type BulkUpdateTasksResp struct {
	UpdatedCount int64 `json:"updated_count"`
}

// BulkUpdateTasks godoc
//
//	@Summary		Bulk update tasks
//	@Description	Apply one patch to several tasks of a project in a single transaction
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer						true	"Project ID"
//	@Param			payload		body	handler.BulkUpdateTasksReq	true	"BulkUpdateTasks payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.BulkUpdateTasksResp}
//	@Router			/project/{project_id}/task/bulk [put]
func (h *TaskHandler) BulkUpdateTasks(c *gin.Context) {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	req := BulkUpdateTasksReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	patch, err := req.Patch.toPatch()
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	count, err := h.svc.BulkUpdate(c.Request.Context(), projectID, req.IDs, patch)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: BulkUpdateTasksResp{UpdatedCount: count}})
}

type ValidateResp struct {
	Valid  bool            `json:"valid"`
	Issues []planner.Issue `json:"issues"`
}

// ValidateDependencies godoc
//
//	@Summary		Validate dependencies
//	@Description	Report missing dependency references and start/due date conflicts for a project
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.ValidateResp}
//	@Router			/project/{project_id}/validate [get]
func (h *TaskHandler) ValidateDependencies(c *gin.Context) {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	issues, err := h.svc.ValidateDependencies(c.Request.Context(), projectID)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	if issues == nil {
		issues = []planner.Issue{}
	}

	c.JSON(http.StatusOK, serializer.Response{Data: ValidateResp{Valid: len(issues) == 0, Issues: issues}})
}
