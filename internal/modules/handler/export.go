package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planhub-io/planhub/internal/modules/serializer"
	"github.com/planhub-io/planhub/internal/modules/service"
)

type ExportHandler struct {
	svc service.ExportService
}

func NewExportHandler(s service.ExportService) *ExportHandler {
	return &ExportHandler{svc: s}
}

// ExportProject godoc
//
//	@Summary		Export project plan
//	@Description	Render the project's task table as CSV, store it and return a presigned download URL
//	@Tags			export
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	integer	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ExportResult}
//	@Router			/project/{project_id}/export [post]
func (h *ExportHandler) ExportProject(c *gin.Context) {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	result, err := h.svc.ExportCSV(c.Request.Context(), projectID)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: result})
}
