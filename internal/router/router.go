package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "github.com/planhub-io/planhub/docs"
	"github.com/planhub-io/planhub/internal/config"
	"github.com/planhub-io/planhub/internal/middleware"
	"github.com/planhub-io/planhub/internal/modules/handler"
	"github.com/planhub-io/planhub/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config          *config.Config
	Log             *zap.Logger
	ProjectHandler  *handler.ProjectHandler
	TaskHandler     *handler.TaskHandler
	TimelineHandler *handler.TimelineHandler
	TemplateHandler *handler.TemplateHandler
	RiskHandler     *handler.RiskHandler
	ExportHandler   *handler.ExportHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())

	// Add OpenTelemetry middleware if enabled (using configuration system)
	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		// Add trace ID to response header
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))
	r.Use(middleware.Prometheus())

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.BearerAuth(d.Config))

		// ping endpoint
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		project := v1.Group("/project")
		{
			project.GET("", d.ProjectHandler.GetProjects)
			project.POST("", d.ProjectHandler.CreateProject)
			project.GET("/:project_id", d.ProjectHandler.GetProject)
			project.PUT("/:project_id", d.ProjectHandler.UpdateProject)
			project.DELETE("/:project_id", d.ProjectHandler.DeleteProject)

			project.GET("/:project_id/task", d.TaskHandler.GetTasks)
			project.POST("/:project_id/task", d.TaskHandler.CreateTask)
			project.PUT("/:project_id/task/bulk", d.TaskHandler.BulkUpdateTasks)

			project.GET("/:project_id/validate", d.TaskHandler.ValidateDependencies)
			project.GET("/:project_id/phases", d.TimelineHandler.GetPhases)
			project.GET("/:project_id/timeline", d.TimelineHandler.GetTimeline)
			project.POST("/:project_id/export", d.ExportHandler.ExportProject)

			project.GET("/:project_id/risk", d.RiskHandler.GetRisks)
			project.POST("/:project_id/risk", d.RiskHandler.CreateRisk)
		}

		task := v1.Group("/task")
		{
			task.GET("/:task_id", d.TaskHandler.GetTask)
			task.PUT("/:task_id", d.TaskHandler.UpdateTask)
			task.DELETE("/:task_id", d.TaskHandler.DeleteTask)
		}

		template := v1.Group("/template")
		{
			template.GET("", d.TemplateHandler.GetTemplates)
			template.POST("", d.TemplateHandler.CreateTemplate)
			template.GET("/:template_id", d.TemplateHandler.GetTemplate)
			template.DELETE("/:template_id", d.TemplateHandler.DeleteTemplate)
			template.POST("/:template_id/apply", d.TemplateHandler.ApplyTemplate)
		}

		risk := v1.Group("/risk")
		{
			risk.PUT("/:risk_id", d.RiskHandler.UpdateRisk)
			risk.DELETE("/:risk_id", d.RiskHandler.DeleteRisk)
		}

		timeline := v1.Group("/timeline")
		{
			timeline.GET("", d.TimelineHandler.GetPortfolioTimeline)
		}
	}
	return r
}
