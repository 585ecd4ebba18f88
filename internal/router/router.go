// Package router assembles the Gin engine from the HTTP handlers.
package router

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/courseconnect-api/internal/handler"
	"github.com/noah-isme/courseconnect-api/internal/middleware"
	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/policy"
	"github.com/noah-isme/courseconnect-api/internal/service"
	"github.com/noah-isme/courseconnect-api/pkg/config"
	"github.com/noah-isme/courseconnect-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/courseconnect-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/courseconnect-api/pkg/middleware/requestid"
)

const metricsPath = "/metrics"

type sessionProvider interface {
	Current(ctx context.Context) (models.AppState, error)
}

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Session      *handler.SessionHandler
	View         *handler.ViewHandler
	Course       *handler.CourseHandler
	Announcement *handler.AnnouncementHandler
	Assistant    *handler.AssistantHandler
	Activity     *handler.ActivityHandler
	Metrics      *handler.MetricsHandler
}

// Setup builds the engine. Operational endpoints sit at the root; the
// application API sits under cfg.APIPrefix behind the session middleware.
func Setup(cfg *config.Config, h Handlers, sessions sessionProvider, metrics *service.MetricsService, logr *zap.Logger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(logger.GinMiddleware(logr))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metrics, metricsPath))
	}

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if cfg.Metrics.Enabled {
		r.GET(metricsPath, h.Metrics.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Session(sessions))
	{
		api.GET("/session", h.Session.Get)
		api.PUT("/session/user", h.Session.SwitchUser)
		api.PUT("/session/view", h.Session.Navigate)
		api.POST("/session/reset", middleware.Require(policy.CanViewActivity, "only admins can reset the session"), h.Session.Reset)
		api.GET("/users", h.Session.Users)

		api.GET("/view", h.View.Get)

		courses := api.Group("/courses")
		{
			courses.GET("", h.Course.List)
			courses.GET("/:id", h.Course.Get)
			courses.POST("", middleware.Require(policy.CanManageCourses, "only instructors and admins can create courses"), h.Course.Create)
			courses.DELETE("/:id", h.Course.Delete)
			courses.POST("/:id/registration", h.Course.Register)
			courses.DELETE("/:id/registration", h.Course.Unregister)
			courses.GET("/:id/roster", h.Course.Roster)
		}

		announcements := api.Group("/announcements")
		{
			announcements.GET("", h.Announcement.List)
			announcements.POST("", middleware.Require(policy.CanAnnounce, "only instructors and admins can post announcements"), h.Announcement.Create)
		}

		assistant := api.Group("/assistant")
		{
			assistant.GET("/chat", h.Assistant.History)
			assistant.POST("/chat", h.Assistant.Send)
			assistant.POST("/syllabus-drafts", h.Assistant.RequestSyllabus)
			assistant.GET("/syllabus-drafts/:id", h.Assistant.GetSyllabus)
		}

		api.GET("/activity", middleware.Require(policy.CanViewActivity, "only admins can view activity"), h.Activity.List)
	}

	return r
}
