package api

import (
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    "github.com/gin-gonic/gin/binding"
    "github.com/go-playground/validator/v10"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    "github.com/d60-Lab/party-feed/config"
    "github.com/d60-Lab/party-feed/internal/api/handler"
    "github.com/d60-Lab/party-feed/internal/api/middleware"
    "github.com/d60-Lab/party-feed/internal/model"
)

// NewRouter 组装路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
    gin.SetMode(cfg.Server.Mode)
    registerValidators()

    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    if cfg.Trace.Enabled {
        r.Use(otelgin.Middleware("party-feed"))
    }

    v1 := r.Group("/api/v1")
    {
        auth := v1.Group("/auth")
        {
            auth.POST("/register", h.Register)
            auth.POST("/login", h.Login)
        }

        authed := v1.Group("")
        authed.Use(middleware.Auth(cfg.JWT))
        {
            authed.POST("/posts", h.PublishPost)
            authed.POST("/posts/:post_id/like", h.LikePost)
            authed.POST("/posts/:post_id/comments", h.CommentPost)
            authed.POST("/events", h.CreateEvent)
            authed.POST("/events/:event_id/rsvp", h.ChangeRSVP)
            authed.POST("/relations/follow", h.Follow)
            authed.POST("/relations/unfollow", h.Unfollow)
            authed.GET("/feed", h.GetFeed)
            authed.GET("/notifications", h.ListNotifications)
            authed.POST("/notifications/:id/read", h.ReadNotification)
        }

        v1.GET("/relations/:user_id/following", h.ListFollowing)
        v1.GET("/relations/:user_id/fans", h.ListFans)
        v1.GET("/cities/:city_id/hotspots", h.ListHotspots)

        admin := v1.Group("/admin")
        admin.Use(middleware.Auth(cfg.JWT))
        {
            admin.POST("/queue/process", h.ProcessQueue)
            admin.GET("/queue/stats", h.QueueStats)
            admin.POST("/cleanup", h.RunCleanup)
        }
    }
    return r
}

func registerValidators() {
    if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
        _ = v.RegisterValidation("rsvpstatus", func(fl validator.FieldLevel) bool {
            s := fl.Field().String()
            return s == model.RSVPAccepted || s == model.RSVPDeclined
        })
    }
}
