package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "roomescape/docs"
)

const requestIDHeader = "X-Request-ID"

// NewRouter собирает gin-движок: CORS, логирование запросов, swagger и маршруты листа ожидания.
func NewRouter(h *WaitingHandler, authMiddleware gin.HandlerFunc, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false

	r.Use(gin.Recovery(), RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Location", requestIDHeader},
		AllowCredentials: false,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	waitings := r.Group("/api/waitings", authMiddleware)
	{
		waitings.POST("", h.Join)
		waitings.GET("/mine", h.ListMine)
		waitings.GET("/:id/position", h.GetPosition)
		waitings.DELETE("/:id", h.Leave)
	}

	schedules := r.Group("/api/schedules", authMiddleware)
	{
		schedules.GET("/:id/waitings", h.ListForSchedule)
		schedules.GET("/:id/waitings/head", h.PeekHead)
	}

	return r
}

// RequestLogger пишет в лог каждый запрос и проставляет X-Request-ID.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		entry := logger.WithContext(c.Request.Context()).WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			entry.Warn(c.Errors.String())
			return
		}
		entry.Info("request served")
	}
}
