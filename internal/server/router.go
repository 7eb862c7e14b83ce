package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func initRouter(g *gin.Engine, h *Handler, log logrus.FieldLogger) {
	g.Use(gin.Recovery())
	g.Use(requestLogger(log))

	g.GET("/healthz", h.Health)

	apiV1 := g.Group("/v1")
	{
		apiV1.POST("/chat", h.Chat)
		apiV1.POST("/translate", h.Translate)
		apiV1.GET("/bookings", h.Bookings)
		apiV1.GET("/bookings/:reference", h.Booking)
		apiV1.GET("/tools", h.Tools)
	}
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request")
	}
}
