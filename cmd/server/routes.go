package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"members-api.backend/internal/interfaces/http/handlers"
	"members-api.backend/internal/interfaces/http/middleware"
)

const (
	serviceName    = "members-api"
	serviceVersion = "1.0.0"
)

type routeDeps struct {
	memberHandler    *handlers.MemberHandler
	idempotencyStore middleware.IdempotencyStore
	allowedOrigins   []string
}

func newRouter(d routeDeps) (*gin.Engine, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(metrics.Middleware())

	applyCORSMiddleware(r, d.allowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r, reg)
	registerMemberRoutes(r, d)
	return r, nil
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	r.Use(middleware.CORSMiddleware(allowedOrigins))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

func registerMemberRoutes(r *gin.Engine, d routeDeps) {
	members := r.Group("/members")
	{
		members.GET("", d.memberHandler.ListMembers)
		members.GET("/:id", d.memberHandler.GetMember)
		members.POST("", middleware.IdempotencyMiddleware(d.idempotencyStore), d.memberHandler.CreateMember)
		members.PUT("/:id", d.memberHandler.UpdateMember)
		members.POST("/delete", d.memberHandler.DeleteMembers)
	}
}
