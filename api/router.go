// Package api wires the gin engine: middleware chain, health endpoints and
// the authenticated resource routes.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/daniel-torresc/emerald-backend-sub002/api/account"
	"github.com/daniel-torresc/emerald-backend-sub002/api/accounttype"
	"github.com/daniel-torresc/emerald-backend-sub002/api/card"
	"github.com/daniel-torresc/emerald-backend-sub002/api/health"
	"github.com/daniel-torresc/emerald-backend-sub002/api/institution"
	"github.com/daniel-torresc/emerald-backend-sub002/api/middleware"
	"github.com/daniel-torresc/emerald-backend-sub002/api/user"
	"github.com/daniel-torresc/emerald-backend-sub002/config"
)

type Router struct {
	engine                *gin.Engine
	config                *config.Config
	healthController      *health.Controller
	userController        *user.Controller
	institutionController *institution.Controller
	accountTypeController *accounttype.Controller
	accountController     *account.Controller
	cardController        *card.Controller
}

func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	userController *user.Controller,
	institutionController *institution.Controller,
	accountTypeController *accounttype.Controller,
	accountController *account.Controller,
	cardController *card.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before anything
	// logs, recovery wraps everything below it.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:                engine,
		config:                cfg,
		healthController:      healthController,
		userController:        userController,
		institutionController: institutionController,
		accountTypeController: accountTypeController,
		accountController:     accountController,
		cardController:        cardController,
	}
}

func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		// Health endpoints stay unauthenticated for probes.
		r.healthController.RegisterRoutes(apiGroup)

		protected := apiGroup.Group("")
		protected.Use(middleware.AuthMiddleware(&r.config.Auth))
		{
			r.userController.RegisterRoutes(protected)
			r.institutionController.RegisterRoutes(protected)
			r.accountTypeController.RegisterRoutes(protected)
			r.accountController.RegisterRoutes(protected)
			r.cardController.RegisterRoutes(protected)
		}
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
