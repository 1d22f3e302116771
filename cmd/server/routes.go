package main

import (
	"github.com/gin-gonic/gin"

	"github.com/huynhhaigiang/cadico-api/internal/config"
	"github.com/huynhhaigiang/cadico-api/internal/middleware"
	planhandler "github.com/huynhhaigiang/cadico-api/internal/plan/handler"
	supplyhandler "github.com/huynhhaigiang/cadico-api/internal/supply/handler"
)

func registerRoutes(router *gin.Engine, cfg *config.Config, ph *planhandler.Handlers, sh *supplyhandler.Handlers) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// public
	auth := api.Group("/auth")
	{
		auth.POST("/login", ph.Auth.Login)
		auth.POST("/refresh", ph.Auth.Refresh)
		auth.POST("/logout", ph.Auth.Logout)
	}

	// authenticated
	authed := api.Group("", middleware.JWTAuth(cfg.JWT.Secret))
	{
		authed.GET("/auth/me", ph.Auth.Me)
		authed.PUT("/auth/password", ph.Auth.ChangePassword)

		// accounts; list is open for approver pickers, the rest is admin only
		authed.GET("/users", ph.User.List)
		admin := authed.Group("/users", middleware.RequireRole("admin"))
		{
			admin.GET("/:id", ph.User.Get)
			admin.POST("", ph.User.Create)
			admin.PUT("/:id", ph.User.Update)
			admin.DELETE("/:id", ph.User.Delete)
		}

		// catalogs
		constructions := authed.Group("/constructions")
		{
			constructions.GET("", ph.Catalog.ListConstructions)
			constructions.GET("/:id", ph.Catalog.GetConstruction)
			constructions.POST("", ph.Catalog.CreateConstruction)
			constructions.PUT("/:id", ph.Catalog.UpdateConstruction)
			constructions.DELETE("/:id", ph.Catalog.DeleteConstruction)
		}
		investors := authed.Group("/investors")
		{
			investors.GET("", ph.Catalog.ListInvestors)
			investors.GET("/:id", ph.Catalog.GetInvestor)
			investors.POST("", ph.Catalog.CreateInvestor)
			investors.PUT("/:id", ph.Catalog.UpdateInvestor)
			investors.DELETE("/:id", ph.Catalog.DeleteInvestor)
		}
		units := authed.Group("/units")
		{
			units.GET("", ph.Catalog.ListUnits)
			units.GET("/:id", ph.Catalog.GetUnit)
			units.POST("", ph.Catalog.CreateUnit)
			units.PUT("/:id", ph.Catalog.UpdateUnit)
			units.DELETE("/:id", ph.Catalog.DeleteUnit)
		}
		workTypes := authed.Group("/work-types")
		{
			workTypes.GET("", ph.Catalog.ListWorkTypes)
			workTypes.GET("/:id", ph.Catalog.GetWorkType)
			workTypes.POST("", ph.Catalog.CreateWorkType)
			workTypes.PUT("/:id", ph.Catalog.UpdateWorkType)
			workTypes.DELETE("/:id", ph.Catalog.DeleteWorkType)
		}
		workItems := authed.Group("/work-items")
		{
			workItems.GET("", ph.Catalog.ListWorkItems)
			workItems.GET("/:id", ph.Catalog.GetWorkItem)
			workItems.POST("", ph.Catalog.CreateWorkItem)
			workItems.PUT("/:id", ph.Catalog.UpdateWorkItem)
			workItems.DELETE("/:id", ph.Catalog.DeleteWorkItem)
		}
		teams := authed.Group("/teams")
		{
			teams.GET("", ph.Catalog.ListTeams)
			teams.GET("/:id", ph.Catalog.GetTeam)
			teams.POST("", ph.Catalog.CreateTeam)
			teams.PUT("/:id", ph.Catalog.UpdateTeam)
			teams.DELETE("/:id", ph.Catalog.DeleteTeam)
		}

		// plans
		plans := authed.Group("/plans")
		{
			plans.GET("", ph.Plan.List)
			plans.GET("/:id", ph.Plan.Get)
			plans.POST("", ph.Plan.Create)
			plans.PUT("/:id", ph.Plan.Update)
			plans.DELETE("/:id", ph.Plan.Delete)
			plans.POST("/:id/submit", ph.Plan.Submit)
			plans.PUT("/:id/approve", ph.Plan.Approve)
			plans.GET("/:id/export", ph.Export.ExportPlan)

			plans.GET("/:id/workloads", ph.Plan.ListWorkloads)
			plans.POST("/:id/workloads", ph.Plan.CreateWorkload)
			plans.PUT("/:id/workloads/:itemId", ph.Plan.UpdateWorkload)
			plans.DELETE("/:id/workloads/:itemId", ph.Plan.DeleteWorkload)

			plans.GET("/:id/costs", ph.Plan.ListCosts)
			plans.POST("/:id/costs", ph.Plan.CreateCost)
			plans.PUT("/:id/costs/:itemId", ph.Plan.UpdateCost)
			plans.DELETE("/:id/costs/:itemId", ph.Plan.DeleteCost)

			plans.GET("/:id/other-costs", ph.Plan.ListOtherCosts)
			plans.POST("/:id/other-costs", ph.Plan.CreateOtherCost)
			plans.PUT("/:id/other-costs/:itemId", ph.Plan.UpdateOtherCost)
			plans.DELETE("/:id/other-costs/:itemId", ph.Plan.DeleteOtherCost)

			plans.GET("/:id/materials", ph.Plan.ListMaterials)
			plans.POST("/:id/materials", ph.Plan.CreateMaterial)
			plans.PUT("/:id/materials/:itemId", ph.Plan.UpdateMaterial)
			plans.DELETE("/:id/materials/:itemId", ph.Plan.DeleteMaterial)

			plans.GET("/:id/progress", ph.Plan.ListProgressLogs)
			plans.POST("/:id/progress", ph.Plan.CreateProgressLog)
			plans.PUT("/:id/progress/:itemId", ph.Plan.UpdateProgressLog)
			plans.DELETE("/:id/progress/:itemId", ph.Plan.DeleteProgressLog)
		}

		// supply
		materials := authed.Group("/materials")
		{
			materials.GET("", sh.Material.List)
			materials.GET("/:id", sh.Material.Get)
			materials.POST("", sh.Material.Create)
			materials.PUT("/:id", sh.Material.Update)
			materials.DELETE("/:id", sh.Material.Delete)

			materials.GET("/:id/compositions", sh.Material.ListCompositions)
			materials.POST("/:id/compositions", sh.Material.CreateComposition)
			materials.PUT("/:id/compositions/:itemId", sh.Material.UpdateComposition)
			materials.DELETE("/:id/compositions/:itemId", sh.Material.DeleteComposition)
		}
		tickets := authed.Group("/supply-tickets")
		{
			tickets.GET("", sh.Ticket.List)
			tickets.GET("/:id", sh.Ticket.Get)
			tickets.POST("", sh.Ticket.Create)
			tickets.PUT("/:id", sh.Ticket.Update)
			tickets.DELETE("/:id", sh.Ticket.Delete)
			tickets.POST("/:id/submit", sh.Ticket.Submit)
			tickets.PUT("/:id/approve", sh.Ticket.Approve)
			tickets.GET("/:id/export", sh.Ticket.Export)

			tickets.GET("/:id/items", sh.Ticket.ListItems)
			tickets.POST("/:id/items", sh.Ticket.CreateItem)
			tickets.PUT("/:id/items/:itemId", sh.Ticket.UpdateItem)
			tickets.DELETE("/:id/items/:itemId", sh.Ticket.DeleteItem)
		}

		// notifications + realtime
		authed.GET("/notifications", ph.Notification.List)
		authed.PUT("/notifications/:id/read", ph.Notification.MarkRead)
		authed.PUT("/notifications/read-all", ph.Notification.MarkAllRead)
		authed.GET("/sse/events", ph.SSE.Stream)

		authed.POST("/upload", ph.Upload.Upload)
	}
}
